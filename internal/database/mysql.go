// Storelens - E-Commerce Customer and Sales Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storelens

package database

import (
	"database/sql"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
)

// MySQLSource reads transactions from a MySQL or MariaDB table.
type MySQLSource struct {
	sqlSource
}

// NewMySQLSource accepts mysql://, mariadb:// or native driver DSNs.
func NewMySQLSource(dsn, table string) (*MySQLSource, error) {
	if err := checkTableName(table); err != nil {
		return nil, err
	}
	mysqlDSN, err := toMySQLDSN(dsn)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("mysql", mysqlDSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open mysql: %w", err)
	}
	configurePool(db)

	return &MySQLSource{sqlSource{
		name:  "mysql:" + table,
		db:    db,
		query: "SELECT * FROM " + quoteMySQLTable(table),
	}}, nil
}

// toMySQLDSN converts mysql:// and mariadb:// URLs to driver DSNs. Every
// result has parseTime enabled and UTC location so DATETIME columns scan
// as time.Time.
func toMySQLDSN(dsn string) (string, error) {
	var cfg *mysql.Config

	if strings.HasPrefix(dsn, "mariadb://") || strings.HasPrefix(dsn, "mysql://") {
		u, err := url.Parse(dsn)
		if err != nil {
			return "", fmt.Errorf("parse dsn: %w", err)
		}
		cfg = mysql.NewConfig()
		if u.User != nil {
			cfg.User = u.User.Username()
			cfg.Passwd, _ = u.User.Password()
		}
		cfg.Net = "tcp"
		cfg.Addr = u.Host
		cfg.DBName = strings.TrimPrefix(u.Path, "/")
		if cfg.User == "" || cfg.Addr == "" || cfg.DBName == "" {
			return "", fmt.Errorf("incomplete mysql url: user, host and database are required")
		}
		if q := u.Query(); len(q) > 0 {
			cfg.Params = make(map[string]string, len(q))
			for k := range q {
				cfg.Params[k] = q.Get(k)
			}
		}
	} else {
		parsed, err := mysql.ParseDSN(dsn)
		if err != nil {
			return "", fmt.Errorf("parse dsn: %w", err)
		}
		cfg = parsed
	}

	cfg.ParseTime = true
	cfg.Loc = time.UTC
	return cfg.FormatDSN(), nil
}

func quoteMySQLTable(table string) string {
	parts := strings.Split(table, ".")
	for i, p := range parts {
		parts[i] = "`" + p + "`"
	}
	return strings.Join(parts, ".")
}
