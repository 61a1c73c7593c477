// Storelens - E-Commerce Customer and Sales Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storelens

package database

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/lib/pq"
)

// PostgresSource reads transactions from a PostgreSQL table.
type PostgresSource struct {
	sqlSource
}

// NewPostgresSource accepts either a postgres:// URL or a key=value DSN.
// Table parts are quoted, so they must match the stored (usually
// lower-case) identifiers exactly.
func NewPostgresSource(dsn, table string) (*PostgresSource, error) {
	if err := checkTableName(table); err != nil {
		return nil, err
	}
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		converted, err := pq.ParseURL(dsn)
		if err != nil {
			return nil, fmt.Errorf("invalid postgres url: %w", err)
		}
		dsn = converted
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}
	configurePool(db)

	return &PostgresSource{sqlSource{
		name:  "postgres:" + table,
		db:    db,
		query: "SELECT * FROM " + quotePostgresTable(table),
	}}, nil
}

func quotePostgresTable(table string) string {
	parts := strings.Split(table, ".")
	for i, p := range parts {
		parts[i] = pq.QuoteIdentifier(p)
	}
	return strings.Join(parts, ".")
}
