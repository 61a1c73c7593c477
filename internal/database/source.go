// Storelens - E-Commerce Customer and Sales Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storelens

// Package database loads transaction snapshots from DuckDB, PostgreSQL or
// MySQL/MariaDB.
//
// Every backend satisfies Source and shares one row scanner, so the
// required-column check and the value coercions behave identically whatever
// the driver returns. Open builds the configured backend and wraps it in a
// circuit breaker.
package database

import (
	"context"
	"fmt"
	"regexp"

	"github.com/tomtom215/storelens/internal/config"
	"github.com/tomtom215/storelens/internal/models"
)

// Source loads the full transaction table.
type Source interface {
	// Name identifies the backend in logs and metrics.
	Name() string

	// Load reads every transaction. It returns *analytics.SchemaError when
	// required columns are missing or an OrderDate is null.
	Load(ctx context.Context) ([]models.Transaction, error)

	Close() error
}

// tableNamePattern accepts table or schema.table made of word characters.
var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

func checkTableName(table string) error {
	if !tableNamePattern.MatchString(table) {
		return fmt.Errorf("invalid table name %q", table)
	}
	return nil
}

// Open builds the source selected by cfg.Driver behind a circuit breaker.
func Open(cfg config.SourceConfig) (Source, error) {
	var (
		src Source
		err error
	)
	switch cfg.Driver {
	case config.DriverDuckDB, "":
		src, err = NewDuckDBSource(cfg.Path, cfg.CSVPath, cfg.Table)
	case config.DriverPostgres:
		src, err = NewPostgresSource(cfg.DSN, cfg.Table)
	case config.DriverMySQL:
		src, err = NewMySQLSource(cfg.DSN, cfg.Table)
	default:
		return nil, fmt.Errorf("unsupported source driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, err
	}
	return NewBreakerSource(src, cfg.Breaker), nil
}
