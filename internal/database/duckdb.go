// Storelens - E-Commerce Customer and Sales Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storelens

package database

import (
	"database/sql"
	"fmt"
	"os"
	"strings"

	_ "github.com/duckdb/duckdb-go/v2"
)

// DuckDBSource reads transactions through an embedded DuckDB.
type DuckDBSource struct {
	sqlSource
}

// NewDuckDBSource opens DuckDB at path ("" for in-memory). With csvPath set
// the CSV is read through read_csv_auto on every Load; otherwise table is
// queried.
func NewDuckDBSource(path, csvPath, table string) (*DuckDBSource, error) {
	var query string
	if csvPath != "" {
		if _, err := os.Stat(csvPath); err != nil {
			return nil, fmt.Errorf("csv source: %w", err)
		}
		query = "SELECT * FROM read_csv_auto(" + quoteLiteral(csvPath) + ", header = true)"
	} else {
		if err := checkTableName(table); err != nil {
			return nil, err
		}
		query = "SELECT * FROM " + table
	}

	// Extensions are never needed here; keeping autoload off avoids network
	// access at query time.
	dbPath := path
	if dbPath == "" {
		dbPath = ":memory:"
	}
	connStr := dbPath + "?autoinstall_known_extensions=false&autoload_known_extensions=false"
	if path != "" && csvPath == "" {
		connStr += "&access_mode=read_only"
	}

	db, err := sql.Open("duckdb", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open duckdb: %w", err)
	}

	name := "duckdb:" + table
	if csvPath != "" {
		name = "duckdb:csv"
	}
	return &DuckDBSource{sqlSource{name: name, db: db, query: query}}, nil
}

// quoteLiteral renders s as a single-quoted SQL string literal.
func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
