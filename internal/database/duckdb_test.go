// Storelens - E-Commerce Customer and Sales Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storelens

package database

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/tomtom215/storelens/internal/analytics"
	"github.com/tomtom215/storelens/internal/config"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "transactions.csv")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	return path
}

func TestDuckDBSource_CSV(t *testing.T) {
	path := writeCSV(t, `OrderID,CustomerID,ProductName,CategoryName,OrderDate,TotalAmount,City,Country
1001,17850,Desk Lamp,Home,2024-01-05,39.50,Berlin,Germany
1002,17850,Mug,Kitchen,2024-01-20,8.00,Berlin,Germany
1003,13047,Mug,Kitchen,2024-02-11,16.00,Lyon,France
`)

	src, err := NewDuckDBSource("", path, "ignored")
	if err != nil {
		t.Fatalf("NewDuckDBSource() error = %v", err)
	}
	defer src.Close()

	txns, err := src.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(txns) != 3 {
		t.Fatalf("len(txns) = %d, want 3", len(txns))
	}

	var total float64
	for _, tx := range txns {
		total += tx.TotalAmount
	}
	if total != 63.5 {
		t.Errorf("sum(TotalAmount) = %v, want 63.5", total)
	}
	if txns[2].CustomerID != "13047" || txns[2].Country != "France" {
		t.Errorf("third row = %+v, want customer 13047 in France", txns[2])
	}
	if src.Name() != "duckdb:csv" {
		t.Errorf("Name() = %q, want duckdb:csv", src.Name())
	}
}

func TestDuckDBSource_CSVMissingColumn(t *testing.T) {
	path := writeCSV(t, `OrderID,CustomerID,ProductName,OrderDate,TotalAmount,City,Country
1,2,Mug,2024-01-01,3,Rome,Italy
`)

	src, err := NewDuckDBSource("", path, "")
	if err != nil {
		t.Fatalf("NewDuckDBSource() error = %v", err)
	}
	defer src.Close()

	_, err = src.Load(context.Background())
	var schemaErr *analytics.SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("Load() error = %v, want *SchemaError", err)
	}
	if len(schemaErr.Missing) != 1 || schemaErr.Missing[0] != "CategoryName" {
		t.Errorf("Missing = %v, want [CategoryName]", schemaErr.Missing)
	}
}

func TestDuckDBSource_CSVNotFound(t *testing.T) {
	t.Parallel()

	if _, err := NewDuckDBSource("", filepath.Join(t.TempDir(), "nope.csv"), ""); err == nil {
		t.Error("expected error for missing csv file")
	}
}

func TestQuoteLiteral(t *testing.T) {
	t.Parallel()

	if got := quoteLiteral("/data/o'brien.csv"); got != "'/data/o''brien.csv'" {
		t.Errorf("quoteLiteral() = %s", got)
	}
}

func TestOpen(t *testing.T) {
	path := writeCSV(t, "OrderID,CustomerID,ProductName,CategoryName,OrderDate,TotalAmount,City,Country\n")

	tests := []struct {
		name    string
		cfg     config.SourceConfig
		wantErr bool
	}{
		{"duckdb csv", config.SourceConfig{Driver: config.DriverDuckDB, CSVPath: path, Table: "transactions"}, false},
		{"postgres url", config.SourceConfig{Driver: config.DriverPostgres, DSN: "postgres://u:p@localhost:5432/shop", Table: "transactions"}, false},
		{"mysql url", config.SourceConfig{Driver: config.DriverMySQL, DSN: "mysql://u:p@localhost:3306/shop", Table: "transactions"}, false},
		{"unknown driver", config.SourceConfig{Driver: "oracle", Table: "transactions"}, true},
		{"bad table", config.SourceConfig{Driver: config.DriverPostgres, DSN: "postgres://u:p@h/db", Table: "1bad"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src, err := Open(tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Open() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			defer src.Close()
			if _, ok := src.(*BreakerSource); !ok {
				t.Errorf("Open() = %T, want *BreakerSource", src)
			}
		})
	}
}
