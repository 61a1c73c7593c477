// Storelens - E-Commerce Customer and Sales Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storelens

//go:build integration

package database

import (
	"context"
	"testing"
	"time"

	"github.com/tomtom215/storelens/internal/config"
	"github.com/tomtom215/storelens/internal/models"
	"github.com/tomtom215/storelens/internal/testinfra"
)

func assertSeededTransactions(t *testing.T, txns []models.Transaction) {
	t.Helper()

	if len(txns) != len(testinfra.SeedRows) {
		t.Fatalf("len(txns) = %d, want %d", len(txns), len(testinfra.SeedRows))
	}

	var total float64
	customers := make(map[string]bool)
	for _, tx := range txns {
		total += tx.TotalAmount
		customers[tx.CustomerID] = true
	}
	if total != 103 {
		t.Errorf("sum(TotalAmount) = %v, want 103", total)
	}
	if len(customers) != 3 {
		t.Errorf("distinct customers = %d, want 3", len(customers))
	}

	want := time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC)
	found := false
	for _, tx := range txns {
		if tx.OrderID == "1001" {
			found = true
			if !tx.OrderDate.Equal(want) {
				t.Errorf("OrderDate = %v, want %v", tx.OrderDate, want)
			}
			if tx.City != "Berlin" || tx.CategoryName != "Home" {
				t.Errorf("order 1001 = %+v", tx)
			}
		}
	}
	if !found {
		t.Error("order 1001 not loaded")
	}
}

func TestOpen_RemoteSources_Integration(t *testing.T) {
	for _, driver := range []string{config.DriverPostgres, config.DriverMySQL} {
		t.Run(driver, func(t *testing.T) {
			db := testinfra.StartDatabase(t, driver)

			src, err := Open(db.SourceConfig())
			if err != nil {
				t.Fatalf("Open(%s) error = %v", driver, err)
			}
			defer src.Close()

			if _, ok := src.(*BreakerSource); !ok {
				t.Errorf("Open() = %T, want *BreakerSource", src)
			}

			txns, err := src.Load(context.Background())
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			assertSeededTransactions(t, txns)
		})
	}
}

func TestPostgresSource_MissingTable_Integration(t *testing.T) {
	db := testinfra.StartDatabase(t, config.DriverPostgres)

	src, err := NewPostgresSource(db.DSN, "no_such_table")
	if err != nil {
		t.Fatalf("NewPostgresSource() error = %v", err)
	}
	defer src.Close()

	if _, err := src.Load(context.Background()); err == nil {
		t.Fatal("Load() from a missing table succeeded")
	}
}
