// Storelens - E-Commerce Customer and Sales Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storelens

//go:build integration

package testinfra

import (
	"context"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"

	"github.com/tomtom215/storelens/internal/config"
)

// StartDatabase starts a seeded server for a remote source driver
// (config.DriverPostgres or config.DriverMySQL) and terminates it when the
// test ends. The test is skipped when no container runtime is reachable.
func StartDatabase(t *testing.T, driver string, opts ...DatabaseOption) *DatabaseContainer {
	t.Helper()
	testcontainers.SkipIfProviderIsNotHealthy(t)

	var (
		db  *DatabaseContainer
		err error
	)
	ctx := context.Background()
	switch driver {
	case config.DriverPostgres:
		db, err = NewPostgresContainer(ctx, opts...)
	case config.DriverMySQL:
		db, err = NewMySQLContainer(ctx, opts...)
	default:
		t.Fatalf("testinfra: no container for source driver %q", driver)
	}
	if err != nil {
		t.Fatalf("testinfra: start %s: %v", driver, err)
	}
	testcontainers.CleanupContainer(t, db.Container)
	return db
}

// SourceConfig points a source of the container's driver at its seeded
// transactions table.
func (d *DatabaseContainer) SourceConfig() config.SourceConfig {
	return config.SourceConfig{
		Driver:      d.Driver,
		Table:       SeedTable,
		DSN:         d.DSN,
		LoadTimeout: 30 * time.Second,
		Breaker: config.BreakerConfig{
			MaxFailures: 3,
			OpenTimeout: 10 * time.Second,
		},
	}
}
