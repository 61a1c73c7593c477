// Storelens - E-Commerce Customer and Sales Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storelens

// Package testinfra starts database containers for integration tests.
//
// It uses testcontainers-go to run real PostgreSQL and MySQL servers seeded
// with a small transactions table, so the source backends are exercised
// against the same drivers and type mappings they meet in production:
//
//	func TestPostgresLoad(t *testing.T) {
//	    db := testinfra.StartDatabase(t, config.DriverPostgres)
//	    src, err := database.Open(db.SourceConfig())
//	    // ...
//	}
//
// # CI Considerations
//
// These tests require Docker and the integration build tag. They are skipped
// when no container runtime is reachable. The first run pulls images.
package testinfra
