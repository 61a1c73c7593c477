// Storelens - E-Commerce Customer and Sales Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storelens

package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/tomtom215/storelens/internal/logging"
	"github.com/tomtom215/storelens/internal/models"
)

// sqlSource is the database/sql plumbing shared by every backend.
type sqlSource struct {
	name  string
	db    *sql.DB
	query string
}

func (s *sqlSource) Name() string {
	return s.name
}

func (s *sqlSource) Load(ctx context.Context) ([]models.Transaction, error) {
	start := time.Now()

	rows, err := s.db.QueryContext(ctx, s.query)
	if err != nil {
		return nil, fmt.Errorf("%s: query failed: %w", s.name, err)
	}
	defer closeQuietly(rows)

	txns, err := scanTransactions(rows)
	if err != nil {
		return nil, err
	}

	logging.Ctx(ctx).Debug().
		Str("source", s.name).
		Int("rows", len(txns)).
		Dur("duration", time.Since(start)).
		Msg("Transactions loaded")
	return txns, nil
}

func (s *sqlSource) Close() error {
	return s.db.Close()
}

// closeQuietly closes c and logs a failure.
func closeQuietly(c interface{ Close() error }) {
	if err := c.Close(); err != nil {
		logging.Warn().Err(err).Msg("Failed to close database resource")
	}
}

// configurePool applies the pool limits used for remote backends.
func configurePool(db *sql.DB) {
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)
}
