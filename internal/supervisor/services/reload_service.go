// Storelens - E-Commerce Customer and Sales Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storelens

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/storelens/internal/store"
)

// SnapshotReloader replaces the in-memory transaction snapshot.
// Satisfied by *store.Store.
type SnapshotReloader interface {
	Reload(ctx context.Context) (*store.Snapshot, error)
}

// ReloadServiceConfig controls snapshot scheduling.
type ReloadServiceConfig struct {
	// LoadOnStartup loads the first snapshot as soon as the service runs.
	LoadOnStartup bool

	// Interval between scheduled reloads. Zero disables the schedule; the
	// service then only performs the startup load.
	Interval time.Duration
}

// ReloadService loads and periodically refreshes the transaction snapshot.
// Failed reloads are logged and retried on the next tick while the store
// keeps serving the previous snapshot.
type ReloadService struct {
	reloader SnapshotReloader
	config   ReloadServiceConfig
	logger   zerolog.Logger
	name     string
}

// NewReloadService creates a reload scheduler.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewReloadService(reloader SnapshotReloader, cfg ReloadServiceConfig, logger zerolog.Logger) *ReloadService {
	return &ReloadService{
		reloader: reloader,
		config:   cfg,
		logger:   logger.With().Str("service", "reload").Logger(),
		name:     "reload-service",
	}
}

// Serve implements suture.Service.
func (s *ReloadService) Serve(ctx context.Context) error {
	s.logger.Info().
		Bool("load_on_startup", s.config.LoadOnStartup).
		Dur("interval", s.config.Interval).
		Msg("reload service starting")

	if s.config.LoadOnStartup {
		s.reload(ctx, "startup")
	}

	if s.config.Interval <= 0 {
		<-ctx.Done()
		return ctx.Err()
	}

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("reload service shutting down")
			return ctx.Err()
		case <-ticker.C:
			s.reload(ctx, "schedule")
		}
	}
}

func (s *ReloadService) reload(ctx context.Context, trigger string) {
	snap, err := s.reloader.Reload(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		s.logger.Warn().Err(err).Str("trigger", trigger).Msg("snapshot reload failed")
		return
	}
	s.logger.Debug().
		Str("trigger", trigger).
		Uint64("version", snap.Version).
		Int("transactions", len(snap.Transactions)).
		Msg("snapshot reload complete")
}

// String names the service in supervisor logs.
func (s *ReloadService) String() string {
	return s.name
}
