// Storelens - E-Commerce Customer and Sales Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storelens

package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/tomtom215/storelens/internal/analytics"
	"github.com/tomtom215/storelens/internal/cache"
	"github.com/tomtom215/storelens/internal/config"
	"github.com/tomtom215/storelens/internal/database"
	"github.com/tomtom215/storelens/internal/logging"
	"github.com/tomtom215/storelens/internal/metrics"
	"github.com/tomtom215/storelens/internal/models"
	"github.com/tomtom215/storelens/internal/recommend"
)

// ErrNotLoaded is returned by every view before the first successful Reload.
var ErrNotLoaded = errors.New("no transaction snapshot loaded")

// Options configures a Store.
type Options struct {
	RFM       analytics.RFMOptions
	Recommend recommend.Config

	// TopN is the default size of top-product and city lists.
	TopN int

	// PairLimit is the default number of product pairs.
	PairLimit int

	// LoadTimeout bounds a single Reload. Zero means no timeout.
	LoadTimeout time.Duration

	// CacheTTL is the lifetime of cached views. Zero disables caching.
	CacheTTL time.Duration
}

// OptionsFromConfig maps the application config onto store options.
func OptionsFromConfig(cfg *config.Config) Options {
	opts := Options{
		RFM: analytics.RFMOptions{
			ReferenceBufferDays: cfg.Analytics.ReferenceBufferDays,
			Buckets:             cfg.Analytics.Buckets,
		},
		Recommend: recommend.Config{
			Metric:       cfg.Analytics.Recommend.Metric,
			NumWorkers:   cfg.Analytics.Recommend.NumWorkers,
			DefaultLimit: cfg.Analytics.Recommend.DefaultLimit,
			MaxLimit:     cfg.Analytics.Recommend.MaxLimit,
		},
		TopN:        cfg.Analytics.TopN,
		PairLimit:   cfg.Analytics.PairLimit,
		LoadTimeout: cfg.Source.LoadTimeout,
	}
	if cfg.Cache.Enabled {
		opts.CacheTTL = cfg.Cache.TTL
	}
	return opts
}

// DefaultOptions returns the options used when no config is available.
func DefaultOptions() Options {
	return Options{
		RFM:         analytics.DefaultRFMOptions(),
		Recommend:   recommend.DefaultConfig(),
		TopN:        10,
		PairLimit:   15,
		LoadTimeout: 2 * time.Minute,
		CacheTTL:    15 * time.Minute,
	}
}

// Snapshot is one immutable load of the transaction table.
type Snapshot struct {
	Transactions []models.Transaction
	Version      uint64
	LoadedAt     time.Time
	Source       string
}

// Status summarizes the current snapshot for health endpoints.
type Status struct {
	Loaded       bool      `json:"loaded"`
	Version      uint64    `json:"version"`
	Transactions int       `json:"transactions"`
	LoadedAt     time.Time `json:"loaded_at,omitempty"`
	Source       string    `json:"source"`
}

// Store serves analytics views over the current snapshot.
type Store struct {
	src       database.Source
	opts      Options
	cache     cache.Cacher
	stopCache func()

	mu      sync.RWMutex
	current *Snapshot

	// reloadMu serializes reloads; readers are never blocked by a load.
	reloadMu sync.Mutex
}

// New creates a store reading from src. No data is loaded until Reload.
func New(src database.Source, opts Options) *Store {
	def := DefaultOptions()
	if opts.RFM.Buckets == 0 {
		opts.RFM = def.RFM
	}
	if opts.Recommend.Metric == "" {
		opts.Recommend = def.Recommend
	}
	if opts.TopN <= 0 {
		opts.TopN = def.TopN
	}
	if opts.PairLimit <= 0 {
		opts.PairLimit = def.PairLimit
	}

	s := &Store{src: src, opts: opts}
	if opts.CacheTTL > 0 {
		c := cache.New(opts.CacheTTL)
		s.cache, s.stopCache = c, c.Stop
	}
	return s
}

// Close stops the cache janitor. The source is owned by the caller.
func (s *Store) Close() {
	if s.stopCache != nil {
		s.stopCache()
	}
}

// Options returns the effective options.
func (s *Store) Options() Options {
	return s.opts
}

// Reload reads the source and replaces the snapshot. On failure the
// previous snapshot stays in place.
func (s *Store) Reload(ctx context.Context) (*Snapshot, error) {
	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	if s.opts.LoadTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.LoadTimeout)
		defer cancel()
	}

	name := s.src.Name()
	start := time.Now()
	txns, err := s.src.Load(ctx)
	if err != nil {
		metrics.RecordSourceLoad(name, time.Since(start), 0, 0, err)
		logging.Ctx(ctx).Error().Err(err).Str("source", name).Msg("Snapshot reload failed")
		return nil, fmt.Errorf("reload from %s: %w", name, err)
	}

	s.mu.Lock()
	var version uint64 = 1
	if s.current != nil {
		version = s.current.Version + 1
	}
	snap := &Snapshot{
		Transactions: txns,
		Version:      version,
		LoadedAt:     time.Now().UTC(),
		Source:       name,
	}
	s.current = snap
	s.mu.Unlock()

	if s.cache != nil {
		s.cache.Clear()
		metrics.CacheInvalidations.Inc()
	}

	duration := time.Since(start)
	metrics.RecordSourceLoad(name, duration, len(txns), version, nil)
	logging.Ctx(ctx).Info().
		Str("source", name).
		Int("transactions", len(txns)).
		Uint64("version", version).
		Dur("duration", duration).
		Msg("Snapshot reloaded")

	return snap, nil
}

// Snapshot returns the current snapshot.
func (s *Store) Snapshot() (*Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil, ErrNotLoaded
	}
	return s.current, nil
}

// Status reports the current snapshot's size and version.
func (s *Store) Status() Status {
	snap, err := s.Snapshot()
	if err != nil {
		return Status{Source: s.src.Name()}
	}
	return Status{
		Loaded:       true,
		Version:      snap.Version,
		Transactions: len(snap.Transactions),
		LoadedAt:     snap.LoadedAt,
		Source:       snap.Source,
	}
}

// CacheStats returns the view cache counters. ok is false when caching is off.
func (s *Store) CacheStats() (stats cache.Stats, ok bool) {
	if s.cache == nil {
		return cache.Stats{}, false
	}
	return s.cache.GetStats(), true
}

// viewKey is hashed into the cache key of every view.
type viewKey struct {
	Version uint64           `json:"v"`
	Filter  analytics.Filter `json:"f"`
	Params  any              `json:"p,omitempty"`
}

// view computes op over the filtered current snapshot, consulting the cache.
func view[T any](ctx context.Context, s *Store, op string, filter analytics.Filter, params any, compute func(ctx context.Context, txns []models.Transaction) (T, error)) (T, error) {
	var zero T

	snap, err := s.Snapshot()
	if err != nil {
		return zero, err
	}
	ctx = logging.ContextWithSnapshot(ctx, snap.Version)
	filter = filter.Normalize()

	run := func() (interface{}, error) {
		start := time.Now()
		v, err := compute(ctx, filter.Apply(snap.Transactions))
		metrics.RecordAnalytics(op, time.Since(start), err)
		if err != nil {
			logging.Ctx(ctx).Debug().Err(err).Str("operation", op).Msg("Analytics computation failed")
			return nil, err
		}
		return v, nil
	}

	if s.cache == nil {
		v, err := run()
		if err != nil {
			return zero, err
		}
		return v.(T), nil
	}

	key := cache.GenerateKey(op, viewKey{Version: snap.Version, Filter: filter, Params: params})
	v, hit, err := s.cache.GetOrCompute(key, run)
	metrics.RecordCacheLookup(op, hit)
	if err != nil {
		return zero, err
	}
	return v.(T), nil
}
