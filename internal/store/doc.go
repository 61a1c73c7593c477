// Storelens - E-Commerce Customer and Sales Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storelens

// Package store holds the current transaction snapshot and serves every
// analytics view over it.
//
// # Snapshots
//
// A snapshot is an immutable []models.Transaction plus a version number and
// load time. Reload reads the configured database.Source, swaps the snapshot
// under a write lock and clears the derived-table cache. Readers take the
// current snapshot under a read lock and never see a half-loaded table.
//
// # Caching
//
// Each view is cached under cache.GenerateKey(operation, key) where key
// holds the snapshot version, the normalized analytics.Filter and any extra
// parameters. Different filters never share an entry and a reload makes
// every previous entry unreachable. Failed computations are not cached.
//
// Usage:
//
//	st := store.New(src, store.OptionsFromConfig(cfg))
//	defer st.Close()
//	if _, err := st.Reload(ctx); err != nil {
//	    return err
//	}
//	segments, err := st.SegmentSummary(ctx, analytics.Filter{})
package store
