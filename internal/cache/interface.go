// Storelens - E-Commerce Customer and Sales Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storelens

// Package cache holds derived analytics tables keyed by operation and filter.
//
// Every derived table is a pure function of the filtered transaction
// snapshot, so invalidation is all-or-nothing: a snapshot reload calls
// Clear, which also bumps the cache generation. Values computed against
// an older generation are dropped instead of stored.
package cache

import "time"

// Cacher defines the interface the snapshot store depends on.
type Cacher interface {
	// Get retrieves a value from the cache.
	// Returns the value and true if found and not expired.
	Get(key string) (interface{}, bool)

	// Set stores a value in the cache with the default TTL.
	Set(key string, value interface{})

	// SetWithTTL stores a value with a custom TTL.
	SetWithTTL(key string, value interface{}, ttl time.Duration)

	// GetOrCompute returns the cached value for key, or runs compute and
	// caches its result if the cache was not cleared in the meantime.
	// hit reports whether the value came from the cache.
	GetOrCompute(key string, compute func() (interface{}, error)) (value interface{}, hit bool, err error)

	// Delete removes a value from the cache.
	Delete(key string)

	// Clear removes all entries and starts a new generation.
	Clear()

	// Generation returns the number of Clear calls so far.
	Generation() uint64

	// GetStats returns cache statistics.
	GetStats() Stats

	// HitRate returns the cache hit rate as a percentage.
	HitRate() float64
}
