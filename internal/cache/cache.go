// Storelens - E-Commerce Customer and Sales Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storelens

package cache

import (
	"crypto/sha256"
	"fmt"
	"sync"
	"time"

	"github.com/goccy/go-json"
)

// Entry represents a cached item with expiration
type Entry struct {
	Data       interface{}
	ExpiresAt  time.Time
	Generation uint64
}

// Cache provides a thread-safe in-memory cache with TTL support
type Cache struct {
	mu         sync.RWMutex
	entries    map[string]Entry
	ttl        time.Duration
	generation uint64
	stats      Stats

	stopOnce sync.Once
	stop     chan struct{}
}

// Stats tracks cache performance metrics
type Stats struct {
	mu          sync.RWMutex
	Hits        int64
	Misses      int64
	Evictions   int64
	Discarded   int64
	TotalKeys   int64
	LastCleanup time.Time
}

var _ Cacher = (*Cache)(nil)

// DefaultCleanupInterval is how often expired entries are swept.
const DefaultCleanupInterval = 5 * time.Minute

// New creates a thread-safe in-memory cache with automatic expiration.
//
// A background goroutine removes expired entries every
// DefaultCleanupInterval until Stop is called.
//
// Example:
//
//	c := cache.New(10 * time.Minute)
//	defer c.Stop()
//	key := cache.GenerateKey("rfm", filter)
//	records, hit, err := c.GetOrCompute(key, func() (interface{}, error) {
//	    return analytics.ComputeSegments(txns, opts)
//	})
func New(ttl time.Duration) *Cache {
	return newWithCleanup(ttl, DefaultCleanupInterval)
}

func newWithCleanup(ttl, interval time.Duration) *Cache {
	c := &Cache{
		entries: make(map[string]Entry),
		ttl:     ttl,
		stats: Stats{
			LastCleanup: time.Now(),
		},
		stop: make(chan struct{}),
	}

	go c.cleanupLoop(interval)

	return c
}

// Stop ends the background cleanup goroutine. Safe to call more than once.
func (c *Cache) Stop() {
	c.stopOnce.Do(func() { close(c.stop) })
}

// Get retrieves a value from the cache by key.
// Expired entries are removed and counted as a miss.
func (c *Cache) Get(key string) (interface{}, bool) {
	c.mu.RLock()
	entry, exists := c.entries[key]
	c.mu.RUnlock()

	if !exists {
		c.recordMiss()
		return nil, false
	}

	if time.Now().After(entry.ExpiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		c.recordMiss()
		c.recordEviction()
		return nil, false
	}

	c.recordHit()
	return entry.Data, true
}

// Set stores a value in the cache with the default TTL.
func (c *Cache) Set(key string, value interface{}) {
	c.SetWithTTL(key, value, c.ttl)
}

// SetWithTTL stores a value in the cache with a custom TTL
func (c *Cache) SetWithTTL(key string, value interface{}, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.storeLocked(key, value, ttl)
}

// storeLocked writes an entry for the current generation (must hold mu).
func (c *Cache) storeLocked(key string, value interface{}, ttl time.Duration) {
	c.entries[key] = Entry{
		Data:       value,
		ExpiresAt:  time.Now().Add(ttl),
		Generation: c.generation,
	}

	c.stats.mu.Lock()
	c.stats.TotalKeys = int64(len(c.entries))
	c.stats.mu.Unlock()
}

// GetOrCompute returns the cached value for key or computes and stores it.
//
// Errors from compute are returned and never cached. When Clear runs while
// compute is in flight, the fresh value is still returned to the caller but
// is not stored, since it was derived from the previous snapshot.
func (c *Cache) GetOrCompute(key string, compute func() (interface{}, error)) (interface{}, bool, error) {
	if v, ok := c.Get(key); ok {
		return v, true, nil
	}

	gen := c.Generation()
	v, err := compute()
	if err != nil {
		return nil, false, err
	}

	c.mu.Lock()
	if c.generation == gen {
		c.storeLocked(key, v, c.ttl)
		c.mu.Unlock()
	} else {
		c.mu.Unlock()
		c.stats.mu.Lock()
		c.stats.Discarded++
		c.stats.mu.Unlock()
	}
	return v, false, nil
}

// Delete removes a specific cache entry by key.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()

	c.recordEviction()
}

// Clear removes all entries and advances the generation.
//
// Called after every snapshot reload so clients never see derived tables
// from the previous transaction set.
func (c *Cache) Clear() {
	c.mu.Lock()
	evictions := int64(len(c.entries))
	c.entries = make(map[string]Entry)
	c.generation++
	c.mu.Unlock()

	c.stats.mu.Lock()
	c.stats.Evictions += evictions
	c.stats.TotalKeys = 0
	c.stats.mu.Unlock()
}

// Generation returns the number of Clear calls so far.
func (c *Cache) Generation() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.generation
}

// GetStats returns a copy of the current statistics.
func (c *Cache) GetStats() Stats {
	c.stats.mu.RLock()
	defer c.stats.mu.RUnlock()

	return Stats{
		Hits:        c.stats.Hits,
		Misses:      c.stats.Misses,
		Evictions:   c.stats.Evictions,
		Discarded:   c.stats.Discarded,
		TotalKeys:   c.stats.TotalKeys,
		LastCleanup: c.stats.LastCleanup,
	}
}

// HitRate returns the cache hit rate as a percentage
func (c *Cache) HitRate() float64 {
	stats := c.GetStats()
	total := stats.Hits + stats.Misses
	if total == 0 {
		return 0.0
	}
	return float64(stats.Hits) / float64(total) * 100.0
}

// cleanupLoop periodically removes expired entries
func (c *Cache) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.cleanup()
		case <-c.stop:
			return
		}
	}
}

// cleanup removes all expired entries
func (c *Cache) cleanup() {
	now := time.Now()
	c.mu.Lock()
	defer c.mu.Unlock()

	evictions := int64(0)
	for key, entry := range c.entries {
		if now.After(entry.ExpiresAt) {
			delete(c.entries, key)
			evictions++
		}
	}

	c.stats.mu.Lock()
	c.stats.Evictions += evictions
	c.stats.TotalKeys = int64(len(c.entries))
	c.stats.LastCleanup = now
	c.stats.mu.Unlock()
}

// recordHit increments the hit counter
func (c *Cache) recordHit() {
	c.stats.mu.Lock()
	c.stats.Hits++
	c.stats.mu.Unlock()
}

// recordMiss increments the miss counter
func (c *Cache) recordMiss() {
	c.stats.mu.Lock()
	c.stats.Misses++
	c.stats.mu.Unlock()
}

// recordEviction increments the eviction counter
func (c *Cache) recordEviction() {
	c.stats.mu.Lock()
	c.stats.Evictions++
	c.stats.mu.Unlock()
}

// GenerateKey creates a cache key from the operation name and its parameters.
// Equal parameters (after JSON encoding) always produce equal keys.
func GenerateKey(operation string, params interface{}) string {
	data, err := json.Marshal(params)
	if err != nil {
		return fmt.Sprintf("%s:%v", operation, params)
	}

	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%x", operation, hash[:16])
}
