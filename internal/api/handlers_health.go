// Storelens - E-Commerce Customer and Sales Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storelens

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/storelens/internal/logging"
	"github.com/tomtom215/storelens/internal/metrics"
	"github.com/tomtom215/storelens/internal/store"
)

// HealthStatus is the body of the health endpoints.
type HealthStatus struct {
	Status   string       `json:"status"`
	Uptime   float64      `json:"uptime_seconds"`
	Snapshot store.Status `json:"snapshot"`
}

// StatusResponse extends the health body with cache counters.
type StatusResponse struct {
	HealthStatus
	Cache *CacheStatus `json:"cache,omitempty"`
}

// CacheStatus mirrors cache.Stats without its lock.
type CacheStatus struct {
	Hits      int64   `json:"hits"`
	Misses    int64   `json:"misses"`
	Evictions int64   `json:"evictions"`
	Discarded int64   `json:"discarded"`
	Keys      int64   `json:"keys"`
	HitRate   float64 `json:"hit_rate_percent"`
}

func (h *Handler) healthStatus() HealthStatus {
	snap := h.store.Status()
	status := "healthy"
	if !snap.Loaded {
		status = "degraded"
	}
	return HealthStatus{
		Status:   status,
		Uptime:   time.Since(h.startTime).Seconds(),
		Snapshot: snap,
	}
}

// Health reports degraded until the first snapshot is loaded.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, r, h.healthStatus())
}

// HealthLive always succeeds while the process serves HTTP.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, r, map[string]string{"status": "alive"})
}

// HealthReady succeeds once a snapshot is loaded.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	health := h.healthStatus()
	if !health.Snapshot.Loaded {
		NewResponseWriter(w, r).ErrorWithDetails(http.StatusServiceUnavailable, ErrCodeNotLoaded,
			"No transaction snapshot has been loaded yet", health)
		return
	}
	WriteSuccess(w, r, health)
}

// Status returns the snapshot and cache status.
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	resp := StatusResponse{HealthStatus: h.healthStatus()}
	if stats, ok := h.store.CacheStats(); ok {
		total := stats.Hits + stats.Misses
		hitRate := 0.0
		if total > 0 {
			hitRate = float64(stats.Hits) / float64(total) * 100
		}
		resp.Cache = &CacheStatus{
			Hits:      stats.Hits,
			Misses:    stats.Misses,
			Evictions: stats.Evictions,
			Discarded: stats.Discarded,
			Keys:      stats.TotalKeys,
			HitRate:   hitRate,
		}
	}
	WriteSuccess(w, r, resp)
}

// Reload re-reads the configured source and invalidates every cached view.
// Calls share one global token bucket.
func (h *Handler) Reload(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if !h.reloads.Allow() {
		metrics.APIRateLimitHits.WithLabelValues("admin_reload").Inc()
		rw.TooManyRequests("Reload throttled, retry later")
		return
	}

	logging.Ctx(r.Context()).Info().Msg("Snapshot reload requested")
	if _, err := h.store.Reload(r.Context()); err != nil {
		writeAnalyticsError(rw, r, err)
		return
	}
	rw.Success(h.store.Status())
}
