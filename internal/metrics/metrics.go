// Storelens - E-Commerce Customer and Sales Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storelens

package metrics

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/tomtom215/storelens/internal/analytics"
)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Analytics Engine Metrics
	AnalyticsComputeDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "analytics_compute_duration_seconds",
			Help:    "Duration of analytics computations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"}, // "kpis", "rfm", "cohorts", "similarity", ...
	)

	AnalyticsComputeErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analytics_compute_errors_total",
			Help: "Total number of failed analytics computations",
		},
		[]string{"operation", "error_type"},
	)

	// Source / Snapshot Metrics
	SourceLoadDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "source_load_duration_seconds",
			Help:    "Duration of transaction source loads in seconds",
			Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		},
		[]string{"source"},
	)

	SourceLoadErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "source_load_errors_total",
			Help: "Total number of failed transaction source loads",
		},
		[]string{"source", "error_type"},
	)

	SnapshotTransactions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "snapshot_transactions",
			Help: "Number of transactions in the active snapshot",
		},
	)

	SnapshotVersion = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "snapshot_version",
			Help: "Version of the active snapshot (increments on reload)",
		},
	)

	SnapshotLastReload = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "snapshot_last_reload_timestamp",
			Help: "Unix timestamp of last successful snapshot reload",
		},
	)

	// Cache Metrics
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of derived-table cache hits",
		},
		[]string{"operation"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of derived-table cache misses",
		},
		[]string{"operation"},
	)

	CacheInvalidations = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cache_invalidations_total",
			Help: "Total number of full cache invalidations",
		},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordAnalytics records an engine computation and classifies its error.
func RecordAnalytics(operation string, duration time.Duration, err error) {
	AnalyticsComputeDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if err != nil {
		AnalyticsComputeErrors.WithLabelValues(operation, ErrorType(err)).Inc()
	}
}

// RecordSourceLoad records a source load and, on success, the new snapshot.
func RecordSourceLoad(source string, duration time.Duration, rows int, version uint64, err error) {
	SourceLoadDuration.WithLabelValues(source).Observe(duration.Seconds())
	if err != nil {
		SourceLoadErrors.WithLabelValues(source, ErrorType(err)).Inc()
		return
	}
	SnapshotTransactions.Set(float64(rows))
	SnapshotVersion.Set(float64(version))
	SnapshotLastReload.Set(float64(time.Now().Unix()))
}

// RecordCacheLookup records a derived-table cache hit or miss.
func RecordCacheLookup(operation string, hit bool) {
	if hit {
		CacheHits.WithLabelValues(operation).Inc()
	} else {
		CacheMisses.WithLabelValues(operation).Inc()
	}
}

// ErrorType maps an error to a low-cardinality label value.
func ErrorType(err error) string {
	switch {
	case err == nil:
		return "none"
	case errors.Is(err, analytics.ErrSchema):
		return "schema"
	case errors.Is(err, analytics.ErrInsufficientData):
		return "insufficient_data"
	case errors.Is(err, analytics.ErrEmptyResult):
		return "empty_result"
	case errors.Is(err, analytics.ErrEmptyInput):
		return "empty_input"
	case errors.Is(err, analytics.ErrUnknownProduct):
		return "unknown_product"
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	default:
		return "other"
	}
}
