// Storelens - E-Commerce Customer and Sales Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storelens

/*
Package metrics provides Prometheus metrics collection and export for observability.

# Metrics Endpoint

Metrics are exposed at the /metrics endpoint in Prometheus text format:

	curl http://localhost:8642/metrics

# Available Metrics

API Metrics:
  - api_requests_total: Total API requests (counter)
    Labels: method, endpoint, status_code
  - api_request_duration_seconds: Request latency (histogram)
    Labels: method, endpoint
  - api_active_requests: In-flight requests (gauge)

Analytics Metrics:
  - analytics_compute_duration_seconds: Engine computation time (histogram)
    Labels: operation
  - analytics_compute_errors_total: Engine failures (counter)
    Labels: operation, error_type

Snapshot Metrics:
  - source_load_duration_seconds: Source load time (histogram)
    Labels: source
  - source_load_errors_total: Source load failures (counter)
  - snapshot_transactions: Rows in the active snapshot (gauge)
  - snapshot_version: Active snapshot version (gauge)
  - snapshot_last_reload_timestamp: Unix time of the last reload (gauge)

Cache Metrics:
  - cache_hits_total / cache_misses_total (counter)
    Labels: operation

Circuit Breaker Metrics:
  - circuit_breaker_state, circuit_breaker_requests_total,
    circuit_breaker_state_transitions_total
*/
package metrics
