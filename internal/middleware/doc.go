// Storelens - E-Commerce Customer and Sales Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storelens

/*
Package middleware provides chi-compatible HTTP middleware for the Storelens API.

Key Components:

  - RequestID: honours or generates X-Request-ID and seeds the logging context
  - PrometheusMetrics: request count, latency and in-flight gauge per route pattern
  - AccessLog: one structured zerolog line per request

Typical stack:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog)
	r.Use(middleware.PrometheusMetrics)

Metrics are labelled with the chi route pattern ("/api/v1/analytics/rfm")
rather than the raw path, so query strings and unknown paths cannot inflate
label cardinality.
*/
package middleware
