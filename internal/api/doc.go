// Storelens - E-Commerce Customer and Sales Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storelens

/*
Package api serves the analytics views over HTTP.

Routing uses go-chi/chi/v5. Every request passes through request ID
assignment, access logging, panic recovery, compression and CORS. The
/api/v1 groups add Prometheus instrumentation and per-IP rate limiting
(go-chi/httprate); the admin reload endpoint is additionally throttled by a
global golang.org/x/time/rate token bucket.

# Endpoints

Analytics (GET, under /api/v1/analytics):

	/kpis                  revenue, orders, customers, average order value
	/sales/monthly         month-end sales series
	/sales/growth          month-over-month growth
	/sales/weekday         Monday..Sunday totals
	/categories            category revenue and share
	/products/top          best sellers (?limit=)
	/treemap               category/product revenue rows
	/regions/cities        top cities (?limit=)
	/regions/countries     revenue per country
	/rfm                   per-customer RFM records
	/rfm/segments          segment summary
	/rfm/top               top customers (?segment=&limit=)
	/rfm/customers/{id}    one customer's RFM record
	/cohorts/retention     cohort retention rows
	/similarity            product list and similarity matrix
	/similarity/pairs      most similar product pairs (?limit=)
	/recommendations       similar products (?product=&limit=)

All analytics endpoints accept start and end (YYYY-MM-DD, inclusive) and
comma-separated category and country filters.

Operations:

	POST /api/v1/admin/reload   reload the transaction snapshot
	GET  /api/v1/status         snapshot and cache status
	GET  /health, /health/live, /health/ready
	GET  /metrics               Prometheus exposition

# Response Format

Every JSON response uses the APIResponse envelope:

	{"success": true, "data": {...}, "meta": {"request_id": "...", "timestamp": "...", "duration_ms": 3, "snapshot_version": 2}}
	{"success": false, "error": {"code": "INSUFFICIENT_DATA", "message": "...", "details": {...}}, "meta": {...}}

Analytics failures map to status codes in errors.go.
*/
package api
