// Storelens - E-Commerce Customer and Sales Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storelens

package api

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/tomtom215/storelens/internal/store"
)

// Handler contains dependencies for API handlers.
//
// Handler methods are split across files:
//   - handlers.go: Handler struct and constructor (this file)
//   - handlers_helpers.go: query parsing and the analytics executor
//   - handlers_sales.go: KPI and sales breakdown endpoints
//   - handlers_customers.go: RFM and cohort endpoints
//   - handlers_recommend.go: similarity and recommendation endpoints
//   - handlers_health.go: health, status and admin reload
type Handler struct {
	store     *store.Store
	reloads   *rate.Limiter
	startTime time.Time
}

// NewHandler creates the API handler over st. reloadsPerMinute bounds
// POST /api/v1/admin/reload across all clients; zero or less disables the
// endpoint's throttle.
func NewHandler(st *store.Store, reloadsPerMinute int) *Handler {
	limiter := rate.NewLimiter(rate.Inf, 0)
	if reloadsPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(reloadsPerMinute)), 1)
	}
	return &Handler{
		store:     st,
		reloads:   limiter,
		startTime: time.Now(),
	}
}
