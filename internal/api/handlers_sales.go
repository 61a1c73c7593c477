// Storelens - E-Commerce Customer and Sales Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storelens

package api

import (
	"context"
	"net/http"

	"github.com/tomtom215/storelens/internal/analytics"
	"github.com/tomtom215/storelens/internal/validation"
)

// KPIs returns revenue, distinct orders, distinct customers and average
// order value.
func (h *Handler) KPIs(w http.ResponseWriter, r *http.Request) {
	h.executeView(w, r, func(ctx context.Context, f analytics.Filter) (interface{}, error) {
		return h.store.KPIs(ctx, f)
	})
}

// MonthlySales returns the month-end sales series.
func (h *Handler) MonthlySales(w http.ResponseWriter, r *http.Request) {
	h.executeView(w, r, func(ctx context.Context, f analytics.Filter) (interface{}, error) {
		return h.store.MonthlySales(ctx, f)
	})
}

// MonthlyGrowth returns month-over-month growth; the first month has a null growth.
func (h *Handler) MonthlyGrowth(w http.ResponseWriter, r *http.Request) {
	h.executeView(w, r, func(ctx context.Context, f analytics.Filter) (interface{}, error) {
		return h.store.MonthlyGrowth(ctx, f)
	})
}

func (h *Handler) WeekdaySales(w http.ResponseWriter, r *http.Request) {
	h.executeView(w, r, func(ctx context.Context, f analytics.Filter) (interface{}, error) {
		return h.store.WeekdaySales(ctx, f)
	})
}

// Categories returns revenue and revenue share per category.
func (h *Handler) Categories(w http.ResponseWriter, r *http.Request) {
	h.executeView(w, r, func(ctx context.Context, f analytics.Filter) (interface{}, error) {
		return h.store.Categories(ctx, f)
	})
}

// TopProducts handles best-seller requests
func (h *Handler) TopProducts(w http.ResponseWriter, r *http.Request) {
	limit, ok := h.limitParam(w, r)
	if !ok {
		return
	}
	h.executeView(w, r, func(ctx context.Context, f analytics.Filter) (interface{}, error) {
		return h.store.TopProducts(ctx, f, limit)
	})
}

func (h *Handler) Treemap(w http.ResponseWriter, r *http.Request) {
	h.executeView(w, r, func(ctx context.Context, f analytics.Filter) (interface{}, error) {
		return h.store.Treemap(ctx, f)
	})
}

// Cities returns the highest-revenue cities.
func (h *Handler) Cities(w http.ResponseWriter, r *http.Request) {
	limit, ok := h.limitParam(w, r)
	if !ok {
		return
	}
	h.executeView(w, r, func(ctx context.Context, f analytics.Filter) (interface{}, error) {
		return h.store.Cities(ctx, f, limit)
	})
}

// Countries returns revenue and share per country.
func (h *Handler) Countries(w http.ResponseWriter, r *http.Request) {
	h.executeView(w, r, func(ctx context.Context, f analytics.Filter) (interface{}, error) {
		return h.store.Countries(ctx, f)
	})
}

// limitParam parses and validates ?limit=, writing a 400 on failure.
func (h *Handler) limitParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	rw := NewResponseWriter(w, r)
	limit, err := parseLimit(r)
	if err != nil {
		rw.ValidationError(err.Error(), map[string]interface{}{"field": "limit"})
		return 0, false
	}
	if !validateRequest(rw, &validation.LimitRequest{Limit: limit}) {
		return 0, false
	}
	return limit, true
}
