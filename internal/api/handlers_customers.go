// Storelens - E-Commerce Customer and Sales Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storelens

package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/storelens/internal/analytics"
	"github.com/tomtom215/storelens/internal/validation"
)

// RFM returns Recency, Frequency, Monetary, scores and segment for every
// customer with positive spend, highest spend first.
func (h *Handler) RFM(w http.ResponseWriter, r *http.Request) {
	h.executeView(w, r, func(ctx context.Context, f analytics.Filter) (interface{}, error) {
		return h.store.Customers(ctx, f)
	})
}

// SegmentSummary returns customer counts and average R, F and M per segment.
func (h *Handler) SegmentSummary(w http.ResponseWriter, r *http.Request) {
	h.executeView(w, r, func(ctx context.Context, f analytics.Filter) (interface{}, error) {
		return h.store.SegmentSummary(ctx, f)
	})
}

// TopCustomers returns the highest-spending customers, optionally of one segment.
func (h *Handler) TopCustomers(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	limit, err := parseLimit(r)
	if err != nil {
		rw.ValidationError(err.Error(), map[string]interface{}{"field": "limit"})
		return
	}
	req := validation.SegmentTopRequest{
		Segment: strings.TrimSpace(r.URL.Query().Get("segment")),
		Limit:   limit,
	}
	if !validateRequest(rw, &req) {
		return
	}

	h.executeView(w, r, func(ctx context.Context, f analytics.Filter) (interface{}, error) {
		return h.store.TopCustomers(ctx, f, req.Segment, req.Limit)
	})
}

// Customer returns one customer's RFM record.
func (h *Handler) Customer(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	h.executeView(w, r, func(ctx context.Context, f analytics.Filter) (interface{}, error) {
		rec, ok, err := h.store.Customer(ctx, f, id)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, errCustomerNotFound{id: id}
		}
		return rec, nil
	})
}

// errCustomerNotFound reports a customer absent from the scored set.
type errCustomerNotFound struct {
	id string
}

func (e errCustomerNotFound) Error() string {
	return fmt.Sprintf("customer %q has no positive spend in the selected range", e.id)
}

// Retention returns one row per acquisition month with the cohort size and
// the retained fraction at every observed month index (1 = acquisition month).
func (h *Handler) Retention(w http.ResponseWriter, r *http.Request) {
	h.executeView(w, r, func(ctx context.Context, f analytics.Filter) (interface{}, error) {
		return h.store.RetentionRows(ctx, f)
	})
}
