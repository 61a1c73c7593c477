// Storelens - E-Commerce Customer and Sales Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storelens

package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/tomtom215/storelens/internal/analytics"
	"github.com/tomtom215/storelens/internal/validation"
)

// SimilarityResponse is the dense product similarity matrix. Matrix[i][j]
// is the similarity of Products[i] and Products[j].
type SimilarityResponse struct {
	Products []string    `json:"products"`
	Matrix   [][]float64 `json:"matrix"`
}

// Similarity returns the full product similarity matrix.
func (h *Handler) Similarity(w http.ResponseWriter, r *http.Request) {
	h.executeView(w, r, func(ctx context.Context, f analytics.Filter) (interface{}, error) {
		m, err := h.store.Similarity(ctx, f)
		if err != nil {
			return nil, err
		}
		return SimilarityResponse{Products: m.Products(), Matrix: m.Rows()}, nil
	})
}

// SimilarPairs returns the most similar distinct product pairs.
func (h *Handler) SimilarPairs(w http.ResponseWriter, r *http.Request) {
	limit, ok := h.limitParam(w, r)
	if !ok {
		return
	}
	h.executeView(w, r, func(ctx context.Context, f analytics.Filter) (interface{}, error) {
		return h.store.TopPairs(ctx, f, limit)
	})
}

// Recommendations returns up to limit products most similar to the product
// query parameter, excluding the product itself, by score descending.
// An unknown product answers 404.
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	limit, err := parseLimit(r)
	if err != nil {
		rw.ValidationError(err.Error(), map[string]interface{}{"field": "limit"})
		return
	}
	req := validation.RecommendRequest{
		Product: strings.TrimSpace(r.URL.Query().Get("product")),
		Limit:   limit,
	}
	if !validateRequest(rw, &req) {
		return
	}

	h.executeView(w, r, func(ctx context.Context, f analytics.Filter) (interface{}, error) {
		return h.store.Recommend(ctx, f, req.Product, req.Limit)
	})
}
