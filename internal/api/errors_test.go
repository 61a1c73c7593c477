// Storelens - E-Commerce Customer and Sales Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storelens

package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/tomtom215/storelens/internal/analytics"
	"github.com/tomtom215/storelens/internal/database"
	"github.com/tomtom215/storelens/internal/store"
)

func TestClassifyError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"schema", &analytics.SchemaError{Missing: []string{"City"}}, http.StatusInternalServerError, ErrCodeSchema},
		{"insufficient", &analytics.InsufficientDataError{Have: 2, Need: 5}, http.StatusUnprocessableEntity, ErrCodeInsufficientData},
		{"empty result", &analytics.EmptyResultError{Reason: "no positive spend"}, http.StatusUnprocessableEntity, ErrCodeNoData},
		{"empty input", &analytics.EmptyInputError{Operation: "cohort retention"}, http.StatusUnprocessableEntity, ErrCodeNoData},
		{"unknown product", &analytics.UnknownProductError{Product: "Sofa"}, http.StatusNotFound, ErrCodeUnknownProduct},
		{"wrapped unknown product", fmt.Errorf("recommend: %w", &analytics.UnknownProductError{Product: "Sofa"}), http.StatusNotFound, ErrCodeUnknownProduct},
		{"customer not found", errCustomerNotFound{id: "c9"}, http.StatusNotFound, ErrCodeNotFound},
		{"not loaded", store.ErrNotLoaded, http.StatusServiceUnavailable, ErrCodeNotLoaded},
		{"breaker open", fmt.Errorf("reload: %w", database.ErrSourceUnavailable), http.StatusServiceUnavailable, ErrCodeSourceUnavailable},
		{"timeout", context.DeadlineExceeded, http.StatusServiceUnavailable, ErrCodeTimeout},
		{"other", errors.New("boom"), http.StatusInternalServerError, ErrCodeInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := classifyError(tt.err)
			if got.status != tt.status || got.code != tt.code {
				t.Errorf("classifyError() = %d/%s, want %d/%s", got.status, got.code, tt.status, tt.code)
			}
		})
	}
}

func TestClassifyError_Details(t *testing.T) {
	t.Parallel()

	got := classifyError(&analytics.InsufficientDataError{Have: 2, Need: 5})
	details, ok := got.details.(map[string]interface{})
	if !ok || details["have"] != 2 || details["need"] != 5 {
		t.Errorf("details = %#v", got.details)
	}
	if _, has := details["dimension"]; has {
		t.Errorf("details = %#v, dimension set for a customer count", details)
	}

	got = classifyError(&analytics.InsufficientDataError{Have: 2, Need: 6, Dimension: "recency"})
	details, ok = got.details.(map[string]interface{})
	if !ok || details["dimension"] != "recency" || details["need"] != 6 {
		t.Errorf("details = %#v, want recency edges", got.details)
	}

	got = classifyError(errors.New("secret connection string leaked"))
	if got.message != "Internal server error" {
		t.Errorf("message = %q, internal errors must not leak", got.message)
	}
}
