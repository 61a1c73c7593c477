// Storelens - E-Commerce Customer and Sales Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storelens

package api

import (
	"context"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/tomtom215/storelens/internal/analytics"
	"github.com/tomtom215/storelens/internal/validation"
)

// viewFunc computes one analytics view for a filter.
type viewFunc func(ctx context.Context, f analytics.Filter) (interface{}, error)

// executeView is the shared flow of every analytics endpoint:
//
//  1. Parse and validate the filter parameters
//  2. Compute the view through the snapshot store (cached there)
//  3. Map typed analytics errors to status codes
//  4. Respond with the envelope, tagging the snapshot version
func (h *Handler) executeView(w http.ResponseWriter, r *http.Request, fn viewFunc) {
	rw := NewResponseWriter(w, r)

	filter, verr := parseFilter(r)
	if verr != nil {
		writeValidationError(rw, verr)
		return
	}

	version := h.store.Status().Version
	data, err := fn(r.Context(), filter)
	if err != nil {
		writeAnalyticsError(rw, r, err)
		return
	}

	meta := &APIMeta{SnapshotVersion: version}
	if n, ok := lengthOf(data); ok {
		meta.Count = &n
	}
	rw.SuccessWithMeta(data, meta)
}

// parseFilter reads start, end, category and country.
func parseFilter(r *http.Request) (analytics.Filter, *validation.RequestValidationError) {
	q := r.URL.Query()
	req := validation.AnalyticsRequest{
		Start:      strings.TrimSpace(q.Get("start")),
		End:        strings.TrimSpace(q.Get("end")),
		Categories: parseCommaSeparated(q.Get("category")),
		Countries:  parseCommaSeparated(q.Get("country")),
	}
	if err := validation.ValidateStruct(&req); err != nil {
		return analytics.Filter{}, err
	}
	return req.ToFilter(), nil
}

// parseLimit reads an optional integer limit. Empty means 0 (endpoint default).
func parseLimit(r *http.Request) (int, error) {
	value := strings.TrimSpace(r.URL.Query().Get("limit"))
	if value == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("limit must be an integer, got %q", value)
	}
	return n, nil
}

// parseCommaSeparated parses a comma-separated string into a slice
func parseCommaSeparated(value string) []string {
	if value == "" {
		return nil
	}

	var result []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// validateRequest validates v and writes a 400 on failure.
// Returns false when the handler must stop.
func validateRequest(rw *ResponseWriter, v interface{}) bool {
	if err := validation.ValidateStruct(v); err != nil {
		writeValidationError(rw, err)
		return false
	}
	return true
}

func writeValidationError(rw *ResponseWriter, err *validation.RequestValidationError) {
	apiErr := err.ToAPIError()
	var details interface{}
	if apiErr.Details != nil {
		details = apiErr.Details
	}
	rw.ValidationError(apiErr.Message, details)
}

// lengthOf reports the length of slice and map results.
func lengthOf(data interface{}) (int, bool) {
	v := reflect.ValueOf(data)
	switch v.Kind() {
	case reflect.Slice, reflect.Map:
		return v.Len(), true
	default:
		return 0, false
	}
}
