// Storelens - E-Commerce Customer and Sales Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storelens

package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/tomtom215/storelens/internal/analytics"
	"github.com/tomtom215/storelens/internal/database"
	"github.com/tomtom215/storelens/internal/logging"
	"github.com/tomtom215/storelens/internal/store"
)

// errorResponse is the HTTP rendering of an error.
type errorResponse struct {
	status  int
	code    string
	message string
	details interface{}
}

// classifyError maps analytics, store and source errors to HTTP responses.
// Unrecognized errors become 500 without leaking their text.
func classifyError(err error) errorResponse {
	var (
		schemaErr       *analytics.SchemaError
		insufficientErr *analytics.InsufficientDataError
		emptyResultErr  *analytics.EmptyResultError
		emptyInputErr   *analytics.EmptyInputError
		unknownErr      *analytics.UnknownProductError
		notFoundErr     errCustomerNotFound
	)

	switch {
	case errors.As(err, &unknownErr):
		return errorResponse{http.StatusNotFound, ErrCodeUnknownProduct, unknownErr.Error(),
			map[string]interface{}{"product": unknownErr.Product}}
	case errors.As(err, &notFoundErr):
		return errorResponse{http.StatusNotFound, ErrCodeNotFound, notFoundErr.Error(), nil}
	case errors.As(err, &insufficientErr):
		details := map[string]interface{}{"have": insufficientErr.Have, "need": insufficientErr.Need}
		if insufficientErr.Dimension != "" {
			details["dimension"] = insufficientErr.Dimension
		}
		return errorResponse{http.StatusUnprocessableEntity, ErrCodeInsufficientData, insufficientErr.Error(), details}
	case errors.As(err, &emptyResultErr):
		return errorResponse{http.StatusUnprocessableEntity, ErrCodeNoData, emptyResultErr.Error(), nil}
	case errors.As(err, &emptyInputErr):
		return errorResponse{http.StatusUnprocessableEntity, ErrCodeNoData, emptyInputErr.Error(), nil}
	case errors.As(err, &schemaErr):
		var details interface{}
		if len(schemaErr.Missing) > 0 {
			details = map[string]interface{}{"missing": schemaErr.Missing}
		}
		return errorResponse{http.StatusInternalServerError, ErrCodeSchema, schemaErr.Error(), details}
	case errors.Is(err, store.ErrNotLoaded):
		return errorResponse{http.StatusServiceUnavailable, ErrCodeNotLoaded, "No transaction snapshot has been loaded yet", nil}
	case errors.Is(err, database.ErrSourceUnavailable):
		return errorResponse{http.StatusServiceUnavailable, ErrCodeSourceUnavailable, "Transaction source is unavailable", nil}
	case errors.Is(err, context.DeadlineExceeded):
		return errorResponse{http.StatusServiceUnavailable, ErrCodeTimeout, "Request timed out", nil}
	default:
		return errorResponse{http.StatusInternalServerError, ErrCodeInternalError, "Internal server error", nil}
	}
}

// writeAnalyticsError logs err and writes its mapped response. A request
// canceled by the client gets no body.
func writeAnalyticsError(rw *ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, context.Canceled) && r.Context().Err() != nil {
		logging.Ctx(r.Context()).Debug().Msg("Request canceled by client")
		return
	}

	resp := classifyError(err)
	event := logging.Ctx(r.Context()).Warn()
	if resp.status >= http.StatusInternalServerError {
		event = logging.Ctx(r.Context()).Error()
	}
	event.Err(err).Str("code", resp.code).Str("path", r.URL.Path).Msg("Analytics request failed")

	rw.ErrorWithDetails(resp.status, resp.code, resp.message, resp.details)
}
