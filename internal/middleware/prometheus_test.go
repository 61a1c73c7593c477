// Storelens - E-Commerce Customer and Sales Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storelens

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tomtom215/storelens/internal/metrics"
)

func newMetricsRouter() http.Handler {
	r := chi.NewRouter()
	r.Use(PrometheusMetrics)
	r.Get("/api/v1/analytics/rfm", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	})
	r.Get("/api/v1/analytics/kpis", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("{}"))
	})
	return r
}

func TestPrometheusMetrics_RoutePatternLabel(t *testing.T) {
	router := newMetricsRouter()

	counter := metrics.APIRequestsTotal.WithLabelValues("GET", "/api/v1/analytics/kpis", "200")
	before := testutil.ToFloat64(counter)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/analytics/kpis?start=2024-01-01", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := testutil.ToFloat64(counter) - before; got != 1 {
		t.Errorf("api_requests_total delta = %v, want 1", got)
	}
}

func TestPrometheusMetrics_StatusCode(t *testing.T) {
	router := newMetricsRouter()

	counter := metrics.APIRequestsTotal.WithLabelValues("GET", "/api/v1/analytics/rfm", "422")
	before := testutil.ToFloat64(counter)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/analytics/rfm", nil))

	if got := testutil.ToFloat64(counter) - before; got != 1 {
		t.Errorf("422 counter delta = %v, want 1", got)
	}
}

func TestPrometheusMetrics_Unmatched(t *testing.T) {
	router := newMetricsRouter()

	counter := metrics.APIRequestsTotal.WithLabelValues("GET", unmatchedRoute, "404")
	before := testutil.ToFloat64(counter)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/no/such/path", nil))

	if got := testutil.ToFloat64(counter) - before; got != 1 {
		t.Errorf("unmatched counter delta = %v, want 1", got)
	}
}

func TestPrometheusMetrics_ActiveRequestsReturnToZero(t *testing.T) {
	before := testutil.ToFloat64(metrics.APIActiveRequests)

	handler := PrometheusMetrics(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if got := testutil.ToFloat64(metrics.APIActiveRequests); got != before+1 {
			t.Errorf("in-flight gauge = %v, want %v", got, before+1)
		}
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	if got := testutil.ToFloat64(metrics.APIActiveRequests); got != before {
		t.Errorf("gauge after request = %v, want %v", got, before)
	}
}
