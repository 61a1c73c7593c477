// Storelens - E-Commerce Customer and Sales Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storelens

package metrics

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"

	"github.com/tomtom215/storelens/internal/analytics"
)

// TestRecordAPIRequest tests API request metric recording
func TestRecordAPIRequest(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		endpoint   string
		statusCode string
		duration   time.Duration
	}{
		{"kpis ok", "GET", "/api/v1/analytics/kpis", "200", 25 * time.Millisecond},
		{"unknown product", "GET", "/api/v1/analytics/recommendations", "404", 3 * time.Millisecond},
		{"insufficient data", "GET", "/api/v1/analytics/rfm", "422", 5 * time.Millisecond},
		{"reload limited", "POST", "/api/v1/admin/reload", "429", time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues(tt.method, tt.endpoint, tt.statusCode))
			RecordAPIRequest(tt.method, tt.endpoint, tt.statusCode, tt.duration)
			after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues(tt.method, tt.endpoint, tt.statusCode))
			if after-before != 1 {
				t.Errorf("api_requests_total delta = %v, want 1", after-before)
			}
		})
	}
}

func TestTrackActiveRequest_RequestLifecycle(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)

	TrackActiveRequest(true)
	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests) - before; got != 2 {
		t.Errorf("active requests delta = %v, want 2", got)
	}

	TrackActiveRequest(false)
	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != before {
		t.Errorf("active requests = %v, want %v", got, before)
	}
}

func TestErrorType(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, "none"},
		{&analytics.SchemaError{Missing: []string{"OrderDate"}}, "schema"},
		{&analytics.InsufficientDataError{Have: 3, Need: 5}, "insufficient_data"},
		{&analytics.EmptyResultError{Reason: "no positive spend"}, "empty_result"},
		{&analytics.EmptyInputError{Operation: "cohorts"}, "empty_input"},
		{&analytics.UnknownProductError{Product: "Lamp"}, "unknown_product"},
		{fmt.Errorf("wrapped: %w", &analytics.UnknownProductError{Product: "Lamp"}), "unknown_product"},
		{context.Canceled, "canceled"},
		{context.DeadlineExceeded, "timeout"},
		{errors.New("boom"), "other"},
	}

	for _, tt := range tests {
		if got := ErrorType(tt.err); got != tt.want {
			t.Errorf("ErrorType(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestRecordAnalytics(t *testing.T) {
	errCounter := AnalyticsComputeErrors.WithLabelValues("rfm-test", "insufficient_data")
	before := testutil.ToFloat64(errCounter)

	RecordAnalytics("rfm-test", 10*time.Millisecond, nil)
	if got := testutil.ToFloat64(errCounter); got != before {
		t.Errorf("error counter after success = %v, want %v", got, before)
	}

	RecordAnalytics("rfm-test", 10*time.Millisecond, &analytics.InsufficientDataError{Have: 2, Need: 5})
	if got := testutil.ToFloat64(errCounter); got != before+1 {
		t.Errorf("error counter after failure = %v, want %v", got, before+1)
	}
}

// histogramSample reads the sample count and sum of one histogram series.
func histogramSample(t *testing.T, obs prometheus.Observer) (uint64, float64) {
	t.Helper()
	metric, ok := obs.(prometheus.Metric)
	if !ok {
		t.Fatalf("%T is not a prometheus.Metric", obs)
	}
	var m dto.Metric
	if err := metric.Write(&m); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	return m.GetHistogram().GetSampleCount(), m.GetHistogram().GetSampleSum()
}

func TestRecordAnalytics_ObservesDuration(t *testing.T) {
	count0, sum0 := histogramSample(t, AnalyticsComputeDuration.WithLabelValues("duration-test"))

	RecordAnalytics("duration-test", 250*time.Millisecond, nil)
	RecordAnalytics("duration-test", 750*time.Millisecond, errors.New("boom"))

	count, sum := histogramSample(t, AnalyticsComputeDuration.WithLabelValues("duration-test"))
	if count-count0 != 2 {
		t.Errorf("sample count delta = %d, want 2", count-count0)
	}
	if d := sum - sum0; d < 0.999 || d > 1.001 {
		t.Errorf("sample sum delta = %v, want 1s", d)
	}
}

func TestRecordSourceLoad(t *testing.T) {
	RecordSourceLoad("duckdb-test", 50*time.Millisecond, 1234, 7, nil)

	if got := testutil.ToFloat64(SnapshotTransactions); got != 1234 {
		t.Errorf("snapshot_transactions = %v, want 1234", got)
	}
	if got := testutil.ToFloat64(SnapshotVersion); got != 7 {
		t.Errorf("snapshot_version = %v, want 7", got)
	}
	if testutil.ToFloat64(SnapshotLastReload) == 0 {
		t.Error("snapshot_last_reload_timestamp not set")
	}

	errCounter := SourceLoadErrors.WithLabelValues("duckdb-test", "schema")
	before := testutil.ToFloat64(errCounter)
	RecordSourceLoad("duckdb-test", time.Millisecond, 0, 0, &analytics.SchemaError{Missing: []string{"City"}})
	if got := testutil.ToFloat64(errCounter); got != before+1 {
		t.Errorf("source_load_errors_total = %v, want %v", got, before+1)
	}
	// A failed load leaves the previous snapshot gauges alone.
	if got := testutil.ToFloat64(SnapshotTransactions); got != 1234 {
		t.Errorf("snapshot_transactions after failure = %v, want 1234", got)
	}
}

func TestRecordCacheLookup(t *testing.T) {
	hits := CacheHits.WithLabelValues("kpis-test")
	misses := CacheMisses.WithLabelValues("kpis-test")
	h0, m0 := testutil.ToFloat64(hits), testutil.ToFloat64(misses)

	RecordCacheLookup("kpis-test", false)
	RecordCacheLookup("kpis-test", true)
	RecordCacheLookup("kpis-test", true)

	if got := testutil.ToFloat64(hits) - h0; got != 2 {
		t.Errorf("cache hits delta = %v, want 2", got)
	}
	if got := testutil.ToFloat64(misses) - m0; got != 1 {
		t.Errorf("cache misses delta = %v, want 1", got)
	}
}

func TestConcurrentMetricRecording(t *testing.T) {
	t.Parallel()

	counter := APIRequestsTotal.WithLabelValues("GET", "/concurrent", "200")
	before := testutil.ToFloat64(counter)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			RecordAPIRequest("GET", "/concurrent", "200", time.Millisecond)
		}()
	}
	wg.Wait()

	if got := testutil.ToFloat64(counter) - before; got != 50 {
		t.Errorf("concurrent delta = %v, want 50", got)
	}
}

func TestMetricsRegistration(t *testing.T) {
	collectors := []prometheus.Collector{
		APIRequestsTotal,
		APIRequestDuration,
		APIActiveRequests,
		APIRateLimitHits,
		AnalyticsComputeDuration,
		AnalyticsComputeErrors,
		SourceLoadDuration,
		SourceLoadErrors,
		SnapshotTransactions,
		SnapshotVersion,
		SnapshotLastReload,
		CacheHits,
		CacheMisses,
		CacheInvalidations,
		CircuitBreakerState,
		CircuitBreakerRequests,
		CircuitBreakerTransitions,
	}

	for _, m := range collectors {
		ch := make(chan *prometheus.Desc, 10)
		m.Describe(ch)
		close(ch)

		count := 0
		for range ch {
			count++
		}
		if count == 0 {
			t.Errorf("Metric has no descriptors")
		}
	}
}

func BenchmarkRecordAPIRequest(b *testing.B) {
	for i := 0; i < b.N; i++ {
		RecordAPIRequest("GET", "/api/v1/analytics/kpis", "200", time.Millisecond)
	}
}
