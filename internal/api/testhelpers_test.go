// Storelens - E-Commerce Customer and Sales Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storelens

package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/storelens/internal/models"
	"github.com/tomtom215/storelens/internal/store"
)

// fakeSource serves a fixed transaction table or an error.
type fakeSource struct {
	mu   sync.Mutex
	txns []models.Transaction
	err  error
}

func (f *fakeSource) Name() string { return "fake" }

func (f *fakeSource) Load(context.Context) ([]models.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.txns, f.err
}

func (f *fakeSource) Close() error { return nil }

func (f *fakeSource) setErr(err error) {
	f.mu.Lock()
	f.err = err
	f.mu.Unlock()
}

func tx(order, customer, product, category, date, country string, amount float64) models.Transaction {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic(err)
	}
	return models.Transaction{
		OrderID:      order,
		CustomerID:   customer,
		ProductName:  product,
		CategoryName: category,
		OrderDate:    d,
		TotalAmount:  amount,
		City:         "City " + country,
		Country:      country,
	}
}

// sampleTransactions has six customers, four products and two countries
// over January to March 2024.
func sampleTransactions() []models.Transaction {
	return []models.Transaction{
		tx("o1", "c1", "Lamp", "Home", "2024-01-03", "DE", 40),
		tx("o1", "c1", "Mug", "Kitchen", "2024-01-03", "DE", 10),
		tx("o2", "c1", "Mug", "Kitchen", "2024-02-10", "DE", 10),
		tx("o3", "c2", "Lamp", "Home", "2024-01-15", "FR", 40),
		tx("o4", "c2", "Rug", "Home", "2024-03-01", "FR", 120),
		tx("o5", "c3", "Mug", "Kitchen", "2024-02-02", "DE", 10),
		tx("o6", "c3", "Pan", "Kitchen", "2024-02-20", "DE", 35),
		tx("o7", "c4", "Pan", "Kitchen", "2024-03-05", "FR", 35),
		tx("o8", "c5", "Lamp", "Home", "2024-03-10", "DE", 40),
		tx("o8", "c5", "Rug", "Home", "2024-03-10", "DE", 120),
		tx("o9", "c6", "Mug", "Kitchen", "2024-03-28", "FR", 10),
	}
}

type testServer struct {
	handler http.Handler
	store   *store.Store
	source  *fakeSource
}

// newTestServer builds the full router over a store. The snapshot is
// loaded unless load is false.
func newTestServer(t *testing.T, load bool, mwConfig *ChiMiddlewareConfig, reloadsPerMinute int) *testServer {
	t.Helper()

	src := &fakeSource{txns: sampleTransactions()}
	st := store.New(src, store.DefaultOptions())
	t.Cleanup(st.Close)
	if load {
		if _, err := st.Reload(context.Background()); err != nil {
			t.Fatalf("Reload() error = %v", err)
		}
	}

	if mwConfig == nil {
		mwConfig = DefaultChiMiddlewareConfig()
		mwConfig.RateLimitDisabled = true
	}
	router := NewRouter(NewHandler(st, reloadsPerMinute), NewChiMiddleware(mwConfig))
	return &testServer{handler: router.SetupChi(), store: st, source: src}
}

func (s *testServer) do(t *testing.T, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	w := httptest.NewRecorder()
	s.handler.ServeHTTP(w, req)
	return w
}

// envelope is APIResponse with the payload left raw for typed decoding.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *APIError       `json:"error"`
	Meta    *APIMeta        `json:"meta"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder, data interface{}) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("unmarshal envelope: %v (body %s)", err, w.Body.String())
	}
	if data != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, data); err != nil {
			t.Fatalf("unmarshal data: %v (data %s)", err, env.Data)
		}
	}
	return env
}
