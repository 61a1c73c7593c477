// Storelens - E-Commerce Customer and Sales Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storelens

package report

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/storelens/internal/analytics"
	"github.com/tomtom215/storelens/internal/models"
	"github.com/tomtom215/storelens/internal/store"
)

type staticSource struct {
	txns []models.Transaction
}

func (s *staticSource) Name() string { return "static" }

func (s *staticSource) Load(context.Context) ([]models.Transaction, error) { return s.txns, nil }

func (s *staticSource) Close() error { return nil }

func tx(order, customer, product, date, country string, amount float64) models.Transaction {
	d, _ := time.Parse("2006-01-02", date)
	return models.Transaction{
		OrderID:      order,
		CustomerID:   customer,
		ProductName:  product,
		CategoryName: "Home",
		OrderDate:    d,
		TotalAmount:  amount,
		City:         "Lyon",
		Country:      country,
	}
}

func loadedStore(t *testing.T) *store.Store {
	t.Helper()
	src := &staticSource{txns: []models.Transaction{
		tx("o1", "c1", "Lamp", "2024-01-03", "FR", 40),
		tx("o1", "c1", "Mug", "2024-01-03", "FR", 10),
		tx("o2", "c2", "Lamp", "2024-01-20", "FR", 40),
		tx("o3", "c3", "Rug", "2024-02-11", "DE", 120),
		tx("o4", "c4", "Mug", "2024-02-14", "DE", 10),
		tx("o5", "c5", "Lamp", "2024-03-02", "DE", 40),
		tx("o5", "c5", "Rug", "2024-03-02", "DE", 120),
		tx("o6", "c1", "Rug", "2024-03-09", "FR", 120),
	}}
	st := store.New(src, store.DefaultOptions())
	t.Cleanup(st.Close)
	if _, err := st.Reload(context.Background()); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	return st
}

func TestGenerate_All(t *testing.T) {
	t.Parallel()

	st := loadedStore(t)
	out := t.TempDir()
	var progress bytes.Buffer

	paths, err := Generate(context.Background(), st, Request{
		Kind:    KindAll,
		Product: "Lamp",
		OutDir:  out,
	}, &progress)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	want := []string{KindKPIs, KindRFM, KindCohorts, KindRecommend}
	if len(paths) != len(want) {
		t.Fatalf("paths = %v, want %d files", paths, len(want))
	}
	for i, path := range paths {
		base := filepath.Base(path)
		if !strings.HasPrefix(base, want[i]+"_") || filepath.Ext(base) != ".json" {
			t.Errorf("path[%d] = %s, want %s_<timestamp>.json", i, base, want[i])
		}
		if _, err := os.Stat(path); err != nil {
			t.Errorf("report %s not written: %v", path, err)
		}
	}

	body, err := os.ReadFile(paths[0])
	if err != nil {
		t.Fatal(err)
	}
	var doc struct {
		Report          string      `json:"report"`
		SnapshotVersion uint64      `json:"snapshot_version"`
		Source          string      `json:"source"`
		Data            SalesReport `json:"data"`
	}
	if err := json.Unmarshal(body, &doc); err != nil {
		t.Fatalf("unmarshal report: %v", err)
	}
	if doc.Report != KindKPIs || doc.SnapshotVersion != 1 || doc.Source != "static" {
		t.Errorf("envelope = %+v", doc)
	}
	if doc.Data.KPIs.TotalRevenue != 500 || doc.Data.KPIs.TotalOrders != 6 {
		t.Errorf("kpis = %+v, want revenue 500 over 6 orders", doc.Data.KPIs)
	}
	if len(doc.Data.Monthly) != 3 {
		t.Errorf("monthly = %d rows, want 3", len(doc.Data.Monthly))
	}
}

func TestGenerate_AllWithoutProductSkipsRecommend(t *testing.T) {
	t.Parallel()

	paths, err := Generate(context.Background(), loadedStore(t), Request{Kind: KindAll, OutDir: t.TempDir()}, nil)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if len(paths) != 3 {
		t.Errorf("paths = %v, want 3 files", paths)
	}
}

func TestGenerate_Errors(t *testing.T) {
	t.Parallel()

	st := loadedStore(t)
	country := analytics.Filter{Countries: []string{"FR"}}

	tests := []struct {
		name string
		req  Request
		is   error
	}{
		{"unknown kind", Request{Kind: "weekly"}, nil},
		{"recommend without product", Request{Kind: KindRecommend}, nil},
		{"unknown product", Request{Kind: KindRecommend, Product: "Sofa"}, analytics.ErrUnknownProduct},
		{"too few customers", Request{Kind: KindRFM, Filter: country}, analytics.ErrInsufficientData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			tt.req.OutDir = t.TempDir()
			paths, err := Generate(context.Background(), st, tt.req, nil)
			if err == nil {
				t.Fatal("Generate() error = nil")
			}
			if tt.is != nil && !errors.Is(err, tt.is) {
				t.Errorf("Generate() error = %v, want %v", err, tt.is)
			}
			if len(paths) != 0 {
				t.Errorf("paths = %v, want none", paths)
			}
		})
	}
}

func TestExportJSON_CreatesDirectories(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "deeper", "out.json")
	if err := ExportJSON(path, map[string]int{"orders": 3}); err != nil {
		t.Fatalf("ExportJSON() error = %v", err)
	}

	body, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(body), "\n  \"orders\": 3") {
		t.Errorf("body = %q, want indented JSON", body)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temporary file left behind")
	}
}

func TestTimestampedFilename(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 3, 9, 14, 5, 7, 0, time.FixedZone("CET", 3600))
	got := TimestampedFilename("out", "rfm", now)
	want := filepath.Join("out", "rfm_20240309_130507.json")
	if got != want {
		t.Errorf("TimestampedFilename() = %q, want %q", got, want)
	}
}
