// Storelens - E-Commerce Customer and Sales Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storelens

package api

import (
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"
)

func TestParseCommaSeparated(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  []string
	}{
		{"", nil},
		{"Home", []string{"Home"}},
		{"Home, Kitchen ,", []string{"Home", "Kitchen"}},
		{" , ,", nil},
	}

	for _, tt := range tests {
		if got := parseCommaSeparated(tt.input); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("parseCommaSeparated(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestParseLimit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		query   string
		want    int
		wantErr bool
	}{
		{"", 0, false},
		{"?limit=7", 7, false},
		{"?limit=%207%20", 7, false},
		{"?limit=seven", 0, true},
	}

	for _, tt := range tests {
		r := httptest.NewRequest(http.MethodGet, "/x"+tt.query, nil)
		got, err := parseLimit(r)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("parseLimit(%q) = %d, %v; want %d, err=%v", tt.query, got, err, tt.want, tt.wantErr)
		}
	}
}

func TestParseFilter(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodGet, "/x?start=2024-01-01&end=2024-01-31&category=Home,Kitchen&country=FR", nil)
	f, verr := parseFilter(r)
	if verr != nil {
		t.Fatalf("parseFilter() error = %v", verr)
	}
	if f.Start == nil || !f.Start.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Start = %v", f.Start)
	}
	if f.End == nil || !f.End.Equal(time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("End = %v", f.End)
	}
	if len(f.Categories) != 2 || len(f.Countries) != 1 {
		t.Errorf("filter = %+v", f)
	}

	r = httptest.NewRequest(http.MethodGet, "/x", nil)
	if f, verr = parseFilter(r); verr != nil || !f.IsZero() {
		t.Errorf("empty query: filter = %+v, err = %v", f, verr)
	}
}

func TestLengthOf(t *testing.T) {
	t.Parallel()

	if n, ok := lengthOf([]int{1, 2, 3}); !ok || n != 3 {
		t.Errorf("slice: %d, %v", n, ok)
	}
	if n, ok := lengthOf(map[string]int{"a": 1}); !ok || n != 1 {
		t.Errorf("map: %d, %v", n, ok)
	}
	if _, ok := lengthOf(struct{}{}); ok {
		t.Error("struct should have no length")
	}
	if _, ok := lengthOf(nil); ok {
		t.Error("nil should have no length")
	}
}
