// Storelens - E-Commerce Customer and Sales Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storelens

package analytics

import (
	"testing"

	"github.com/tomtom215/storelens/internal/models"
)

func TestMonthlySalesSeries(t *testing.T) {
	t.Parallel()

	got := MonthlySalesSeries([]models.Transaction{
		tx("1", "a", "x", "c", "2024-01-05", 10),
		tx("2", "a", "x", "c", "2024-01-31", 15),
		tx("3", "b", "x", "c", "2024-03-02", 40),
		tx("4", "b", "x", "c", "2024-02-29", 0),
	})

	want := []models.MonthlySales{
		{Month: day("2024-01-31"), Total: 25},
		{Month: day("2024-02-29"), Total: 0},
		{Month: day("2024-03-31"), Total: 40},
	}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if !got[i].Month.Equal(want[i].Month) {
			t.Errorf("month %d = %s, want %s", i, got[i].Month.Format("2006-01-02"), want[i].Month.Format("2006-01-02"))
		}
		assertFloat(t, "Total", got[i].Total, want[i].Total)
	}
}

func TestMonthlySalesSeries_FillsGaps(t *testing.T) {
	t.Parallel()

	got := MonthlySalesSeries([]models.Transaction{
		tx("1", "a", "x", "c", "2023-11-10", 10),
		tx("2", "a", "x", "c", "2024-02-10", 10),
	})
	if len(got) != 4 {
		t.Fatalf("len = %d, want 4 (Nov..Feb)", len(got))
	}
	if got[1].Total != 0 || got[2].Total != 0 {
		t.Errorf("gap months = %v, %v, want 0", got[1].Total, got[2].Total)
	}
}

func TestMonthlySalesSeries_Empty(t *testing.T) {
	t.Parallel()

	got := MonthlySalesSeries(nil)
	if got == nil || len(got) != 0 {
		t.Errorf("MonthlySalesSeries(nil) = %v, want empty non-nil slice", got)
	}
}

func TestMonthlyGrowth(t *testing.T) {
	t.Parallel()

	got := MonthlyGrowth([]models.Transaction{
		tx("1", "a", "x", "c", "2024-01-10", 100),
		tx("2", "a", "x", "c", "2024-02-10", 150),
		tx("3", "a", "x", "c", "2024-04-10", 50),
	})
	if len(got) != 4 {
		t.Fatalf("len = %d, want 4", len(got))
	}

	tests := []struct {
		name string
		idx  int
		want *float64
	}{
		{"first month has no growth", 0, nil},
		{"increase", 1, ptr(50)},
		{"drop to zero", 2, ptr(-100)},
		{"after zero month", 3, nil},
	}
	for _, tt := range tests {
		g := got[tt.idx].GrowthPercent
		switch {
		case tt.want == nil && g != nil:
			t.Errorf("%s: growth = %v, want nil", tt.name, *g)
		case tt.want != nil && g == nil:
			t.Errorf("%s: growth = nil, want %v", tt.name, *tt.want)
		case tt.want != nil:
			assertFloat(t, tt.name, *g, *tt.want)
		}
	}
}

func ptr(v float64) *float64 { return &v }

func TestWeekdaySales(t *testing.T) {
	t.Parallel()

	// 2024-01-01 is a Monday, 2024-01-07 a Sunday
	got := WeekdaySales([]models.Transaction{
		tx("1", "a", "x", "c", "2024-01-01", 10),
		tx("2", "a", "x", "c", "2024-01-08", 5),
		tx("3", "a", "x", "c", "2024-01-07", 7),
	})

	wantDays := []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}
	if len(got) != len(wantDays) {
		t.Fatalf("len = %d, want 7", len(got))
	}
	for i, d := range wantDays {
		if got[i].Weekday != d {
			t.Errorf("day %d = %s, want %s", i, got[i].Weekday, d)
		}
	}
	assertFloat(t, "Monday", got[0].Total, 15)
	assertFloat(t, "Sunday", got[6].Total, 7)
	assertFloat(t, "Tuesday", got[1].Total, 0)
}
