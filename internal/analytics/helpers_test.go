// Storelens - E-Commerce Customer and Sales Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storelens

package analytics

import (
	"math"
	"testing"
	"time"

	"github.com/tomtom215/storelens/internal/models"
)

// day parses a YYYY-MM-DD date or panics.
func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

// daysBefore returns the date n days before ref as YYYY-MM-DD.
func daysBefore(ref string, n int) string {
	return day(ref).AddDate(0, 0, -n).Format("2006-01-02")
}

// tx builds a transaction for tests. City and Country are fixed.
func tx(order, customer, product, category, date string, amount float64) models.Transaction {
	return models.Transaction{
		OrderID:      order,
		CustomerID:   customer,
		ProductName:  product,
		CategoryName: category,
		OrderDate:    day(date),
		TotalAmount:  amount,
		City:         "Istanbul",
		Country:      "TR",
	}
}

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func assertFloat(t *testing.T, name string, got, want float64) {
	t.Helper()
	if !approxEqual(got, want) {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}
