// Storelens - E-Commerce Customer and Sales Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storelens

package analytics

import (
	"time"

	"github.com/tomtom215/storelens/internal/models"
)

// ComputeRetention builds the monthly cohort retention table.
//
// A customer's cohort is the calendar month of their first order. A
// transaction's cohort index is the number of calendar months from the
// cohort month to the order month, plus one, so the acquisition month is
// index 1. Each cell counts distinct customers; fractions divide by the
// cohort's index-1 count, which makes every index-1 fraction exactly 1.0.
//
// Only observed cells are present in the result.
func ComputeRetention(txns []models.Transaction) (*models.Retention, error) {
	if len(txns) == 0 {
		return nil, &EmptyInputError{Operation: "cohort retention"}
	}

	cohortOf := make(map[string]time.Time)
	for i := range txns {
		month := models.TruncateToMonth(txns[i].OrderDate)
		if first, ok := cohortOf[txns[i].CustomerID]; !ok || month.Before(first) {
			cohortOf[txns[i].CustomerID] = month
		}
	}

	type cell struct {
		key      models.CohortKey
		customer string
	}
	seen := make(map[cell]struct{})
	counts := make(map[models.CohortKey]int)

	for i := range txns {
		cohort := cohortOf[txns[i].CustomerID]
		key := models.CohortKey{
			CohortMonth: cohort,
			CohortIndex: CohortIndex(cohort, txns[i].OrderDate),
		}
		c := cell{key: key, customer: txns[i].CustomerID}
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		counts[key]++
	}

	fractions := make(map[models.CohortKey]float64, len(counts))
	for key, n := range counts {
		base := counts[models.CohortKey{CohortMonth: key.CohortMonth, CohortIndex: 1}]
		fractions[key] = float64(n) / float64(base)
	}

	return &models.Retention{Counts: counts, Fractions: fractions}, nil
}

// CohortIndex returns the 1-based month offset of orderDate from cohortMonth.
func CohortIndex(cohortMonth, orderDate time.Time) int {
	return monthsBetween(models.TruncateToMonth(cohortMonth), models.TruncateToMonth(orderDate)) + 1
}
