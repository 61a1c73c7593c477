// Storelens - E-Commerce Customer and Sales Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storelens

package models

import (
	"sort"
	"time"
)

// RFMRecord is the Recency/Frequency/Monetary profile of one customer.
type RFMRecord struct {
	CustomerID string `json:"customer_id"`

	// Recency is the number of days between the reference date and the last order
	Recency int `json:"recency"`

	// Frequency is the number of distinct orders
	Frequency int `json:"frequency"`

	// Monetary is the total amount spent
	Monetary float64 `json:"monetary"`

	// RecencyScore is 1-5, higher is more recent
	RecencyScore int `json:"recency_score"`

	// FrequencyScore is 1-5, higher is more frequent
	FrequencyScore int `json:"frequency_score"`

	// Score is the two-digit code, RecencyScore followed by FrequencyScore
	Score string `json:"score"`

	Segment string `json:"segment"`
}

// SegmentSummary aggregates the customers of one segment.
type SegmentSummary struct {
	Segment      string  `json:"segment"`
	Customers    int     `json:"customers"`
	SharePercent float64 `json:"share_percent"`
	AvgRecency   float64 `json:"avg_recency"`
	AvgFrequency float64 `json:"avg_frequency"`
	AvgMonetary  float64 `json:"avg_monetary"`
}

// CohortKey addresses one cell of a cohort table.
type CohortKey struct {
	// CohortMonth is the first day of the customers' acquisition month
	CohortMonth time.Time

	// CohortIndex is 1 for the acquisition month, 2 for the month after, and so on
	CohortIndex int
}

// Retention holds a sparse cohort table. Cells with no observed
// transactions are absent from both maps rather than zero.
type Retention struct {
	// Counts holds distinct customers per cell
	Counts map[CohortKey]int

	// Fractions holds Counts normalized by the cohort's index-1 count
	Fractions map[CohortKey]float64
}

// Fraction returns the retention at (month, index) and whether the cell was observed.
func (r *Retention) Fraction(month time.Time, index int) (float64, bool) {
	v, ok := r.Fractions[CohortKey{CohortMonth: month, CohortIndex: index}]
	return v, ok
}

// RetentionRow is one cohort rendered for tables and JSON.
type RetentionRow struct {
	CohortMonth string `json:"cohort_month"`
	CohortSize  int    `json:"cohort_size"`

	// Retention maps cohort index to fraction; unobserved indexes are omitted
	Retention map[int]float64 `json:"retention"`

	// Customers maps cohort index to distinct active customers
	Customers map[int]int `json:"customers"`
}

// Rows renders the table ordered by cohort month.
func (r *Retention) Rows() []RetentionRow {
	byMonth := make(map[time.Time]*RetentionRow)
	for key, count := range r.Counts {
		row, ok := byMonth[key.CohortMonth]
		if !ok {
			row = &RetentionRow{
				CohortMonth: key.CohortMonth.Format("2006-01"),
				Retention:   make(map[int]float64),
				Customers:   make(map[int]int),
			}
			byMonth[key.CohortMonth] = row
		}
		row.Customers[key.CohortIndex] = count
		row.Retention[key.CohortIndex] = r.Fractions[key]
		if key.CohortIndex == 1 {
			row.CohortSize = count
		}
	}

	months := make([]time.Time, 0, len(byMonth))
	for m := range byMonth {
		months = append(months, m)
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Before(months[j]) })

	rows := make([]RetentionRow, 0, len(months))
	for _, m := range months {
		rows = append(rows, *byMonth[m])
	}
	return rows
}

// Recommendation is a product similar to a query product.
type Recommendation struct {
	Product string  `json:"product"`
	Score   float64 `json:"score"`
}

// ProductPair is two products with their affinity score.
type ProductPair struct {
	ProductA string  `json:"product_a"`
	ProductB string  `json:"product_b"`
	Score    float64 `json:"score"`
}
