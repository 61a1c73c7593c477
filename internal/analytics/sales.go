// Storelens - E-Commerce Customer and Sales Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storelens

package analytics

import (
	"time"

	"github.com/tomtom215/storelens/internal/models"
)

// weekdayOrder lists days Monday first, the order sales charts use.
var weekdayOrder = []time.Weekday{
	time.Monday,
	time.Tuesday,
	time.Wednesday,
	time.Thursday,
	time.Friday,
	time.Saturday,
	time.Sunday,
}

// MonthlySalesSeries returns revenue per calendar month labelled by the
// month's last day. Every month between the first and last order appears,
// with 0 for months without orders.
func MonthlySalesSeries(txns []models.Transaction) []models.MonthlySales {
	minDate, maxDate, ok := DateBounds(txns)
	if !ok {
		return []models.MonthlySales{}
	}

	totals := make(map[time.Time]float64)
	for i := range txns {
		totals[models.TruncateToMonth(txns[i].OrderDate)] += txns[i].TotalAmount
	}

	first := models.TruncateToMonth(minDate)
	last := models.TruncateToMonth(maxDate)
	out := make([]models.MonthlySales, 0, monthsBetween(first, last)+1)
	for m := first; !m.After(last); m = m.AddDate(0, 1, 0) {
		out = append(out, models.MonthlySales{
			Month: models.MonthEnd(m),
			Total: totals[m],
		})
	}
	return out
}

// MonthlyGrowth returns each month's total with its percentage change from
// the previous month. Growth is nil for the first month and whenever the
// previous month's total is zero.
func MonthlyGrowth(txns []models.Transaction) []models.MonthlyGrowth {
	series := MonthlySalesSeries(txns)
	out := make([]models.MonthlyGrowth, 0, len(series))
	for i, s := range series {
		g := models.MonthlyGrowth{Month: s.Month, Total: s.Total}
		if i > 0 && series[i-1].Total != 0 {
			pct := (s.Total - series[i-1].Total) / series[i-1].Total * 100
			g.GrowthPercent = &pct
		}
		out = append(out, g)
	}
	return out
}

// WeekdaySales returns revenue per day of week, Monday to Sunday.
// All seven days are present.
func WeekdaySales(txns []models.Transaction) []models.WeekdaySales {
	var totals [7]float64
	for i := range txns {
		totals[txns[i].OrderDate.Weekday()] += txns[i].TotalAmount
	}

	out := make([]models.WeekdaySales, 0, len(weekdayOrder))
	for _, d := range weekdayOrder {
		out = append(out, models.WeekdaySales{Weekday: d.String(), Total: totals[d]})
	}
	return out
}

// monthsBetween returns the number of whole calendar months from a to b.
func monthsBetween(a, b time.Time) int {
	return (b.Year()-a.Year())*12 + int(b.Month()) - int(a.Month())
}
