// Storelens - E-Commerce Customer and Sales Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storelens

package models

import "time"

// KPIs are the headline figures shown above every dashboard view.
type KPIs struct {
	TotalRevenue   float64 `json:"total_revenue"`
	TotalOrders    int     `json:"total_orders"`
	TotalCustomers int     `json:"total_customers"`

	// AvgOrderValue is TotalRevenue / TotalOrders, or 0 when there are no orders
	AvgOrderValue float64 `json:"avg_order_value"`
}

// MonthlySales is the revenue total of one calendar month.
type MonthlySales struct {
	// Month is the last day of the month
	Month time.Time `json:"month"`
	Total float64   `json:"total"`
}

// MonthlyGrowth is a monthly total with its change against the previous month.
type MonthlyGrowth struct {
	Month time.Time `json:"month"`
	Total float64   `json:"total"`

	// GrowthPercent is nil for the first month and after a zero month
	GrowthPercent *float64 `json:"growth_percent"`
}

// CategoryPerformance is a category's revenue and its share of the total.
type CategoryPerformance struct {
	Category     string  `json:"category"`
	Total        float64 `json:"total"`
	SharePercent float64 `json:"share_percent"`
}

// ProductTotal is a product's revenue.
type ProductTotal struct {
	Product string  `json:"product"`
	Total   float64 `json:"total"`
}

// WeekdaySales is the revenue of one day of the week across the period.
type WeekdaySales struct {
	Weekday string  `json:"weekday"`
	Total   float64 `json:"total"`
}

// TreemapNode is a category/product revenue leaf for hierarchical charts.
type TreemapNode struct {
	Category string  `json:"category"`
	Product  string  `json:"product"`
	Total    float64 `json:"total"`
}

// RegionSales is the revenue of a city or country and its share of the total.
type RegionSales struct {
	Region       string  `json:"region"`
	Total        float64 `json:"total"`
	SharePercent float64 `json:"share_percent"`
}
