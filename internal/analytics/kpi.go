// Storelens - E-Commerce Customer and Sales Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storelens

package analytics

import (
	"sort"

	"github.com/tomtom215/storelens/internal/models"
)

// DefaultTopN is the number of products returned by TopProducts when n <= 0.
const DefaultTopN = 10

// CalculateKPIs returns revenue, distinct order and customer counts, and the
// average order value (0 when there are no orders).
func CalculateKPIs(txns []models.Transaction) models.KPIs {
	orders := make(map[string]struct{})
	customers := make(map[string]struct{})
	var revenue float64

	for i := range txns {
		revenue += txns[i].TotalAmount
		orders[txns[i].OrderID] = struct{}{}
		customers[txns[i].CustomerID] = struct{}{}
	}

	kpis := models.KPIs{
		TotalRevenue:   revenue,
		TotalOrders:    len(orders),
		TotalCustomers: len(customers),
	}
	if kpis.TotalOrders > 0 {
		kpis.AvgOrderValue = revenue / float64(kpis.TotalOrders)
	}
	return kpis
}

// namedTotal is a grouping accumulator that remembers first-seen order.
type namedTotal struct {
	name  string
	total float64
}

// sumBy totals TotalAmount per key in first-seen order.
func sumBy(txns []models.Transaction, key func(*models.Transaction) string) []namedTotal {
	index := make(map[string]int)
	var out []namedTotal
	for i := range txns {
		k := key(&txns[i])
		pos, ok := index[k]
		if !ok {
			pos = len(out)
			index[k] = pos
			out = append(out, namedTotal{name: k})
		}
		out[pos].total += txns[i].TotalAmount
	}
	return out
}

// rankDescending sorts by total descending, name ascending on ties.
func rankDescending(totals []namedTotal) {
	sort.SliceStable(totals, func(i, j int) bool {
		if totals[i].total != totals[j].total {
			return totals[i].total > totals[j].total
		}
		return totals[i].name < totals[j].name
	})
}

func grandTotal(totals []namedTotal) float64 {
	var sum float64
	for _, t := range totals {
		sum += t.total
	}
	return sum
}

func sharePercent(part, whole float64) float64 {
	if whole == 0 {
		return 0
	}
	return part / whole * 100
}

// CategoryPerformance ranks categories by revenue with each category's
// percentage share. Shares sum to 100 when total revenue is positive.
func CategoryPerformance(txns []models.Transaction) []models.CategoryPerformance {
	totals := sumBy(txns, func(t *models.Transaction) string { return t.CategoryName })
	rankDescending(totals)
	whole := grandTotal(totals)

	out := make([]models.CategoryPerformance, 0, len(totals))
	for _, t := range totals {
		out = append(out, models.CategoryPerformance{
			Category:     t.name,
			Total:        t.total,
			SharePercent: sharePercent(t.total, whole),
		})
	}
	return out
}

// TopProducts returns the n products with the highest revenue.
// n <= 0 selects DefaultTopN.
func TopProducts(txns []models.Transaction, n int) []models.ProductTotal {
	if n <= 0 {
		n = DefaultTopN
	}
	totals := sumBy(txns, func(t *models.Transaction) string { return t.ProductName })
	rankDescending(totals)
	if len(totals) > n {
		totals = totals[:n]
	}

	out := make([]models.ProductTotal, 0, len(totals))
	for _, t := range totals {
		out = append(out, models.ProductTotal{Product: t.name, Total: t.total})
	}
	return out
}

// CitySales ranks cities by revenue and keeps the first n (all when n <= 0).
func CitySales(txns []models.Transaction, n int) []models.RegionSales {
	return regionSales(txns, n, func(t *models.Transaction) string { return t.City })
}

// CountrySales ranks countries by revenue with their percentage share.
func CountrySales(txns []models.Transaction) []models.RegionSales {
	return regionSales(txns, 0, func(t *models.Transaction) string { return t.Country })
}

func regionSales(txns []models.Transaction, n int, key func(*models.Transaction) string) []models.RegionSales {
	totals := sumBy(txns, key)
	rankDescending(totals)
	whole := grandTotal(totals)
	if n > 0 && len(totals) > n {
		totals = totals[:n]
	}

	out := make([]models.RegionSales, 0, len(totals))
	for _, t := range totals {
		out = append(out, models.RegionSales{
			Region:       t.name,
			Total:        t.total,
			SharePercent: sharePercent(t.total, whole),
		})
	}
	return out
}

// Treemap returns category/product revenue leaves with a positive total,
// ordered by category then by total descending.
func Treemap(txns []models.Transaction) []models.TreemapNode {
	type pair struct{ category, product string }
	index := make(map[pair]int)
	var nodes []models.TreemapNode

	for i := range txns {
		k := pair{txns[i].CategoryName, txns[i].ProductName}
		pos, ok := index[k]
		if !ok {
			pos = len(nodes)
			index[k] = pos
			nodes = append(nodes, models.TreemapNode{Category: k.category, Product: k.product})
		}
		nodes[pos].Total += txns[i].TotalAmount
	}

	out := make([]models.TreemapNode, 0, len(nodes))
	for _, n := range nodes {
		if n.Total > 0 {
			out = append(out, n)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].Product < out[j].Product
	})
	return out
}
