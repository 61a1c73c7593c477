// Storelens - E-Commerce Customer and Sales Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storelens

package store

import (
	"context"

	"github.com/tomtom215/storelens/internal/analytics"
	"github.com/tomtom215/storelens/internal/models"
	"github.com/tomtom215/storelens/internal/recommend"
)

// Operation names label cache keys and metrics.
const (
	OpKPIs          = "kpis"
	OpMonthlySales  = "monthly_sales"
	OpMonthlyGrowth = "monthly_growth"
	OpWeekdaySales  = "weekday_sales"
	OpCategories    = "categories"
	OpTopProducts   = "top_products"
	OpTreemap       = "treemap"
	OpCities        = "city_sales"
	OpCountries     = "country_sales"
	OpRFM           = "rfm"
	OpRetention     = "cohort_retention"
	OpSimilarity    = "similarity"
)

// KPIs returns revenue, order, customer and AOV totals.
func (s *Store) KPIs(ctx context.Context, f analytics.Filter) (models.KPIs, error) {
	return view(ctx, s, OpKPIs, f, nil, func(_ context.Context, txns []models.Transaction) (models.KPIs, error) {
		return analytics.CalculateKPIs(txns), nil
	})
}

// MonthlySales returns the month-end sales series.
func (s *Store) MonthlySales(ctx context.Context, f analytics.Filter) ([]models.MonthlySales, error) {
	return view(ctx, s, OpMonthlySales, f, nil, func(_ context.Context, txns []models.Transaction) ([]models.MonthlySales, error) {
		return analytics.MonthlySalesSeries(txns), nil
	})
}

// MonthlyGrowth returns month-over-month growth percentages.
func (s *Store) MonthlyGrowth(ctx context.Context, f analytics.Filter) ([]models.MonthlyGrowth, error) {
	return view(ctx, s, OpMonthlyGrowth, f, nil, func(_ context.Context, txns []models.Transaction) ([]models.MonthlyGrowth, error) {
		return analytics.MonthlyGrowth(txns), nil
	})
}

// WeekdaySales returns totals for Monday through Sunday.
func (s *Store) WeekdaySales(ctx context.Context, f analytics.Filter) ([]models.WeekdaySales, error) {
	return view(ctx, s, OpWeekdaySales, f, nil, func(_ context.Context, txns []models.Transaction) ([]models.WeekdaySales, error) {
		return analytics.WeekdaySales(txns), nil
	})
}

// Categories returns revenue and share per category.
func (s *Store) Categories(ctx context.Context, f analytics.Filter) ([]models.CategoryPerformance, error) {
	return view(ctx, s, OpCategories, f, nil, func(_ context.Context, txns []models.Transaction) ([]models.CategoryPerformance, error) {
		return analytics.CategoryPerformance(txns), nil
	})
}

// TopProducts returns the n best-selling products; n <= 0 uses Options.TopN.
func (s *Store) TopProducts(ctx context.Context, f analytics.Filter, n int) ([]models.ProductTotal, error) {
	n = s.topN(n)
	return view(ctx, s, OpTopProducts, f, n, func(_ context.Context, txns []models.Transaction) ([]models.ProductTotal, error) {
		return analytics.TopProducts(txns, n), nil
	})
}

// Treemap returns category/product revenue rows.
func (s *Store) Treemap(ctx context.Context, f analytics.Filter) ([]models.TreemapNode, error) {
	return view(ctx, s, OpTreemap, f, nil, func(_ context.Context, txns []models.Transaction) ([]models.TreemapNode, error) {
		return analytics.Treemap(txns), nil
	})
}

// Cities returns the n highest-revenue cities; n <= 0 uses Options.TopN.
func (s *Store) Cities(ctx context.Context, f analytics.Filter, n int) ([]models.RegionSales, error) {
	n = s.topN(n)
	return view(ctx, s, OpCities, f, n, func(_ context.Context, txns []models.Transaction) ([]models.RegionSales, error) {
		return analytics.CitySales(txns, n), nil
	})
}

// Countries returns revenue per country.
func (s *Store) Countries(ctx context.Context, f analytics.Filter) ([]models.RegionSales, error) {
	return view(ctx, s, OpCountries, f, nil, func(_ context.Context, txns []models.Transaction) ([]models.RegionSales, error) {
		return analytics.CountrySales(txns), nil
	})
}

// segments is the cached per-customer RFM table every customer view reads.
func (s *Store) segments(ctx context.Context, f analytics.Filter) (map[string]models.RFMRecord, error) {
	return view(ctx, s, OpRFM, f, s.opts.RFM, func(_ context.Context, txns []models.Transaction) (map[string]models.RFMRecord, error) {
		return analytics.ComputeSegments(txns, s.opts.RFM)
	})
}

// Customers returns every scored customer, highest spend first.
func (s *Store) Customers(ctx context.Context, f analytics.Filter) ([]models.RFMRecord, error) {
	records, err := s.segments(ctx, f)
	if err != nil {
		return nil, err
	}
	return analytics.TopCustomers(records, "", 0), nil
}

// Customer returns one customer's RFM record.
func (s *Store) Customer(ctx context.Context, f analytics.Filter, customerID string) (models.RFMRecord, bool, error) {
	records, err := s.segments(ctx, f)
	if err != nil {
		return models.RFMRecord{}, false, err
	}
	r, ok := records[customerID]
	return r, ok, nil
}

// SegmentSummary returns customer counts and average R, F and M per segment.
func (s *Store) SegmentSummary(ctx context.Context, f analytics.Filter) ([]models.SegmentSummary, error) {
	records, err := s.segments(ctx, f)
	if err != nil {
		return nil, err
	}
	return analytics.SummarizeSegments(records), nil
}

// TopCustomers returns the n highest-spending customers of segment (all
// segments when empty); n <= 0 uses Options.TopN.
func (s *Store) TopCustomers(ctx context.Context, f analytics.Filter, segment string, n int) ([]models.RFMRecord, error) {
	records, err := s.segments(ctx, f)
	if err != nil {
		return nil, err
	}
	return analytics.TopCustomers(records, segment, s.topN(n)), nil
}

// Retention returns the cohort retention table.
func (s *Store) Retention(ctx context.Context, f analytics.Filter) (*models.Retention, error) {
	return view(ctx, s, OpRetention, f, nil, func(_ context.Context, txns []models.Transaction) (*models.Retention, error) {
		return analytics.ComputeRetention(txns)
	})
}

// RetentionRows returns the retention table one row per cohort month.
func (s *Store) RetentionRows(ctx context.Context, f analytics.Filter) ([]models.RetentionRow, error) {
	r, err := s.Retention(ctx, f)
	if err != nil {
		return nil, err
	}
	return r.Rows(), nil
}

// Similarity returns the product similarity matrix.
func (s *Store) Similarity(ctx context.Context, f analytics.Filter) (*recommend.SimilarityMatrix, error) {
	params := struct {
		Metric string `json:"metric"`
	}{s.opts.Recommend.Metric}
	return view(ctx, s, OpSimilarity, f, params, func(ctx context.Context, txns []models.Transaction) (*recommend.SimilarityMatrix, error) {
		return recommend.BuildSimilarity(ctx, txns, s.opts.Recommend)
	})
}

// Recommend returns the products most similar to product. n is clamped to
// the configured limits.
func (s *Store) Recommend(ctx context.Context, f analytics.Filter, product string, n int) ([]models.Recommendation, error) {
	m, err := s.Similarity(ctx, f)
	if err != nil {
		return nil, err
	}
	return recommend.Recommend(product, m, s.opts.Recommend.ClampLimit(n))
}

// TopPairs returns the n most similar product pairs; n <= 0 uses
// Options.PairLimit.
func (s *Store) TopPairs(ctx context.Context, f analytics.Filter, n int) ([]models.ProductPair, error) {
	if n <= 0 {
		n = s.opts.PairLimit
	}
	m, err := s.Similarity(ctx, f)
	if err != nil {
		return nil, err
	}
	return recommend.TopPairs(m, n), nil
}

func (s *Store) topN(n int) int {
	if n <= 0 {
		return s.opts.TopN
	}
	return n
}
