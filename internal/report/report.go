// Storelens - E-Commerce Customer and Sales Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storelens

package report

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/tomtom215/storelens/internal/analytics"
	"github.com/tomtom215/storelens/internal/logging"
	"github.com/tomtom215/storelens/internal/models"
	"github.com/tomtom215/storelens/internal/store"
)

// Report names accepted by Generate.
const (
	KindKPIs      = "kpis"
	KindRFM       = "rfm"
	KindCohorts   = "cohorts"
	KindRecommend = "recommend"
	KindAll       = "all"
)

// Views is the subset of *store.Store the reports read.
type Views interface {
	Status() store.Status
	KPIs(ctx context.Context, f analytics.Filter) (models.KPIs, error)
	MonthlySales(ctx context.Context, f analytics.Filter) ([]models.MonthlySales, error)
	MonthlyGrowth(ctx context.Context, f analytics.Filter) ([]models.MonthlyGrowth, error)
	WeekdaySales(ctx context.Context, f analytics.Filter) ([]models.WeekdaySales, error)
	Categories(ctx context.Context, f analytics.Filter) ([]models.CategoryPerformance, error)
	TopProducts(ctx context.Context, f analytics.Filter, n int) ([]models.ProductTotal, error)
	Countries(ctx context.Context, f analytics.Filter) ([]models.RegionSales, error)
	Customers(ctx context.Context, f analytics.Filter) ([]models.RFMRecord, error)
	SegmentSummary(ctx context.Context, f analytics.Filter) ([]models.SegmentSummary, error)
	RetentionRows(ctx context.Context, f analytics.Filter) ([]models.RetentionRow, error)
	Recommend(ctx context.Context, f analytics.Filter, product string, n int) ([]models.Recommendation, error)
	TopPairs(ctx context.Context, f analytics.Filter, n int) ([]models.ProductPair, error)
}

// Request selects the reports to generate.
type Request struct {
	Kind    string
	Product string
	Filter  analytics.Filter
	OutDir  string
}

// Document is the envelope written to every report file.
type Document struct {
	Report          string      `json:"report"`
	GeneratedAt     time.Time   `json:"generated_at"`
	SnapshotVersion uint64      `json:"snapshot_version"`
	Source          string      `json:"source"`
	Filter          FilterInfo  `json:"filter"`
	Data            interface{} `json:"data"`
}

// FilterInfo records the filter a report was computed under.
type FilterInfo struct {
	Start      *time.Time `json:"start,omitempty"`
	End        *time.Time `json:"end,omitempty"`
	Categories []string   `json:"categories,omitempty"`
	Countries  []string   `json:"countries,omitempty"`
}

// SalesReport bundles the headline and breakdown views.
type SalesReport struct {
	KPIs        models.KPIs                  `json:"kpis"`
	Monthly     []models.MonthlySales        `json:"monthly_sales"`
	Growth      []models.MonthlyGrowth       `json:"monthly_growth"`
	Weekday     []models.WeekdaySales        `json:"weekday_sales"`
	Categories  []models.CategoryPerformance `json:"categories"`
	TopProducts []models.ProductTotal        `json:"top_products"`
	Countries   []models.RegionSales         `json:"countries"`
}

// CustomerReport bundles per-customer RFM and the segment summary.
type CustomerReport struct {
	Customers []models.RFMRecord      `json:"customers"`
	Segments  []models.SegmentSummary `json:"segments"`
}

// RecommendReport holds recommendations for one product plus the
// strongest product pairs.
type RecommendReport struct {
	Product         string                  `json:"product"`
	Recommendations []models.Recommendation `json:"recommendations"`
	TopPairs        []models.ProductPair    `json:"top_pairs"`
}

type job struct {
	kind    string
	compute func(ctx context.Context) (interface{}, error)
}

// Generate computes the requested reports and writes each to a timestamped
// JSON file under req.OutDir. Progress is drawn to progress when non-nil.
// It returns the written paths in generation order.
func Generate(ctx context.Context, views Views, req Request, progress io.Writer) ([]string, error) {
	jobs, err := plan(views, req)
	if err != nil {
		return nil, err
	}

	if progress == nil {
		progress = io.Discard
	}
	bar := progressbar.NewOptions(len(jobs),
		progressbar.OptionSetWriter(progress),
		progressbar.OptionSetDescription("reports"),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)

	status := views.Status()
	now := time.Now().UTC()
	paths := make([]string, 0, len(jobs))

	for _, j := range jobs {
		bar.Describe(j.kind)
		data, err := j.compute(ctx)
		if err != nil {
			return paths, fmt.Errorf("%s report: %w", j.kind, err)
		}

		doc := Document{
			Report:          j.kind,
			GeneratedAt:     now,
			SnapshotVersion: status.Version,
			Source:          status.Source,
			Filter:          filterInfo(req.Filter),
			Data:            data,
		}
		path := TimestampedFilename(req.OutDir, j.kind, now)
		if err := ExportJSON(path, doc); err != nil {
			return paths, err
		}
		paths = append(paths, path)

		logging.Ctx(ctx).Info().Str("report", j.kind).Str("path", path).Msg("Report exported")
		_ = bar.Add(1)
	}
	_ = bar.Finish()

	return paths, nil
}

func plan(views Views, req Request) ([]job, error) {
	f := req.Filter

	sales := job{KindKPIs, func(ctx context.Context) (interface{}, error) { return salesReport(ctx, views, f) }}
	customers := job{KindRFM, func(ctx context.Context) (interface{}, error) { return customerReport(ctx, views, f) }}
	cohorts := job{KindCohorts, func(ctx context.Context) (interface{}, error) { return views.RetentionRows(ctx, f) }}
	recs := job{KindRecommend, func(ctx context.Context) (interface{}, error) {
		return recommendReport(ctx, views, f, req.Product)
	}}

	switch req.Kind {
	case KindKPIs:
		return []job{sales}, nil
	case KindRFM:
		return []job{customers}, nil
	case KindCohorts:
		return []job{cohorts}, nil
	case KindRecommend:
		if req.Product == "" {
			return nil, fmt.Errorf("recommend report requires a product")
		}
		return []job{recs}, nil
	case KindAll:
		jobs := []job{sales, customers, cohorts}
		if req.Product != "" {
			jobs = append(jobs, recs)
		}
		return jobs, nil
	default:
		return nil, fmt.Errorf("unknown report %q", req.Kind)
	}
}

func salesReport(ctx context.Context, v Views, f analytics.Filter) (*SalesReport, error) {
	var (
		r   SalesReport
		err error
	)
	if r.KPIs, err = v.KPIs(ctx, f); err != nil {
		return nil, err
	}
	if r.Monthly, err = v.MonthlySales(ctx, f); err != nil {
		return nil, err
	}
	if r.Growth, err = v.MonthlyGrowth(ctx, f); err != nil {
		return nil, err
	}
	if r.Weekday, err = v.WeekdaySales(ctx, f); err != nil {
		return nil, err
	}
	if r.Categories, err = v.Categories(ctx, f); err != nil {
		return nil, err
	}
	if r.TopProducts, err = v.TopProducts(ctx, f, 0); err != nil {
		return nil, err
	}
	if r.Countries, err = v.Countries(ctx, f); err != nil {
		return nil, err
	}
	return &r, nil
}

func customerReport(ctx context.Context, v Views, f analytics.Filter) (*CustomerReport, error) {
	customers, err := v.Customers(ctx, f)
	if err != nil {
		return nil, err
	}
	segments, err := v.SegmentSummary(ctx, f)
	if err != nil {
		return nil, err
	}
	return &CustomerReport{Customers: customers, Segments: segments}, nil
}

func recommendReport(ctx context.Context, v Views, f analytics.Filter, product string) (*RecommendReport, error) {
	recs, err := v.Recommend(ctx, f, product, 0)
	if err != nil {
		return nil, err
	}
	pairs, err := v.TopPairs(ctx, f, 0)
	if err != nil {
		return nil, err
	}
	return &RecommendReport{Product: product, Recommendations: recs, TopPairs: pairs}, nil
}

func filterInfo(f analytics.Filter) FilterInfo {
	return FilterInfo{
		Start:      f.Start,
		End:        f.End,
		Categories: f.Categories,
		Countries:  f.Countries,
	}
}
