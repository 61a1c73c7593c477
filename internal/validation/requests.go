// Storelens - E-Commerce Customer and Sales Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storelens

package validation

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/tomtom215/storelens/internal/analytics"
)

// MaxLimit caps every list-size query parameter.
const MaxLimit = 1000

// AnalyticsRequest holds the filter parameters shared by analytics endpoints.
type AnalyticsRequest struct {
	Start      string   `validate:"omitempty,isodate"`
	End        string   `validate:"omitempty,isodate"`
	Categories []string `validate:"max=50,dive,min=1,max=200"`
	Countries  []string `validate:"max=50,dive,min=1,max=200"`
}

// validateDateRange rejects an end day earlier than the start day.
func validateDateRange(sl validator.StructLevel) {
	req, ok := sl.Current().Interface().(AnalyticsRequest)
	if !ok || req.Start == "" || req.End == "" {
		return
	}
	start, errS := time.Parse(DateLayout, req.Start)
	end, errE := time.Parse(DateLayout, req.End)
	if errS != nil || errE != nil {
		return
	}
	if end.Before(start) {
		sl.ReportError(req.End, "End", "End", "daterange", "")
	}
}

// ToFilter converts a validated request into an analytics filter.
// Unparseable dates are ignored; call ValidateStruct first.
func (r *AnalyticsRequest) ToFilter() analytics.Filter {
	f := analytics.Filter{
		Categories: r.Categories,
		Countries:  r.Countries,
	}
	if t, err := time.Parse(DateLayout, r.Start); err == nil {
		f.Start = &t
	}
	if t, err := time.Parse(DateLayout, r.End); err == nil {
		f.End = &t
	}
	return f.Normalize()
}

// LimitRequest is a bare list-size parameter. Zero means the endpoint default.
type LimitRequest struct {
	Limit int `validate:"gte=0,lte=1000"`
}

// RecommendRequest holds the recommendation query.
type RecommendRequest struct {
	Product string `validate:"required,max=500"`
	Limit   int    `validate:"gte=0,lte=1000"`
}

// SegmentTopRequest selects the top customers of an optional segment.
type SegmentTopRequest struct {
	Segment string `validate:"omitempty,segment"`
	Limit   int    `validate:"gte=0,lte=1000"`
}

// ReportRequest holds the report CLI arguments.
type ReportRequest struct {
	Report  string `validate:"required,oneof=kpis rfm cohorts recommend all"`
	Product string `validate:"required_if=Report recommend,max=500"`
	Out     string `validate:"required"`
	Start   string `validate:"omitempty,isodate"`
	End     string `validate:"omitempty,isodate"`
}

// Filter returns the report's date filter.
func (r *ReportRequest) Filter() analytics.Filter {
	ar := AnalyticsRequest{Start: r.Start, End: r.End}
	return ar.ToFilter()
}
