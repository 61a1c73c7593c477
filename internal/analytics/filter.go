// Storelens - E-Commerce Customer and Sales Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storelens

package analytics

import (
	"sort"
	"strings"
	"time"

	"github.com/tomtom215/storelens/internal/models"
)

// Filter selects the active slice of a transaction snapshot.
//
// All fields are optional and combine with AND. Multi-value fields match
// with OR inside the field (Countries: ["DE", "FR"] matches DE or FR).
// Dates are inclusive calendar days.
type Filter struct {
	Start      *time.Time `json:"start,omitempty"`
	End        *time.Time `json:"end,omitempty"`
	Categories []string   `json:"categories,omitempty"`
	Countries  []string   `json:"countries,omitempty"`
}

// IsZero reports whether the filter selects every transaction.
func (f Filter) IsZero() bool {
	return f.Start == nil && f.End == nil && len(f.Categories) == 0 && len(f.Countries) == 0
}

// Normalize returns an equivalent filter with dates truncated to days and
// value lists trimmed, deduplicated and sorted, so equal selections produce
// equal cache keys.
func (f Filter) Normalize() Filter {
	out := Filter{
		Categories: normalizeValues(f.Categories),
		Countries:  normalizeValues(f.Countries),
	}
	if f.Start != nil {
		s := models.TruncateToDay(*f.Start)
		out.Start = &s
	}
	if f.End != nil {
		e := models.TruncateToDay(*f.End)
		out.End = &e
	}
	return out
}

func normalizeValues(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil
	}
	sort.Strings(out)
	return out
}

// Apply returns the transactions matching the filter, preserving input order.
// The input slice is never modified.
func (f Filter) Apply(txns []models.Transaction) []models.Transaction {
	if f.IsZero() {
		return txns
	}
	nf := f.Normalize()
	categories := toSet(nf.Categories)
	countries := toSet(nf.Countries)

	out := make([]models.Transaction, 0, len(txns))
	for i := range txns {
		t := &txns[i]
		day := models.TruncateToDay(t.OrderDate)
		if nf.Start != nil && day.Before(*nf.Start) {
			continue
		}
		if nf.End != nil && day.After(*nf.End) {
			continue
		}
		if categories != nil {
			if _, ok := categories[t.CategoryName]; !ok {
				continue
			}
		}
		if countries != nil {
			if _, ok := countries[t.Country]; !ok {
				continue
			}
		}
		out = append(out, *t)
	}
	return out
}

func toSet(values []string) map[string]struct{} {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

// DateBounds returns the earliest and latest order dates of txns.
// ok is false when txns is empty.
func DateBounds(txns []models.Transaction) (minDate, maxDate time.Time, ok bool) {
	for i := range txns {
		d := models.TruncateToDay(txns[i].OrderDate)
		if !ok || d.Before(minDate) {
			minDate = d
		}
		if !ok || d.After(maxDate) {
			maxDate = d
		}
		ok = true
	}
	return minDate, maxDate, ok
}
