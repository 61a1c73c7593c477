// Storelens - E-Commerce Customer and Sales Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storelens

package analytics

import (
	"fmt"
	"sort"

	"github.com/tomtom215/storelens/internal/models"
)

// Segment names.
const (
	SegmentHibernating        = "Hibernating"
	SegmentAtRisk             = "At Risk"
	SegmentCantLose           = "Can't Lose"
	SegmentAboutToSleep       = "About to Sleep"
	SegmentNeedAttention      = "Need Attention"
	SegmentLoyalCustomers     = "Loyal Customers"
	SegmentPromising          = "Promising"
	SegmentNewCustomers       = "New Customers"
	SegmentPotentialLoyalists = "Potential Loyalists"
	SegmentChampions          = "Champions"
)

// digits is a set of allowed score digits.
type digits [6]bool

func anyOf(ds ...int) digits {
	var set digits
	for _, d := range ds {
		set[d] = true
	}
	return set
}

func (s digits) has(d int) bool {
	return d >= 1 && d <= 5 && s[d]
}

// segmentRule matches a (recency, frequency) score pair.
type segmentRule struct {
	recency   digits
	frequency digits
	segment   string
}

// segmentRules is evaluated top to bottom; the first match wins.
// Rules overlap, so the order is significant.
var segmentRules = []segmentRule{
	{anyOf(1, 2), anyOf(1, 2), SegmentHibernating},
	{anyOf(1, 2), anyOf(3, 4), SegmentAtRisk},
	{anyOf(1, 2), anyOf(5), SegmentCantLose},
	{anyOf(3), anyOf(1, 2), SegmentAboutToSleep},
	{anyOf(3), anyOf(3), SegmentNeedAttention},
	{anyOf(3, 4), anyOf(4, 5), SegmentLoyalCustomers},
	{anyOf(4), anyOf(1), SegmentPromising},
	{anyOf(5), anyOf(1), SegmentNewCustomers},
	{anyOf(4, 5), anyOf(2, 3), SegmentPotentialLoyalists},
	{anyOf(5), anyOf(4, 5), SegmentChampions},
}

// Segments returns every segment name in rule order.
func Segments() []string {
	out := make([]string, 0, len(segmentRules))
	for _, r := range segmentRules {
		out = append(out, r.segment)
	}
	return out
}

// ClassifySegment maps a score pair to its segment name.
// Scores outside 1-5 return an error.
func ClassifySegment(recencyScore, frequencyScore int) (string, error) {
	for _, r := range segmentRules {
		if r.recency.has(recencyScore) && r.frequency.has(frequencyScore) {
			return r.segment, nil
		}
	}
	return "", fmt.Errorf("no segment for score %d%d", recencyScore, frequencyScore)
}

// SummarizeSegments counts customers per segment with their average R, F and M.
// Results are ordered by customer count descending, then segment name.
func SummarizeSegments(records map[string]models.RFMRecord) []models.SegmentSummary {
	type acc struct {
		n                int
		recency, freq, m float64
	}
	bySegment := make(map[string]*acc)
	for _, r := range records {
		a, ok := bySegment[r.Segment]
		if !ok {
			a = &acc{}
			bySegment[r.Segment] = a
		}
		a.n++
		a.recency += float64(r.Recency)
		a.freq += float64(r.Frequency)
		a.m += r.Monetary
	}

	out := make([]models.SegmentSummary, 0, len(bySegment))
	for name, a := range bySegment {
		n := float64(a.n)
		out = append(out, models.SegmentSummary{
			Segment:      name,
			Customers:    a.n,
			SharePercent: sharePercent(n, float64(len(records))),
			AvgRecency:   a.recency / n,
			AvgFrequency: a.freq / n,
			AvgMonetary:  a.m / n,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Customers != out[j].Customers {
			return out[i].Customers > out[j].Customers
		}
		return out[i].Segment < out[j].Segment
	})
	return out
}

// TopCustomers returns the n highest-spending customers of a segment
// (all segments when segment is empty), Monetary descending, CustomerID
// ascending on ties. n <= 0 returns every match.
func TopCustomers(records map[string]models.RFMRecord, segment string, n int) []models.RFMRecord {
	out := make([]models.RFMRecord, 0)
	for _, r := range records {
		if segment == "" || r.Segment == segment {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Monetary != out[j].Monetary {
			return out[i].Monetary > out[j].Monetary
		}
		return out[i].CustomerID < out[j].CustomerID
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
