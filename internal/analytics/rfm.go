// Storelens - E-Commerce Customer and Sales Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storelens

package analytics

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/tomtom215/storelens/internal/models"
)

// RFMOptions tunes the segmentation.
type RFMOptions struct {
	// ReferenceBufferDays is added to the latest order date to form the
	// reference date, so the latest purchaser has a positive Recency.
	ReferenceBufferDays int

	// Buckets is the number of quantile buckets per dimension. The segment
	// table is defined for 5.
	Buckets int
}

// DefaultRFMOptions returns the standard 2-day buffer and quintile scoring.
func DefaultRFMOptions() RFMOptions {
	return RFMOptions{
		ReferenceBufferDays: 2,
		Buckets:             5,
	}
}

// customerAgg accumulates one customer's transactions.
type customerAgg struct {
	id        string
	lastOrder time.Time
	orders    map[string]struct{}
	monetary  float64
}

// ComputeSegments scores every customer with positive spend and assigns a segment.
//
// Recency is binned by value at its interpolated quantile edges and scored
// inverted (most recent bucket = Buckets), so equal Recency always shares a
// score. Frequency is binned by a stable sort on (value, first-seen
// position) followed by positional cuts, so its ties split deterministically
// in input order, and scored direct.
//
// Rows with a negative TotalAmount are refunds and are excluded.
// Returns EmptyResultError when no customer has positive spend and
// InsufficientDataError when fewer than Buckets customers remain or when
// Recency has too few distinct values for Buckets distinct edges.
func ComputeSegments(txns []models.Transaction, opts RFMOptions) (map[string]models.RFMRecord, error) {
	if opts.Buckets <= 0 {
		opts.Buckets = DefaultRFMOptions().Buckets
	}
	if opts.Buckets > 5 {
		return nil, fmt.Errorf("rfm: bucket count %d exceeds the segment table's 5 scores", opts.Buckets)
	}

	customers := aggregateCustomers(txns)
	if len(customers) == 0 {
		return nil, &EmptyResultError{Reason: "no customer with positive monetary value"}
	}
	if len(customers) < opts.Buckets {
		return nil, &InsufficientDataError{Have: len(customers), Need: opts.Buckets}
	}

	_, latest, _ := DateBounds(txns)
	reference := latest.AddDate(0, 0, opts.ReferenceBufferDays)

	records := make([]models.RFMRecord, len(customers))
	for i, c := range customers {
		records[i] = models.RFMRecord{
			CustomerID: c.id,
			Recency:    daysBetween(c.lastOrder, reference),
			Frequency:  len(c.orders),
			Monetary:   c.monetary,
		}
	}

	recency := make([]float64, len(records))
	for i := range records {
		recency[i] = float64(records[i].Recency)
	}
	recencyBuckets, edges, ok := valueBuckets(recency, opts.Buckets)
	if !ok {
		return nil, &InsufficientDataError{
			Have:      edges,
			Need:      opts.Buckets + 1,
			Dimension: "recency",
		}
	}
	frequencyBuckets := rankBuckets(len(records), opts.Buckets, func(i int) float64 {
		return float64(records[i].Frequency)
	})

	out := make(map[string]models.RFMRecord, len(records))
	for i := range records {
		r := &records[i]
		r.RecencyScore = opts.Buckets + 1 - recencyBuckets[i]
		r.FrequencyScore = frequencyBuckets[i]
		r.Score = strconv.Itoa(r.RecencyScore) + strconv.Itoa(r.FrequencyScore)

		segment, err := ClassifySegment(r.RecencyScore, r.FrequencyScore)
		if err != nil {
			return nil, fmt.Errorf("rfm: customer %s: %w", r.CustomerID, err)
		}
		r.Segment = segment
		out[r.CustomerID] = *r
	}
	return out, nil
}

// aggregateCustomers groups non-refund rows by customer in first-seen order
// and drops customers whose total spend is not positive.
func aggregateCustomers(txns []models.Transaction) []*customerAgg {
	index := make(map[string]*customerAgg)
	var ordered []*customerAgg

	for i := range txns {
		t := &txns[i]
		if t.TotalAmount < 0 {
			continue
		}
		c, ok := index[t.CustomerID]
		if !ok {
			c = &customerAgg{
				id:     t.CustomerID,
				orders: make(map[string]struct{}),
			}
			index[t.CustomerID] = c
			ordered = append(ordered, c)
		}
		day := models.TruncateToDay(t.OrderDate)
		if day.After(c.lastOrder) {
			c.lastOrder = day
		}
		c.orders[t.OrderID] = struct{}{}
		c.monetary += t.TotalAmount
	}

	kept := ordered[:0]
	for _, c := range ordered {
		if c.monetary > 0 {
			kept = append(kept, c)
		}
	}
	return kept
}

// valueBuckets assigns each value a 1-based bucket in [1, buckets]. Edges
// are the linearly interpolated quantiles at k/buckets for k in [0, buckets]; a value lands in
// the first bucket whose upper edge is >= the value, and the lowest edge is
// inclusive. It returns the number of distinct edges, and ok is false when
// any two adjacent edges coincide.
func valueBuckets(values []float64, buckets int) (out []int, distinctEdges int, ok bool) {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	edges := make([]float64, buckets+1)
	distinctEdges = 1
	ok = true
	for k := range edges {
		edges[k] = linearQuantile(sorted, k, buckets)
		if k > 0 {
			if edges[k] > edges[k-1] {
				distinctEdges++
			} else {
				ok = false
			}
		}
	}
	if !ok {
		return nil, distinctEdges, false
	}

	out = make([]int, len(values))
	for i, v := range values {
		out[i] = sort.SearchFloat64s(edges[1:], v) + 1
	}
	return out, distinctEdges, true
}

// linearQuantile returns the k/q quantile of sorted values, interpolating
// between the two nearest ranks. The rank position is kept as an integer
// quotient and remainder so edges that fall on a rank are exact.
func linearQuantile(sorted []float64, k, q int) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	num := (n - 1) * k
	lo, rem := num/q, num%q
	if lo >= n-1 {
		return sorted[n-1]
	}
	return sorted[lo] + float64(rem)/float64(q)*(sorted[lo+1]-sorted[lo])
}

// rankBuckets assigns each of n observations a 1-based bucket in
// [1, buckets]. Observations are ranked by (value, position) with a stable
// sort, and rank r (1-based) lands in bucket ceil(buckets*(r-1)/(n-1)),
// at least 1. This places cut points at the linear quantiles of the ranks.
func rankBuckets(n, buckets int, value func(i int) float64) []int {
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return value(order[a]) < value(order[b])
	})

	out := make([]int, n)
	for pos, idx := range order {
		out[idx] = positionalBucket(pos+1, n, buckets)
	}
	return out
}

func positionalBucket(rank, n, buckets int) int {
	if n <= 1 {
		return 1
	}
	// integer ceil of buckets*(rank-1)/(n-1)
	b := (buckets*(rank-1) + n - 2) / (n - 1)
	if b < 1 {
		return 1
	}
	if b > buckets {
		return buckets
	}
	return b
}

// daysBetween returns whole days from a to b.
func daysBetween(a, b time.Time) int {
	return int(models.TruncateToDay(b).Sub(models.TruncateToDay(a)).Hours() / 24)
}
