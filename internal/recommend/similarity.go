// Storelens - E-Commerce Customer and Sales Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storelens

package recommend

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/tomtom215/storelens/internal/analytics"
	"github.com/tomtom215/storelens/internal/models"
)

// SimilarityMatrix is a square, symmetric product x product affinity table.
// It is never mutated after BuildSimilarity returns.
type SimilarityMatrix struct {
	products []string
	index    map[string]int
	scores   [][]float64
}

// Len returns the number of products.
func (m *SimilarityMatrix) Len() int {
	return len(m.products)
}

// Products returns the product names in matrix order (sorted by name).
// The returned slice is a copy.
func (m *SimilarityMatrix) Products() []string {
	out := make([]string, len(m.products))
	copy(out, m.products)
	return out
}

// Has reports whether product is indexed.
func (m *SimilarityMatrix) Has(product string) bool {
	_, ok := m.index[product]
	return ok
}

// Score returns sim(a, b).
func (m *SimilarityMatrix) Score(a, b string) (float64, error) {
	i, ok := m.index[a]
	if !ok {
		return 0, &analytics.UnknownProductError{Product: a}
	}
	j, ok := m.index[b]
	if !ok {
		return 0, &analytics.UnknownProductError{Product: b}
	}
	return m.scores[i][j], nil
}

// Row returns a copy of product's similarity row, aligned with Products().
func (m *SimilarityMatrix) Row(product string) ([]float64, error) {
	i, ok := m.index[product]
	if !ok {
		return nil, &analytics.UnknownProductError{Product: product}
	}
	out := make([]float64, len(m.scores[i]))
	copy(out, m.scores[i])
	return out, nil
}

// Rows returns a copy of the full matrix, aligned with Products().
func (m *SimilarityMatrix) Rows() [][]float64 {
	out := make([][]float64, len(m.scores))
	for i, row := range m.scores {
		out[i] = make([]float64, len(row))
		copy(out[i], row)
	}
	return out
}

// productVector is a sparse column of the customer x product matrix.
type productVector struct {
	weights map[int]float64
	norm    float64
}

// BuildSimilarity pivots txns into customer baskets and computes pairwise
// product similarity. An empty txns yields an empty matrix.
func BuildSimilarity(ctx context.Context, txns []models.Transaction, cfg Config) (*SimilarityMatrix, error) {
	if cfg.Metric == "" {
		cfg.Metric = MetricCosine
	}
	if cfg.NumWorkers <= 0 {
		cfg.NumWorkers = 4
	}
	if cfg.Metric != MetricCosine && cfg.Metric != MetricBinaryCosine {
		return nil, fmt.Errorf("recommend: unsupported similarity metric %q", cfg.Metric)
	}

	if ContextCancelled(ctx) {
		return nil, ctx.Err()
	}

	vectors, products := buildProductVectors(txns, cfg.Metric == MetricBinaryCosine)

	m := &SimilarityMatrix{
		products: products,
		index:    make(map[string]int, len(products)),
		scores:   make([][]float64, len(products)),
	}
	for i, p := range products {
		m.index[p] = i
		m.scores[i] = make([]float64, len(products))
		m.scores[i][i] = 1.0
	}

	// Worker w owns rows w, w+N, w+2N... and writes cells (i, j) and (j, i)
	// for j > i only. Each cell therefore has exactly one writer.
	var wg sync.WaitGroup
	workers := cfg.NumWorkers
	if workers > len(products) {
		workers = len(products)
	}
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(offset int) {
			defer wg.Done()
			for i := offset; i < len(products); i += workers {
				if ContextCancelled(ctx) {
					return
				}
				for j := i + 1; j < len(products); j++ {
					s := cosineSim(vectors[i], vectors[j])
					m.scores[i][j] = s
					m.scores[j][i] = s
				}
			}
		}(w)
	}
	wg.Wait()

	if ContextCancelled(ctx) {
		return nil, ctx.Err()
	}
	return m, nil
}

// buildProductVectors returns one sparse vector per product, ordered by
// product name. Customers are indexed by first appearance.
func buildProductVectors(txns []models.Transaction, binary bool) ([]productVector, []string) {
	customerIdx := make(map[string]int)
	byProduct := make(map[string]map[int]float64)

	for i := range txns {
		t := &txns[i]
		c, ok := customerIdx[t.CustomerID]
		if !ok {
			c = len(customerIdx)
			customerIdx[t.CustomerID] = c
		}
		vec := byProduct[t.ProductName]
		if vec == nil {
			vec = make(map[int]float64)
			byProduct[t.ProductName] = vec
		}
		if binary {
			vec[c] = 1
		} else {
			vec[c]++
		}
	}

	products := make([]string, 0, len(byProduct))
	for p := range byProduct {
		products = append(products, p)
	}
	sort.Strings(products)

	vectors := make([]productVector, len(products))
	for i, p := range products {
		w := byProduct[p]
		var sq float64
		for _, v := range w {
			sq += v * v
		}
		vectors[i] = productVector{weights: w, norm: math.Sqrt(sq)}
	}
	return vectors, products
}

// cosineSim computes cosine similarity between two sparse vectors,
// clamped to [0, 1]. Weights are non-negative so the raw value is already
// in range up to rounding.
func cosineSim(a, b productVector) float64 {
	if a.norm == 0 || b.norm == 0 {
		return 0
	}
	small, large := a.weights, b.weights
	if len(small) > len(large) {
		small, large = large, small
	}
	var dot float64
	for k, v := range small {
		if w, ok := large[k]; ok {
			dot += v * w
		}
	}
	s := dot / (a.norm * b.norm)
	if s > 1 {
		return 1
	}
	if s < 0 {
		return 0
	}
	return s
}

// ContextCancelled checks if the context has been cancelled.
func ContextCancelled(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}
