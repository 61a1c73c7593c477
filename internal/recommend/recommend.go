// Storelens - E-Commerce Customer and Sales Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storelens

package recommend

import (
	"sort"

	"github.com/tomtom215/storelens/internal/analytics"
	"github.com/tomtom215/storelens/internal/models"
)

// DefaultPairLimit is the number of pairs TopPairs returns when n <= 0.
const DefaultPairLimit = 15

// Recommend returns up to n products most similar to product, excluding
// product itself. Results are sorted by score descending with ties broken
// by name ascending. Fewer than n other products yields a shorter slice.
//
// Returns UnknownProductError when product is not in the matrix.
func Recommend(product string, m *SimilarityMatrix, n int) ([]models.Recommendation, error) {
	i, ok := m.index[product]
	if !ok {
		return nil, &analytics.UnknownProductError{Product: product}
	}
	if n <= 0 {
		return []models.Recommendation{}, nil
	}

	candidates := make([]models.Recommendation, 0, len(m.products)-1)
	for j, name := range m.products {
		if j == i {
			continue
		}
		candidates = append(candidates, models.Recommendation{Product: name, Score: m.scores[i][j]})
	}

	sort.Slice(candidates, func(a, b int) bool {
		if candidates[a].Score != candidates[b].Score {
			return candidates[a].Score > candidates[b].Score
		}
		return candidates[a].Product < candidates[b].Product
	})

	if len(candidates) > n {
		candidates = candidates[:n]
	}
	return candidates, nil
}

// TopPairs returns the n most similar distinct product pairs, each pair
// once with ProductA < ProductB. n <= 0 selects DefaultPairLimit.
func TopPairs(m *SimilarityMatrix, n int) []models.ProductPair {
	if n <= 0 {
		n = DefaultPairLimit
	}

	pairs := make([]models.ProductPair, 0)
	for i := range m.products {
		for j := i + 1; j < len(m.products); j++ {
			pairs = append(pairs, models.ProductPair{
				ProductA: m.products[i],
				ProductB: m.products[j],
				Score:    m.scores[i][j],
			})
		}
	}

	sort.Slice(pairs, func(a, b int) bool {
		if pairs[a].Score != pairs[b].Score {
			return pairs[a].Score > pairs[b].Score
		}
		if pairs[a].ProductA != pairs[b].ProductA {
			return pairs[a].ProductA < pairs[b].ProductA
		}
		return pairs[a].ProductB < pairs[b].ProductB
	})

	if len(pairs) > n {
		pairs = pairs[:n]
	}
	return pairs
}
