// Storelens - E-Commerce Customer and Sales Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storelens

// Package recommend implements item-affinity recommendations from purchase baskets.
//
// # Model
//
// Transactions are pivoted into a customer x product matrix whose cells
// hold purchase counts (or 0/1 incidence for the binary metric). Each
// product column is compared with every other column using cosine
// similarity, giving a symmetric product x product matrix with 1.0 on the
// diagonal and values in [0, 1].
//
// # Usage
//
//	matrix, err := recommend.BuildSimilarity(ctx, txns, recommend.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//	recs, err := recommend.Recommend("Desk Lamp", matrix, 5)
//
// # Thread Safety
//
// A SimilarityMatrix is immutable once built. Recommend, TopPairs and the
// accessors only read it, so one matrix can serve any number of concurrent
// queries. The build itself fans out across Config.NumWorkers goroutines
// and checks ctx between rows.
package recommend
