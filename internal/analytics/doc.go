// Storelens - E-Commerce Customer and Sales Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storelens

// Package analytics computes the derived views of a transaction snapshot.
//
// # Views
//
//   - KPIs: revenue, distinct orders and customers, average order value
//   - Sales breakdowns: month-end series, month-over-month growth, weekday
//     totals, category shares, top products, regional totals, treemap rows
//   - RFM segmentation: per-customer Recency/Frequency/Monetary, quintile
//     scores and a named behavioural segment
//   - Cohort retention: sparse (cohort month, cohort index) table of
//     distinct-customer counts and retention fractions
//
// # Purity
//
// Every function is a pure transform over an immutable []models.Transaction.
// Nothing is cached or mutated here; callers may invoke any function
// concurrently on the same snapshot. Caching keyed by the active Filter
// lives in internal/store.
//
// # Errors
//
// Failures are returned as typed errors (SchemaError, InsufficientDataError,
// EmptyResultError, EmptyInputError, UnknownProductError). Each matches a
// sentinel with errors.Is, and carries its details for errors.As:
//
//	records, err := analytics.ComputeSegments(txns, analytics.DefaultRFMOptions())
//	var insufficient *analytics.InsufficientDataError
//	if errors.As(err, &insufficient) {
//	    // report "not enough customers" to the user
//	}
//
// No operation returns partial results alongside an error.
package analytics
