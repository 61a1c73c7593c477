// Storelens - E-Commerce Customer and Sales Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storelens

package analytics

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for errors.Is matching against the typed errors below.
var (
	ErrSchema           = errors.New("schema error")
	ErrInsufficientData = errors.New("insufficient data")
	ErrEmptyResult      = errors.New("empty result")
	ErrEmptyInput       = errors.New("empty input")
	ErrUnknownProduct   = errors.New("unknown product")
)

// SchemaError reports a transaction table with missing or malformed columns.
type SchemaError struct {
	// Missing lists required columns absent from the input
	Missing []string

	// Message describes any other structural problem (e.g. a null OrderDate)
	Message string
}

func (e *SchemaError) Error() string {
	if len(e.Missing) > 0 {
		return "schema error: missing columns: " + strings.Join(e.Missing, ", ")
	}
	return "schema error: " + e.Message
}

// Is matches ErrSchema.
func (e *SchemaError) Is(target error) bool {
	return target == ErrSchema
}

// InsufficientDataError reports too few observations for quantile binning.
// With Dimension set, Have and Need count distinct quantile edges of that
// dimension rather than customers.
type InsufficientDataError struct {
	Have      int
	Need      int
	Dimension string
}

func (e *InsufficientDataError) Error() string {
	if e.Dimension != "" {
		return fmt.Sprintf("insufficient data: %d distinct %s quantile edges, need %d", e.Have, e.Dimension, e.Need)
	}
	return fmt.Sprintf("insufficient data: %d customers, need at least %d", e.Have, e.Need)
}

// Is matches ErrInsufficientData.
func (e *InsufficientDataError) Is(target error) bool {
	return target == ErrInsufficientData
}

// EmptyResultError reports that filtering left nothing to analyse.
type EmptyResultError struct {
	Reason string
}

func (e *EmptyResultError) Error() string {
	return "empty result: " + e.Reason
}

// Is matches ErrEmptyResult.
func (e *EmptyResultError) Is(target error) bool {
	return target == ErrEmptyResult
}

// EmptyInputError reports an operation invoked on an empty transaction table.
type EmptyInputError struct {
	Operation string
}

func (e *EmptyInputError) Error() string {
	return "empty input: " + e.Operation + " requires at least one transaction"
}

// Is matches ErrEmptyInput.
func (e *EmptyInputError) Is(target error) bool {
	return target == ErrEmptyInput
}

// UnknownProductError reports a recommendation query for a product not in the matrix.
type UnknownProductError struct {
	Product string
}

func (e *UnknownProductError) Error() string {
	return fmt.Sprintf("unknown product: %q", e.Product)
}

// Is matches ErrUnknownProduct.
func (e *UnknownProductError) Is(target error) bool {
	return target == ErrUnknownProduct
}
