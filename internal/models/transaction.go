// Storelens - E-Commerce Customer and Sales Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storelens

// Package models provides data structures for the Storelens application.
// This file contains the canonical transaction row every analysis reads.
package models

import "time"

// Transaction is one order line: a product bought by a customer on a date.
// An order spanning several products appears as several rows sharing OrderID.
type Transaction struct {
	// OrderID identifies the order this line belongs to
	OrderID string `json:"order_id"`

	// CustomerID identifies the purchasing customer
	CustomerID string `json:"customer_id"`

	// ProductName is the display name of the purchased product
	ProductName string `json:"product_name"`

	// CategoryName is the product's category
	CategoryName string `json:"category_name"`

	// OrderDate is the calendar date of the order (UTC midnight)
	OrderDate time.Time `json:"order_date"`

	// TotalAmount is the line value; negative values represent refunds
	TotalAmount float64 `json:"total_amount"`

	City    string `json:"city"`
	Country string `json:"country"`
}

// Required column names for a transaction table, in canonical order.
const (
	ColumnOrderID      = "OrderID"
	ColumnCustomerID   = "CustomerID"
	ColumnProductName  = "ProductName"
	ColumnCategoryName = "CategoryName"
	ColumnOrderDate    = "OrderDate"
	ColumnTotalAmount  = "TotalAmount"
	ColumnCity         = "City"
	ColumnCountry      = "Country"
)

// TransactionColumns lists every column a transaction source must provide.
var TransactionColumns = []string{
	ColumnOrderID,
	ColumnCustomerID,
	ColumnProductName,
	ColumnCategoryName,
	ColumnOrderDate,
	ColumnTotalAmount,
	ColumnCity,
	ColumnCountry,
}

// TruncateToDay returns t as a UTC calendar date.
func TruncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// TruncateToMonth returns the first day of t's calendar month in UTC.
func TruncateToMonth(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}

// MonthEnd returns the last day of t's calendar month in UTC.
func MonthEnd(t time.Time) time.Time {
	return TruncateToMonth(t).AddDate(0, 1, -1)
}
