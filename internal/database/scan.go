// Storelens - E-Commerce Customer and Sales Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storelens

package database

import (
	"database/sql"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/tomtom215/storelens/internal/analytics"
	"github.com/tomtom215/storelens/internal/models"
)

// dateLayouts are tried in order for text-typed OrderDate columns.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// columnIndex maps each required column to its position in the result set.
// Names match case-insensitively since PostgreSQL folds unquoted identifiers.
func columnIndex(columns []string) (map[string]int, error) {
	byLower := make(map[string]int, len(columns))
	for i, c := range columns {
		byLower[strings.ToLower(c)] = i
	}

	idx := make(map[string]int, len(models.TransactionColumns))
	var missing []string
	for _, col := range models.TransactionColumns {
		i, ok := byLower[strings.ToLower(col)]
		if !ok {
			missing = append(missing, col)
			continue
		}
		idx[col] = i
	}
	if len(missing) > 0 {
		return nil, &analytics.SchemaError{Missing: missing}
	}
	return idx, nil
}

// scanTransactions reads every row into transactions. Extra columns are ignored.
func scanTransactions(rows *sql.Rows) ([]models.Transaction, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read columns: %w", err)
	}
	idx, err := columnIndex(columns)
	if err != nil {
		return nil, err
	}

	values := make([]any, len(columns))
	dest := make([]any, len(columns))
	for i := range values {
		dest[i] = &values[i]
	}

	var txns []models.Transaction
	for row := 1; rows.Next(); row++ {
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan row %d: %w", row, err)
		}

		orderDate, err := toTime(values[idx[models.ColumnOrderDate]])
		if err != nil {
			return nil, &analytics.SchemaError{Message: fmt.Sprintf("row %d: OrderDate: %v", row, err)}
		}
		amount, err := toFloat(values[idx[models.ColumnTotalAmount]])
		if err != nil {
			return nil, &analytics.SchemaError{Message: fmt.Sprintf("row %d: TotalAmount: %v", row, err)}
		}

		txns = append(txns, models.Transaction{
			OrderID:      toString(values[idx[models.ColumnOrderID]]),
			CustomerID:   toString(values[idx[models.ColumnCustomerID]]),
			ProductName:  toString(values[idx[models.ColumnProductName]]),
			CategoryName: toString(values[idx[models.ColumnCategoryName]]),
			OrderDate:    orderDate,
			TotalAmount:  amount,
			City:         toString(values[idx[models.ColumnCity]]),
			Country:      toString(values[idx[models.ColumnCountry]]),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}
	if txns == nil {
		txns = []models.Transaction{}
	}
	return txns, nil
}

func toString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(x)
	case []byte:
		return strings.TrimSpace(string(x))
	case int64:
		return strconv.FormatInt(x, 10)
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case time.Time:
		return x.Format(time.RFC3339)
	default:
		return strings.TrimSpace(fmt.Sprint(x))
	}
}

// float64er matches DECIMAL wrappers such as duckdb.Decimal.
type float64er interface {
	Float64() float64
}

func toFloat(v any) (float64, error) {
	switch x := v.(type) {
	case nil:
		return 0, fmt.Errorf("null value")
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case int32:
		return float64(x), nil
	case int16:
		return float64(x), nil
	case int8:
		return float64(x), nil
	case int:
		return float64(x), nil
	case uint64:
		return float64(x), nil
	case uint32:
		return float64(x), nil
	case *big.Int:
		f, _ := new(big.Float).SetInt(x).Float64()
		return f, nil
	case float64er:
		return x.Float64(), nil
	case []byte:
		return strconv.ParseFloat(strings.TrimSpace(string(x)), 64)
	case string:
		return strconv.ParseFloat(strings.TrimSpace(x), 64)
	default:
		return 0, fmt.Errorf("unsupported type %T", v)
	}
}

// toTime keeps the wall-clock reading and pins it to UTC.
func toTime(v any) (time.Time, error) {
	switch x := v.(type) {
	case nil:
		return time.Time{}, fmt.Errorf("null value")
	case time.Time:
		return wallClockUTC(x), nil
	case []byte:
		return parseDate(string(x))
	case string:
		return parseDate(x)
	default:
		return time.Time{}, fmt.Errorf("unsupported type %T", v)
	}
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return wallClockUTC(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", s)
}

func wallClockUTC(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}
