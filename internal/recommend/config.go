// Storelens - E-Commerce Customer and Sales Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storelens

package recommend

import "fmt"

// Similarity metrics.
const (
	// MetricCosine compares purchase-count vectors.
	MetricCosine = "cosine"

	// MetricBinaryCosine compares basket sets (bought / not bought).
	MetricBinaryCosine = "binary_cosine"
)

// Config contains configuration for the similarity build.
type Config struct {
	// Metric selects the similarity function.
	// Options: "cosine", "binary_cosine".
	// Default: cosine.
	Metric string `json:"metric"`

	// NumWorkers is the number of parallel workers computing matrix rows.
	// Default: 4.
	NumWorkers int `json:"num_workers"`

	// DefaultLimit is the number of recommendations returned when the
	// caller does not ask for a specific count.
	// Default: 5.
	DefaultLimit int `json:"default_limit"`

	// MaxLimit caps the number of recommendations per query.
	// Default: 50.
	MaxLimit int `json:"max_limit"`
}

// DefaultConfig returns the default recommender configuration.
func DefaultConfig() Config {
	return Config{
		Metric:       MetricCosine,
		NumWorkers:   4,
		DefaultLimit: 5,
		MaxLimit:     50,
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	switch c.Metric {
	case MetricCosine, MetricBinaryCosine:
	default:
		return fmt.Errorf("metric must be %q or %q, got %q", MetricCosine, MetricBinaryCosine, c.Metric)
	}
	if c.NumWorkers < 1 {
		return fmt.Errorf("num_workers must be positive, got %d", c.NumWorkers)
	}
	if c.DefaultLimit < 1 {
		return fmt.Errorf("default_limit must be positive, got %d", c.DefaultLimit)
	}
	if c.MaxLimit < c.DefaultLimit {
		return fmt.Errorf("max_limit (%d) must be >= default_limit (%d)", c.MaxLimit, c.DefaultLimit)
	}
	return nil
}

// ClampLimit resolves a requested result count against the configured limits.
// Non-positive requests get DefaultLimit; larger requests are capped at MaxLimit.
func (c *Config) ClampLimit(requested int) int {
	if requested <= 0 {
		return c.DefaultLimit
	}
	if requested > c.MaxLimit {
		return c.MaxLimit
	}
	return requested
}
