// Storelens - E-Commerce Customer and Sales Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storelens

// Package config loads Storelens configuration.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: built-in values for every setting
//  2. Config File: optional YAML file (CONFIG_PATH or config.yaml)
//  3. Environment Variables: explicit names such as SOURCE_DRIVER or HTTP_PORT
//
// A .env file, when present, is read into the process environment by the
// binaries before Load runs, so it sits between the file and real env vars.
package config

import (
	"fmt"
	"time"
)

// Source drivers.
const (
	DriverDuckDB   = "duckdb"
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Source    SourceConfig    `koanf:"source"`
	Analytics AnalyticsConfig `koanf:"analytics"`
	Cache     CacheConfig     `koanf:"cache"`
	Reload    ReloadConfig    `koanf:"reload"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port        int           `koanf:"port" validate:"min=1,max=65535"`
	Host        string        `koanf:"host"`
	Timeout     time.Duration `koanf:"timeout" validate:"gt=0"`
	Environment string        `koanf:"environment" validate:"oneof=development staging production"`
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// SourceConfig selects where the transaction snapshot is loaded from.
//
// duckdb reads CSVPath through read_csv_auto when set, otherwise Table from
// the database at Path ("" opens an in-memory database). postgres and mysql
// read Table over DSN.
type SourceConfig struct {
	Driver      string        `koanf:"driver" validate:"oneof=duckdb postgres mysql"`
	Path        string        `koanf:"path"`
	CSVPath     string        `koanf:"csv_path"`
	Table       string        `koanf:"table" validate:"required,max=128"`
	DSN         string        `koanf:"dsn"`
	LoadTimeout time.Duration `koanf:"load_timeout" validate:"gt=0"`
	Breaker     BreakerConfig `koanf:"breaker"`
}

// BreakerConfig tunes the circuit breaker wrapped around source loads.
type BreakerConfig struct {
	MaxFailures uint32        `koanf:"max_failures" validate:"min=1"`
	OpenTimeout time.Duration `koanf:"open_timeout" validate:"gt=0"`
	Interval    time.Duration `koanf:"interval"`
}

// AnalyticsConfig holds engine parameters.
type AnalyticsConfig struct {
	// ReferenceBufferDays is added to the latest order date to form the
	// RFM reference date.
	ReferenceBufferDays int `koanf:"reference_buffer_days" validate:"min=0,max=365"`

	// Buckets is the number of RFM quantile bins.
	Buckets int `koanf:"buckets" validate:"min=2,max=5"`

	TopN      int `koanf:"top_n" validate:"min=1,max=1000"`
	PairLimit int `koanf:"pair_limit" validate:"min=1,max=1000"`

	Recommend RecommendConfig `koanf:"recommend"`
}

// RecommendConfig holds similarity and recommendation settings.
type RecommendConfig struct {
	Metric       string `koanf:"metric" validate:"oneof=cosine binary_cosine"`
	NumWorkers   int    `koanf:"num_workers" validate:"min=0,max=256"`
	DefaultLimit int    `koanf:"default_limit" validate:"min=1"`
	MaxLimit     int    `koanf:"max_limit" validate:"min=1,max=1000"`
}

// CacheConfig controls the derived-table cache.
type CacheConfig struct {
	Enabled bool          `koanf:"enabled"`
	TTL     time.Duration `koanf:"ttl"`
}

// ReloadConfig controls periodic snapshot refresh. Interval 0 disables it.
type ReloadConfig struct {
	Interval time.Duration `koanf:"interval" validate:"min=0"`

	// AdminPerMinute throttles POST /api/v1/admin/reload.
	AdminPerMinute int `koanf:"admin_per_minute" validate:"min=1,max=600"`
}

// SecurityConfig holds CORS and rate limiting settings.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs" validate:"min=1"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	Level string `koanf:"level"`

	// Format is the output format: json or console.
	Format string `koanf:"format"`

	// Caller adds file:line to every entry.
	Caller bool `koanf:"caller"`
}
