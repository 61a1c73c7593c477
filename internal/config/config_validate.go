// Storelens - E-Commerce Customer and Sales Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storelens

package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/tomtom215/storelens/internal/logging"
	"github.com/tomtom215/storelens/internal/validation"
)

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	if verr := validation.ValidateStruct(c); verr != nil {
		return fmt.Errorf("invalid configuration: %w", verr)
	}

	if err := c.validateSource(); err != nil {
		return err
	}

	if err := c.validateRecommend(); err != nil {
		return err
	}

	if err := c.validateSecurity(); err != nil {
		return err
	}

	return c.validateLogging()
}

// validateSource checks the per-driver requirements.
func (c *Config) validateSource() error {
	switch c.Source.Driver {
	case DriverDuckDB:
		if c.Source.CSVPath == "" && c.Source.Path == "" {
			return fmt.Errorf("CSV_PATH or DUCKDB_PATH is required when SOURCE_DRIVER=duckdb")
		}
	case DriverPostgres, DriverMySQL:
		if c.Source.DSN == "" {
			return fmt.Errorf("DATABASE_URL is required when SOURCE_DRIVER=%s", c.Source.Driver)
		}
		if strings.Contains(c.Source.DSN, "://") {
			if _, err := url.Parse(c.Source.DSN); err != nil {
				return fmt.Errorf("DATABASE_URL is invalid: %w", err)
			}
		}
	}
	return validateIdentifier(c.Source.Table)
}

// validateIdentifier accepts schema-qualified SQL identifiers made of
// letters, digits and underscores.
func validateIdentifier(name string) error {
	for _, part := range strings.Split(name, ".") {
		if part == "" {
			return fmt.Errorf("SOURCE_TABLE %q is not a valid table name", name)
		}
		for i, r := range part {
			isLetter := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '_'
			isDigit := r >= '0' && r <= '9'
			if !isLetter && !(isDigit && i > 0) {
				return fmt.Errorf("SOURCE_TABLE %q is not a valid table name", name)
			}
		}
	}
	return nil
}

func (c *Config) validateRecommend() error {
	r := c.Analytics.Recommend
	if r.DefaultLimit > r.MaxLimit {
		return fmt.Errorf("RECOMMEND_DEFAULT_LIMIT (%d) must not exceed RECOMMEND_MAX_LIMIT (%d)", r.DefaultLimit, r.MaxLimit)
	}
	return nil
}

func (c *Config) validateSecurity() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive")
	}
	return nil
}

// ShouldWarnAboutCORS reports a wildcard origin outside development.
func (c *Config) ShouldWarnAboutCORS() bool {
	if c.IsDevelopment() {
		return false
	}
	for _, origin := range c.Security.CORSOrigins {
		if origin == "*" {
			return true
		}
	}
	return false
}

// IsProduction returns true when running in production.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// IsDevelopment returns true when running in development.
func (c *Config) IsDevelopment() bool {
	return c.Server.Environment == "development"
}

func (c *Config) validateLogging() error {
	if !logging.ValidLevel(c.Logging.Level) {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	switch c.Logging.Format {
	case "", "json", "console":
		return nil
	default:
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
}

// LogConfig converts the logging section for logging.Init.
func (c *Config) LogConfig() logging.Config {
	lc := logging.DefaultConfig()
	lc.Level = c.Logging.Level
	lc.Format = c.Logging.Format
	lc.Caller = c.Logging.Caller
	return lc
}
