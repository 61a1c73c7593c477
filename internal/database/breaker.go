// Storelens - E-Commerce Customer and Sales Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storelens

package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/storelens/internal/analytics"
	"github.com/tomtom215/storelens/internal/config"
	"github.com/tomtom215/storelens/internal/logging"
	"github.com/tomtom215/storelens/internal/metrics"
	"github.com/tomtom215/storelens/internal/models"
)

// ErrSourceUnavailable is returned while the breaker rejects loads.
var ErrSourceUnavailable = errors.New("transaction source unavailable")

// BreakerSource guards a Source with a circuit breaker. Schema errors and
// caller cancellations do not count as failures: they say nothing about the
// backend's health.
//
// DETERMINISM NOTE: gobreaker uses wall-clock time for its interval and
// open timeout. Tests drive it with short timeouts rather than a fake clock.
type BreakerSource struct {
	src  Source
	cb   *gobreaker.CircuitBreaker[[]models.Transaction]
	name string
}

// NewBreakerSource wraps src. The breaker opens after cfg.MaxFailures
// consecutive failures and half-opens after cfg.OpenTimeout.
func NewBreakerSource(src Source, cfg config.BreakerConfig) *BreakerSource {
	if cfg.MaxFailures == 0 {
		cfg.MaxFailures = 3
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = 30 * time.Second
	}

	name := "source:" + src.Name()
	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)

	cb := gobreaker.NewCircuitBreaker[[]models.Transaction](gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    cfg.Interval,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			trip := counts.ConsecutiveFailures >= cfg.MaxFailures
			if trip {
				logging.Warn().
					Str("breaker", name).
					Uint32("consecutive_failures", counts.ConsecutiveFailures).
					Msg("[CIRCUIT BREAKER] Opening circuit")
			}
			return trip
		},
		IsSuccessful: func(err error) bool {
			return err == nil ||
				errors.Is(err, analytics.ErrSchema) ||
				errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Info().
				Str("breaker", name).
				Str("from", stateToString(from)).
				Str("to", stateToString(to)).
				Msg("[CIRCUIT BREAKER] State transition")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, stateToString(from), stateToString(to)).Inc()
		},
	})

	return &BreakerSource{src: src, cb: cb, name: name}
}

// Name returns the wrapped source's name.
func (b *BreakerSource) Name() string {
	return b.src.Name()
}

// Load runs the wrapped Load through the breaker.
func (b *BreakerSource) Load(ctx context.Context) ([]models.Transaction, error) {
	txns, err := b.cb.Execute(func() ([]models.Transaction, error) {
		return b.src.Load(ctx)
	})

	switch {
	case err == nil:
		metrics.CircuitBreakerRequests.WithLabelValues(b.name, "success").Inc()
		return txns, nil
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		metrics.CircuitBreakerRequests.WithLabelValues(b.name, "rejected").Inc()
		return nil, fmt.Errorf("%w: %s: %w", ErrSourceUnavailable, b.src.Name(), err)
	default:
		metrics.CircuitBreakerRequests.WithLabelValues(b.name, "failure").Inc()
		return nil, err
	}
}

// State reports the breaker state as "closed", "half-open" or "open".
func (b *BreakerSource) State() string {
	return stateToString(b.cb.State())
}

// Close closes the wrapped source.
func (b *BreakerSource) Close() error {
	return b.src.Close()
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
