// Storelens - E-Commerce Customer and Sales Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storelens

// Command report loads the configured transaction source once and exports
// analytics reports as timestamped JSON files.
//
//	report --report=all --product="Desk Lamp" --out=reports/ --start=2024-01-01
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/tomtom215/storelens/internal/config"
	"github.com/tomtom215/storelens/internal/database"
	"github.com/tomtom215/storelens/internal/logging"
	"github.com/tomtom215/storelens/internal/report"
	"github.com/tomtom215/storelens/internal/store"
	"github.com/tomtom215/storelens/internal/validation"
)

func main() {
	if err := run(); err != nil {
		logging.Error().Err(err).Msg("Report generation failed")
		os.Exit(1)
	}
}

func run() error {
	req := validation.ReportRequest{}
	flag.StringVar(&req.Report, "report", report.KindAll, "Report to generate: kpis, rfm, cohorts, recommend or all")
	flag.StringVar(&req.Product, "product", "", "Product to recommend for (required for recommend)")
	flag.StringVar(&req.Out, "out", "reports/", "Output directory")
	flag.StringVar(&req.Start, "start", "", "First order date to include (YYYY-MM-DD)")
	flag.StringVar(&req.End, "end", "", "Last order date to include (YYYY-MM-DD)")
	flag.Parse()

	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	logging.Init(cfg.LogConfig())
	if envErr != nil && !errors.Is(envErr, os.ErrNotExist) {
		logging.Warn().Err(envErr).Msg("Failed to read .env file")
	}

	req.Product = strings.TrimSpace(req.Product)
	if verr := validation.ValidateStruct(&req); verr != nil {
		flag.Usage()
		return verr
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	src, err := database.Open(cfg.Source)
	if err != nil {
		return fmt.Errorf("open transaction source: %w", err)
	}
	defer func() {
		if err := src.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing transaction source")
		}
	}()

	// One-shot run: every view is computed once, so the cache is skipped.
	opts := store.OptionsFromConfig(cfg)
	opts.CacheTTL = 0
	st := store.New(src, opts)
	defer st.Close()

	snap, err := st.Reload(ctx)
	if err != nil {
		return fmt.Errorf("load transactions: %w", err)
	}
	logging.Info().
		Str("source", snap.Source).
		Int("transactions", len(snap.Transactions)).
		Msg("Transactions loaded")

	paths, err := report.Generate(ctx, st, report.Request{
		Kind:    req.Report,
		Product: req.Product,
		Filter:  req.Filter(),
		OutDir:  req.Out,
	}, os.Stderr)
	if err != nil {
		return err
	}

	for _, path := range paths {
		fmt.Println(path)
	}
	return nil
}
