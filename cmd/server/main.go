// Storelens - E-Commerce Customer and Sales Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storelens

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/tomtom215/storelens/internal/api"
	"github.com/tomtom215/storelens/internal/config"
	"github.com/tomtom215/storelens/internal/database"
	"github.com/tomtom215/storelens/internal/logging"
	"github.com/tomtom215/storelens/internal/store"
	"github.com/tomtom215/storelens/internal/supervisor"
	"github.com/tomtom215/storelens/internal/supervisor/services"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// A missing .env is normal outside development.
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(cfg.LogConfig())
	if envErr != nil && !errors.Is(envErr, os.ErrNotExist) {
		logging.Warn().Err(envErr).Msg("Failed to read .env file")
	}

	logging.Info().
		Str("environment", cfg.Server.Environment).
		Str("source_driver", cfg.Source.Driver).
		Bool("cache_enabled", cfg.Cache.Enabled).
		Dur("reload_interval", cfg.Reload.Interval).
		Msg("Starting Storelens with supervisor tree")

	if cfg.ShouldWarnAboutCORS() {
		logging.Warn().Msg("CORS allows all origins outside development; set CORS_ORIGINS")
	}

	src, err := database.Open(cfg.Source)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open transaction source")
	}
	defer func() {
		if err := src.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing transaction source")
		}
	}()
	logging.Info().Str("source", src.Name()).Msg("Transaction source opened")

	st := store.New(src, store.OptionsFromConfig(cfg))
	defer st.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), supervisor.TreeConfig{
		FailureThreshold: 5,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  shutdownTimeout,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	handler := api.NewHandler(st, cfg.Reload.AdminPerMinute)
	router := api.NewRouter(handler, api.NewChiMiddleware(api.ChiMiddlewareConfigFromSecurity(cfg.Security)))

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}

	tree.AddDataService(services.NewReloadService(st, services.ReloadServiceConfig{
		LoadOnStartup: true,
		Interval:      cfg.Reload.Interval,
	}, logging.WithComponent("reload")))
	tree.AddAPIService(services.NewHTTPServerService(server, shutdownTimeout))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Str("addr", server.Addr).Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	if unstopped, _ := tree.UnstoppedServiceReport(); len(unstopped) > 0 {
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
		}
	}

	logging.Info().Msg("Application stopped gracefully")
}
