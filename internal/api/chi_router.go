// Storelens - E-Commerce Customer and Sales Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storelens

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/storelens/internal/middleware"
)

// Router wires handlers and middleware into a chi router.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a router. A nil mw uses DefaultChiMiddlewareConfig.
func NewRouter(handler *Handler, mw *ChiMiddleware) *Router {
	if mw == nil {
		mw = NewChiMiddleware(nil)
	}
	return &Router{handler: handler, chiMiddleware: mw}
}

// SetupChi configures all HTTP routes.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	// ========================
	// Global Middleware Stack
	// ========================
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.AccessLog)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Compress(5, "application/json"))
	r.Use(router.chiMiddleware.CORS())

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		NewResponseWriter(w, r).NotFound("Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, r, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed")
	})

	// ========================
	// Health and Metrics
	// ========================
	r.Route("/health", func(r chi.Router) {
		r.Get("/", router.handler.Health)
		r.Get("/live", router.handler.HealthLive)
		r.Get("/ready", router.handler.HealthReady)
	})
	r.Handle("/metrics", promhttp.Handler())

	// ========================
	// Analytics Endpoints
	// ========================
	r.Route("/api/v1/analytics", func(r chi.Router) {
		r.Use(middleware.PrometheusMetrics)
		r.Use(router.chiMiddleware.RateLimit("analytics"))

		r.Get("/kpis", router.handler.KPIs)
		r.Get("/sales/monthly", router.handler.MonthlySales)
		r.Get("/sales/growth", router.handler.MonthlyGrowth)
		r.Get("/sales/weekday", router.handler.WeekdaySales)
		r.Get("/categories", router.handler.Categories)
		r.Get("/products/top", router.handler.TopProducts)
		r.Get("/treemap", router.handler.Treemap)
		r.Get("/regions/cities", router.handler.Cities)
		r.Get("/regions/countries", router.handler.Countries)

		r.Get("/rfm", router.handler.RFM)
		r.Get("/rfm/segments", router.handler.SegmentSummary)
		r.Get("/rfm/top", router.handler.TopCustomers)
		r.Get("/rfm/customers/{id}", router.handler.Customer)
		r.Get("/cohorts/retention", router.handler.Retention)

		r.Get("/similarity", router.handler.Similarity)
		r.Get("/similarity/pairs", router.handler.SimilarPairs)
		r.Get("/recommendations", router.handler.Recommendations)
	})

	// ========================
	// Operations Endpoints
	// ========================
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.PrometheusMetrics)
		r.Use(router.chiMiddleware.RateLimit("api"))

		r.Get("/status", router.handler.Status)
		r.Post("/admin/reload", router.handler.Reload)
	})

	return r
}
