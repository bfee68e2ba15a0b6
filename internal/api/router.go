// Psalter - Worship Service Planning and Song Rotation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/psalter

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/psalter/internal/middleware"
)

// Router wires handlers and middleware onto a Chi router.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
	perf          *middleware.PerformanceMonitor
}

// NewRouter creates a router. A nil config uses DefaultChiMiddlewareConfig;
// a nil monitor disables slow-request tracking.
func NewRouter(handler *Handler, config *ChiMiddlewareConfig, perf *middleware.PerformanceMonitor) *Router {
	return &Router{
		handler:       handler,
		chiMiddleware: NewChiMiddleware(config),
		perf:          perf,
	}
}

// Setup configures all HTTP routes.
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware, applied to every route in order.
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS())
	r.Use(middleware.PrometheusMetrics)
	if router.perf != nil {
		r.Use(router.perf.Middleware)
	}

	// promhttp compresses on its own, so /metrics stays outside the gzip group.
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit("api"))
		r.Use(middleware.Compression)

		r.Route("/health", func(r chi.Router) {
			r.Get("/", router.handler.Health)
			r.Get("/live", router.handler.HealthLive)
			r.Get("/ready", router.handler.HealthReady)
		})

		r.Route("/churches/{churchID}", func(r chi.Router) {
			r.Use(ChurchContext)
			r.Get("/suggestions", router.handler.Suggestions)
			r.Get("/insights", router.handler.Insights)
			r.Get("/songs/{songID}/retirement", router.handler.Retirement)
			r.Post("/songs/{songID}/retirement", router.handler.ApplyRetirement)
		})

		r.Route("/songs/{songID}", func(r chi.Router) {
			r.Use(ChurchContext)
			r.Get("/ratings", router.handler.RatingSummary)
			r.Put("/rating", router.handler.SetRating)
			r.Delete("/rating", router.handler.DeleteRating)
		})

		r.Get("/stats", router.handler.Stats)
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "Route not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
	})

	return r
}
