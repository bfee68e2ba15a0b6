// Psalter - Worship Service Planning and Song Rotation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/psalter

/*
Package middleware provides HTTP middleware components for the Psalter API.

Key Components:

  - RequestID: X-Request-ID propagation into the logging context
  - PrometheusMetrics: request counters, latency histograms and in-flight gauge
  - Compression: gzip for clients that accept it
  - PerformanceMonitor: in-process latency percentiles per route

All middleware uses chi's func(http.Handler) http.Handler shape:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.PrometheusMetrics)

	perf := middleware.NewPerformanceMonitor(1000)
	r.Use(perf.Middleware)

Metrics and performance samples are keyed by the chi route pattern
("/api/v1/churches/{churchID}/suggestions") rather than the raw path, so
church and song IDs never become label values.
*/
package middleware
