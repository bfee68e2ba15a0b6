// Psalter - Worship Service Planning and Song Rotation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/psalter

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/psalter/internal/middleware"
	"github.com/tomtom215/psalter/internal/recommend"
)

// ServerStats is the body of GET /api/v1/stats.
type ServerStats struct {
	Engine    recommend.Stats            `json:"engine"`
	Cache     CacheStats                 `json:"cache"`
	Endpoints []middleware.EndpointStats `json:"endpoints,omitempty"`
	Uptime    float64                    `json:"uptime_seconds"`
}

// CacheStats summarizes the rating cache.
type CacheStats struct {
	Hits    int64   `json:"hits"`
	Misses  int64   `json:"misses"`
	HitRate float64 `json:"hit_rate"`
}

// Stats returns engine counters, rating cache effectiveness and
// per-endpoint latency.
func (h *Handler) Stats(w http.ResponseWriter, _ *http.Request) {
	start := time.Now()

	stats := ServerStats{
		Engine: h.engine.Stats(),
		Uptime: time.Since(h.startTime).Seconds(),
	}
	if h.ratings != nil {
		cs := h.ratings.Cache().Stats()
		stats.Cache = CacheStats{Hits: cs.Hits, Misses: cs.Misses, HitRate: cs.HitRate()}
	}
	if h.perf != nil {
		stats.Endpoints = h.perf.Stats()
	}

	respondSuccess(w, stats, start)
}
