// Psalter - Worship Service Planning and Song Rotation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/psalter

package api

import (
	"context"
	"time"

	"github.com/tomtom215/psalter/internal/middleware"
	"github.com/tomtom215/psalter/internal/recommend"
)

// Pinger checks that the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// SongRetirer applies an auto-retire decision.
type SongRetirer interface {
	SetSongRetired(ctx context.Context, churchID, songID string, retired bool) error
}

// BreakerStater reports the store circuit breaker state.
type BreakerStater interface {
	State() string
}

// Handler holds the dependencies of the HTTP handlers.
type Handler struct {
	engine  *recommend.Engine
	ratings *recommend.RatingService

	db      Pinger
	retirer SongRetirer
	breaker BreakerStater
	perf    *middleware.PerformanceMonitor

	version   string
	startTime time.Time
}

// HandlerOption configures optional Handler dependencies.
type HandlerOption func(*Handler)

// WithPinger sets the store used by the health endpoints.
func WithPinger(p Pinger) HandlerOption {
	return func(h *Handler) { h.db = p }
}

// WithRetirer enables applying retirement decisions.
func WithRetirer(r SongRetirer) HandlerOption {
	return func(h *Handler) { h.retirer = r }
}

// WithBreaker exposes the circuit breaker state on the health endpoint.
func WithBreaker(b BreakerStater) HandlerOption {
	return func(h *Handler) { h.breaker = b }
}

// WithPerformanceMonitor exposes per-endpoint latency on /api/v1/stats.
func WithPerformanceMonitor(pm *middleware.PerformanceMonitor) HandlerOption {
	return func(h *Handler) { h.perf = pm }
}

// WithVersion sets the version reported by the health endpoint.
func WithVersion(v string) HandlerOption {
	return func(h *Handler) { h.version = v }
}

// NewHandler creates the HTTP handlers.
func NewHandler(engine *recommend.Engine, ratings *recommend.RatingService, opts ...HandlerOption) *Handler {
	h := &Handler{
		engine:    engine,
		ratings:   ratings,
		version:   "dev",
		startTime: time.Now(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}
