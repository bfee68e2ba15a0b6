// Psalter - Worship Service Planning and Song Rotation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/psalter

package services

import (
	"context"
	"time"

	"github.com/tomtom215/psalter/internal/cache"
	"github.com/tomtom215/psalter/internal/metrics"
)

// DefaultCacheMetricsInterval is how often cache counters are exported.
const DefaultCacheMetricsInterval = 15 * time.Second

// CacheStatsSource reports cumulative cache counters. Satisfied by
// *cache.RatingCache.
type CacheStatsSource interface {
	Stats() cache.Stats
}

// CacheMetricsService exports the growth of a cache's hit and miss counts
// to the Prometheus cache counters.
type CacheMetricsService struct {
	source    CacheStatsSource
	cacheType string
	interval  time.Duration
	last      cache.Stats
}

// NewCacheMetricsService creates an exporter labelling samples with
// cacheType. A non-positive interval uses DefaultCacheMetricsInterval.
func NewCacheMetricsService(source CacheStatsSource, cacheType string, interval time.Duration) *CacheMetricsService {
	if interval <= 0 {
		interval = DefaultCacheMetricsInterval
	}
	return &CacheMetricsService{source: source, cacheType: cacheType, interval: interval}
}

// Serve implements suture.Service. The last sample is exported on shutdown.
func (s *CacheMetricsService) Serve(ctx context.Context) error {
	err := runEvery(ctx, s.interval, func(context.Context) error {
		s.export()
		return nil
	})
	s.export()
	return err
}

// export records the counter growth since the previous export. Counters
// that went backwards (a cache rebuilt after a restart) are exported from
// zero.
func (s *CacheMetricsService) export() {
	now := s.source.Stats()

	hits, misses := now.Hits-s.last.Hits, now.Misses-s.last.Misses
	if hits < 0 {
		hits = now.Hits
	}
	if misses < 0 {
		misses = now.Misses
	}
	metrics.RecordCacheStats(s.cacheType, hits, misses)
	s.last = now
}

// String names the service in supervisor events.
func (s *CacheMetricsService) String() string {
	return "cache-metrics-" + s.cacheType
}
