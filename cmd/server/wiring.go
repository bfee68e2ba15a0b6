// Psalter - Worship Service Planning and Song Rotation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/psalter

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/dgraph-io/badger/v4"

	"github.com/tomtom215/psalter/internal/api"
	"github.com/tomtom215/psalter/internal/backup"
	"github.com/tomtom215/psalter/internal/cache"
	"github.com/tomtom215/psalter/internal/config"
	"github.com/tomtom215/psalter/internal/models"
	"github.com/tomtom215/psalter/internal/recommend"
)

// backupConfig converts the backup settings into a snapshot manager config.
func backupConfig(cfg config.BackupConfig) backup.Config {
	return backup.Config{
		Dir:      cfg.Dir,
		Interval: cfg.Interval,
		Compress: cfg.Compress,
		Retention: backup.RetentionPolicy{
			MinCount:         cfg.MinCount,
			MaxCount:         cfg.MaxCount,
			MaxAgeDays:       cfg.MaxAgeDays,
			KeepDailyForDays: cfg.KeepDailyDays,
		},
	}
}

// buildEngineConfig converts the suggestion settings into an engine config.
func buildEngineConfig(cfg *config.Config) *recommend.Config {
	ec := recommend.DefaultConfig()
	s := cfg.Suggest

	ec.Preferences = recommend.PreferenceOptions{
		ExcludeDisliked:   s.ExcludeDisliked,
		BoostFavorites:    s.BoostFavorites,
		PenalizeDifficult: s.PenalizeDifficult,
	}
	ec.Suggest.MaxResults = s.MaxResults
	ec.Suggest.MinDaysSinceUsed = s.MinDaysSinceUsed
	ec.Suggest.PopularityRestDays = s.PopularityRestDays

	ec.Limits.DefaultK = s.DefaultK
	ec.Limits.MaxK = s.MaxK
	if s.FetchTimeout > 0 {
		ec.Limits.FetchTimeout = s.FetchTimeout
	}
	if s.UsageLookback > 0 {
		ec.Limits.UsageLookback = s.UsageLookback
	}

	ec.Batch = batchConfig(cfg)
	return ec
}

func batchConfig(cfg *config.Config) recommend.BatchConfig {
	return recommend.BatchConfig{
		ChunkSize:       cfg.Suggest.ChunkSize,
		ChunksPerSecond: cfg.Suggest.ChunksPerSecond,
		Burst:           cfg.Suggest.ChunkBurst,
	}
}

// buildMiddlewareConfig maps server settings onto the Chi middleware config.
func buildMiddlewareConfig(cfg *config.Config) *api.ChiMiddlewareConfig {
	mc := api.DefaultChiMiddlewareConfig()
	mc.CORSAllowedOrigins = cfg.Server.CORSOrigins
	mc.RateLimitRequests = cfg.Server.RateLimitRequests
	if cfg.Server.RateLimitWindow > 0 {
		mc.RateLimitWindow = cfg.Server.RateLimitWindow
	}
	return mc
}

// openRatingCache builds the rating cache for the configured backend. The
// returned closer releases the Badger database and is a no-op for memory.
// A Badger cache is emptied on open because seed imports and psalterctl
// write ratings without going through the server.
func openRatingCache(cfg config.CacheConfig) (*cache.RatingCache, io.Closer, error) {
	switch cache.Backend(strings.ToLower(cfg.Backend)) {
	case cache.BackendMemory, "":
		return cache.NewMemoryRatingCache(cfg.Capacity), nopCloser{}, nil
	case cache.BackendBadger:
		db, err := cache.OpenBadger(cfg.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("open badger cache: %w", err)
		}
		if err := cache.ResetBadgerRatingCache(db); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return cache.NewBadgerRatingCache(db), badgerCloser{db}, nil
	default:
		return nil, nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}

func churchDefaults(cfg config.ChurchConfig) (string, models.Hemisphere) {
	return cfg.DefaultTimezone, models.ParseHemisphere(strings.ToLower(cfg.DefaultHemisphere))
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

type badgerCloser struct{ db *badger.DB }

func (c badgerCloser) Close() error { return c.db.Close() }
