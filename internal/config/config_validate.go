// Psalter - Worship Service Planning and Song Rotation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/psalter

package config

import (
	"fmt"
	"strings"
	"time"
)

// Validate checks the configuration for errors
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateDatabase(); err != nil {
		return err
	}
	if err := c.validateSuggest(); err != nil {
		return err
	}
	if err := c.validateCache(); err != nil {
		return err
	}
	if err := c.validateChurch(); err != nil {
		return err
	}
	if err := c.validateBreaker(); err != nil {
		return err
	}
	if err := c.validateBackup(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive, got %v", c.Server.Timeout)
	}
	switch c.Server.Environment {
	case "development", "staging", "production":
	default:
		return fmt.Errorf("ENVIRONMENT must be development, staging or production, got %q", c.Server.Environment)
	}
	if c.Server.RateLimitRequests < 0 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be non-negative, got %d", c.Server.RateLimitRequests)
	}
	if c.Server.RateLimitRequests > 0 && c.Server.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive when rate limiting is enabled")
	}
	return nil
}

func (c *Config) validateDatabase() error {
	if strings.TrimSpace(c.Database.Path) == "" {
		return fmt.Errorf("DUCKDB_PATH is required")
	}
	if c.Database.Threads < 0 {
		return fmt.Errorf("DUCKDB_THREADS must be non-negative, got %d", c.Database.Threads)
	}
	return nil
}

func (c *Config) validateSuggest() error {
	s := &c.Suggest
	switch {
	case s.MaxResults < 1:
		return fmt.Errorf("SUGGEST_MAX_RESULTS must be positive, got %d", s.MaxResults)
	case s.MinDaysSinceUsed < 0:
		return fmt.Errorf("SUGGEST_MIN_DAYS_SINCE_USED must be non-negative, got %d", s.MinDaysSinceUsed)
	case s.PopularityRestDays < 0:
		return fmt.Errorf("SUGGEST_POPULARITY_REST_DAYS must be non-negative, got %d", s.PopularityRestDays)
	case s.DefaultK < 1:
		return fmt.Errorf("SUGGEST_DEFAULT_K must be positive, got %d", s.DefaultK)
	case s.MaxK < s.DefaultK:
		return fmt.Errorf("SUGGEST_MAX_K must be >= SUGGEST_DEFAULT_K, got %d < %d", s.MaxK, s.DefaultK)
	case s.FetchTimeout <= 0:
		return fmt.Errorf("SUGGEST_FETCH_TIMEOUT must be positive, got %v", s.FetchTimeout)
	case s.UsageLookback < 24*time.Hour:
		return fmt.Errorf("SUGGEST_USAGE_LOOKBACK must be at least 24h, got %v", s.UsageLookback)
	case s.ChunkSize < 1:
		return fmt.Errorf("SUGGEST_CHUNK_SIZE must be positive, got %d", s.ChunkSize)
	case s.ChunksPerSecond < 0:
		return fmt.Errorf("SUGGEST_CHUNKS_PER_SECOND must be non-negative, got %v", s.ChunksPerSecond)
	case s.ChunkBurst < 0:
		return fmt.Errorf("SUGGEST_CHUNK_BURST must be non-negative, got %d", s.ChunkBurst)
	}
	return nil
}

func (c *Config) validateCache() error {
	switch c.Cache.Backend {
	case "memory", "badger":
	default:
		return fmt.Errorf("CACHE_BACKEND must be memory or badger, got %q", c.Cache.Backend)
	}
	if c.Cache.Capacity < 1 {
		return fmt.Errorf("CACHE_CAPACITY must be positive, got %d", c.Cache.Capacity)
	}
	return nil
}

func (c *Config) validateChurch() error {
	if c.Church.DefaultTimezone != "" {
		if _, err := time.LoadLocation(c.Church.DefaultTimezone); err != nil {
			return fmt.Errorf("CHURCH_DEFAULT_TIMEZONE %q is not a valid IANA zone: %w", c.Church.DefaultTimezone, err)
		}
	}
	switch c.Church.DefaultHemisphere {
	case "", "northern", "southern":
	default:
		return fmt.Errorf("CHURCH_DEFAULT_HEMISPHERE must be northern or southern, got %q", c.Church.DefaultHemisphere)
	}
	return nil
}

func (c *Config) validateBreaker() error {
	if !c.Breaker.Enabled {
		return nil
	}
	if c.Breaker.MaxRequests == 0 {
		return fmt.Errorf("BREAKER_MAX_REQUESTS must be positive")
	}
	if c.Breaker.Timeout <= 0 {
		return fmt.Errorf("BREAKER_TIMEOUT must be positive, got %v", c.Breaker.Timeout)
	}
	if c.Breaker.FailureRatio <= 0 || c.Breaker.FailureRatio > 1 {
		return fmt.Errorf("BREAKER_FAILURE_RATIO must be in (0, 1], got %v", c.Breaker.FailureRatio)
	}
	return nil
}

func (c *Config) validateBackup() error {
	b := &c.Backup
	if !b.Enabled {
		return nil
	}
	switch {
	case strings.TrimSpace(b.Dir) == "":
		return fmt.Errorf("BACKUP_DIR is required when backups are enabled")
	case b.Interval < time.Minute:
		return fmt.Errorf("BACKUP_INTERVAL must be at least 1m, got %v", b.Interval)
	case b.MinCount < 0 || b.MaxCount < 0 || b.MaxAgeDays < 0 || b.KeepDailyDays < 0:
		return fmt.Errorf("BACKUP retention values must be non-negative")
	case b.MaxCount > 0 && b.MaxCount < b.MinCount:
		return fmt.Errorf("BACKUP_MAX_COUNT must be >= BACKUP_MIN_COUNT, got %d < %d", b.MaxCount, b.MinCount)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(c.Logging.Level) {
	case "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("LOG_LEVEL must be one of trace, debug, info, warn, error, got %q", c.Logging.Level)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "json", "console":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Logging.Format)
	}
	return nil
}
