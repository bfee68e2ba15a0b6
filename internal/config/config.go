// Psalter - Worship Service Planning and Song Rotation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/psalter

package config

import "time"

// Config holds all application configuration
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	Logging  LoggingConfig  `koanf:"logging"`
	Suggest  SuggestConfig  `koanf:"suggest"`
	Cache    CacheConfig    `koanf:"cache"`
	Church   ChurchConfig   `koanf:"church"`
	Breaker  BreakerConfig  `koanf:"breaker"`
	Backup   BackupConfig   `koanf:"backup"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port        int           `koanf:"port"`
	Host        string        `koanf:"host"`
	Timeout     time.Duration `koanf:"timeout"`
	Environment string        `koanf:"environment"` // "development", "staging", "production"

	// CORSOrigins lists allowed origins. "*" allows any origin.
	CORSOrigins []string `koanf:"cors_origins"`

	// RateLimitRequests is the per-IP request budget per RateLimitWindow.
	// Zero disables rate limiting.
	RateLimitRequests int           `koanf:"rate_limit_requests"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
}

// DatabaseConfig holds DuckDB settings
type DatabaseConfig struct {
	Path                   string `koanf:"path"`
	MaxMemory              string `koanf:"max_memory"`
	Threads                int    `koanf:"threads"`                  // Number of DuckDB threads (0 = use NumCPU)
	PreserveInsertionOrder bool   `koanf:"preserve_insertion_order"` // Whether to preserve insertion order (default true)
	SkipIndexes            bool   `koanf:"skip_indexes"`             // Skip index creation (for fast test setup)
	SeedPath               string `koanf:"seed_path"`                // Optional JSON library export loaded at startup
	SeedChurchID           string `koanf:"seed_church_id"`           // Church assigned to seeded songs without one
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level"`

	// Format is the output format: json or console.
	// Default: json
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	// Default: false
	Caller bool `koanf:"caller"`
}

// SuggestConfig holds suggestion engine settings
type SuggestConfig struct {
	MaxResults         int `koanf:"max_results"`
	MinDaysSinceUsed   int `koanf:"min_days_since_used"`
	PopularityRestDays int `koanf:"popularity_rest_days"`
	DefaultK           int `koanf:"default_k"`
	MaxK               int `koanf:"max_k"`

	FetchTimeout  time.Duration `koanf:"fetch_timeout"`
	UsageLookback time.Duration `koanf:"usage_lookback"`

	// Preference lookups are chunked and optionally paced.
	ChunkSize       int     `koanf:"chunk_size"`
	ChunksPerSecond float64 `koanf:"chunks_per_second"`
	ChunkBurst      int     `koanf:"chunk_burst"`

	ExcludeDisliked   bool `koanf:"exclude_disliked"`
	BoostFavorites    bool `koanf:"boost_favorites"`
	PenalizeDifficult bool `koanf:"penalize_difficult"`
}

// CacheConfig selects the rating cache backend
type CacheConfig struct {
	// Backend is "memory" or "badger".
	Backend string `koanf:"backend"`

	// Path is the Badger directory. Empty runs Badger in memory.
	Path string `koanf:"path"`

	// Capacity bounds each in-memory LRU.
	Capacity int `koanf:"capacity"`
}

// ChurchConfig holds fallbacks for churches with no stored locale
type ChurchConfig struct {
	DefaultTimezone   string `koanf:"default_timezone"`
	DefaultHemisphere string `koanf:"default_hemisphere"`
}

// BreakerConfig holds circuit breaker settings for database reads
type BreakerConfig struct {
	Enabled      bool          `koanf:"enabled"`
	Name         string        `koanf:"name"`
	MaxRequests  uint32        `koanf:"max_requests"`  // Requests allowed in half-open state
	Interval     time.Duration `koanf:"interval"`      // Count reset period in closed state
	Timeout      time.Duration `koanf:"timeout"`       // Open duration before half-open
	MinRequests  uint32        `koanf:"min_requests"`  // Requests needed before tripping
	FailureRatio float64       `koanf:"failure_ratio"` // Failure ratio that trips the breaker
}

// BackupConfig holds scheduled library snapshot settings
type BackupConfig struct {
	Enabled    bool          `koanf:"enabled"`
	Dir        string        `koanf:"dir"`
	Interval   time.Duration `koanf:"interval"`
	Compress   bool          `koanf:"compress"`
	OnShutdown bool          `koanf:"on_shutdown"` // Take a final snapshot when the server stops

	// Retention
	MinCount      int `koanf:"min_count"`
	MaxCount      int `koanf:"max_count"`    // 0 = unlimited
	MaxAgeDays    int `koanf:"max_age_days"` // 0 = unlimited
	KeepDailyDays int `koanf:"keep_daily_days"`
}

// IsProduction reports whether the server runs in production mode.
func (c *ServerConfig) IsProduction() bool {
	return c.Environment == "production"
}
