// Psalter - Worship Service Planning and Song Rotation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/psalter

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/psalter/config.yaml",
	"/etc/psalter/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config struct with all sensible default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:              3858,
			Host:              "0.0.0.0",
			Timeout:           30 * time.Second,
			Environment:       "development",
			CORSOrigins:       []string{"*"},
			RateLimitRequests: 120,
			RateLimitWindow:   time.Minute,
		},
		Database: DatabaseConfig{
			Path:                   "/data/psalter.duckdb",
			MaxMemory:              "1GB",
			Threads:                0,
			PreserveInsertionOrder: true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		Suggest: SuggestConfig{
			MaxResults:         5,
			MinDaysSinceUsed:   0,
			PopularityRestDays: 30,
			DefaultK:           10,
			MaxK:               50,
			FetchTimeout:       10 * time.Second,
			UsageLookback:      2 * 365 * 24 * time.Hour,
			ChunkSize:          50,
			ChunksPerSecond:    0,
			ChunkBurst:         4,
			ExcludeDisliked:    true,
			BoostFavorites:     true,
			PenalizeDifficult:  true,
		},
		Cache: CacheConfig{
			Backend:  "memory",
			Path:     "",
			Capacity: 10000,
		},
		Church: ChurchConfig{
			DefaultTimezone:   "UTC",
			DefaultHemisphere: "northern",
		},
		Breaker: BreakerConfig{
			Enabled:      true,
			Name:         "duckdb-store",
			MaxRequests:  3,
			Interval:     time.Minute,
			Timeout:      30 * time.Second,
			MinRequests:  10,
			FailureRatio: 0.6,
		},
		Backup: BackupConfig{
			Enabled:       false,
			Dir:           "/data/backups",
			Interval:      24 * time.Hour,
			Compress:      true,
			OnShutdown:    true,
			MinCount:      3,
			MaxCount:      60,
			MaxAgeDays:    90,
			KeepDailyDays: 14,
		},
	}
}

// LoadWithKoanf loads configuration using Koanf v2 with layered sources:
//  1. Defaults: Built-in sensible defaults
//  2. Config File: Optional YAML config file (if exists)
//  3. Environment Variables: Override any setting
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Load environment variables (highest priority)
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths should be parsed as comma-separated slices
var sliceConfigPaths = []string{
	"server.cors_origins",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
// This is necessary because env vars come in as strings, but the config expects slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envMappings maps environment variable names (lowercased) to koanf paths.
var envMappings = map[string]string{
	// Server
	"http_port":           "server.port",
	"http_host":           "server.host",
	"http_timeout":        "server.timeout",
	"environment":         "server.environment",
	"cors_origins":        "server.cors_origins",
	"rate_limit_requests": "server.rate_limit_requests",
	"rate_limit_window":   "server.rate_limit_window",

	// Database
	"duckdb_path":         "database.path",
	"duckdb_max_memory":   "database.max_memory",
	"duckdb_threads":      "database.threads",
	"duckdb_skip_indexes": "database.skip_indexes",
	"psalter_seed_path":   "database.seed_path",
	"psalter_seed_church": "database.seed_church_id",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	// Suggestions
	"suggest_max_results":          "suggest.max_results",
	"suggest_min_days_since_used":  "suggest.min_days_since_used",
	"suggest_popularity_rest_days": "suggest.popularity_rest_days",
	"suggest_default_k":            "suggest.default_k",
	"suggest_max_k":                "suggest.max_k",
	"suggest_fetch_timeout":        "suggest.fetch_timeout",
	"suggest_usage_lookback":       "suggest.usage_lookback",
	"suggest_chunk_size":           "suggest.chunk_size",
	"suggest_chunks_per_second":    "suggest.chunks_per_second",
	"suggest_chunk_burst":          "suggest.chunk_burst",
	"suggest_exclude_disliked":     "suggest.exclude_disliked",
	"suggest_boost_favorites":      "suggest.boost_favorites",
	"suggest_penalize_difficult":   "suggest.penalize_difficult",

	// Cache
	"cache_backend":  "cache.backend",
	"cache_path":     "cache.path",
	"cache_capacity": "cache.capacity",

	// Church defaults
	"church_default_timezone":   "church.default_timezone",
	"church_default_hemisphere": "church.default_hemisphere",

	// Circuit breaker
	"breaker_enabled":       "breaker.enabled",
	"breaker_max_requests":  "breaker.max_requests",
	"breaker_interval":      "breaker.interval",
	"breaker_timeout":       "breaker.timeout",
	"breaker_min_requests":  "breaker.min_requests",
	"breaker_failure_ratio": "breaker.failure_ratio",

	// Backups
	"backup_enabled":         "backup.enabled",
	"backup_dir":             "backup.dir",
	"backup_interval":        "backup.interval",
	"backup_compress":        "backup.compress",
	"backup_on_shutdown":     "backup.on_shutdown",
	"backup_min_count":       "backup.min_count",
	"backup_max_count":       "backup.max_count",
	"backup_max_age_days":    "backup.max_age_days",
	"backup_keep_daily_days": "backup.keep_daily_days",
}

// envTransformFunc transforms environment variable names to koanf config paths.
//
// Examples:
//   - DUCKDB_PATH -> database.path
//   - HTTP_PORT -> server.port
//   - SUGGEST_MAX_RESULTS -> suggest.max_results
func envTransformFunc(key string) string {
	if mapped, ok := envMappings[strings.ToLower(key)]; ok {
		return mapped
	}

	// For unmapped keys, return empty string to skip them
	// This prevents random environment variables from polluting config
	return ""
}
