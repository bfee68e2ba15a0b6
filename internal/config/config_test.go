// Psalter - Worship Service Planning and Song Rotation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/psalter

package config

import (
	"strings"
	"testing"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"port zero", func(c *Config) { c.Server.Port = 0 }, "HTTP_PORT"},
		{"bad environment", func(c *Config) { c.Server.Environment = "prod" }, "ENVIRONMENT"},
		{"rate limit without window", func(c *Config) { c.Server.RateLimitWindow = 0 }, "RATE_LIMIT_WINDOW"},
		{"rate limit disabled", func(c *Config) { c.Server.RateLimitRequests = 0; c.Server.RateLimitWindow = 0 }, ""},
		{"empty database path", func(c *Config) { c.Database.Path = " " }, "DUCKDB_PATH"},
		{"max results zero", func(c *Config) { c.Suggest.MaxResults = 0 }, "SUGGEST_MAX_RESULTS"},
		{"negative rest", func(c *Config) { c.Suggest.MinDaysSinceUsed = -1 }, "SUGGEST_MIN_DAYS_SINCE_USED"},
		{"max k below default", func(c *Config) { c.Suggest.MaxK = 5 }, "SUGGEST_MAX_K"},
		{"chunk size zero", func(c *Config) { c.Suggest.ChunkSize = 0 }, "SUGGEST_CHUNK_SIZE"},
		{"short lookback", func(c *Config) { c.Suggest.UsageLookback = 0 }, "SUGGEST_USAGE_LOOKBACK"},
		{"unknown cache backend", func(c *Config) { c.Cache.Backend = "redis" }, "CACHE_BACKEND"},
		{"bad timezone", func(c *Config) { c.Church.DefaultTimezone = "Mars/Olympus" }, "CHURCH_DEFAULT_TIMEZONE"},
		{"bad hemisphere", func(c *Config) { c.Church.DefaultHemisphere = "eastern" }, "CHURCH_DEFAULT_HEMISPHERE"},
		{"breaker ratio", func(c *Config) { c.Breaker.FailureRatio = 1.5 }, "BREAKER_FAILURE_RATIO"},
		{"breaker disabled skips checks", func(c *Config) { c.Breaker.Enabled = false; c.Breaker.FailureRatio = 0 }, ""},
		{"backup disabled skips checks", func(c *Config) { c.Backup.Dir = "" }, ""},
		{"backup without dir", func(c *Config) { c.Backup.Enabled = true; c.Backup.Dir = "" }, "BACKUP_DIR"},
		{"backup short interval", func(c *Config) { c.Backup.Enabled = true; c.Backup.Interval = 0 }, "BACKUP_INTERVAL"},
		{"backup max below min", func(c *Config) { c.Backup.Enabled = true; c.Backup.MaxCount = 1 }, "BACKUP_MAX_COUNT"},
		{"bad log level", func(c *Config) { c.Logging.Level = "verbose" }, "LOG_LEVEL"},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }, "LOG_FORMAT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want error mentioning %s", err, tt.wantErr)
			}
		})
	}
}

func TestServerConfig_IsProduction(t *testing.T) {
	cfg := defaultConfig()
	if cfg.Server.IsProduction() {
		t.Error("development should not be production")
	}
	cfg.Server.Environment = "production"
	if !cfg.Server.IsProduction() {
		t.Error("production not detected")
	}
}
