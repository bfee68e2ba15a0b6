// Psalter - Worship Service Planning and Song Rotation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/psalter

package recommend

import (
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig_IsValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() error = %v", err)
	}
	if !cfg.Preferences.ExcludeDisliked || !cfg.Preferences.BoostFavorites || !cfg.Preferences.PenalizeDifficult {
		t.Errorf("preference defaults = %+v, want all true", cfg.Preferences)
	}
	if cfg.Suggest.MaxResults != 5 {
		t.Errorf("Suggest.MaxResults = %d, want 5", cfg.Suggest.MaxResults)
	}
	if cfg.Batch.ChunkSize != 50 {
		t.Errorf("Batch.ChunkSize = %d, want 50", cfg.Batch.ChunkSize)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"zero max results", func(c *Config) { c.Suggest.MaxResults = 0 }, "suggest.max_results"},
		{"negative min days", func(c *Config) { c.Suggest.MinDaysSinceUsed = -1 }, "suggest.min_days_since_used"},
		{"negative rest days", func(c *Config) { c.Suggest.PopularityRestDays = -1 }, "suggest.popularity_rest_days"},
		{"zero default k", func(c *Config) { c.Limits.DefaultK = 0 }, "limits.default_k"},
		{"max k below default", func(c *Config) { c.Limits.MaxK = 5 }, "limits.max_k"},
		{"zero fetch timeout", func(c *Config) { c.Limits.FetchTimeout = 0 }, "limits.fetch_timeout"},
		{"zero lookback", func(c *Config) { c.Limits.UsageLookback = 0 }, "limits.usage_lookback"},
		{"zero chunk size", func(c *Config) { c.Batch.ChunkSize = 0 }, "batch.chunk_size"},
		{"negative rate", func(c *Config) { c.Batch.ChunksPerSecond = -1 }, "batch.chunks_per_second"},
		{"paced without burst", func(c *Config) {
			c.Batch.ChunksPerSecond = 10
			c.Batch.Burst = 0
		}, "batch.burst"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate() error = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %q, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_Clone(t *testing.T) {
	cfg := DefaultConfig()
	clone := cfg.Clone()
	clone.Limits.FetchTimeout = time.Minute
	clone.Preferences.ExcludeDisliked = false

	if cfg.Limits.FetchTimeout == time.Minute || !cfg.Preferences.ExcludeDisliked {
		t.Error("Clone() shares state with the original")
	}
}
