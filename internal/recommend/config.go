// Psalter - Worship Service Planning and Song Rotation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/psalter

package recommend

import (
	"fmt"
	"time"
)

// Config contains all configuration for the suggestion engine.
type Config struct {
	// Preferences controls how user ratings modify scores.
	Preferences PreferenceOptions `json:"preferences"`

	// Suggest contains generator parameters.
	Suggest SuggestConfig `json:"suggest"`

	// Limits contains operational limits.
	Limits LimitsConfig `json:"limits"`

	// Batch controls how identifier lists are chunked for lookups.
	Batch BatchConfig `json:"batch"`
}

// PreferenceOptions controls the preference modifier. All three default to
// true.
type PreferenceOptions struct {
	// ExcludeDisliked drops songs the user rated unfavorable.
	ExcludeDisliked bool `json:"exclude_disliked"`

	// BoostFavorites adds FavoriteBoost to songs rated favorable.
	BoostFavorites bool `json:"boost_favorites"`

	// PenalizeDifficult subtracts DifficultPenalty from songs marked difficult.
	PenalizeDifficult bool `json:"penalize_difficult"`
}

// DefaultPreferenceOptions returns the documented defaults.
func DefaultPreferenceOptions() PreferenceOptions {
	return PreferenceOptions{
		ExcludeDisliked:   true,
		BoostFavorites:    true,
		PenalizeDifficult: true,
	}
}

// SuggestConfig contains generator parameters.
type SuggestConfig struct {
	// MaxResults caps each generated list.
	// Default: 5.
	MaxResults int `json:"max_results"`

	// MinDaysSinceUsed drops songs used more recently than this.
	// Default: 0 (no rest period).
	MinDaysSinceUsed int `json:"min_days_since_used"`

	// PopularityRestDays is the rest period for the popularity list.
	// Default: 30.
	PopularityRestDays int `json:"popularity_rest_days"`
}

// LimitsConfig contains operational limits.
type LimitsConfig struct {
	// DefaultK is the default number of merged suggestions.
	// Default: 10.
	DefaultK int `json:"default_k"`

	// MaxK is the maximum allowed K.
	// Default: 50.
	MaxK int `json:"max_k"`

	// FetchTimeout bounds each collaborator fetch.
	// Default: 10s.
	FetchTimeout time.Duration `json:"fetch_timeout"`

	// UsageLookback is how far back usage history is read.
	// Default: two years.
	UsageLookback time.Duration `json:"usage_lookback"`
}

// BatchConfig controls identifier chunking.
type BatchConfig struct {
	// ChunkSize is the number of IDs per lookup request.
	// Default: 50.
	ChunkSize int `json:"chunk_size"`

	// ChunksPerSecond paces chunk requests. Zero disables pacing.
	// Default: 0.
	ChunksPerSecond float64 `json:"chunks_per_second"`

	// Burst is the number of chunk requests allowed at once when paced.
	// Default: 4.
	Burst int `json:"burst"`
}

// DefaultChunkSize is the number of identifiers sent per lookup.
const DefaultChunkSize = 50

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Preferences: DefaultPreferenceOptions(),
		Suggest: SuggestConfig{
			MaxResults:         DefaultMaxResults,
			MinDaysSinceUsed:   0,
			PopularityRestDays: 30,
		},
		Limits: LimitsConfig{
			DefaultK:      10,
			MaxK:          50,
			FetchTimeout:  10 * time.Second,
			UsageLookback: 2 * 365 * 24 * time.Hour,
		},
		Batch: BatchConfig{
			ChunkSize: DefaultChunkSize,
			Burst:     4,
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Suggest.MaxResults < 1 {
		return fmt.Errorf("suggest.max_results must be positive, got %d", c.Suggest.MaxResults)
	}
	if c.Suggest.MinDaysSinceUsed < 0 {
		return fmt.Errorf("suggest.min_days_since_used must be non-negative, got %d", c.Suggest.MinDaysSinceUsed)
	}
	if c.Suggest.PopularityRestDays < 0 {
		return fmt.Errorf("suggest.popularity_rest_days must be non-negative, got %d", c.Suggest.PopularityRestDays)
	}

	if c.Limits.DefaultK < 1 {
		return fmt.Errorf("limits.default_k must be positive, got %d", c.Limits.DefaultK)
	}
	if c.Limits.MaxK < c.Limits.DefaultK {
		return fmt.Errorf("limits.max_k must be >= limits.default_k, got %d < %d", c.Limits.MaxK, c.Limits.DefaultK)
	}
	if c.Limits.FetchTimeout <= 0 {
		return fmt.Errorf("limits.fetch_timeout must be positive, got %v", c.Limits.FetchTimeout)
	}
	if c.Limits.UsageLookback <= 0 {
		return fmt.Errorf("limits.usage_lookback must be positive, got %v", c.Limits.UsageLookback)
	}

	if c.Batch.ChunkSize < 1 {
		return fmt.Errorf("batch.chunk_size must be positive, got %d", c.Batch.ChunkSize)
	}
	if c.Batch.ChunksPerSecond < 0 {
		return fmt.Errorf("batch.chunks_per_second must be non-negative, got %f", c.Batch.ChunksPerSecond)
	}
	if c.Batch.ChunksPerSecond > 0 && c.Batch.Burst < 1 {
		return fmt.Errorf("batch.burst must be positive when pacing is enabled, got %d", c.Batch.Burst)
	}

	return nil
}

// Clone returns a copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}
