// Psalter - Worship Service Planning and Song Rotation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/psalter

// Package insights diagnoses the health of a church's song rotation.
//
// Four independent analyses run over the active library and its usage
// history: rotation health, diversity, congregation engagement and seasonal
// readiness. Every ratio guards its denominator, so an empty library yields
// a report of zeros rather than NaN.
package insights

import (
	"time"

	"github.com/tomtom215/psalter/internal/models"
)

// RotationStatus summarizes rotation health.
type RotationStatus string

const (
	StatusGood           RotationStatus = "good"
	StatusNeedsAttention RotationStatus = "needs_attention"
	StatusCritical       RotationStatus = "critical"
)

// WorshipInsights is the full library-health report.
type WorshipInsights struct {
	Rotation          RotationHealth       `json:"rotation"`
	Diversity         Diversity            `json:"diversity"`
	Engagement        Engagement           `json:"engagement"`
	SeasonalReadiness SeasonalReadiness    `json:"seasonal_readiness"`
	Context           models.ChurchContext `json:"context"`
	GeneratedAt       time.Time            `json:"generated_at"`
}

// RotationHealth measures how much of the library is in active use.
type RotationHealth struct {
	Score  float64        `json:"score"`
	Status RotationStatus `json:"status"`

	TotalSongs int `json:"total_songs"`

	// StaleSongs have not been used for StaleAfterDays or more, including
	// songs never used.
	StaleSongs   int     `json:"stale_songs"`
	StalePercent float64 `json:"stale_percent"`

	NeverUsed        int     `json:"never_used"`
	NeverUsedPercent float64 `json:"never_used_percent"`

	Insights        []string `json:"insights"`
	Recommendations []string `json:"recommendations"`
}

// Diversity percentages, each in [0, 100].
type Diversity struct {
	KeyDiversity    float64 `json:"key_diversity"`
	TempoDiversity  float64 `json:"tempo_diversity"`
	ArtistDiversity float64 `json:"artist_diversity"`

	KeysUsed    int `json:"keys_used"`
	ArtistsUsed int `json:"artists_used"`

	// TempoSplit is the share of tempo-known usage per category, in [0, 1].
	TempoSplit TempoSplit `json:"tempo_split"`
}

// TempoSplit is a fast/medium/slow distribution.
type TempoSplit struct {
	Fast   float64 `json:"fast"`
	Medium float64 `json:"medium"`
	Slow   float64 `json:"slow"`
}

// Engagement measures how familiar the congregation is with the library.
type Engagement struct {
	FamiliarSongs       int     `json:"familiar_songs"`
	HighlyFamiliarSongs int     `json:"highly_familiar_songs"`
	RecentlyIntroduced  int     `json:"recently_introduced"`
	RotationCandidates  int     `json:"rotation_candidates"`
	AverageFamiliarity  float64 `json:"average_familiarity"`

	// CandidateSongIDs are the best rotation candidates, most familiar first.
	CandidateSongIDs []string `json:"candidate_song_ids,omitempty"`
}

// SeasonalReadiness measures how well the library covers the current and
// upcoming month's seasonal themes.
type SeasonalReadiness struct {
	CurrentSeason   string  `json:"current_season"`
	CurrentMatches  int     `json:"current_matches"`
	CurrentPercent  float64 `json:"current_percent"`
	UpcomingSeason  string  `json:"upcoming_season"`
	UpcomingMatches int     `json:"upcoming_matches"`
	UpcomingPercent float64 `json:"upcoming_percent"`

	Suggestions []string `json:"suggestions"`

	// Note explains hemisphere handling for southern churches.
	Note string `json:"note,omitempty"`
}
