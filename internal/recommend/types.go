// Psalter - Worship Service Planning and Song Rotation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/psalter

package recommend

import (
	"time"

	"github.com/tomtom215/psalter/internal/models"
)

// ScoredSong is a song with its raw score and the explanation for it.
// Score is unbounded; it is a sum of fixed contributions and is not
// normalized.
type ScoredSong struct {
	// Song is the scored song. The scorer never mutates it.
	Song models.Song `json:"song"`

	// Score is the accumulated raw score.
	Score float64 `json:"score"`

	// Reasons are human-readable explanations, one per contribution that
	// crossed its threshold.
	Reasons []string `json:"reasons"`

	// Tags are machine-readable markers ("seasonal", "favorite", the song's
	// key, "<n>bpm").
	Tags []string `json:"tags"`
}

// SuggestionType names the list a suggestion was generated for.
type SuggestionType string

const (
	// SuggestionRotation ranks the whole active library by the scorer.
	SuggestionRotation SuggestionType = "rotation"
	// SuggestionSeasonal ranks songs with a seasonal contribution.
	SuggestionSeasonal SuggestionType = "seasonal"
	// SuggestionPopularity ranks familiar songs that have rested.
	SuggestionPopularity SuggestionType = "popularity"
)

// Suggestion is a scored song tagged with the list that produced it.
type Suggestion struct {
	ScoredSong

	// Type is the list that produced this entry.
	Type SuggestionType `json:"type"`

	// Confidence is Score scaled onto [0, 1].
	Confidence float64 `json:"confidence"`
}

// Request is a suggestion request for one church and user.
type Request struct {
	// RequestID correlates logs. Generated if empty.
	RequestID string `json:"request_id,omitempty"`

	// ChurchID selects the library and church context.
	ChurchID string `json:"church_id"`

	// UserID selects preference overrides. Empty means no preferences.
	UserID string `json:"user_id,omitempty"`

	// Theme is matched against title, notes and tags.
	Theme string `json:"theme,omitempty"`

	// Mood is matched against each song's detected mood.
	Mood string `json:"mood,omitempty"`

	// PreviousSongID is the song before this slot in the set-list, used
	// for key and tempo flow.
	PreviousSongID string `json:"previous_song_id,omitempty"`

	// K is the number of suggestions to return. Zero uses the default.
	K int `json:"k,omitempty"`

	// Exclude lists song IDs that must not be suggested.
	Exclude []string `json:"exclude,omitempty"`
}

// Response is the merged suggestion list with its metadata.
type Response struct {
	Suggestions []Suggestion         `json:"suggestions"`
	Context     models.ChurchContext `json:"context"`
	Metadata    ResponseMetadata     `json:"metadata"`
}

// ResponseMetadata describes how a response was produced.
type ResponseMetadata struct {
	RequestID string `json:"request_id"`
	ChurchID  string `json:"church_id"`
	UserID    string `json:"user_id,omitempty"`

	// Candidates is the number of active songs considered.
	Candidates int `json:"candidates"`

	// Degraded lists the fetches that failed and were replaced with empty
	// results.
	Degraded []string `json:"degraded,omitempty"`

	LatencyMS int64     `json:"latency_ms"`
	Timestamp time.Time `json:"timestamp"`
}

// RetirementDecision is the outcome of the auto-retire policy for one song.
type RetirementDecision struct {
	SongID      string `json:"song_id"`
	Leaders     int    `json:"leaders"`
	Favorable   int    `json:"favorable"`
	Unfavorable int    `json:"unfavorable"`

	// Threshold is the unfavorable count needed to retire.
	Threshold int  `json:"threshold"`
	Retire    bool `json:"retire"`
}

// Stats are cumulative engine counters.
type Stats struct {
	Requests        int64 `json:"requests"`
	InsightReports  int64 `json:"insight_reports"`
	Retirements     int64 `json:"retirement_checks"`
	DegradedFetches int64 `json:"degraded_fetches"`
}
