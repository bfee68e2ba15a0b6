// Psalter - Worship Service Planning and Song Rotation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/psalter

package api

import "github.com/tomtom215/psalter/internal/recommend"

// SuggestionsRequest holds the validated parameters of
// GET /api/v1/churches/{churchID}/suggestions.
type SuggestionsRequest struct {
	ChurchID string   `query:"church_id" validate:"identifier"`
	UserID   string   `query:"user_id" validate:"omitempty,identifier"`
	Theme    string   `query:"theme" validate:"max=100"`
	Mood     string   `query:"mood" validate:"omitempty,mood"`
	Previous string   `query:"previous" validate:"omitempty,identifier"`
	K        int      `query:"k" validate:"min=0,max=100"`
	Exclude  []string `query:"exclude" validate:"max=200,dive,identifier"`
}

// ChurchRequest identifies a church.
type ChurchRequest struct {
	ChurchID string `query:"church_id" validate:"identifier"`
}

// SongRequest identifies one song in a church.
type SongRequest struct {
	ChurchID string `query:"church_id" validate:"identifier"`
	SongID   string `query:"song_id" validate:"identifier"`
}

// songOnly identifies a song outside any church.
type songOnly struct {
	SongID string `query:"song_id" validate:"identifier"`
}

// RatingRequest is the body of PUT /api/v1/songs/{songID}/rating.
type RatingRequest struct {
	Rating    string `json:"rating" validate:"rating"`
	Difficult bool   `json:"difficult"`
}

// ratingTarget identifies the rating a write applies to.
type ratingTarget struct {
	UserID string `query:"user_id" validate:"identifier"`
	SongID string `query:"song_id" validate:"identifier"`
}

// RetirementResult is the body returned by the retirement endpoints.
type RetirementResult struct {
	Decision *recommend.RetirementDecision `json:"decision"`

	// Applied is true when the song was marked retired by this request.
	Applied bool `json:"applied"`
}
