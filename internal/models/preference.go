// Psalter - Worship Service Planning and Song Rotation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/psalter

package models

import (
	"fmt"
	"time"
)

// Rating is a user's opinion of a song.
type Rating string

const (
	// RatingFavorable is a thumbs-up.
	RatingFavorable Rating = "favorable"
	// RatingNeutral is an explicit "no strong opinion".
	RatingNeutral Rating = "neutral"
	// RatingUnfavorable is a thumbs-down.
	RatingUnfavorable Rating = "unfavorable"
)

// ParseRating converts a string to a Rating.
func ParseRating(s string) (Rating, error) {
	switch Rating(s) {
	case RatingFavorable, RatingNeutral, RatingUnfavorable:
		return Rating(s), nil
	default:
		return "", fmt.Errorf("invalid rating %q", s)
	}
}

// UserPreference is a user's rating of one song plus the difficulty flag.
type UserPreference struct {
	UserID    string    `json:"user_id"`
	SongID    string    `json:"song_id"`
	Rating    Rating    `json:"rating"`
	Difficult bool      `json:"difficult"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// RatingSummary aggregates all ratings for one song.
type RatingSummary struct {
	SongID      string `json:"song_id"`
	Favorable   int    `json:"favorable"`
	Neutral     int    `json:"neutral"`
	Unfavorable int    `json:"unfavorable"`
	Difficult   int    `json:"difficult"`
}

// Total returns the number of ratings in the summary.
func (s RatingSummary) Total() int {
	return s.Favorable + s.Neutral + s.Unfavorable
}

// Summarize builds a RatingSummary for songID from prefs. Preferences for
// other songs are ignored.
func Summarize(songID string, prefs []UserPreference) RatingSummary {
	sum := RatingSummary{SongID: songID}
	for _, p := range prefs {
		if p.SongID != songID {
			continue
		}
		switch p.Rating {
		case RatingFavorable:
			sum.Favorable++
		case RatingNeutral:
			sum.Neutral++
		case RatingUnfavorable:
			sum.Unfavorable++
		}
		if p.Difficult {
			sum.Difficult++
		}
	}
	return sum
}
