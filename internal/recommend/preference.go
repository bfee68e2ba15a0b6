// Psalter - Worship Service Planning and Song Rotation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/psalter

package recommend

import "github.com/tomtom215/psalter/internal/models"

// Preference score adjustments.
const (
	FavoriteBoost    = 20.0
	DifficultPenalty = 15.0
)

// ApplyPreferenceModifiers adjusts baseScore by a user's rating of a song.
// It returns false when the song must be excluded: the user rated it
// unfavorable and opts.ExcludeDisliked is set. A nil preference leaves the
// score unchanged.
func ApplyPreferenceModifiers(pref *models.UserPreference, baseScore float64, opts PreferenceOptions) (float64, bool) {
	if pref == nil {
		return baseScore, true
	}

	if pref.Rating == models.RatingUnfavorable && opts.ExcludeDisliked {
		return 0, false
	}

	score := baseScore
	if pref.Rating == models.RatingFavorable && opts.BoostFavorites {
		score += FavoriteBoost
	}
	if pref.Difficult && opts.PenalizeDifficult {
		score -= DifficultPenalty
	}
	return score, true
}
