// Psalter - Worship Service Planning and Song Rotation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/psalter

package recommend

import (
	"fmt"
	"math"
	"strings"

	"github.com/tomtom215/psalter/internal/models"
	"github.com/tomtom215/psalter/internal/recommend/algorithms"
)

// Score contributions.
const (
	freshnessWeight    = 30.0
	seasonalBonus      = 25.0
	themeBonus         = 30.0
	keyWeight          = 20.0
	tempoWeight        = 15.0
	moodBonus          = 20.0
	neverUsedFreshness = 0.7

	// Thresholds at which a contribution is explained.
	freshThreshold         = 0.8
	keyCompatibleThreshold = 0.7
	tempoFlowThreshold     = 0.7

	// nominalMaxScore is the sum of every positive contribution, used to
	// scale scores into a confidence.
	nominalMaxScore = freshnessWeight + seasonalBonus + themeBonus + keyWeight + tempoWeight + moodBonus + FavoriteBoost
)

// Machine tags.
const (
	TagFresh         = "fresh"
	TagSeasonal      = "seasonal"
	TagThemeMatch    = "theme-match"
	TagKeyCompatible = "key-compatible"
	TagTempoFlow     = "tempo-flow"
	TagMoodMatch     = "mood-match"
	TagFavorite      = "favorite"
)

// ScoreOptions carries the context a song is scored in.
type ScoreOptions struct {
	// Month (1-12) and Hemisphere select the seasonal keywords.
	Month      int
	Hemisphere models.Hemisphere

	// Theme is an optional free-text theme.
	Theme string

	// Mood is an optional requested mood. Empty disables mood matching.
	Mood algorithms.Mood

	// PreviousSong is the song before this slot, if any.
	PreviousSong *models.Song

	// Preferences are the requesting user's ratings keyed by song ID.
	Preferences map[string]models.UserPreference

	// PreferenceOptions controls the preference modifier.
	PreferenceOptions PreferenceOptions
}

// ScoreFreshness scores how long a song has rested. Very recent use scores
// low; songs unused for two to four months score highest; older songs drop
// slightly since the congregation may have forgotten them. A nil value
// means never used.
func ScoreFreshness(daysSince *int) float64 {
	if daysSince == nil {
		return neverUsedFreshness
	}

	d := *daysSince
	switch {
	case d < 14:
		return 0.1
	case d < 30:
		return 0.4
	case d < 60:
		return 0.8
	case d < 120:
		return 1.0
	default:
		return 0.85
	}
}

// ScoreSong scores a song against opts. It returns false when the user's
// preferences exclude the song.
func ScoreSong(song *models.Song, opts *ScoreOptions) (ScoredSong, bool) {
	scored := ScoredSong{
		Song:    *song,
		Reasons: make([]string, 0, 6),
		Tags:    make([]string, 0, 8),
	}

	freshness := ScoreFreshness(song.DaysSinceLastUsed)
	scored.Score += freshness * freshnessWeight
	if freshness >= freshThreshold {
		scored.add("Not used recently", TagFresh)
	}

	if algorithms.SeasonalScore(song, opts.Month, opts.Hemisphere) > 0 {
		scored.Score += seasonalBonus
		scored.add(fmt.Sprintf("Fits the %s season", algorithms.SeasonLabel(opts.Month, opts.Hemisphere)), TagSeasonal)
	}

	if themeMatches(song, opts.Theme) {
		scored.Score += themeBonus
		scored.add("Matches the service theme", TagThemeMatch)
	}

	prev := opts.PreviousSong
	if prev != nil && song.HasKey() && prev.HasKey() {
		ks := algorithms.ScoreKeyCompatibility(prev.Key, song.Key)
		scored.Score += ks * keyWeight
		if ks >= keyCompatibleThreshold {
			scored.add("Smooth key transition from the previous song", TagKeyCompatible)
		}
	}

	if prev != nil && song.HasTempo() && prev.HasTempo() {
		ts := algorithms.ScoreTempoFlow(prev.Tempo, song.Tempo)
		scored.Score += ts * tempoWeight
		if ts >= tempoFlowThreshold {
			scored.add("Natural tempo flow from the previous song", TagTempoFlow)
		}
	}

	if opts.Mood != "" && algorithms.DetectMood(song) == opts.Mood {
		scored.Score += moodBonus
		scored.add("Matches the requested mood", TagMoodMatch)
	}

	if song.HasKey() {
		scored.Tags = append(scored.Tags, strings.TrimSpace(song.Key))
	}
	if song.HasTempo() {
		scored.Tags = append(scored.Tags, fmt.Sprintf("%dbpm", song.Tempo))
	}

	var pref *models.UserPreference
	if p, ok := opts.Preferences[song.ID]; ok {
		pref = &p
	}
	adjusted, ok := ApplyPreferenceModifiers(pref, scored.Score, opts.PreferenceOptions)
	if !ok {
		return ScoredSong{}, false
	}
	if adjusted > scored.Score {
		scored.add("One of your favorites", TagFavorite)
	}
	scored.Score = adjusted

	return scored, true
}

func (s *ScoredSong) add(reason, tag string) {
	s.Reasons = append(s.Reasons, reason)
	s.Tags = append(s.Tags, tag)
}

// themeMatches reports whether theme appears in the title, notes or tags.
func themeMatches(song *models.Song, theme string) bool {
	theme = strings.ToLower(strings.TrimSpace(theme))
	if theme == "" {
		return false
	}
	text := strings.ToLower(song.Title+" "+song.Notes) + " " + song.TagText()
	return strings.Contains(text, theme)
}

// Confidence scales a raw score onto [0, 1].
func Confidence(score float64) float64 {
	if math.IsNaN(score) || score <= 0 {
		return 0
	}
	return math.Min(1, score/nominalMaxScore)
}
