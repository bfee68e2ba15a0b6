// Psalter - Worship Service Planning and Song Rotation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/psalter

package algorithms

import (
	"strings"

	"github.com/tomtom215/psalter/internal/models"
)

// Mood is the detected feel of a song.
type Mood string

const (
	MoodUpbeat        Mood = "upbeat"
	MoodReflective    Mood = "reflective"
	MoodCelebratory   Mood = "celebratory"
	MoodContemplative Mood = "contemplative"
	MoodWorshipful    Mood = "worshipful"
	MoodNeutral       Mood = "neutral"
)

// Tempo thresholds for mood detection.
const (
	upbeatTempoAtLeast    = 120
	reflectiveTempoAtMost = 75
)

// moodKeywords are checked in order; the first list with a hit wins.
var moodKeywords = []struct {
	mood     Mood
	keywords []string
}{
	{MoodCelebratory, []string{"celebrate", "rejoice", "dance", "shout", "victory"}},
	{MoodContemplative, []string{"still", "quiet", "reflect", "wait", "peace", "surrender"}},
	{MoodWorshipful, []string{"worship", "holy", "adore", "glory", "praise", "majesty", "hallelujah"}},
}

// DetectMood classifies a song. Tempo decides first (>=120 upbeat, <=75
// reflective), then title and tag keywords, defaulting to neutral.
func DetectMood(song *models.Song) Mood {
	if song.HasTempo() {
		switch {
		case song.Tempo >= upbeatTempoAtLeast:
			return MoodUpbeat
		case song.Tempo <= reflectiveTempoAtMost:
			return MoodReflective
		}
	}

	text := strings.ToLower(song.Title) + " " + song.TagText()
	for _, mk := range moodKeywords {
		if len(matchKeywords(text, mk.keywords)) > 0 {
			return mk.mood
		}
	}
	return MoodNeutral
}

// ParseMood converts s to a Mood. Unknown values return false.
func ParseMood(s string) (Mood, bool) {
	m := Mood(strings.ToLower(strings.TrimSpace(s)))
	switch m {
	case MoodUpbeat, MoodReflective, MoodCelebratory, MoodContemplative, MoodWorshipful, MoodNeutral:
		return m, true
	default:
		return "", false
	}
}
