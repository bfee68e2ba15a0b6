// Psalter - Worship Service Planning and Song Rotation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/psalter

package recommend

import (
	"sort"

	"github.com/tomtom215/psalter/internal/models"
)

// DefaultMaxResults is the list size when GenerateOptions.MaxResults is zero.
const DefaultMaxResults = 5

// GenerateOptions extends ScoreOptions with pool filtering.
type GenerateOptions struct {
	ScoreOptions

	// Exclude holds song IDs to drop before scoring.
	Exclude map[string]struct{}

	// MinDaysSinceUsed drops songs used fewer than this many days ago.
	MinDaysSinceUsed int

	// MaxResults caps the result. Zero means DefaultMaxResults.
	MaxResults int
}

// GenerateSuggestions scores the pool and returns the best songs, highest
// score first. Ties are broken by song ID. Songs excluded by preference
// never appear.
func GenerateSuggestions(pool []models.Song, opts *GenerateOptions) []ScoredSong {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}

	scored := make([]ScoredSong, 0, len(pool))
	for i := range pool {
		song := &pool[i]
		if _, excluded := opts.Exclude[song.ID]; excluded {
			continue
		}
		if song.DaysSinceLastUsed != nil && *song.DaysSinceLastUsed < opts.MinDaysSinceUsed {
			continue
		}

		s, ok := ScoreSong(song, &opts.ScoreOptions)
		if !ok {
			continue
		}
		scored = append(scored, s)
	}

	sort.Slice(scored, func(i, j int) bool {
		return rankBefore(scored[i].Score, scored[i].Song.ID, scored[j].Score, scored[j].Song.ID)
	})

	if len(scored) > maxResults {
		scored = scored[:maxResults]
	}
	return scored
}

// MergeSuggestions combines independently generated lists, keeping only the
// highest-scoring entry per song. On equal scores the earlier list wins.
// The result is sorted like GenerateSuggestions.
func MergeSuggestions(lists ...[]Suggestion) []Suggestion {
	best := make(map[string]int)
	merged := make([]Suggestion, 0)

	for _, list := range lists {
		for i := range list {
			s := list[i]
			if idx, seen := best[s.Song.ID]; seen {
				if s.Score > merged[idx].Score {
					merged[idx] = s
				}
				continue
			}
			best[s.Song.ID] = len(merged)
			merged = append(merged, s)
		}
	}

	sort.Slice(merged, func(i, j int) bool {
		return rankBefore(merged[i].Score, merged[i].Song.ID, merged[j].Score, merged[j].Song.ID)
	})
	return merged
}

// ToSuggestions labels scored songs with a list type.
func ToSuggestions(scored []ScoredSong, typ SuggestionType) []Suggestion {
	out := make([]Suggestion, len(scored))
	for i := range scored {
		out[i] = Suggestion{
			ScoredSong: scored[i],
			Type:       typ,
			Confidence: Confidence(scored[i].Score),
		}
	}
	return out
}

// rankBefore orders by score descending, then ID ascending.
func rankBefore(scoreA float64, idA string, scoreB float64, idB string) bool {
	if scoreA != scoreB {
		return scoreA > scoreB
	}
	return idA < idB
}
