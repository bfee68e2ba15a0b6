// Psalter - Worship Service Planning and Song Rotation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/psalter

package recommend

import (
	"math"

	"github.com/tomtom215/psalter/internal/models"
)

// RetireQuorum is the share of leaders whose unfavorable ratings retire a song.
const RetireQuorum = 0.75

// EvaluateRetire applies the auto-retire policy to one song. Only ratings
// from leaderIDs count. A single favorable leader rating vetoes retirement.
func EvaluateRetire(songID string, leaderIDs []string, ratings []models.UserPreference) RetirementDecision {
	leaders := make(map[string]struct{}, len(leaderIDs))
	for _, id := range leaderIDs {
		leaders[id] = struct{}{}
	}

	decision := RetirementDecision{
		SongID:    songID,
		Leaders:   len(leaders),
		Threshold: int(math.Ceil(float64(len(leaders)) * RetireQuorum)),
	}
	if decision.Leaders == 0 {
		return decision
	}

	rated := 0
	counted := make(map[string]struct{}, len(ratings))
	for _, r := range ratings {
		if _, isLeader := leaders[r.UserID]; !isLeader {
			continue
		}
		if songID != "" && r.SongID != "" && r.SongID != songID {
			continue
		}
		if _, dup := counted[r.UserID]; dup {
			continue
		}
		counted[r.UserID] = struct{}{}
		rated++

		switch r.Rating {
		case models.RatingFavorable:
			decision.Favorable++
		case models.RatingUnfavorable:
			decision.Unfavorable++
		}
	}

	if rated == 0 || decision.Favorable > 0 {
		return decision
	}
	decision.Retire = decision.Unfavorable >= decision.Threshold
	return decision
}

// ShouldAutoRetire reports whether leaders' ratings retire the song.
func ShouldAutoRetire(leaderIDs []string, ratings []models.UserPreference) bool {
	return EvaluateRetire("", leaderIDs, ratings).Retire
}
