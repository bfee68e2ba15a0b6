// Psalter - Worship Service Planning and Song Rotation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/psalter

package algorithms

import (
	"math"
	"time"
)

// FamiliarityHalfLifeDays is the half-life of a single use's contribution.
const FamiliarityHalfLifeDays = 90.0

// Familiarity level thresholds.
const (
	FamiliarityHighThreshold   = 3.0
	FamiliarityMediumThreshold = 1.5
	FamiliarityLowThreshold    = 0.5
)

// maxFamiliarityExponent caps a future-dated use's exponent so its
// contribution stays finite.
const maxFamiliarityExponent = 64.0

// FamiliarityLevel buckets a familiarity score.
type FamiliarityLevel string

const (
	FamiliarityHigh   FamiliarityLevel = "high"
	FamiliarityMedium FamiliarityLevel = "medium"
	FamiliarityLow    FamiliarityLevel = "low"
	FamiliarityNew    FamiliarityLevel = "new"
)

// CalculateFamiliarity returns how well a congregation knows a song based on
// when it was used. Each use contributes 2^(-daysSince/90):
//
//	today        -> ~1.0
//	90 days ago  -> ~0.5
//	180 days ago -> ~0.25
//
// Usage dated after now is not clamped and contributes more than 1, up to
// 2^64 for dates centuries ahead.
func CalculateFamiliarity(usageDates []time.Time, now time.Time) float64 {
	score := 0.0
	for _, used := range usageDates {
		daysSince := now.Sub(used).Hours() / 24
		score += math.Pow(2, math.Min(-daysSince/FamiliarityHalfLifeDays, maxFamiliarityExponent))
	}
	return score
}

// CategorizeFamiliarity maps a familiarity score to a level.
func CategorizeFamiliarity(score float64) FamiliarityLevel {
	switch {
	case score >= FamiliarityHighThreshold:
		return FamiliarityHigh
	case score >= FamiliarityMediumThreshold:
		return FamiliarityMedium
	case score >= FamiliarityLowThreshold:
		return FamiliarityLow
	default:
		return FamiliarityNew
	}
}

// FamiliarityDescription returns a human-readable phrase for a level.
func FamiliarityDescription(level FamiliarityLevel) string {
	switch level {
	case FamiliarityHigh:
		return "Well known by the congregation"
	case FamiliarityMedium:
		return "Becoming familiar to the congregation"
	case FamiliarityLow:
		return "Heard a few times, still being learned"
	default:
		return "New or rarely sung"
	}
}

// IsFamiliar reports whether a level counts as known by the congregation.
func (l FamiliarityLevel) IsFamiliar() bool {
	return l == FamiliarityHigh || l == FamiliarityMedium
}
