// Psalter - Worship Service Planning and Song Rotation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/psalter

package algorithms

// TempoCategory buckets a BPM value.
type TempoCategory string

const (
	TempoSlow   TempoCategory = "slow"
	TempoMedium TempoCategory = "medium"
	TempoFast   TempoCategory = "fast"
	TempoNone   TempoCategory = "none"
)

// Tempo band edges in BPM.
const (
	slowTempoBelow   = 80
	fastTempoAtLeast = 120
)

// CategorizeTempo returns slow (<80), medium (80-119) or fast (>=120).
// Zero or negative BPM means unknown.
func CategorizeTempo(bpm int) TempoCategory {
	switch {
	case bpm <= 0:
		return TempoNone
	case bpm < slowTempoBelow:
		return TempoSlow
	case bpm < fastTempoAtLeast:
		return TempoMedium
	default:
		return TempoFast
	}
}

// ScoreTempoFlow scores how naturally one tempo follows another.
func ScoreTempoFlow(a, b int) float64 {
	if a <= 0 || b <= 0 {
		return 0.5
	}

	diff := a - b
	if diff < 0 {
		diff = -diff
	}

	switch {
	case diff <= 20:
		return 0.9
	case diff <= 40:
		return 0.7
	case diff <= 60:
		return 0.4
	default:
		return 0.2
	}
}
