// Psalter - Worship Service Planning and Song Rotation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/psalter

package algorithms

import (
	"math"
	"strings"
)

// circleOfFifths orders the 12 pitch classes by ascending fifths. Each pitch
// class appears once, under its flat spelling where it has one.
var circleOfFifths = []string{"C", "G", "D", "A", "E", "B", "Gb", "Db", "Ab", "Eb", "Bb", "F"}

// sharpToFlat maps sharp spellings onto their flat enharmonic.
var sharpToFlat = map[string]string{
	"C#": "Db",
	"D#": "Eb",
	"F#": "Gb",
	"G#": "Ab",
	"A#": "Bb",
}

var keyPositions = func() map[string]int {
	m := make(map[string]int, len(circleOfFifths))
	for i, k := range circleOfFifths {
		m[k] = i
	}
	return m
}()

// CompatibleKeyDistance is the largest circle-of-fifths distance still
// considered a smooth transition.
const CompatibleKeyDistance = 2

// keyStepPenalty is subtracted from the compatibility score per step.
const keyStepPenalty = 0.15

// NormalizeKey strips a minor marker and maps sharp spellings to flats.
// "F#m" becomes "Gb", "bb" becomes "Bb". Unknown keys normalize to the
// cleaned-up spelling, which then fails KeyPosition.
func NormalizeKey(key string) string {
	k := strings.TrimSpace(key)
	if k == "" {
		return ""
	}

	lower := strings.ToLower(k)
	for _, suffix := range []string{"minor", "min", "m"} {
		if strings.HasSuffix(lower, suffix) && len(k) > len(suffix) {
			k = strings.TrimSpace(k[:len(k)-len(suffix)])
			break
		}
	}

	k = strings.ToUpper(k[:1]) + k[1:]
	if flat, ok := sharpToFlat[k]; ok {
		return flat
	}
	return k
}

// KeyPosition returns the circle-of-fifths index of a key.
func KeyPosition(key string) (int, bool) {
	pos, ok := keyPositions[NormalizeKey(key)]
	return pos, ok
}

// KeyDistance returns the shorter circular distance between two known keys.
// ok is false when either key is unknown.
func KeyDistance(a, b string) (distance int, ok bool) {
	pa, okA := KeyPosition(a)
	pb, okB := KeyPosition(b)
	if !okA || !okB {
		return 0, false
	}

	d := pa - pb
	if d < 0 {
		d = -d
	}
	if alt := len(circleOfFifths) - d; alt < d {
		d = alt
	}
	return d, true
}

// AreKeysCompatible reports whether moving from key a to key b is smooth.
// Unknown or empty keys are permissively compatible.
func AreKeysCompatible(a, b string) bool {
	if strings.TrimSpace(a) == strings.TrimSpace(b) {
		return true
	}
	d, ok := KeyDistance(a, b)
	if !ok {
		return true
	}
	return d <= CompatibleKeyDistance
}

// ScoreKeyCompatibility scores a key transition in [0, 1]: 1.0 for the same
// key, 0.5 when either key is unknown, otherwise 1 - 0.15 per step, floored
// at 0.
func ScoreKeyCompatibility(a, b string) float64 {
	a, b = strings.TrimSpace(a), strings.TrimSpace(b)
	if a == "" || b == "" {
		return 0.5
	}
	if a == b {
		return 1.0
	}
	d, ok := KeyDistance(a, b)
	if !ok {
		return 0.5
	}
	return math.Max(0, 1-float64(d)*keyStepPenalty)
}
