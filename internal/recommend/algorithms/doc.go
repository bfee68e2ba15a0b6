// Psalter - Worship Service Planning and Song Rotation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/psalter

// Package algorithms implements the leaf scoring models used by the suggestion
// engine and the library-health analyzer.
//
// # Models
//
//   - Familiarity: exponential decay over usage history (90-day half-life)
//   - Seasons: hemisphere-aware meteorological seasons plus calendar-fixed
//     Christmas and Easter keyword sets
//   - Keys: circle-of-fifths distance between two keys
//   - Tempo: banded similarity between two BPM values
//   - Mood: tempo-first, keyword-second mood detection
//
// # Thread Safety
//
// Every function in this package is pure. Inputs are read, never modified, and
// the package holds no mutable state, so all functions are safe for concurrent
// use without locking.
//
// # Numeric Safety
//
// No function here returns NaN or Inf. Unknown musical inputs (missing key or
// tempo) score a neutral 0.5 instead of failing.
package algorithms
