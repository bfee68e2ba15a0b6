// Psalter - Worship Service Planning and Song Rotation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/psalter

package cache

// Store is a key/value cache. Implementations must be safe for concurrent use.
//
// Usage:
//
//	var s Store[string, int] = NewLRU[string, int](1000)
//	s.Set("a", 1)
//	if v, ok := s.Get("a"); ok {
//	    // use v
//	}
//	s.Invalidate("a")
type Store[K comparable, V any] interface {
	// Get returns the cached value and true, or the zero value and false.
	Get(key K) (V, bool)

	// Set stores value under key, replacing any previous value.
	Set(key K, value V)

	// Invalidate removes key. Missing keys are ignored.
	Invalidate(key K)
}

// Backend names a Store implementation.
type Backend string

const (
	// BackendMemory is the in-process LRU.
	BackendMemory Backend = "memory"

	// BackendBadger is the persistent BadgerDB store.
	BackendBadger Backend = "badger"
)

// Stats reports cache effectiveness.
type Stats struct {
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
}

// HitRate returns the hit rate as a percentage.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total) * 100
}
