// Psalter - Worship Service Planning and Song Rotation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/psalter

package cache

import (
	"fmt"
	"sync/atomic"

	"github.com/dgraph-io/badger/v4"

	"github.com/tomtom215/psalter/internal/models"
)

// Key prefixes for the Badger-backed rating cache.
const (
	userRatingsPrefix = "ratings_user:"
	songSummaryPrefix = "ratings_song:"
)

// UserRatings maps song ID to a user's last-known rating. A nil value
// records that the user has no rating for that song.
type UserRatings map[string]*models.UserPreference

// RatingCache caches per-user ratings and per-song aggregates.
// Stored maps are never mutated after Set; updates copy.
type RatingCache struct {
	users Store[string, UserRatings]
	songs Store[string, models.RatingSummary]

	hits   atomic.Int64
	misses atomic.Int64
}

// NewRatingCache composes a rating cache from two stores.
func NewRatingCache(users Store[string, UserRatings], songs Store[string, models.RatingSummary]) *RatingCache {
	return &RatingCache{users: users, songs: songs}
}

// NewMemoryRatingCache returns a rating cache backed by two LRUs.
func NewMemoryRatingCache(capacity int) *RatingCache {
	return NewRatingCache(
		NewLRU[string, UserRatings](capacity),
		NewLRU[string, models.RatingSummary](capacity),
	)
}

// NewBadgerRatingCache returns a rating cache persisted in db.
func NewBadgerRatingCache(db *badger.DB) *RatingCache {
	return NewRatingCache(
		NewBadgerStore[UserRatings](db, userRatingsPrefix),
		NewBadgerStore[models.RatingSummary](db, songSummaryPrefix),
	)
}

// ResetBadgerRatingCache drops every rating cache entry held in db.
// Ratings can change in storage while no server runs, so a persistent
// cache starts empty on each open.
func ResetBadgerRatingCache(db *badger.DB) error {
	if err := db.DropPrefix([]byte(userRatingsPrefix), []byte(songSummaryPrefix)); err != nil {
		return fmt.Errorf("drop cached ratings: %w", err)
	}
	return nil
}

// Lookup returns the cached ratings of userID for songIDs. Songs whose
// rating state is unknown are returned in missing. Known-absent ratings
// appear in found with a nil value.
func (c *RatingCache) Lookup(userID string, songIDs []string) (found UserRatings, missing []string) {
	found = make(UserRatings, len(songIDs))
	cached, _ := c.users.Get(userID)

	for _, id := range songIDs {
		pref, ok := cached[id]
		if !ok {
			missing = append(missing, id)
			continue
		}
		found[id] = pref
	}

	c.hits.Add(int64(len(found)))
	c.misses.Add(int64(len(missing)))
	return found, missing
}

// Remember merges fetched into the user's cached ratings.
func (c *RatingCache) Remember(userID string, fetched UserRatings) {
	if len(fetched) == 0 {
		return
	}

	cached, _ := c.users.Get(userID)
	merged := make(UserRatings, len(cached)+len(fetched))
	for id, p := range cached {
		merged[id] = p
	}
	for id, p := range fetched {
		merged[id] = p
	}
	c.users.Set(userID, merged)
}

// Summary returns the cached aggregate for songID.
func (c *RatingCache) Summary(songID string) (models.RatingSummary, bool) {
	s, ok := c.songs.Get(songID)
	if ok {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	return s, ok
}

// SetSummary caches an aggregate.
func (c *RatingCache) SetSummary(s models.RatingSummary) {
	c.songs.Set(s.SongID, s)
}

// Invalidate drops the user's cached ratings and the song's aggregate.
// Call it after any rating write.
func (c *RatingCache) Invalidate(userID, songID string) {
	c.users.Invalidate(userID)
	c.songs.Invalidate(songID)
}

// Stats returns per-lookup hit and miss counts.
func (c *RatingCache) Stats() Stats {
	return Stats{Hits: c.hits.Load(), Misses: c.misses.Load()}
}
