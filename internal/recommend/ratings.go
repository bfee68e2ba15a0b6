// Psalter - Worship Service Planning and Song Rotation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/psalter

package recommend

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/tomtom215/psalter/internal/cache"
	"github.com/tomtom215/psalter/internal/models"
)

// RatingStore persists user ratings.
type RatingStore interface {
	PreferenceLookup
	RatingLookup

	// SetPreference inserts or replaces the (user, song) rating.
	SetPreference(ctx context.Context, pref models.UserPreference) error

	// DeletePreference removes the (user, song) rating. Deleting a missing
	// rating is not an error.
	DeletePreference(ctx context.Context, userID, songID string) error
}

// RatingService reads and writes ratings through a RatingCache. Reads that
// miss the cache populate it; writes invalidate the user's entry and the
// song's aggregate. It implements PreferenceLookup and RatingLookup so the
// engine can read through it.
type RatingService struct {
	store     RatingStore
	cache     *cache.RatingCache
	chunkSize int
	limiter   *rate.Limiter
	logger    zerolog.Logger
	now       func() time.Time
}

// NewRatingService creates a rating service. A nil cache gets a fresh
// in-memory one.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewRatingService(store RatingStore, c *cache.RatingCache, batch BatchConfig, logger zerolog.Logger) *RatingService {
	if c == nil {
		c = cache.NewMemoryRatingCache(cache.DefaultCapacity)
	}
	size := batch.ChunkSize
	if size <= 0 {
		size = DefaultChunkSize
	}
	return &RatingService{
		store:     store,
		cache:     c,
		chunkSize: size,
		limiter:   NewChunkLimiter(batch),
		logger:    logger.With().Str("component", "ratings").Logger(),
		now:       time.Now,
	}
}

// Cache returns the service's cache.
func (s *RatingService) Cache() *cache.RatingCache {
	return s.cache
}

// Get returns the user's rating of a song, or nil if there is none.
func (s *RatingService) Get(ctx context.Context, userID, songID string) (*models.UserPreference, error) {
	prefs, err := s.GetMany(ctx, userID, []string{songID})
	if err != nil {
		return nil, err
	}
	if p, ok := prefs[songID]; ok {
		return &p, nil
	}
	return nil, nil //nolint:nilnil // no rating is a normal result
}

// GetMany returns the user's ratings of songIDs keyed by song ID. Unrated
// songs are absent. Cache misses are fetched in chunks concurrently; when
// some chunks fail the partial result is returned with an error wrapping
// ErrPartialFetch.
func (s *RatingService) GetMany(ctx context.Context, userID string, songIDs []string) (map[string]models.UserPreference, error) {
	result := make(map[string]models.UserPreference, len(songIDs))
	if userID == "" || len(songIDs) == 0 {
		return result, nil
	}

	found, missing := s.cache.Lookup(userID, uniqueIDs(songIDs))
	for id, p := range found {
		if p != nil {
			result[id] = *p
		}
	}
	if len(missing) == 0 {
		return result, nil
	}

	fetched, failed := FetchChunked(ctx, missing, s.chunkSize, s.limiter,
		func(ctx context.Context, ids []string) ([]cache.UserRatings, error) {
			prefs, err := s.store.UserPreferences(ctx, userID, ids)
			if err != nil && !isNotFound(err) {
				return nil, err
			}
			known := make(cache.UserRatings, len(ids))
			for _, id := range ids {
				known[id] = nil
			}
			for i := range prefs {
				p := prefs[i]
				known[p.SongID] = &p
			}
			return []cache.UserRatings{known}, nil
		},
		func(chunk []string, err error) {
			s.logger.Warn().Err(err).Str("user_id", userID).Int("chunk_size", len(chunk)).
				Msg("rating chunk fetch failed, continuing without it")
		},
	)

	for _, known := range fetched {
		s.cache.Remember(userID, known)
		for id, p := range known {
			if p != nil {
				result[id] = *p
			}
		}
	}

	if failed > 0 {
		return result, fmt.Errorf("%w: %d rating chunks failed", ErrPartialFetch, failed)
	}
	return result, nil
}

// UserPreferences implements PreferenceLookup through the cache.
func (s *RatingService) UserPreferences(ctx context.Context, userID string, songIDs []string) ([]models.UserPreference, error) {
	byID, err := s.GetMany(ctx, userID, songIDs)
	prefs := make([]models.UserPreference, 0, len(byID))
	for _, p := range byID {
		prefs = append(prefs, p)
	}
	return prefs, err
}

// SongPreferences implements RatingLookup. Per-song rating lists are not
// cached; only their aggregate is.
func (s *RatingService) SongPreferences(ctx context.Context, songID string) ([]models.UserPreference, error) {
	prefs, err := s.store.SongPreferences(ctx, songID)
	if isNotFound(err) {
		return nil, nil
	}
	return prefs, err
}

// Set validates and stores a rating, then invalidates the cache.
func (s *RatingService) Set(ctx context.Context, pref models.UserPreference) error {
	if strings.TrimSpace(pref.UserID) == "" || strings.TrimSpace(pref.SongID) == "" {
		return fmt.Errorf("%w: user and song are required", ErrInvalidRequest)
	}
	if _, err := models.ParseRating(string(pref.Rating)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	if pref.UpdatedAt.IsZero() {
		pref.UpdatedAt = s.now().UTC()
	}

	if err := s.store.SetPreference(ctx, pref); err != nil {
		return fmt.Errorf("set preference: %w", err)
	}
	s.cache.Invalidate(pref.UserID, pref.SongID)

	s.logger.Debug().Str("user_id", pref.UserID).Str("song_id", pref.SongID).
		Str("rating", string(pref.Rating)).Bool("difficult", pref.Difficult).Msg("rating saved")
	return nil
}

// Delete removes a rating, then invalidates the cache.
func (s *RatingService) Delete(ctx context.Context, userID, songID string) error {
	if userID == "" || songID == "" {
		return fmt.Errorf("%w: user and song are required", ErrInvalidRequest)
	}
	if err := s.store.DeletePreference(ctx, userID, songID); err != nil && !isNotFound(err) {
		return fmt.Errorf("delete preference: %w", err)
	}
	s.cache.Invalidate(userID, songID)
	return nil
}

// Summary returns the aggregate rating counts of a song.
func (s *RatingService) Summary(ctx context.Context, songID string) (models.RatingSummary, error) {
	if cached, ok := s.cache.Summary(songID); ok {
		return cached, nil
	}

	prefs, err := s.SongPreferences(ctx, songID)
	if err != nil {
		return models.RatingSummary{SongID: songID}, fmt.Errorf("song preferences: %w", err)
	}

	summary := models.Summarize(songID, prefs)
	s.cache.SetSummary(summary)
	return summary, nil
}

func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
