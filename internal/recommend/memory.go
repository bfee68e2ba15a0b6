// Psalter - Worship Service Planning and Song Rotation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/psalter

package recommend

import (
	"context"
	"sync"
	"time"

	"github.com/tomtom215/psalter/internal/models"
)

// MemoryStore serves a models.Library from memory. It implements
// DataProvider and RatingStore, so the engine and rating service can run
// without a database. Songs with no church belong to every church.
//
// It is safe for concurrent use.
type MemoryStore struct {
	mu  sync.RWMutex
	lib models.Library
}

// NewMemoryStore copies lib into a new store. A nil library gives an empty
// store.
func NewMemoryStore(lib *models.Library) *MemoryStore {
	s := &MemoryStore{}
	if lib != nil {
		s.lib = copyLibrary(lib)
	}
	return s
}

// Snapshot returns a copy of the current library, including rating and
// retirement changes.
func (s *MemoryStore) Snapshot() *models.Library {
	s.mu.RLock()
	defer s.mu.RUnlock()
	lib := copyLibrary(&s.lib)
	return &lib
}

// Ping always succeeds.
func (s *MemoryStore) Ping(context.Context) error {
	return nil
}

// Church returns the church record or models.ErrNotFound.
func (s *MemoryStore) Church(_ context.Context, churchID string) (*models.Church, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if c := s.lib.Church(churchID); c != nil {
		return c, nil
	}
	return nil, models.ErrNotFound
}

// ActiveSongs returns the church's songs that are not retired.
func (s *MemoryStore) ActiveSongs(_ context.Context, churchID string) ([]models.Song, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := s.lib.SongsFor(churchID)
	out := make([]models.Song, 0, len(all))
	for i := range all {
		if !all[i].Retired {
			out = append(out, all[i])
		}
	}
	return out, nil
}

// Song returns one song, retired or not.
func (s *MemoryStore) Song(_ context.Context, churchID, songID string) (*models.Song, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, song := range s.lib.SongsFor(churchID) {
		if song.ID == songID {
			return &song, nil
		}
	}
	return nil, models.ErrNotFound
}

// UsageSince returns usage of the church's songs on or after since.
func (s *MemoryStore) UsageSince(_ context.Context, churchID string, since time.Time) ([]models.UsageRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := s.lib.UsageFor(s.lib.SongsFor(churchID))
	out := make([]models.UsageRecord, 0, len(all))
	for _, u := range all {
		if !u.UsedOn.Before(since) {
			out = append(out, u)
		}
	}
	return out, nil
}

// Members returns the church's members.
func (s *MemoryStore) Members(_ context.Context, churchID string) ([]models.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lib.MembersOf(churchID), nil
}

// UserPreferences returns the user's ratings of songIDs.
func (s *MemoryStore) UserPreferences(_ context.Context, userID string, songIDs []string) ([]models.UserPreference, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	wanted := make(map[string]struct{}, len(songIDs))
	for _, id := range songIDs {
		wanted[id] = struct{}{}
	}
	var out []models.UserPreference
	for _, p := range s.lib.Preferences {
		if p.UserID != userID {
			continue
		}
		if _, ok := wanted[p.SongID]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

// SongPreferences returns every rating of songID.
func (s *MemoryStore) SongPreferences(_ context.Context, songID string) ([]models.UserPreference, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lib.PreferencesFor(songID), nil
}

// SetPreference inserts or replaces the (user, song) rating.
func (s *MemoryStore) SetPreference(_ context.Context, pref models.UserPreference) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lib.Preferences {
		p := &s.lib.Preferences[i]
		if p.UserID == pref.UserID && p.SongID == pref.SongID {
			*p = pref
			return nil
		}
	}
	s.lib.Preferences = append(s.lib.Preferences, pref)
	return nil
}

// DeletePreference removes the (user, song) rating if present.
func (s *MemoryStore) DeletePreference(_ context.Context, userID, songID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.lib.Preferences[:0]
	for _, p := range s.lib.Preferences {
		if p.UserID != userID || p.SongID != songID {
			kept = append(kept, p)
		}
	}
	s.lib.Preferences = kept
	return nil
}

// SetSongRetired marks a song retired or active. Missing songs return
// models.ErrNotFound.
func (s *MemoryStore) SetSongRetired(_ context.Context, churchID, songID string, retired bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lib.Songs {
		song := &s.lib.Songs[i]
		if song.ID != songID || (song.ChurchID != "" && song.ChurchID != churchID) {
			continue
		}
		song.Retired = retired
		return nil
	}
	return models.ErrNotFound
}

func copyLibrary(lib *models.Library) models.Library {
	return models.Library{
		Churches:    append([]models.Church(nil), lib.Churches...),
		Songs:       append([]models.Song(nil), lib.Songs...),
		Usage:       append([]models.UsageRecord(nil), lib.Usage...),
		Members:     append([]models.Member(nil), lib.Members...),
		Preferences: append([]models.UserPreference(nil), lib.Preferences...),
		ExportedAt:  lib.ExportedAt,
	}
}
