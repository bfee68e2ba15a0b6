// Psalter - Worship Service Planning and Song Rotation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/psalter

package recommend

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/tomtom215/psalter/internal/models"
)

var errUnavailable = errors.New("store unavailable")

// fakeStore is an in-memory DataProvider and RatingStore.
type fakeStore struct {
	mu sync.Mutex

	songs   []models.Song
	usage   []models.UsageRecord
	members []models.Member
	prefs   map[string]models.UserPreference // key: user|song

	failSongs   bool
	failUsage   bool
	failPrefs   bool
	failMembers bool

	prefCalls  int
	prefChunks [][]string
}

func newFakeStore() *fakeStore {
	return &fakeStore{prefs: make(map[string]models.UserPreference)}
}

func prefKey(userID, songID string) string { return userID + "|" + songID }

func (f *fakeStore) ActiveSongs(_ context.Context, churchID string) ([]models.Song, error) {
	if f.failSongs {
		return nil, errUnavailable
	}
	var out []models.Song
	for _, s := range f.songs {
		if s.ChurchID == churchID && !s.Retired {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return nil, models.ErrNotFound
	}
	return out, nil
}

func (f *fakeStore) Song(_ context.Context, churchID, songID string) (*models.Song, error) {
	for _, s := range f.songs {
		if s.ChurchID == churchID && s.ID == songID {
			song := s
			return &song, nil
		}
	}
	return nil, models.ErrNotFound
}

func (f *fakeStore) UsageSince(_ context.Context, _ string, since time.Time) ([]models.UsageRecord, error) {
	if f.failUsage {
		return nil, errUnavailable
	}
	var out []models.UsageRecord
	for _, u := range f.usage {
		if !u.UsedOn.Before(since) {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeStore) UserPreferences(_ context.Context, userID string, songIDs []string) ([]models.UserPreference, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.prefCalls++
	f.prefChunks = append(f.prefChunks, append([]string(nil), songIDs...))
	if f.failPrefs {
		return nil, errUnavailable
	}
	var out []models.UserPreference
	for _, id := range songIDs {
		if p, ok := f.prefs[prefKey(userID, id)]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeStore) SongPreferences(_ context.Context, songID string) ([]models.UserPreference, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failPrefs {
		return nil, errUnavailable
	}
	var out []models.UserPreference
	for _, p := range f.prefs {
		if p.SongID == songID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeStore) Members(_ context.Context, churchID string) ([]models.Member, error) {
	if f.failMembers {
		return nil, errUnavailable
	}
	var out []models.Member
	for _, m := range f.members {
		if m.ChurchID == churchID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeStore) SetPreference(_ context.Context, pref models.UserPreference) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prefs[prefKey(pref.UserID, pref.SongID)] = pref
	return nil
}

func (f *fakeStore) DeletePreference(_ context.Context, userID, songID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.prefs, prefKey(userID, songID))
	return nil
}

func (f *fakeStore) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.prefCalls
}

// fixedResolver always returns the same context.
type fixedResolver models.ChurchContext

func (r fixedResolver) Resolve(_ context.Context, churchID string) models.ChurchContext {
	cc := models.ChurchContext(r)
	cc.ChurchID = churchID
	return cc
}
