// Psalter - Worship Service Planning and Song Rotation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/psalter

package cache

import (
	"testing"

	"github.com/dgraph-io/badger/v4"

	"github.com/tomtom215/psalter/internal/models"
)

func openTestBadger(t *testing.T) *badger.DB {
	t.Helper()

	db, err := OpenBadger("")
	if err != nil {
		t.Fatalf("OpenBadger() error = %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestBadgerStore_RoundTrip(t *testing.T) {
	db := openTestBadger(t)
	s := NewBadgerStore[models.RatingSummary](db, "test:")

	if _, ok := s.Get("s1"); ok {
		t.Fatal("Get() hit on empty store")
	}

	s.Set("s1", models.RatingSummary{SongID: "s1", Favorable: 4, Difficult: 1})
	got, ok := s.Get("s1")
	if !ok {
		t.Fatal("Get() miss after Set")
	}
	if got.Favorable != 4 || got.Difficult != 1 {
		t.Errorf("Get() = %+v", got)
	}

	s.Invalidate("s1")
	if _, ok := s.Get("s1"); ok {
		t.Error("Get() hit after Invalidate")
	}
}

func TestBadgerStore_PrefixesIsolate(t *testing.T) {
	db := openTestBadger(t)
	a := NewBadgerStore[int](db, "a:")
	b := NewBadgerStore[int](db, "b:")

	a.Set("k", 1)
	if _, ok := b.Get("k"); ok {
		t.Error("store b sees store a's key")
	}
}

func TestBadgerRatingCache_KnownAbsentSurvivesEncoding(t *testing.T) {
	c := NewBadgerRatingCache(openTestBadger(t))
	c.Remember("u1", UserRatings{
		"s1": nil,
		"s2": {UserID: "u1", SongID: "s2", Rating: models.RatingUnfavorable, Difficult: true},
	})

	found, missing := c.Lookup("u1", []string{"s1", "s2"})
	if len(missing) != 0 {
		t.Fatalf("missing = %v, want none", missing)
	}
	if found["s1"] != nil {
		t.Errorf("found[s1] = %+v, want nil", found["s1"])
	}
	if found["s2"] == nil || !found["s2"].Difficult {
		t.Errorf("found[s2] = %+v, want difficult unfavorable", found["s2"])
	}
}

func TestResetBadgerRatingCache(t *testing.T) {
	db := openTestBadger(t)
	c := NewBadgerRatingCache(db)
	other := NewBadgerStore[int](db, "other:")

	c.Remember("u1", UserRatings{"s1": {UserID: "u1", SongID: "s1", Rating: models.RatingUnfavorable}})
	c.SetSummary(models.RatingSummary{SongID: "s1", Unfavorable: 1})
	other.Set("k", 7)

	if err := ResetBadgerRatingCache(db); err != nil {
		t.Fatalf("ResetBadgerRatingCache() error = %v", err)
	}

	if _, missing := c.Lookup("u1", []string{"s1"}); len(missing) != 1 {
		t.Errorf("user ratings survived reset, missing = %v", missing)
	}
	if _, ok := c.Summary("s1"); ok {
		t.Error("song summary survived reset")
	}
	if v, ok := other.Get("k"); !ok || v != 7 {
		t.Errorf("unrelated key = %d, %v, want 7 kept", v, ok)
	}
}
