// Psalter - Worship Service Planning and Song Rotation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/psalter

package cache

import (
	"testing"

	"github.com/tomtom215/psalter/internal/models"
)

func TestRatingCache_LookupAndRemember(t *testing.T) {
	c := NewMemoryRatingCache(10)

	found, missing := c.Lookup("u1", []string{"s1", "s2"})
	if len(found) != 0 || len(missing) != 2 {
		t.Fatalf("cold Lookup() = %v, %v; want all missing", found, missing)
	}

	fav := &models.UserPreference{UserID: "u1", SongID: "s1", Rating: models.RatingFavorable}
	c.Remember("u1", UserRatings{"s1": fav, "s2": nil})

	found, missing = c.Lookup("u1", []string{"s1", "s2", "s3"})
	if len(missing) != 1 || missing[0] != "s3" {
		t.Errorf("missing = %v, want [s3]", missing)
	}
	if found["s1"] == nil || found["s1"].Rating != models.RatingFavorable {
		t.Errorf("found[s1] = %+v, want favorable", found["s1"])
	}
	if p, ok := found["s2"]; !ok || p != nil {
		t.Errorf("found[s2] = %v, %v; want known-absent nil", p, ok)
	}

	stats := c.Stats()
	if stats.Hits != 2 || stats.Misses != 3 {
		t.Errorf("Stats() = %+v, want 2 hits 3 misses", stats)
	}
}

func TestRatingCache_RememberMerges(t *testing.T) {
	c := NewMemoryRatingCache(10)
	c.Remember("u1", UserRatings{"s1": nil})
	c.Remember("u1", UserRatings{"s2": nil})

	_, missing := c.Lookup("u1", []string{"s1", "s2"})
	if len(missing) != 0 {
		t.Errorf("missing = %v, want none after merge", missing)
	}
}

func TestRatingCache_InvalidateDropsUserAndSong(t *testing.T) {
	c := NewMemoryRatingCache(10)
	c.Remember("u1", UserRatings{"s1": nil})
	c.Remember("u2", UserRatings{"s1": nil})
	c.SetSummary(models.RatingSummary{SongID: "s1", Favorable: 3})

	c.Invalidate("u1", "s1")

	if _, missing := c.Lookup("u1", []string{"s1"}); len(missing) != 1 {
		t.Error("expected u1 ratings to be invalidated")
	}
	if _, missing := c.Lookup("u2", []string{"s1"}); len(missing) != 0 {
		t.Error("expected u2 ratings to survive")
	}
	if _, ok := c.Summary("s1"); ok {
		t.Error("expected s1 summary to be invalidated")
	}
}

func TestRatingCache_Summary(t *testing.T) {
	c := NewMemoryRatingCache(10)
	if _, ok := c.Summary("s1"); ok {
		t.Fatal("Summary() hit on empty cache")
	}
	c.SetSummary(models.RatingSummary{SongID: "s1", Unfavorable: 2})
	s, ok := c.Summary("s1")
	if !ok || s.Unfavorable != 2 {
		t.Errorf("Summary() = %+v, %v", s, ok)
	}
}
