// Psalter - Worship Service Planning and Song Rotation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/psalter

package recommend

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tomtom215/psalter/internal/cache"
	"github.com/tomtom215/psalter/internal/models"
)

func newTestRatingService(store *fakeStore) *RatingService {
	return NewRatingService(store, cache.NewMemoryRatingCache(100), BatchConfig{ChunkSize: 2}, zerolog.Nop())
}

func TestRatingService_ReadThroughCache(t *testing.T) {
	store := newFakeStore()
	store.prefs[prefKey("u1", "s1")] = models.UserPreference{UserID: "u1", SongID: "s1", Rating: models.RatingFavorable}
	svc := newTestRatingService(store)
	ctx := context.Background()

	got, err := svc.GetMany(ctx, "u1", []string{"s1", "s2", "s3"})
	if err != nil {
		t.Fatalf("GetMany() error = %v", err)
	}
	if len(got) != 1 || got["s1"].Rating != models.RatingFavorable {
		t.Errorf("GetMany() = %+v", got)
	}
	// Three IDs in chunks of two.
	if store.calls() != 2 {
		t.Errorf("store calls = %d, want 2", store.calls())
	}

	// Second read, including the known-absent s2 and s3, is served from cache.
	if _, err := svc.GetMany(ctx, "u1", []string{"s1", "s2", "s3"}); err != nil {
		t.Fatalf("GetMany() error = %v", err)
	}
	if store.calls() != 2 {
		t.Errorf("store calls after cached read = %d, want 2", store.calls())
	}
}

func TestRatingService_SetInvalidates(t *testing.T) {
	store := newFakeStore()
	svc := newTestRatingService(store)
	ctx := context.Background()

	if p, err := svc.Get(ctx, "u1", "s1"); err != nil || p != nil {
		t.Fatalf("Get() = %+v, %v; want nil, nil", p, err)
	}
	if _, err := svc.Summary(ctx, "s1"); err != nil {
		t.Fatalf("Summary() error = %v", err)
	}

	err := svc.Set(ctx, models.UserPreference{UserID: "u1", SongID: "s1", Rating: models.RatingUnfavorable, Difficult: true})
	if err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	p, err := svc.Get(ctx, "u1", "s1")
	if err != nil || p == nil || p.Rating != models.RatingUnfavorable || !p.Difficult {
		t.Errorf("Get() after Set = %+v, %v", p, err)
	}
	if p != nil && p.UpdatedAt.IsZero() {
		t.Error("UpdatedAt not stamped")
	}

	s, err := svc.Summary(ctx, "s1")
	if err != nil || s.Unfavorable != 1 || s.Difficult != 1 {
		t.Errorf("Summary() after Set = %+v, %v", s, err)
	}

	if err := svc.Delete(ctx, "u1", "s1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if p, _ := svc.Get(ctx, "u1", "s1"); p != nil {
		t.Errorf("Get() after Delete = %+v, want nil", p)
	}
	if s, _ := svc.Summary(ctx, "s1"); s.Total() != 0 {
		t.Errorf("Summary() after Delete = %+v, want empty", s)
	}
}

func TestRatingService_SetValidates(t *testing.T) {
	svc := newTestRatingService(newFakeStore())
	ctx := context.Background()

	tests := []models.UserPreference{
		{SongID: "s1", Rating: models.RatingFavorable},
		{UserID: "u1", Rating: models.RatingFavorable},
		{UserID: "u1", SongID: "s1", Rating: "love"},
	}
	for i, p := range tests {
		if err := svc.Set(ctx, p); !errors.Is(err, ErrInvalidRequest) {
			t.Errorf("case %d: Set() error = %v, want ErrInvalidRequest", i, err)
		}
	}
	if err := svc.Delete(ctx, "", "s1"); !errors.Is(err, ErrInvalidRequest) {
		t.Errorf("Delete() error = %v, want ErrInvalidRequest", err)
	}
}

func TestRatingService_PartialFailureIsNotCached(t *testing.T) {
	store := newFakeStore()
	store.failPrefs = true
	svc := newTestRatingService(store)
	ctx := context.Background()

	songIDs := make([]string, 5)
	for i := range songIDs {
		songIDs[i] = fmt.Sprintf("s%d", i)
	}

	got, err := svc.GetMany(ctx, "u1", songIDs)
	if !errors.Is(err, ErrPartialFetch) {
		t.Fatalf("GetMany() error = %v, want ErrPartialFetch", err)
	}
	if len(got) != 0 {
		t.Errorf("GetMany() = %v, want empty", got)
	}

	store.failPrefs = false
	before := store.calls()
	if _, err := svc.GetMany(ctx, "u1", songIDs); err != nil {
		t.Fatalf("GetMany() retry error = %v", err)
	}
	if store.calls() == before {
		t.Error("failed chunks were cached")
	}
}

func TestRatingService_EmptyInputs(t *testing.T) {
	store := newFakeStore()
	svc := newTestRatingService(store)

	got, err := svc.GetMany(context.Background(), "", []string{"s1"})
	if err != nil || len(got) != 0 {
		t.Errorf("GetMany(no user) = %v, %v", got, err)
	}
	if store.calls() != 0 {
		t.Errorf("store calls = %d, want 0", store.calls())
	}
}
