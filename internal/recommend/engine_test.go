// Psalter - Worship Service Planning and Song Rotation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/psalter

package recommend

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/psalter/internal/models"
)

var engineNow = time.Date(2026, time.December, 10, 12, 0, 0, 0, time.UTC)

func daysAgo(d int) time.Time {
	return engineNow.AddDate(0, 0, -d)
}

// newLibraryStore builds a small library for church "c1".
func newLibraryStore() *fakeStore {
	store := newFakeStore()
	store.songs = []models.Song{
		{ID: "carol", ChurchID: "c1", Title: "Joy to the World", Key: "D", Tempo: 110, Tags: []string{"christmas"}},
		{ID: "grace", ChurchID: "c1", Title: "Amazing Grace", Key: "G", Tempo: 70},
		{ID: "rock", ChurchID: "c1", Title: "Cornerstone", Key: "C", Tempo: 72},
		{ID: "shout", ChurchID: "c1", Title: "Shout to the Lord", Key: "A", Tempo: 128},
		{ID: "still", ChurchID: "c1", Title: "Be Still", Key: "E", Tempo: 64},
		{ID: "dull", ChurchID: "c1", Title: "Disliked Hymn", Key: "F", Tempo: 90},
		{ID: "gone", ChurchID: "c1", Title: "Retired Chorus", Retired: true},
		{ID: "other", ChurchID: "c2", Title: "Other Church Song"},
	}
	// grace is well known and has rested; rock was sung last week.
	for _, d := range []int{60, 120, 180, 240, 300, 360} {
		store.usage = append(store.usage, models.UsageRecord{SongID: "grace", UsedOn: daysAgo(d)})
	}
	store.usage = append(store.usage,
		models.UsageRecord{SongID: "rock", UsedOn: daysAgo(7)},
		models.UsageRecord{SongID: "still", UsedOn: daysAgo(90)},
	)
	store.prefs[prefKey("u1", "dull")] = models.UserPreference{UserID: "u1", SongID: "dull", Rating: models.RatingUnfavorable}
	store.prefs[prefKey("u1", "still")] = models.UserPreference{UserID: "u1", SongID: "still", Rating: models.RatingFavorable}
	return store
}

func newTestEngine(t *testing.T, store *fakeStore) *Engine {
	t.Helper()
	engine, err := NewEngine(nil, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	engine.SetDataProvider(store)
	engine.SetContextResolver(fixedResolver{
		Hemisphere: models.HemisphereNorthern,
		Timezone:   "UTC",
		Month:      12,
		Source:     models.ContextSourceChurch,
	})
	engine.SetClock(func() time.Time { return engineNow })
	return engine
}

func suggestionIDs(s []Suggestion) []string {
	ids := make([]string, len(s))
	for i := range s {
		ids[i] = s[i].Song.ID
	}
	return ids
}

func TestNewEngine_InvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Limits.MaxK = 0
	if _, err := NewEngine(cfg, zerolog.Nop()); err == nil {
		t.Error("NewEngine() with invalid config should fail")
	}
}

func TestEngine_Recommend(t *testing.T) {
	engine := newTestEngine(t, newLibraryStore())

	resp, err := engine.Recommend(context.Background(), Request{ChurchID: "c1", UserID: "u1"})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}

	ids := suggestionIDs(resp.Suggestions)
	if len(ids) == 0 {
		t.Fatal("Recommend() returned no suggestions")
	}
	for _, bad := range []string{"dull", "gone", "other"} {
		if slices.Contains(ids, bad) {
			t.Errorf("suggestions %v contain %q", ids, bad)
		}
	}
	seen := make(map[string]bool)
	for i, s := range resp.Suggestions {
		if seen[s.Song.ID] {
			t.Errorf("song %q suggested twice", s.Song.ID)
		}
		seen[s.Song.ID] = true
		if i > 0 && resp.Suggestions[i-1].Score < s.Score {
			t.Errorf("suggestions not sorted at %d: %v < %v", i, resp.Suggestions[i-1].Score, s.Score)
		}
		if s.Confidence < 0 || s.Confidence > 1 {
			t.Errorf("confidence %v out of range", s.Confidence)
		}
	}

	if resp.Metadata.RequestID == "" {
		t.Error("request ID not assigned")
	}
	if resp.Metadata.Candidates != 6 {
		t.Errorf("Candidates = %d, want 6", resp.Metadata.Candidates)
	}
	if len(resp.Metadata.Degraded) != 0 {
		t.Errorf("Degraded = %v, want none", resp.Metadata.Degraded)
	}
	if resp.Context.Month != 12 || resp.Context.ChurchID != "c1" {
		t.Errorf("Context = %+v", resp.Context)
	}
	if !resp.Metadata.Timestamp.Equal(engineNow) {
		t.Errorf("Timestamp = %v, want %v", resp.Metadata.Timestamp, engineNow)
	}
}

func TestEngine_Recommend_SuggestionTypes(t *testing.T) {
	engine := newTestEngine(t, newLibraryStore())

	resp, err := engine.Recommend(context.Background(), Request{ChurchID: "c1", K: 10})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}

	var carol *Suggestion
	for i := range resp.Suggestions {
		if resp.Suggestions[i].Song.ID == "carol" {
			carol = &resp.Suggestions[i]
		}
	}
	if carol == nil {
		t.Fatalf("seasonal carol missing from %v", suggestionIDs(resp.Suggestions))
	}
	if !slices.Contains(carol.Tags, TagSeasonal) {
		t.Errorf("carol tags = %v, want %q", carol.Tags, TagSeasonal)
	}
}

func TestEngine_Recommend_K(t *testing.T) {
	engine := newTestEngine(t, newLibraryStore())
	ctx := context.Background()

	resp, err := engine.Recommend(ctx, Request{ChurchID: "c1", K: 2})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(resp.Suggestions) != 2 {
		t.Errorf("len = %d, want 2", len(resp.Suggestions))
	}

	// K above the limit is clamped rather than rejected.
	resp, err = engine.Recommend(ctx, Request{ChurchID: "c1", K: 1000})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(resp.Suggestions) > engine.Config().Limits.MaxK {
		t.Errorf("len = %d exceeds MaxK", len(resp.Suggestions))
	}
}

func TestEngine_Recommend_ExcludesPreviousAndExplicit(t *testing.T) {
	engine := newTestEngine(t, newLibraryStore())

	resp, err := engine.Recommend(context.Background(), Request{
		ChurchID:       "c1",
		PreviousSongID: "grace",
		Exclude:        []string{"carol"},
	})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	ids := suggestionIDs(resp.Suggestions)
	if slices.Contains(ids, "grace") || slices.Contains(ids, "carol") {
		t.Errorf("suggestions %v contain excluded songs", ids)
	}
}

func TestEngine_Recommend_RetiredPreviousSong(t *testing.T) {
	engine := newTestEngine(t, newLibraryStore())

	resp, err := engine.Recommend(context.Background(), Request{ChurchID: "c1", PreviousSongID: "gone"})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(resp.Metadata.Degraded) != 0 {
		t.Errorf("Degraded = %v, want none", resp.Metadata.Degraded)
	}
}

func TestEngine_Recommend_Degraded(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(*fakeStore)
		degraded string
		wantAny  bool
	}{
		{"usage fails", func(f *fakeStore) { f.failUsage = true }, "usage", true},
		{"preferences fail", func(f *fakeStore) { f.failPrefs = true }, "preferences", true},
		{"songs fail", func(f *fakeStore) { f.failSongs = true }, "songs", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newLibraryStore()
			tt.setup(store)
			engine := newTestEngine(t, store)

			resp, err := engine.Recommend(context.Background(), Request{ChurchID: "c1", UserID: "u1"})
			if err != nil {
				t.Fatalf("Recommend() error = %v", err)
			}
			if !slices.Contains(resp.Metadata.Degraded, tt.degraded) {
				t.Errorf("Degraded = %v, want %q", resp.Metadata.Degraded, tt.degraded)
			}
			if got := len(resp.Suggestions) > 0; got != tt.wantAny {
				t.Errorf("has suggestions = %v, want %v", got, tt.wantAny)
			}
			if engine.Stats().DegradedFetches == 0 {
				t.Error("DegradedFetches not counted")
			}
		})
	}
}

func TestEngine_Recommend_UnknownChurch(t *testing.T) {
	engine := newTestEngine(t, newLibraryStore())

	resp, err := engine.Recommend(context.Background(), Request{ChurchID: "nobody"})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(resp.Suggestions) != 0 || len(resp.Metadata.Degraded) != 0 {
		t.Errorf("Recommend() = %+v, want empty and not degraded", resp)
	}
}

func TestEngine_Recommend_InvalidRequest(t *testing.T) {
	engine := newTestEngine(t, newLibraryStore())

	tests := []struct {
		name string
		req  Request
	}{
		{"missing church", Request{}},
		{"negative k", Request{ChurchID: "c1", K: -1}},
		{"unknown mood", Request{ChurchID: "c1", Mood: "angry"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := engine.Recommend(context.Background(), tt.req)
			if !errors.Is(err, ErrInvalidRequest) {
				t.Errorf("Recommend() error = %v, want ErrInvalidRequest", err)
			}
		})
	}
}

func TestEngine_Recommend_NoDataProvider(t *testing.T) {
	engine, err := NewEngine(nil, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := engine.Recommend(context.Background(), Request{ChurchID: "c1"}); err == nil {
		t.Error("Recommend() without data provider should fail")
	}
}

func TestEngine_Recommend_ThroughRatingService(t *testing.T) {
	store := newLibraryStore()
	engine := newTestEngine(t, store)
	svc := newTestRatingService(store)
	engine.SetPreferenceLookup(svc)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		resp, err := engine.Recommend(ctx, Request{ChurchID: "c1", UserID: "u1"})
		if err != nil {
			t.Fatalf("Recommend() error = %v", err)
		}
		if slices.Contains(suggestionIDs(resp.Suggestions), "dull") {
			t.Errorf("run %d: disliked song suggested", i)
		}
	}
	if hits := svc.Cache().Stats().Hits; hits == 0 {
		t.Error("second request did not hit the rating cache")
	}
}

func TestEngine_Insights(t *testing.T) {
	engine := newTestEngine(t, newLibraryStore())

	report, err := engine.Insights(context.Background(), "c1")
	if err != nil {
		t.Fatalf("Insights() error = %v", err)
	}
	if report.Rotation.TotalSongs != 6 {
		t.Errorf("TotalSongs = %d, want 6", report.Rotation.TotalSongs)
	}
	if report.Context.Month != 12 {
		t.Errorf("Context.Month = %d, want 12", report.Context.Month)
	}
	if !report.GeneratedAt.Equal(engineNow) {
		t.Errorf("GeneratedAt = %v", report.GeneratedAt)
	}

	if _, err := engine.Insights(context.Background(), " "); !errors.Is(err, ErrInvalidRequest) {
		t.Errorf("Insights(blank) error = %v, want ErrInvalidRequest", err)
	}
}

func TestEngine_Insights_FailedFetch(t *testing.T) {
	store := newLibraryStore()
	store.failSongs = true
	store.failUsage = true
	engine := newTestEngine(t, store)

	report, err := engine.Insights(context.Background(), "c1")
	if err != nil {
		t.Fatalf("Insights() error = %v", err)
	}
	if report == nil || report.Rotation.TotalSongs != 0 {
		t.Errorf("Insights() = %+v, want empty report", report)
	}
}

func TestEngine_EvaluateRetirement(t *testing.T) {
	store := newLibraryStore()
	for i := 0; i < 5; i++ {
		id := fmt.Sprintf("leader%d", i)
		store.members = append(store.members, models.Member{ChurchID: "c1", UserID: id, IsLeader: true, Active: true})
		rating := models.RatingUnfavorable
		if i == 4 {
			rating = models.RatingNeutral
		}
		store.prefs[prefKey(id, "dull")] = models.UserPreference{UserID: id, SongID: "dull", Rating: rating}
	}
	store.members = append(store.members,
		models.Member{ChurchID: "c1", UserID: "inactive", IsLeader: true},
		models.Member{ChurchID: "c1", UserID: "u1"},
	)
	engine := newTestEngine(t, store)

	decision, err := engine.EvaluateRetirement(context.Background(), "c1", "dull")
	if err != nil {
		t.Fatalf("EvaluateRetirement() error = %v", err)
	}
	if decision.Leaders != 5 || decision.Unfavorable != 4 || decision.Threshold != 4 || !decision.Retire {
		t.Errorf("decision = %+v, want 5 leaders, 4 unfavorable, retire", decision)
	}

	// A single favorable leader blocks retirement.
	store.prefs[prefKey("leader4", "dull")] = models.UserPreference{UserID: "leader4", SongID: "dull", Rating: models.RatingFavorable}
	decision, err = engine.EvaluateRetirement(context.Background(), "c1", "dull")
	if err != nil {
		t.Fatalf("EvaluateRetirement() error = %v", err)
	}
	if decision.Retire {
		t.Errorf("decision = %+v, want no retire with a favorable leader", decision)
	}

	store.failMembers = true
	decision, err = engine.EvaluateRetirement(context.Background(), "c1", "dull")
	if err != nil {
		t.Fatalf("EvaluateRetirement() error = %v", err)
	}
	if decision.Retire {
		t.Error("failed member fetch should not retire")
	}
}

func TestEngine_Stats(t *testing.T) {
	engine := newTestEngine(t, newLibraryStore())
	ctx := context.Background()

	_, _ = engine.Recommend(ctx, Request{ChurchID: "c1"})
	_, _ = engine.Recommend(ctx, Request{ChurchID: "c1"})
	_, _ = engine.Insights(ctx, "c1")
	_, _ = engine.EvaluateRetirement(ctx, "c1", "grace")

	stats := engine.Stats()
	if stats.Requests != 2 || stats.InsightReports != 1 || stats.Retirements != 1 {
		t.Errorf("Stats() = %+v", stats)
	}
}
