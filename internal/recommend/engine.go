// Psalter - Worship Service Planning and Song Rotation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/psalter

package recommend

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/tomtom215/psalter/internal/models"
	"github.com/tomtom215/psalter/internal/recommend/algorithms"
	"github.com/tomtom215/psalter/internal/recommend/insights"
)

// Engine runs the suggestion pipeline: resolve church context, fetch songs,
// usage and preferences concurrently, score, merge and rank. Each fetch has
// its own failure boundary; a failed fetch is logged and replaced with an
// empty result so one failing dependency degrades a single input rather
// than the whole response.
//
// It is safe for concurrent use.
type Engine struct {
	config *Config
	logger zerolog.Logger

	data     DataProvider
	prefs    PreferenceLookup
	resolver ContextResolver
	limiter  *rate.Limiter
	now      func() time.Time

	requestCount  atomic.Int64
	insightCount  atomic.Int64
	retireCount   atomic.Int64
	degradedCount atomic.Int64
}

// NewEngine creates a new suggestion engine.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Engine{
		config:  cfg,
		logger:  logger.With().Str("component", "recommend").Logger(),
		limiter: NewChunkLimiter(cfg.Batch),
		now:     time.Now,
	}, nil
}

// SetDataProvider sets the source of songs, usage, members and ratings.
func (e *Engine) SetDataProvider(dp DataProvider) {
	e.data = dp
}

// SetPreferenceLookup overrides where user preferences are read from,
// typically a RatingService in front of the data provider.
func (e *Engine) SetPreferenceLookup(p PreferenceLookup) {
	e.prefs = p
}

// SetContextResolver sets the church context resolver. Without one, every
// church is treated as northern hemisphere in UTC.
func (e *Engine) SetContextResolver(r ContextResolver) {
	e.resolver = r
}

// SetClock replaces time.Now.
func (e *Engine) SetClock(now func() time.Time) {
	e.now = now
}

// Config returns the engine configuration.
func (e *Engine) Config() *Config {
	return e.config
}

// Stats returns cumulative counters.
func (e *Engine) Stats() Stats {
	return Stats{
		Requests:        e.requestCount.Load(),
		InsightReports:  e.insightCount.Load(),
		Retirements:     e.retireCount.Load(),
		DegradedFetches: e.degradedCount.Load(),
	}
}

// Recommend generates merged suggestions for one service slot.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) Recommend(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	e.requestCount.Add(1)

	req, mood, err := e.prepareRequest(req)
	if err != nil {
		return nil, err
	}
	if e.data == nil {
		return nil, fmt.Errorf("data provider not set")
	}

	logger := e.createRequestLogger(req)
	logger.Debug().Msg("processing suggestion request")

	now := e.now()
	cc := e.resolveContext(ctx, req.ChurchID, now)
	report := &fetchReport{}

	songs, usage, prefs := e.fetchSuggestionInputs(ctx, req, now, report, logger)
	pool := activeWithUsage(songs, usage, now)

	opts := GenerateOptions{
		ScoreOptions: ScoreOptions{
			Month:             cc.Month,
			Hemisphere:        cc.Hemisphere,
			Theme:             req.Theme,
			Mood:              mood,
			PreviousSong:      e.previousSong(ctx, req, songs, report, logger),
			Preferences:       prefs,
			PreferenceOptions: e.config.Preferences,
		},
		Exclude:          buildExcludeSet(req),
		MinDaysSinceUsed: e.config.Suggest.MinDaysSinceUsed,
		MaxResults:       max(e.config.Suggest.MaxResults, req.K),
	}

	rotation := ToSuggestions(GenerateSuggestions(pool, &opts), SuggestionRotation)
	seasonal := ToSuggestions(GenerateSuggestions(seasonalPool(pool, cc), &opts), SuggestionSeasonal)
	popular := ToSuggestions(
		GenerateSuggestions(popularPool(pool, usage, now, e.config.Suggest.PopularityRestDays), &opts),
		SuggestionPopularity,
	)

	merged := MergeSuggestions(rotation, seasonal, popular)
	if len(merged) > req.K {
		merged = merged[:req.K]
	}

	resp := &Response{
		Suggestions: merged,
		Context:     cc,
		Metadata: ResponseMetadata{
			RequestID:  req.RequestID,
			ChurchID:   req.ChurchID,
			UserID:     req.UserID,
			Candidates: len(pool),
			Degraded:   report.list(),
			LatencyMS:  time.Since(start).Milliseconds(),
			Timestamp:  now,
		},
	}

	logger.Debug().
		Int("candidates", len(pool)).
		Int("returned", len(merged)).
		Strs("degraded", resp.Metadata.Degraded).
		Int64("latency_ms", resp.Metadata.LatencyMS).
		Msg("suggestions complete")

	return resp, nil
}

// Insights builds the library-health report for a church.
func (e *Engine) Insights(ctx context.Context, churchID string) (*insights.WorshipInsights, error) {
	e.insightCount.Add(1)

	if strings.TrimSpace(churchID) == "" {
		return nil, fmt.Errorf("%w: church is required", ErrInvalidRequest)
	}
	if e.data == nil {
		return nil, fmt.Errorf("data provider not set")
	}

	logger := e.logger.With().Str("church_id", churchID).Logger()
	now := e.now()
	cc := e.resolveContext(ctx, churchID, now)
	report := &fetchReport{}

	var songs []models.Song
	var usage []models.UsageRecord
	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		fctx, cancel := e.fetchContext(ctx)
		defer cancel()
		s, err := e.data.ActiveSongs(fctx, churchID)
		if e.boundary(logger, report, "songs", err) {
			songs = s
		}
	}()
	go func() {
		defer wg.Done()
		fctx, cancel := e.fetchContext(ctx)
		defer cancel()
		u, err := e.data.UsageSince(fctx, churchID, time.Time{})
		if e.boundary(logger, report, "usage", err) {
			usage = u
		}
	}()
	wg.Wait()

	result := insights.Analyze(songs, usage, cc, now)

	logger.Debug().
		Int("songs", len(songs)).
		Float64("rotation_score", result.Rotation.Score).
		Str("status", string(result.Rotation.Status)).
		Strs("degraded", report.list()).
		Msg("insights complete")

	return &result, nil
}

// EvaluateRetirement applies the auto-retire policy to a song using the
// church's active leaders and their ratings. A failed fetch yields a
// decision not to retire.
func (e *Engine) EvaluateRetirement(ctx context.Context, churchID, songID string) (*RetirementDecision, error) {
	e.retireCount.Add(1)

	if strings.TrimSpace(churchID) == "" || strings.TrimSpace(songID) == "" {
		return nil, fmt.Errorf("%w: church and song are required", ErrInvalidRequest)
	}
	if e.data == nil {
		return nil, fmt.Errorf("data provider not set")
	}

	logger := e.logger.With().Str("church_id", churchID).Str("song_id", songID).Logger()
	report := &fetchReport{}

	var members []models.Member
	var ratings []models.UserPreference
	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		fctx, cancel := e.fetchContext(ctx)
		defer cancel()
		m, err := e.data.Members(fctx, churchID)
		if e.boundary(logger, report, "members", err) {
			members = m
		}
	}()
	go func() {
		defer wg.Done()
		fctx, cancel := e.fetchContext(ctx)
		defer cancel()
		r, err := e.ratingLookup().SongPreferences(fctx, songID)
		if e.boundary(logger, report, "ratings", err) {
			ratings = r
		}
	}()
	wg.Wait()

	decision := EvaluateRetire(songID, leaderIDs(members), ratings)

	logger.Debug().
		Int("leaders", decision.Leaders).
		Int("unfavorable", decision.Unfavorable).
		Int("threshold", decision.Threshold).
		Bool("retire", decision.Retire).
		Msg("retirement evaluated")

	return &decision, nil
}

// prepareRequest validates the request and applies defaults.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) prepareRequest(req Request) (Request, algorithms.Mood, error) {
	req.ChurchID = strings.TrimSpace(req.ChurchID)
	if req.ChurchID == "" {
		return req, "", fmt.Errorf("%w: church is required", ErrInvalidRequest)
	}
	if req.K < 0 {
		return req, "", fmt.Errorf("%w: k must be non-negative, got %d", ErrInvalidRequest, req.K)
	}

	var mood algorithms.Mood
	if strings.TrimSpace(req.Mood) != "" {
		m, ok := algorithms.ParseMood(req.Mood)
		if !ok {
			return req, "", fmt.Errorf("%w: unknown mood %q", ErrInvalidRequest, req.Mood)
		}
		mood = m
	}

	if req.RequestID == "" {
		req.RequestID = uuid.NewString()
	}
	if req.K == 0 {
		req.K = e.config.Limits.DefaultK
	}
	if req.K > e.config.Limits.MaxK {
		req.K = e.config.Limits.MaxK
	}

	return req, mood, nil
}

// createRequestLogger creates a logger with request context.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) createRequestLogger(req Request) zerolog.Logger {
	return e.logger.With().
		Str("request_id", req.RequestID).
		Str("church_id", req.ChurchID).
		Str("user_id", req.UserID).
		Logger()
}

func (e *Engine) resolveContext(ctx context.Context, churchID string, now time.Time) models.ChurchContext {
	if e.resolver != nil {
		return e.resolver.Resolve(ctx, churchID)
	}
	return models.ChurchContext{
		ChurchID:   churchID,
		Hemisphere: models.HemisphereNorthern,
		Timezone:   "UTC",
		Month:      int(now.UTC().Month()),
		Source:     models.ContextSourceDefault,
	}
}

// fetchSuggestionInputs fetches songs and usage concurrently. Preferences
// need the song IDs, so they are fetched after songs while usage is still
// in flight.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) fetchSuggestionInputs(
	ctx context.Context,
	req Request,
	now time.Time,
	report *fetchReport,
	logger zerolog.Logger,
) (songs []models.Song, usage []models.UsageRecord, prefs map[string]models.UserPreference) {
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		fctx, cancel := e.fetchContext(ctx)
		s, err := e.data.ActiveSongs(fctx, req.ChurchID)
		cancel()
		if e.boundary(logger, report, "songs", err) {
			songs = s
		}
		prefs = e.fetchPreferences(ctx, req.UserID, songIDs(songs), report, logger)
	}()

	go func() {
		defer wg.Done()
		fctx, cancel := e.fetchContext(ctx)
		defer cancel()
		since := now.Add(-e.config.Limits.UsageLookback)
		u, err := e.data.UsageSince(fctx, req.ChurchID, since)
		if e.boundary(logger, report, "usage", err) {
			usage = u
		}
	}()

	wg.Wait()
	return songs, usage, prefs
}

// fetchPreferences reads the user's ratings in chunks. Failed chunks are
// dropped individually.
func (e *Engine) fetchPreferences(
	ctx context.Context,
	userID string,
	ids []string,
	report *fetchReport,
	logger zerolog.Logger,
) map[string]models.UserPreference {
	prefs := make(map[string]models.UserPreference)
	if userID == "" || len(ids) == 0 {
		return prefs
	}

	lookup := e.preferenceLookup()
	fetched, failed := FetchChunked(ctx, ids, e.config.Batch.ChunkSize, e.limiter,
		func(ctx context.Context, chunk []string) ([]models.UserPreference, error) {
			fctx, cancel := e.fetchContext(ctx)
			defer cancel()
			p, err := lookup.UserPreferences(fctx, userID, chunk)
			switch {
			case err == nil, isNotFound(err):
				return p, nil
			case errors.Is(err, ErrPartialFetch):
				logger.Warn().Err(err).Msg("preference chunk partially fetched")
				return p, nil
			default:
				return nil, err
			}
		},
		func(chunk []string, err error) {
			logger.Warn().Err(err).Int("chunk_size", len(chunk)).Msg("preference chunk failed, continuing without it")
		},
	)
	if failed > 0 {
		report.degrade("preferences")
		e.degradedCount.Add(1)
	}

	for _, p := range fetched {
		if p.UserID == userID {
			prefs[p.SongID] = p
		}
	}
	return prefs
}

// previousSong finds the song before this slot, looking it up directly when
// it is not in the active library (it may be retired).
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) previousSong(ctx context.Context, req Request, songs []models.Song, report *fetchReport, logger zerolog.Logger) *models.Song {
	if req.PreviousSongID == "" {
		return nil
	}
	for i := range songs {
		if songs[i].ID == req.PreviousSongID {
			s := songs[i]
			return &s
		}
	}

	fctx, cancel := e.fetchContext(ctx)
	defer cancel()
	s, err := e.data.Song(fctx, req.ChurchID, req.PreviousSongID)
	if !e.boundary(logger, report, "previous_song", err) {
		return nil
	}
	return s
}

func (e *Engine) fetchContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, e.config.Limits.FetchTimeout)
}

// boundary reports whether a fetch result is usable. Not-found counts as
// an empty success; other errors are logged and recorded as degraded.
func (e *Engine) boundary(logger zerolog.Logger, report *fetchReport, name string, err error) bool {
	if err == nil {
		return true
	}
	if isNotFound(err) {
		return false
	}
	logger.Warn().Err(err).Str("fetch", name).Msg("fetch failed, continuing with empty result")
	report.degrade(name)
	e.degradedCount.Add(1)
	return false
}

func (e *Engine) preferenceLookup() PreferenceLookup {
	if e.prefs != nil {
		return e.prefs
	}
	return e.data
}

func (e *Engine) ratingLookup() RatingLookup {
	if rl, ok := e.prefs.(RatingLookup); ok {
		return rl
	}
	return e.data
}

// fetchReport collects the names of degraded fetches.
type fetchReport struct {
	mu       sync.Mutex
	degraded []string
}

func (r *fetchReport) degrade(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.degraded = append(r.degraded, name)
}

func (r *fetchReport) list() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.degraded) == 0 {
		return nil
	}
	out := make([]string, len(r.degraded))
	copy(out, r.degraded)
	return out
}

//nolint:gocritic // hugeParam: req passed by value for immutability
func buildExcludeSet(req Request) map[string]struct{} {
	exclude := make(map[string]struct{}, len(req.Exclude)+1)
	for _, id := range req.Exclude {
		exclude[id] = struct{}{}
	}
	if req.PreviousSongID != "" {
		exclude[req.PreviousSongID] = struct{}{}
	}
	return exclude
}

// activeWithUsage derives DaysSinceLastUsed and drops retired songs.
func activeWithUsage(songs []models.Song, usage []models.UsageRecord, now time.Time) []models.Song {
	withDays := models.WithDaysSinceLastUsed(songs, usage, now)
	pool := withDays[:0]
	for i := range withDays {
		if !withDays[i].Retired {
			pool = append(pool, withDays[i])
		}
	}
	return pool
}

// seasonalPool keeps songs with a seasonal contribution this month.
//
//nolint:gocritic // hugeParam: cc is a small value record
func seasonalPool(pool []models.Song, cc models.ChurchContext) []models.Song {
	out := make([]models.Song, 0)
	for i := range pool {
		if algorithms.SeasonalScore(&pool[i], cc.Month, cc.Hemisphere) > 0 {
			out = append(out, pool[i])
		}
	}
	return out
}

// popularPool keeps songs the congregation knows well that have rested for
// at least restDays.
func popularPool(pool []models.Song, usage []models.UsageRecord, now time.Time, restDays int) []models.Song {
	history := insights.UsageBySong(pool, usage)
	out := make([]models.Song, 0)
	for i := range pool {
		s := &pool[i]
		if s.DaysSinceLastUsed == nil || *s.DaysSinceLastUsed < restDays {
			continue
		}
		level := algorithms.CategorizeFamiliarity(algorithms.CalculateFamiliarity(history[s.ID], now))
		if level.IsFamiliar() {
			out = append(out, *s)
		}
	}
	return out
}

func leaderIDs(members []models.Member) []string {
	ids := make([]string, 0, len(members))
	for _, m := range members {
		if m.IsLeader && m.Active {
			ids = append(ids, m.UserID)
		}
	}
	return ids
}

func songIDs(songs []models.Song) []string {
	ids := make([]string, len(songs))
	for i := range songs {
		ids[i] = songs[i].ID
	}
	return ids
}
