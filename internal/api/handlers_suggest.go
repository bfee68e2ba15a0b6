// Psalter - Worship Service Planning and Song Rotation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/psalter

package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/psalter/internal/logging"
	"github.com/tomtom215/psalter/internal/metrics"
	"github.com/tomtom215/psalter/internal/recommend"
)

// requestTimeout bounds a single scoring request.
const requestTimeout = 10 * time.Second

// Suggestions returns ranked song suggestions for the next slot in a
// set-list.
//
// Query parameters: theme, mood, previous (song ID), k, exclude
// (comma-separated song IDs). The caller's ratings are applied when
// X-User-ID is present.
func (h *Handler) Suggestions(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	query := r.URL.Query()

	k, ok := getIntParam(r, "k", 0)
	if !ok {
		metrics.RecordSuggestionRequest("invalid", time.Since(start), 0, nil)
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "k must be an integer", nil)
		return
	}

	req := SuggestionsRequest{
		ChurchID: chi.URLParam(r, "churchID"),
		UserID:   userID(r),
		Theme:    strings.TrimSpace(query.Get("theme")),
		Mood:     strings.TrimSpace(query.Get("mood")),
		Previous: strings.TrimSpace(query.Get("previous")),
		K:        k,
		Exclude:  parseCommaSeparated(query.Get("exclude")),
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		metrics.RecordSuggestionRequest("invalid", time.Since(start), 0, nil)
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	resp, err := h.engine.Recommend(ctx, recommend.Request{
		RequestID:      logging.RequestIDFromContext(r.Context()),
		ChurchID:       req.ChurchID,
		UserID:         req.UserID,
		Theme:          req.Theme,
		Mood:           req.Mood,
		PreviousSongID: req.Previous,
		K:              req.K,
		Exclude:        req.Exclude,
	})
	if err != nil {
		metrics.RecordSuggestionRequest("error", time.Since(start), 0, nil)
		respondServiceError(w, r, err)
		return
	}

	metrics.RecordSuggestionRequest("success", time.Since(start), len(resp.Suggestions), resp.Metadata.Degraded)
	respondSuccess(w, resp, start)
}

// Insights returns the library-health report of a church.
func (h *Handler) Insights(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	churchID := chi.URLParam(r, "churchID")
	req := ChurchRequest{ChurchID: churchID}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	report, err := h.engine.Insights(ctx, churchID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	metrics.RecordInsightReport(string(report.Rotation.Status), time.Since(start))
	respondSuccess(w, report, start)
}

// Retirement evaluates the auto-retire policy for a song without applying
// it.
func (h *Handler) Retirement(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	decision, ok := h.evaluateRetirement(w, r)
	if !ok {
		return
	}
	respondSuccess(w, RetirementResult{Decision: decision}, start)
}

// ApplyRetirement evaluates the auto-retire policy and, when it says so,
// marks the song retired.
func (h *Handler) ApplyRetirement(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if h.retirer == nil {
		respondError(w, http.StatusNotImplemented, "NOT_IMPLEMENTED", "Retirement is read-only on this server", nil)
		return
	}

	decision, ok := h.evaluateRetirement(w, r)
	if !ok {
		return
	}

	result := RetirementResult{Decision: decision}
	if decision.Retire {
		ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
		defer cancel()

		churchID := chi.URLParam(r, "churchID")
		if err := h.retirer.SetSongRetired(ctx, churchID, decision.SongID, true); err != nil {
			respondServiceError(w, r, err)
			return
		}
		result.Applied = true
		logging.Ctx(r.Context()).Info().
			Str("song_id", sanitizeLogValue(decision.SongID)).
			Int("unfavorable", decision.Unfavorable).
			Int("leaders", decision.Leaders).
			Msg("song retired")
	}

	respondSuccess(w, result, start)
}

func (h *Handler) evaluateRetirement(w http.ResponseWriter, r *http.Request) (*recommend.RetirementDecision, bool) {
	req := SongRequest{
		ChurchID: chi.URLParam(r, "churchID"),
		SongID:   chi.URLParam(r, "songID"),
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return nil, false
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	decision, err := h.engine.EvaluateRetirement(ctx, req.ChurchID, req.SongID)
	if err != nil {
		respondServiceError(w, r, err)
		return nil, false
	}

	metrics.RecordRetirementEvaluation(decision.Retire)
	return decision, true
}
