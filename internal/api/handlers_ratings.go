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

	"github.com/tomtom215/psalter/internal/metrics"
	"github.com/tomtom215/psalter/internal/models"
)

// SetRating stores the caller's rating of a song.
//
//	PUT /api/v1/songs/{songID}/rating
//	X-User-ID: u-42
//	{"rating": "unfavorable", "difficult": true}
func (h *Handler) SetRating(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	target, ok := parseRatingTarget(w, r)
	if !ok {
		return
	}

	var body RatingRequest
	if err := decodeJSONBody(w, r, &body); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_BODY", err.Error(), nil)
		return
	}
	body.Rating = strings.ToLower(strings.TrimSpace(body.Rating))
	if apiErr := validateRequest(&body); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	pref := models.UserPreference{
		UserID:    target.UserID,
		SongID:    target.SongID,
		Rating:    models.Rating(body.Rating),
		Difficult: body.Difficult,
		UpdatedAt: time.Now().UTC(),
	}
	if err := h.ratings.Set(ctx, pref); err != nil {
		respondServiceError(w, r, err)
		return
	}

	metrics.RecordRatingWrite("set")
	respondSuccess(w, pref, start)
}

// DeleteRating clears the caller's rating of a song. Clearing a missing
// rating succeeds.
func (h *Handler) DeleteRating(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	target, ok := parseRatingTarget(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	if err := h.ratings.Delete(ctx, target.UserID, target.SongID); err != nil {
		respondServiceError(w, r, err)
		return
	}

	metrics.RecordRatingWrite("delete")
	respondSuccess(w, map[string]interface{}{
		"user_id": target.UserID,
		"song_id": target.SongID,
		"deleted": true,
	}, start)
}

// RatingSummary returns the aggregate ratings of a song.
func (h *Handler) RatingSummary(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	songID := chi.URLParam(r, "songID")
	if apiErr := validateRequest(&songOnly{SongID: songID}); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	summary, err := h.ratings.Summary(ctx, songID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: map[string]interface{}{
			"summary": summary,
			"total":   summary.Total(),
		},
		Metadata: models.Metadata{
			Timestamp:   time.Now().UTC(),
			QueryTimeMS: time.Since(start).Milliseconds(),
		},
	})
}

// parseRatingTarget reads the song from the route and the user from
// X-User-ID. A missing user is a 401 since ratings are per-user.
func parseRatingTarget(w http.ResponseWriter, r *http.Request) (ratingTarget, bool) {
	target := ratingTarget{
		UserID: userID(r),
		SongID: chi.URLParam(r, "songID"),
	}
	if target.UserID == "" {
		respondError(w, http.StatusUnauthorized, "USER_REQUIRED", UserIDHeader+" header is required", nil)
		return target, false
	}
	if apiErr := validateRequest(&target); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return target, false
	}
	return target, true
}
