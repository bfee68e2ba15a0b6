// Psalter - Worship Service Planning and Song Rotation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/psalter

// Package recommend suggests songs for upcoming services.
//
// # Architecture
//
// Scoring is layered leaf-first:
//
//   - algorithms: familiarity decay, seasonal classification, key and tempo
//     flow, mood detection. Pure functions over plain data.
//   - ScoreSong: composes the leaf models plus theme, mood and preference
//     overrides into one explainable score.
//   - GenerateSuggestions: filters, scores and ranks a pool.
//   - Engine: fetches the inputs, builds the rotation, seasonal and
//     popularity lists, and merges them keeping the best entry per song.
//
// The insights subpackage diagnoses library health from the same inputs.
//
// # Determinism
//
// Scores are sums of fixed constants. Rankings sort by score descending and
// then by song ID, so equal scores order the same way on every run. No
// function returns NaN or Inf: zero denominators yield fixed fallbacks and
// unknown musical inputs score a neutral 0.5.
//
// # Usage
//
//	engine, err := recommend.NewEngine(recommend.DefaultConfig(), logger)
//	if err != nil {
//	    return err
//	}
//	engine.SetDataProvider(store)
//	engine.SetPreferenceLookup(recommend.NewRatingService(store, ratingCache, cfg.Batch, logger))
//	engine.SetContextResolver(locale.NewResolver(store, logger))
//
//	resp, err := engine.Recommend(ctx, recommend.Request{
//	    ChurchID: churchID,
//	    UserID:   userID,
//	    Theme:    "grace",
//	    K:        10,
//	})
//
// # Thread Safety
//
// Scoring functions read only their arguments and are safe for any number
// of concurrent callers. Engine and RatingService are safe for concurrent
// use once configured.
package recommend
