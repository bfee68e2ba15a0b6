// Psalter - Worship Service Planning and Song Rotation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/psalter

// Package validation provides struct validation for API requests using
// go-playground/validator v10.
//
// A single validator instance is shared (it caches struct metadata) and
// carries three domain tags:
//
//   - rating: favorable, neutral or unfavorable
//   - mood: one of the moods the scorer recognises
//   - identifier: a church, song or user ID
//
// Field names in messages come from the query or json struct tag:
//
//	type SuggestionParams struct {
//	    ChurchID string `query:"church_id" validate:"identifier"`
//	    K        int    `query:"k" validate:"gte=0,lte=50"`
//	    Mood     string `query:"mood" validate:"omitempty,mood"`
//	}
//
//	if verr := validation.ValidateStruct(&params); verr != nil {
//	    apiErr := verr.ToAPIError() // Code VALIDATION_ERROR, "k must be less than or equal to 50"
//	}
package validation
