// Psalter - Worship Service Planning and Song Rotation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/psalter

package validation

import (
	"strings"
	"testing"
)

type suggestionParams struct {
	ChurchID string `query:"church_id" validate:"identifier"`
	Mood     string `query:"mood" validate:"omitempty,mood"`
	Theme    string `query:"theme" validate:"max=20"`
	K        int    `query:"k" validate:"gte=0,lte=50"`
}

type ratingBody struct {
	Rating    string `json:"rating" validate:"required,rating"`
	Difficult bool   `json:"difficult"`
}

func TestGetValidator_Singleton(t *testing.T) {
	if GetValidator() != GetValidator() {
		t.Error("GetValidator() returned different instances")
	}
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name      string
		input     interface{}
		wantField string
		wantMsg   string
	}{
		{
			name:  "valid suggestion params",
			input: &suggestionParams{ChurchID: "grace", Mood: "Upbeat", K: 10},
		},
		{
			name:      "k too large",
			input:     &suggestionParams{ChurchID: "grace", K: 51},
			wantField: "k",
			wantMsg:   "k must be less than or equal to 50",
		},
		{
			name:      "unknown mood",
			input:     &suggestionParams{ChurchID: "grace", Mood: "angry"},
			wantField: "mood",
			wantMsg:   "mood must be one of",
		},
		{
			name:      "church with slash",
			input:     &suggestionParams{ChurchID: "../etc"},
			wantField: "church_id",
			wantMsg:   "church_id must be a non-empty identifier",
		},
		{
			name:      "theme too long",
			input:     &suggestionParams{ChurchID: "grace", Theme: strings.Repeat("x", 21)},
			wantField: "theme",
			wantMsg:   "theme must be at most 20 characters",
		},
		{
			name:  "valid rating",
			input: &ratingBody{Rating: "favorable"},
		},
		{
			name:      "missing rating",
			input:     &ratingBody{},
			wantField: "rating",
			wantMsg:   "rating is required",
		},
		{
			name:      "bad rating",
			input:     &ratingBody{Rating: "love"},
			wantField: "rating",
			wantMsg:   "rating must be one of: favorable neutral unfavorable",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verr := ValidateStruct(tt.input)
			if tt.wantField == "" {
				if verr != nil {
					t.Fatalf("ValidateStruct() = %v, want nil", verr)
				}
				return
			}
			if verr == nil {
				t.Fatal("ValidateStruct() = nil, want error")
			}
			errs := verr.Errors()
			if len(errs) != 1 {
				t.Fatalf("errors = %d, want 1: %v", len(errs), verr)
			}
			if errs[0].Field() != tt.wantField {
				t.Errorf("Field() = %q, want %q", errs[0].Field(), tt.wantField)
			}
			if !strings.HasPrefix(errs[0].Error(), tt.wantMsg) {
				t.Errorf("Error() = %q, want prefix %q", errs[0].Error(), tt.wantMsg)
			}
		})
	}
}

func TestToAPIError(t *testing.T) {
	t.Run("single", func(t *testing.T) {
		apiErr := ValidateStruct(&ratingBody{Rating: "meh"}).ToAPIError()
		if apiErr.Code != "VALIDATION_ERROR" {
			t.Errorf("Code = %q", apiErr.Code)
		}
		if apiErr.Details["field"] != "rating" || apiErr.Details["tag"] != "rating" {
			t.Errorf("Details = %v", apiErr.Details)
		}
	})

	t.Run("multiple", func(t *testing.T) {
		verr := ValidateStruct(&suggestionParams{ChurchID: "", Mood: "angry", K: -1})
		if verr == nil || len(verr.Errors()) != 3 {
			t.Fatalf("ValidateStruct() = %v, want 3 errors", verr)
		}
		apiErr := verr.ToAPIError()
		fields, ok := apiErr.Details["fields"].([]map[string]interface{})
		if !ok || len(fields) != 3 {
			t.Fatalf("Details[fields] = %v", apiErr.Details["fields"])
		}
		if !strings.Contains(apiErr.Message, "; ") {
			t.Errorf("Message = %q, want joined messages", apiErr.Message)
		}
	})

	t.Run("empty", func(t *testing.T) {
		apiErr := (&RequestValidationError{}).ToAPIError()
		if apiErr.Message != "Validation failed" {
			t.Errorf("Message = %q", apiErr.Message)
		}
	})
}

func TestIsIdentifier(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"grace-fellowship", true},
		{"song_042", true},
		{"", false},
		{"has space", false},
		{"a/b", false},
		{"tab\tchar", false},
		{strings.Repeat("x", maxIdentifierLength), true},
		{strings.Repeat("x", maxIdentifierLength+1), false},
	}
	for _, tt := range tests {
		if got := isIdentifier(tt.in); got != tt.want {
			t.Errorf("isIdentifier(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
