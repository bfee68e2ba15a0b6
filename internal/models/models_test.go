// Psalter - Worship Service Planning and Song Rotation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/psalter

package models

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestParseHemisphere(t *testing.T) {
	tests := []struct {
		in   string
		want Hemisphere
	}{
		{"southern", HemisphereSouthern},
		{"northern", HemisphereNorthern},
		{"", HemisphereNorthern},
		{"Southern", HemisphereNorthern},
		{"eastern", HemisphereNorthern},
	}
	for _, tt := range tests {
		if got := ParseHemisphere(tt.in); got != tt.want {
			t.Errorf("ParseHemisphere(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
	for h, want := range map[Hemisphere]bool{"northern": true, "southern": true, "": false, "Southern": false} {
		if got := h.Valid(); got != want {
			t.Errorf("Hemisphere(%q).Valid() = %v, want %v", h, got, want)
		}
	}
}

func TestParseRating(t *testing.T) {
	for _, valid := range []string{"favorable", "neutral", "unfavorable"} {
		if got, err := ParseRating(valid); err != nil || string(got) != valid {
			t.Errorf("ParseRating(%q) = %q, %v", valid, got, err)
		}
	}
	for _, invalid := range []string{"", "Favorable", "love"} {
		if _, err := ParseRating(invalid); err == nil {
			t.Errorf("ParseRating(%q) should fail", invalid)
		}
	}
}

func TestSummarize(t *testing.T) {
	prefs := []UserPreference{
		{UserID: "u1", SongID: "s1", Rating: RatingFavorable},
		{UserID: "u2", SongID: "s1", Rating: RatingUnfavorable, Difficult: true},
		{UserID: "u3", SongID: "s1", Rating: RatingNeutral, Difficult: true},
		{UserID: "u1", SongID: "s2", Rating: RatingUnfavorable},
	}

	got := Summarize("s1", prefs)
	want := RatingSummary{SongID: "s1", Favorable: 1, Neutral: 1, Unfavorable: 1, Difficult: 2}
	if got != want {
		t.Errorf("Summarize() = %+v, want %+v", got, want)
	}
	if got.Total() != 3 {
		t.Errorf("Total() = %d, want 3", got.Total())
	}
	if empty := Summarize("s9", prefs); empty.Total() != 0 || empty.SongID != "s9" {
		t.Errorf("Summarize(unknown) = %+v", empty)
	}
}

func TestSongHelpers(t *testing.T) {
	s := Song{
		Title:  "Amazing Grace",
		Key:    " ",
		Tags:   []string{"Grace", "Hymn"},
		Notes:  "Capo 2",
		Lyrics: "How sweet the sound",
	}
	if s.HasKey() {
		t.Error("blank key should not count")
	}
	if s.HasTempo() {
		t.Error("zero tempo should not count")
	}
	if got := s.TagText(); got != "grace hymn" {
		t.Errorf("TagText() = %q", got)
	}
	if got := s.SearchText(); !strings.Contains(got, "amazing grace") || !strings.Contains(got, "sweet the sound") {
		t.Errorf("SearchText() = %q", got)
	}
}

func TestWithDaysSinceLastUsed(t *testing.T) {
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	songs := []Song{{ID: "s1"}, {ID: "s2"}, {ID: "s3"}}
	usage := []UsageRecord{
		{SongID: "s1", UsedOn: now.AddDate(0, 0, -30)},
		{SongID: "s1", UsedOn: now.AddDate(0, 0, -7)},
		{SongID: "s3", UsedOn: now.AddDate(0, 0, 3)},
	}

	got := WithDaysSinceLastUsed(songs, usage, now)
	if got[0].DaysSinceLastUsed == nil || *got[0].DaysSinceLastUsed != 7 {
		t.Errorf("s1 days = %v, want 7", got[0].DaysSinceLastUsed)
	}
	if got[1].DaysSinceLastUsed != nil {
		t.Errorf("s2 days = %d, want nil", *got[1].DaysSinceLastUsed)
	}
	if got[2].DaysSinceLastUsed == nil || *got[2].DaysSinceLastUsed != -3 {
		t.Errorf("s3 days = %v, want -3", got[2].DaysSinceLastUsed)
	}
	if songs[0].DaysSinceLastUsed != nil {
		t.Error("input songs were modified")
	}
}

func testLibrary() *Library {
	return &Library{
		Churches: []Church{{ID: "c1", Name: "Grace", Hemisphere: HemisphereSouthern}},
		Songs: []Song{
			{ID: "s1", ChurchID: "c1", Title: "Amazing Grace"},
			{ID: "s2", ChurchID: "c2", Title: "Other Church"},
			{ID: "s3", Title: "Shared"},
		},
		Usage: []UsageRecord{
			{SongID: "s1", ServiceID: "a"},
			{SongID: "s2", ServiceID: "b"},
		},
		Members: []Member{
			{ChurchID: "c1", UserID: "u1", IsLeader: true, Active: true},
			{ChurchID: "c2", UserID: "u2", Active: true},
		},
		Preferences: []UserPreference{
			{UserID: "u1", SongID: "s1", Rating: RatingFavorable},
			{UserID: "u2", SongID: "s2", Rating: RatingNeutral},
		},
	}
}

func TestLibrary_Filters(t *testing.T) {
	lib := testLibrary()

	songs := lib.SongsFor("c1")
	if len(songs) != 2 || songs[0].ID != "s1" || songs[1].ID != "s3" {
		t.Errorf("SongsFor(c1) = %+v", songs)
	}
	if usage := lib.UsageFor(songs); len(usage) != 1 || usage[0].SongID != "s1" {
		t.Errorf("UsageFor() = %+v", usage)
	}
	if members := lib.MembersOf("c1"); len(members) != 1 || members[0].UserID != "u1" {
		t.Errorf("MembersOf(c1) = %+v", members)
	}
	if prefs := lib.PreferencesFor("s2"); len(prefs) != 1 || prefs[0].UserID != "u2" {
		t.Errorf("PreferencesFor(s2) = %+v", prefs)
	}
	if c := lib.Church("c1"); c == nil || c.Hemisphere != HemisphereSouthern {
		t.Errorf("Church(c1) = %+v", c)
	}
	if c := lib.Church("missing"); c != nil {
		t.Errorf("Church(missing) = %+v, want nil", c)
	}
}

func TestEncodeDecodeLibrary(t *testing.T) {
	var buf bytes.Buffer
	if err := EncodeLibrary(&buf, testLibrary()); err != nil {
		t.Fatalf("EncodeLibrary: %v", err)
	}
	if !bytes.HasSuffix(buf.Bytes(), []byte("}\n")) {
		t.Error("encoded library should end with a newline")
	}

	lib, err := DecodeLibrary(&buf)
	if err != nil {
		t.Fatalf("DecodeLibrary: %v", err)
	}
	if len(lib.Songs) != 3 || lib.Churches[0].Hemisphere != HemisphereSouthern || lib.Preferences[0].Rating != RatingFavorable {
		t.Errorf("decoded library = %+v", lib)
	}

	if _, err := DecodeLibrary(strings.NewReader("{not json")); err == nil || !strings.Contains(err.Error(), "decode library") {
		t.Errorf("DecodeLibrary(bad) = %v", err)
	}
}
