// Psalter - Worship Service Planning and Song Rotation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/psalter

package models

import (
	"strings"
	"time"
)

// Song is a library entry as seen by the suggestion engine.
type Song struct {
	// ID is the unique song identifier.
	ID string `json:"id"`

	// ChurchID is the owning church.
	ChurchID string `json:"church_id,omitempty"`

	// Title is the song title.
	Title string `json:"title"`

	// Artist is the writer or recording artist, if known.
	Artist string `json:"artist,omitempty"`

	// Key is the performance key (e.g. "G", "F#", "Bbm"). Empty when unknown.
	Key string `json:"key,omitempty"`

	// Tempo is the tempo in BPM. Zero when unknown.
	Tempo int `json:"tempo,omitempty"`

	// Tags are free-form labels (themes, seasons, usage notes).
	Tags []string `json:"tags,omitempty"`

	// Notes are free-text leader notes.
	Notes string `json:"notes,omitempty"`

	// Lyrics is the full lyric text, if stored.
	Lyrics string `json:"lyrics,omitempty"`

	// Retired marks songs removed from active rotation.
	Retired bool `json:"retired,omitempty"`

	// DaysSinceLastUsed is derived from usage history; nil means never used.
	DaysSinceLastUsed *int `json:"days_since_last_used,omitempty"`
}

// HasKey reports whether the song has a key recorded.
func (s *Song) HasKey() bool {
	return strings.TrimSpace(s.Key) != ""
}

// HasTempo reports whether the song has a tempo recorded.
func (s *Song) HasTempo() bool {
	return s.Tempo > 0
}

// TagText returns the tags joined by spaces, lower-cased.
func (s *Song) TagText() string {
	return strings.ToLower(strings.Join(s.Tags, " "))
}

// SearchText returns title, notes, tags and lyrics as one lower-cased string.
func (s *Song) SearchText() string {
	parts := []string{s.Title, s.Notes, strings.Join(s.Tags, " "), s.Lyrics}
	return strings.ToLower(strings.Join(parts, " "))
}

// UsageRecord is one use of a song in a service.
type UsageRecord struct {
	SongID    string    `json:"song_id"`
	ServiceID string    `json:"service_id"`
	UsedOn    time.Time `json:"used_on"`
	LeaderID  string    `json:"leader_id,omitempty"`
}

// DaysSince returns the number of whole days elapsed between t and now.
// Future dates yield negative values.
func DaysSince(t, now time.Time) int {
	return int(now.Sub(t).Hours() / 24)
}

// WithDaysSinceLastUsed returns copies of songs with DaysSinceLastUsed filled in
// from usage. Songs without usage keep a nil value.
func WithDaysSinceLastUsed(songs []Song, usage []UsageRecord, now time.Time) []Song {
	last := make(map[string]time.Time, len(songs))
	for _, u := range usage {
		if prev, ok := last[u.SongID]; !ok || u.UsedOn.After(prev) {
			last[u.SongID] = u.UsedOn
		}
	}

	out := make([]Song, len(songs))
	for i := range songs {
		out[i] = songs[i]
		if t, ok := last[songs[i].ID]; ok {
			d := DaysSince(t, now)
			out[i].DaysSinceLastUsed = &d
		}
	}
	return out
}
