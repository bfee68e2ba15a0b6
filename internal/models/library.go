// Psalter - Worship Service Planning and Song Rotation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/psalter

package models

import (
	"fmt"
	"io"
	"time"

	"github.com/goccy/go-json"
)

// Library is a portable export of one or more churches' song data. It is
// the format read by the CLI and by the database importer.
type Library struct {
	Churches    []Church         `json:"churches,omitempty"`
	Songs       []Song           `json:"songs"`
	Usage       []UsageRecord    `json:"usage,omitempty"`
	Members     []Member         `json:"members,omitempty"`
	Preferences []UserPreference `json:"preferences,omitempty"`

	// ExportedAt is informational.
	ExportedAt time.Time `json:"exported_at,omitempty"`
}

// SongsFor returns the songs belonging to churchID. Songs with no church
// are treated as belonging to every church.
func (l *Library) SongsFor(churchID string) []Song {
	out := make([]Song, 0, len(l.Songs))
	for _, s := range l.Songs {
		if s.ChurchID == "" || s.ChurchID == churchID {
			out = append(out, s)
		}
	}
	return out
}

// UsageFor returns usage records of songs in songs.
func (l *Library) UsageFor(songs []Song) []UsageRecord {
	ids := make(map[string]struct{}, len(songs))
	for _, s := range songs {
		ids[s.ID] = struct{}{}
	}
	out := make([]UsageRecord, 0, len(l.Usage))
	for _, u := range l.Usage {
		if _, ok := ids[u.SongID]; ok {
			out = append(out, u)
		}
	}
	return out
}

// MembersOf returns the members of churchID.
func (l *Library) MembersOf(churchID string) []Member {
	out := make([]Member, 0)
	for _, m := range l.Members {
		if m.ChurchID == churchID {
			out = append(out, m)
		}
	}
	return out
}

// PreferencesFor returns all ratings of songID.
func (l *Library) PreferencesFor(songID string) []UserPreference {
	out := make([]UserPreference, 0)
	for _, p := range l.Preferences {
		if p.SongID == songID {
			out = append(out, p)
		}
	}
	return out
}

// Church returns the church with id, or nil.
func (l *Library) Church(id string) *Church {
	for i := range l.Churches {
		if l.Churches[i].ID == id {
			c := l.Churches[i]
			return &c
		}
	}
	return nil
}

// DecodeLibrary reads a JSON library export.
func DecodeLibrary(r io.Reader) (*Library, error) {
	var lib Library
	if err := json.NewDecoder(r).Decode(&lib); err != nil {
		return nil, fmt.Errorf("decode library: %w", err)
	}
	return &lib, nil
}

// EncodeLibrary writes lib as indented JSON.
func EncodeLibrary(w io.Writer, lib *Library) error {
	data, err := json.MarshalIndent(lib, "", "  ")
	if err != nil {
		return fmt.Errorf("encode library: %w", err)
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}
