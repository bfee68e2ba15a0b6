// Psalter - Worship Service Planning and Song Rotation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/psalter

package database

import (
	"context"
	"fmt"

	"github.com/tomtom215/psalter/internal/logging"
	"github.com/tomtom215/psalter/internal/models"
)

// ImportStats counts the records written by ImportLibrary.
type ImportStats struct {
	Churches    int `json:"churches"`
	Songs       int `json:"songs"`
	Usage       int `json:"usage"`
	Members     int `json:"members"`
	Preferences int `json:"preferences"`
}

// ImportLibrary upserts every record of a library export. Songs without a
// church are assigned defaultChurchID; usage is attributed to its song's
// church. Import stops at the first failed write.
func (db *DB) ImportLibrary(ctx context.Context, lib *models.Library, defaultChurchID string) (ImportStats, error) {
	var stats ImportStats

	for i := range lib.Churches {
		if err := db.UpsertChurch(ctx, &lib.Churches[i]); err != nil {
			return stats, err
		}
		stats.Churches++
	}

	songChurch := make(map[string]string, len(lib.Songs))
	for i := range lib.Songs {
		song := lib.Songs[i]
		if song.ChurchID == "" {
			song.ChurchID = defaultChurchID
		}
		if err := db.UpsertSong(ctx, &song); err != nil {
			return stats, err
		}
		songChurch[song.ID] = song.ChurchID
		stats.Songs++
	}

	for _, u := range lib.Usage {
		churchID, ok := songChurch[u.SongID]
		if !ok {
			return stats, fmt.Errorf("usage references unknown song %q", u.SongID)
		}
		if err := db.RecordUsage(ctx, churchID, u); err != nil {
			return stats, err
		}
		stats.Usage++
	}

	for i := range lib.Members {
		if err := db.UpsertMember(ctx, &lib.Members[i]); err != nil {
			return stats, err
		}
		stats.Members++
	}

	for _, p := range lib.Preferences {
		if err := db.SetPreference(ctx, p); err != nil {
			return stats, err
		}
		stats.Preferences++
	}

	logging.Info().
		Int("churches", stats.Churches).
		Int("songs", stats.Songs).
		Int("usage", stats.Usage).
		Int("members", stats.Members).
		Int("preferences", stats.Preferences).
		Msg("Library imported")

	return stats, nil
}
