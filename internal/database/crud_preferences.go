// Psalter - Worship Service Planning and Song Rotation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/psalter

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/psalter/internal/models"
)

// SetPreference inserts or replaces the (user, song) rating.
func (db *DB) SetPreference(ctx context.Context, pref models.UserPreference) error {
	if pref.UserID == "" || pref.SongID == "" {
		return fmt.Errorf("user id and song id are required")
	}
	if _, err := models.ParseRating(string(pref.Rating)); err != nil {
		return err
	}
	if pref.UpdatedAt.IsZero() {
		pref.UpdatedAt = time.Now()
	}

	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	return db.withWriteRetry(ctx, func(ctx context.Context) error {
		_, err := db.conn.ExecContext(ctx, `INSERT INTO user_preferences (user_id, song_id, rating, difficult, updated_at)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT (user_id, song_id) DO UPDATE SET
				rating = EXCLUDED.rating,
				difficult = EXCLUDED.difficult,
				updated_at = EXCLUDED.updated_at`,
			pref.UserID, pref.SongID, string(pref.Rating), pref.Difficult, pref.UpdatedAt.UTC())
		if err != nil {
			return fmt.Errorf("failed to set preference: %w", err)
		}
		return nil
	})
}

// DeletePreference removes the (user, song) rating. A missing rating is
// not an error.
func (db *DB) DeletePreference(ctx context.Context, userID, songID string) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	_, err := db.conn.ExecContext(ctx,
		`DELETE FROM user_preferences WHERE user_id = ? AND song_id = ?`, userID, songID)
	if err != nil {
		return fmt.Errorf("failed to delete preference: %w", err)
	}
	return nil
}

// UserPreferences returns the user's ratings of songIDs. Large ID lists
// are queried in chunks.
func (db *DB) UserPreferences(ctx context.Context, userID string, songIDs []string) ([]models.UserPreference, error) {
	prefs := make([]models.UserPreference, 0)
	if userID == "" || len(songIDs) == 0 {
		return prefs, nil
	}

	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	for _, chunk := range chunkStrings(songIDs, maxInClause) {
		clause, args := inClause("song_id", chunk)
		args = append([]any{userID}, args...)

		chunkPrefs, err := db.queryPreferences(ctx,
			`SELECT user_id, song_id, rating, difficult, updated_at
			FROM user_preferences WHERE user_id = ? AND `+clause, args...)
		if err != nil {
			return nil, err
		}
		prefs = append(prefs, chunkPrefs...)
	}
	return prefs, nil
}

// SongPreferences returns every user's rating of a song.
func (db *DB) SongPreferences(ctx context.Context, songID string) ([]models.UserPreference, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	return db.queryPreferences(ctx, `SELECT user_id, song_id, rating, difficult, updated_at
		FROM user_preferences WHERE song_id = ? ORDER BY user_id`, songID)
}

func (db *DB) queryPreferences(ctx context.Context, query string, args ...any) ([]models.UserPreference, error) {
	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query preferences: %w", err)
	}
	defer closeWithLog(rows, "rows")

	prefs := make([]models.UserPreference, 0)
	for rows.Next() {
		var p models.UserPreference
		var rating string
		if err := rows.Scan(&p.UserID, &p.SongID, &rating, &p.Difficult, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan preference: %w", err)
		}
		p.Rating = models.Rating(rating)
		p.UpdatedAt = p.UpdatedAt.UTC()
		prefs = append(prefs, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating preferences: %w", err)
	}
	return prefs, nil
}
