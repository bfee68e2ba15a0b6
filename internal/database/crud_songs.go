// Psalter - Worship Service Planning and Song Rotation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/psalter

package database

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/tomtom215/psalter/internal/models"
)

const songColumns = `id, church_id, title, artist, song_key, tempo, tags, notes, lyrics, retired`

// UpsertSong inserts or replaces a song. A song keeps the church it was
// first stored under.
func (db *DB) UpsertSong(ctx context.Context, song *models.Song) error {
	if song.ID == "" || song.ChurchID == "" {
		return fmt.Errorf("song id and church id are required")
	}
	tags, err := encodeTags(song.Tags)
	if err != nil {
		return err
	}

	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	query := `INSERT INTO songs (` + songColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			artist = EXCLUDED.artist,
			song_key = EXCLUDED.song_key,
			tempo = EXCLUDED.tempo,
			tags = EXCLUDED.tags,
			notes = EXCLUDED.notes,
			lyrics = EXCLUDED.lyrics,
			retired = EXCLUDED.retired`

	return db.withWriteRetry(ctx, func(ctx context.Context) error {
		_, err := db.conn.ExecContext(ctx, query,
			song.ID, song.ChurchID, song.Title, song.Artist, song.Key, song.Tempo,
			tags, song.Notes, song.Lyrics, song.Retired,
		)
		if err != nil {
			return fmt.Errorf("failed to upsert song %s: %w", song.ID, err)
		}
		return nil
	})
}

// SetSongRetired flips a song's retired flag.
func (db *DB) SetSongRetired(ctx context.Context, churchID, songID string, retired bool) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	res, err := db.conn.ExecContext(ctx,
		`UPDATE songs SET retired = ? WHERE church_id = ? AND id = ?`, retired, churchID, songID)
	if err != nil {
		return fmt.Errorf("failed to update song %s: %w", songID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return models.ErrNotFound
	}
	return nil
}

// ActiveSongs returns the church's non-retired songs ordered by title.
func (db *DB) ActiveSongs(ctx context.Context, churchID string) ([]models.Song, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	rows, err := db.conn.QueryContext(ctx,
		`SELECT `+songColumns+` FROM songs WHERE church_id = ? AND NOT retired ORDER BY title, id`, churchID)
	if err != nil {
		return nil, fmt.Errorf("failed to query songs: %w", err)
	}
	defer closeWithLog(rows, "rows")

	songs := make([]models.Song, 0)
	for rows.Next() {
		song, err := scanSong(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan song: %w", err)
		}
		songs = append(songs, *song)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating songs: %w", err)
	}
	return songs, nil
}

// Song returns one song, retired or not.
func (db *DB) Song(ctx context.Context, churchID, songID string) (*models.Song, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	row := db.conn.QueryRowContext(ctx,
		`SELECT `+songColumns+` FROM songs WHERE church_id = ? AND id = ?`, churchID, songID)
	song, err := scanSong(row)
	if err != nil {
		return nil, notFound(err)
	}
	return song, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSong(row rowScanner) (*models.Song, error) {
	var s models.Song
	var tags string
	if err := row.Scan(&s.ID, &s.ChurchID, &s.Title, &s.Artist, &s.Key, &s.Tempo,
		&tags, &s.Notes, &s.Lyrics, &s.Retired); err != nil {
		return nil, err
	}
	decoded, err := decodeTags(tags)
	if err != nil {
		return nil, err
	}
	s.Tags = decoded
	return &s, nil
}

func encodeTags(tags []string) (string, error) {
	if len(tags) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return "", fmt.Errorf("failed to encode tags: %w", err)
	}
	return string(b), nil
}

func decodeTags(s string) ([]string, error) {
	if s == "" || s == "[]" {
		return nil, nil
	}
	var tags []string
	if err := json.Unmarshal([]byte(s), &tags); err != nil {
		return nil, fmt.Errorf("failed to decode tags: %w", err)
	}
	return tags, nil
}
