// Psalter - Worship Service Planning and Song Rotation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/psalter

/*
database_schema.go - Database Schema Management

Tables:
  - churches: church records with optional timezone and hemisphere
  - songs: the song library; tags are stored as a JSON array
  - song_usage: one row per song per service
  - church_members: membership with admin and leader capabilities
  - user_preferences: one rating per (user, song)
*/

//nolint:staticcheck // File documentation, not package doc
package database

import (
	"context"
	"fmt"
	"time"
)

// schemaContext returns a context with timeout for schema operations
func schemaContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 60*time.Second)
}

// createTables creates the core database tables
func (db *DB) createTables() error {
	ctx, cancel := schemaContext()
	defer cancel()

	for _, query := range tableCreationQueries() {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query: %s: %w", query, err)
		}
	}
	return nil
}

func tableCreationQueries() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS churches (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL DEFAULT '',
			timezone TEXT NOT NULL DEFAULT '',
			hemisphere TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS songs (
			id TEXT PRIMARY KEY,
			church_id TEXT NOT NULL,
			title TEXT NOT NULL,
			artist TEXT NOT NULL DEFAULT '',
			song_key TEXT NOT NULL DEFAULT '',
			tempo INTEGER NOT NULL DEFAULT 0,
			tags TEXT NOT NULL DEFAULT '[]',
			notes TEXT NOT NULL DEFAULT '',
			lyrics TEXT NOT NULL DEFAULT '',
			retired BOOLEAN NOT NULL DEFAULT false
		)`,
		`CREATE TABLE IF NOT EXISTS song_usage (
			song_id TEXT NOT NULL,
			church_id TEXT NOT NULL,
			service_id TEXT NOT NULL DEFAULT '',
			used_on TIMESTAMP NOT NULL,
			leader_id TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS church_members (
			church_id TEXT NOT NULL,
			user_id TEXT NOT NULL,
			is_admin BOOLEAN NOT NULL DEFAULT false,
			is_leader BOOLEAN NOT NULL DEFAULT false,
			active BOOLEAN NOT NULL DEFAULT true,
			PRIMARY KEY (church_id, user_id)
		)`,
		`CREATE TABLE IF NOT EXISTS user_preferences (
			user_id TEXT NOT NULL,
			song_id TEXT NOT NULL,
			rating TEXT NOT NULL,
			difficult BOOLEAN NOT NULL DEFAULT false,
			updated_at TIMESTAMP NOT NULL,
			PRIMARY KEY (user_id, song_id)
		)`,
	}
}

// createIndexes creates indexes for the lookup paths the engine uses.
// DuckDB cannot ON CONFLICT-update an indexed column, so only key columns
// are indexed.
func (db *DB) createIndexes() error {
	ctx, cancel := schemaContext()
	defer cancel()

	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_songs_church ON songs(church_id)",
		"CREATE INDEX IF NOT EXISTS idx_usage_church_date ON song_usage(church_id, used_on)",
		"CREATE INDEX IF NOT EXISTS idx_usage_song ON song_usage(song_id)",
		"CREATE INDEX IF NOT EXISTS idx_preferences_song ON user_preferences(song_id)",
	}
	for _, q := range indexes {
		if _, err := db.conn.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("failed to create index: %s: %w", q, err)
		}
	}
	return nil
}
