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

// RecordUsage stores one use of a song. Recording the same song, service
// and date twice is a no-op.
func (db *DB) RecordUsage(ctx context.Context, churchID string, rec models.UsageRecord) error {
	if churchID == "" || rec.SongID == "" || rec.UsedOn.IsZero() {
		return fmt.Errorf("church, song and date are required")
	}

	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	usedOn := rec.UsedOn.UTC()
	return db.withWriteRetry(ctx, func(ctx context.Context) error {
		_, err := db.conn.ExecContext(ctx, `INSERT INTO song_usage (song_id, church_id, service_id, used_on, leader_id)
			SELECT ?, ?, ?, ?, ?
			WHERE NOT EXISTS (
				SELECT 1 FROM song_usage WHERE song_id = ? AND service_id = ? AND used_on = ?
			)`,
			rec.SongID, churchID, rec.ServiceID, usedOn, rec.LeaderID,
			rec.SongID, rec.ServiceID, usedOn,
		)
		if err != nil {
			return fmt.Errorf("failed to record usage of %s: %w", rec.SongID, err)
		}
		return nil
	})
}

// UsageSince returns the church's usage on or after since, oldest first.
// A zero since returns all usage.
func (db *DB) UsageSince(ctx context.Context, churchID string, since time.Time) ([]models.UsageRecord, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	rows, err := db.conn.QueryContext(ctx, `SELECT song_id, service_id, used_on, leader_id
		FROM song_usage WHERE church_id = ? AND used_on >= ?
		ORDER BY used_on, song_id`, churchID, since.UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to query usage: %w", err)
	}
	defer closeWithLog(rows, "rows")

	usage := make([]models.UsageRecord, 0)
	for rows.Next() {
		var u models.UsageRecord
		if err := rows.Scan(&u.SongID, &u.ServiceID, &u.UsedOn, &u.LeaderID); err != nil {
			return nil, fmt.Errorf("failed to scan usage: %w", err)
		}
		u.UsedOn = u.UsedOn.UTC()
		usage = append(usage, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating usage: %w", err)
	}
	return usage, nil
}
