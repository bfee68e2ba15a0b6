// Psalter - Worship Service Planning and Song Rotation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/psalter

package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/tomtom215/psalter/internal/models"
)

// ExportLibrary reads every table into a library export. The result can be
// fed back to ImportLibrary. Retired songs are included.
func (db *DB) ExportLibrary(ctx context.Context) (*models.Library, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	lib := &models.Library{ExportedAt: time.Now().UTC()}
	var err error

	if lib.Churches, err = exportRows(ctx, db.conn,
		`SELECT id, name, timezone, hemisphere FROM churches ORDER BY id`,
		func(rows *sql.Rows) (models.Church, error) {
			var c models.Church
			var hemisphere string
			err := rows.Scan(&c.ID, &c.Name, &c.Timezone, &hemisphere)
			c.Hemisphere = models.Hemisphere(hemisphere)
			return c, err
		}); err != nil {
		return nil, fmt.Errorf("export churches: %w", err)
	}

	if lib.Songs, err = exportRows(ctx, db.conn,
		`SELECT `+songColumns+` FROM songs ORDER BY church_id, id`,
		func(rows *sql.Rows) (models.Song, error) {
			s, err := scanSong(rows)
			if err != nil {
				return models.Song{}, err
			}
			return *s, nil
		}); err != nil {
		return nil, fmt.Errorf("export songs: %w", err)
	}

	if lib.Usage, err = exportRows(ctx, db.conn,
		`SELECT song_id, service_id, used_on, leader_id FROM song_usage ORDER BY used_on, song_id`,
		func(rows *sql.Rows) (models.UsageRecord, error) {
			var u models.UsageRecord
			err := rows.Scan(&u.SongID, &u.ServiceID, &u.UsedOn, &u.LeaderID)
			u.UsedOn = u.UsedOn.UTC()
			return u, err
		}); err != nil {
		return nil, fmt.Errorf("export usage: %w", err)
	}

	if lib.Members, err = exportRows(ctx, db.conn,
		`SELECT church_id, user_id, is_admin, is_leader, active FROM church_members ORDER BY church_id, user_id`,
		func(rows *sql.Rows) (models.Member, error) {
			var m models.Member
			err := rows.Scan(&m.ChurchID, &m.UserID, &m.IsAdmin, &m.IsLeader, &m.Active)
			return m, err
		}); err != nil {
		return nil, fmt.Errorf("export members: %w", err)
	}

	if lib.Preferences, err = db.queryPreferences(ctx,
		`SELECT user_id, song_id, rating, difficult, updated_at
		FROM user_preferences ORDER BY song_id, user_id`); err != nil {
		return nil, fmt.Errorf("export preferences: %w", err)
	}

	return lib, nil
}

func exportRows[T any](ctx context.Context, conn *sql.DB, query string, scan func(*sql.Rows) (T, error)) ([]T, error) {
	rows, err := conn.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer closeWithLog(rows, "rows")

	out := make([]T, 0)
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
