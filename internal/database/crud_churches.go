// Psalter - Worship Service Planning and Song Rotation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/psalter

package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/tomtom215/psalter/internal/models"
)

// UpsertChurch inserts or replaces a church.
func (db *DB) UpsertChurch(ctx context.Context, c *models.Church) error {
	if c.ID == "" {
		return fmt.Errorf("church id is required")
	}

	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	return db.withWriteRetry(ctx, func(ctx context.Context) error {
		_, err := db.conn.ExecContext(ctx, `INSERT INTO churches (id, name, timezone, hemisphere)
			VALUES (?, ?, ?, ?)
			ON CONFLICT (id) DO UPDATE SET
				name = EXCLUDED.name,
				timezone = EXCLUDED.timezone,
				hemisphere = EXCLUDED.hemisphere`,
			c.ID, c.Name, c.Timezone, string(c.Hemisphere))
		if err != nil {
			return fmt.Errorf("failed to upsert church %s: %w", c.ID, err)
		}
		return nil
	})
}

// Church returns one church.
func (db *DB) Church(ctx context.Context, id string) (*models.Church, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	var c models.Church
	var hemisphere string
	err := db.conn.QueryRowContext(ctx,
		`SELECT id, name, timezone, hemisphere FROM churches WHERE id = ?`, id).
		Scan(&c.ID, &c.Name, &c.Timezone, &hemisphere)
	if err != nil {
		return nil, notFound(err)
	}
	if h := strings.ToLower(strings.TrimSpace(hemisphere)); h != "" {
		c.Hemisphere = models.ParseHemisphere(h)
	}
	return &c, nil
}

// UpsertMember inserts or replaces a church membership.
func (db *DB) UpsertMember(ctx context.Context, m *models.Member) error {
	if m.ChurchID == "" || m.UserID == "" {
		return fmt.Errorf("church id and user id are required")
	}

	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	return db.withWriteRetry(ctx, func(ctx context.Context) error {
		_, err := db.conn.ExecContext(ctx, `INSERT INTO church_members (church_id, user_id, is_admin, is_leader, active)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT (church_id, user_id) DO UPDATE SET
				is_admin = EXCLUDED.is_admin,
				is_leader = EXCLUDED.is_leader,
				active = EXCLUDED.active`,
			m.ChurchID, m.UserID, m.IsAdmin, m.IsLeader, m.Active)
		if err != nil {
			return fmt.Errorf("failed to upsert member %s: %w", m.UserID, err)
		}
		return nil
	})
}

// Members returns every membership of a church, active or not.
func (db *DB) Members(ctx context.Context, churchID string) ([]models.Member, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	rows, err := db.conn.QueryContext(ctx, `SELECT church_id, user_id, is_admin, is_leader, active
		FROM church_members WHERE church_id = ? ORDER BY user_id`, churchID)
	if err != nil {
		return nil, fmt.Errorf("failed to query members: %w", err)
	}
	defer closeWithLog(rows, "rows")

	members := make([]models.Member, 0)
	for rows.Next() {
		var m models.Member
		if err := rows.Scan(&m.ChurchID, &m.UserID, &m.IsAdmin, &m.IsLeader, &m.Active); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating members: %w", err)
	}
	return members, nil
}
