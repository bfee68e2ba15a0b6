// Psalter - Worship Service Planning and Song Rotation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/psalter

package backup

import (
	"errors"
	"time"
)

// ErrNotFound is returned for unknown snapshot IDs.
var ErrNotFound = errors.New("snapshot not found")

// Trigger indicates what initiated a snapshot
type Trigger string

const (
	// TriggerManual is a snapshot requested by an operator.
	TriggerManual Trigger = "manual"

	// TriggerScheduled is a snapshot taken by the backup service.
	TriggerScheduled Trigger = "scheduled"

	// TriggerShutdown is the final snapshot taken when the server stops.
	TriggerShutdown Trigger = "shutdown"
)

// Snapshot describes one library snapshot file
type Snapshot struct {
	ID        string        `json:"id"`
	Trigger   Trigger       `json:"trigger"`
	CreatedAt time.Time     `json:"created_at"`
	Duration  time.Duration `json:"duration_ns"`

	// FileName is relative to the backup directory.
	FileName   string `json:"file_name"`
	FileSize   int64  `json:"file_size"`
	Checksum   string `json:"checksum"`
	Compressed bool   `json:"compressed"`

	Counts Counts `json:"counts"`
	Notes  string `json:"notes,omitempty"`
}

// Counts records the size of the exported library
type Counts struct {
	Churches    int `json:"churches"`
	Songs       int `json:"songs"`
	Usage       int `json:"usage"`
	Members     int `json:"members"`
	Preferences int `json:"preferences"`
}

// RetentionPolicy decides which snapshots survive ApplyRetention
type RetentionPolicy struct {
	// Keep at least this many snapshots regardless of age
	MinCount int `json:"min_count"`

	// Maximum number of snapshots to keep (0 = unlimited)
	MaxCount int `json:"max_count"`

	// Maximum age of snapshots in days (0 = unlimited)
	MaxAgeDays int `json:"max_age_days"`

	// Keep the newest snapshot of each day for the last N days
	KeepDailyForDays int `json:"keep_daily_for_days"`
}

// DefaultRetentionPolicy returns a sensible default retention policy
func DefaultRetentionPolicy() RetentionPolicy {
	return RetentionPolicy{
		MinCount:         3,
		MaxCount:         60,
		MaxAgeDays:       90,
		KeepDailyForDays: 14,
	}
}

// index is the on-disk list of snapshots
type index struct {
	Snapshots []*Snapshot `json:"snapshots"`
}
