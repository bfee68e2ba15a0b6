// Psalter - Worship Service Planning and Song Rotation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/psalter

package backup

import (
	"fmt"
	"os"
	"time"
)

// Config holds backup settings
type Config struct {
	// Directory holding snapshots and the index file
	Dir string

	// Interval between scheduled snapshots
	Interval time.Duration

	// Compress snapshots with gzip
	Compress bool

	// Retention policy applied after each scheduled snapshot
	Retention RetentionPolicy
}

// DefaultConfig returns daily compressed snapshots under /data/backups.
func DefaultConfig() Config {
	return Config{
		Dir:       "/data/backups",
		Interval:  24 * time.Hour,
		Compress:  true,
		Retention: DefaultRetentionPolicy(),
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Dir == "" {
		return fmt.Errorf("backup directory is required")
	}
	if c.Interval < time.Minute {
		return fmt.Errorf("backup interval must be at least 1m, got %v", c.Interval)
	}
	r := c.Retention
	if r.MinCount < 0 || r.MaxCount < 0 || r.MaxAgeDays < 0 || r.KeepDailyForDays < 0 {
		return fmt.Errorf("retention values must be non-negative")
	}
	if r.MaxCount > 0 && r.MaxCount < r.MinCount {
		return fmt.Errorf("retention max_count (%d) must be at least min_count (%d)", r.MaxCount, r.MinCount)
	}
	return nil
}

// ensureDir creates the backup directory with 0750 permissions.
func (c *Config) ensureDir() error {
	if err := os.MkdirAll(c.Dir, 0o750); err != nil {
		return fmt.Errorf("failed to create backup directory %s: %w", c.Dir, err)
	}
	return nil
}
