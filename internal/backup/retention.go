// Psalter - Worship Service Planning and Song Rotation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/psalter

package backup

import (
	"context"
	"sort"
	"time"
)

// ApplyRetention deletes the snapshots the retention policy no longer keeps
// and returns how many were removed.
func (m *Manager) ApplyRetention(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	expired := selectExpired(m.idx.Snapshots, m.cfg.Retention, m.now())
	if len(expired) == 0 {
		return 0, nil
	}

	drop := make(map[string]bool, len(expired))
	for _, s := range expired {
		if err := ctx.Err(); err != nil {
			break
		}
		if err := m.removeFile(s); err != nil {
			m.logger.Warn().Err(err).Str("snapshot_id", s.ID).Msg("failed to delete expired snapshot")
			continue
		}
		drop[s.ID] = true
	}

	kept := m.idx.Snapshots[:0]
	for _, s := range m.idx.Snapshots {
		if !drop[s.ID] {
			kept = append(kept, s)
		}
	}
	m.idx.Snapshots = kept

	if err := m.saveIndexLocked(); err != nil {
		return 0, err
	}
	if len(drop) > 0 {
		m.logger.Info().Int("deleted", len(drop)).Int("remaining", len(kept)).Msg("snapshot retention applied")
	}
	return len(drop), ctx.Err()
}

// selectExpired returns the snapshots policy does not keep at now.
func selectExpired(snaps []*Snapshot, policy RetentionPolicy, now time.Time) []*Snapshot {
	if len(snaps) == 0 {
		return nil
	}

	sorted := make([]*Snapshot, len(snaps))
	copy(sorted, snaps)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].CreatedAt.After(sorted[j].CreatedAt) })

	protected := make(map[string]bool)
	for i := 0; i < policy.MinCount && i < len(sorted); i++ {
		protected[sorted[i].ID] = true
	}

	keep := make(map[string]bool, len(sorted))
	for id := range protected {
		keep[id] = true
	}

	if policy.KeepDailyForDays > 0 {
		cutoff := now.AddDate(0, 0, -policy.KeepDailyForDays)
		seenDays := make(map[string]bool)
		for _, s := range sorted {
			if s.CreatedAt.Before(cutoff) {
				continue
			}
			day := s.CreatedAt.UTC().Format(time.DateOnly)
			if !seenDays[day] {
				seenDays[day] = true
				keep[s.ID] = true
			}
		}
	}

	if policy.MaxAgeDays > 0 {
		cutoff := now.AddDate(0, 0, -policy.MaxAgeDays)
		for _, s := range sorted {
			if !s.CreatedAt.Before(cutoff) {
				keep[s.ID] = true
			}
		}
	} else {
		for _, s := range sorted {
			keep[s.ID] = true
		}
	}

	survivors := make([]*Snapshot, 0, len(sorted))
	var expired []*Snapshot
	for _, s := range sorted {
		if keep[s.ID] {
			survivors = append(survivors, s)
		} else {
			expired = append(expired, s)
		}
	}

	// survivors is newest first; trim from the old end.
	if policy.MaxCount > 0 {
		for i := len(survivors) - 1; i >= 0 && len(survivors) > policy.MaxCount; i-- {
			if protected[survivors[i].ID] {
				continue
			}
			expired = append(expired, survivors[i])
			survivors = append(survivors[:i], survivors[i+1:]...)
		}
	}

	return expired
}
