// Psalter - Worship Service Planning and Song Rotation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/psalter

package services

import (
	"context"
	"time"

	"github.com/tomtom215/psalter/internal/backup"
	"github.com/tomtom215/psalter/internal/logging"
	"github.com/tomtom215/psalter/internal/metrics"
)

// Snapshotter is satisfied by *backup.Manager.
type Snapshotter interface {
	Create(ctx context.Context, trigger backup.Trigger, notes string) (*backup.Snapshot, error)
	ApplyRetention(ctx context.Context) (int, error)
}

// DefaultBackupInterval is the snapshot interval used when none is set.
const DefaultBackupInterval = 24 * time.Hour

// BackupService takes a library snapshot every interval and prunes old
// ones. A failed snapshot is logged and retried on the next tick rather than
// restarting the service.
type BackupService struct {
	manager    Snapshotter
	interval   time.Duration
	timeout    time.Duration
	onShutdown bool
	now        func() time.Time
}

// NewBackupService creates a backup service. When snapshotOnShutdown is
// set a final snapshot is written as the supervisor stops. A non-positive
// interval uses DefaultBackupInterval.
func NewBackupService(manager Snapshotter, interval time.Duration, snapshotOnShutdown bool) *BackupService {
	if interval <= 0 {
		interval = DefaultBackupInterval
	}
	return &BackupService{
		manager:    manager,
		interval:   interval,
		timeout:    5 * time.Minute,
		onShutdown: snapshotOnShutdown,
		now:        time.Now,
	}
}

// Serve implements suture.Service.
func (s *BackupService) Serve(ctx context.Context) error {
	err := runEvery(ctx, s.interval, func(ctx context.Context) error {
		s.snapshot(ctx, backup.TriggerScheduled)
		return nil
	})
	if ctx.Err() == nil || !s.onShutdown {
		return err
	}

	finalCtx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	s.snapshot(finalCtx, backup.TriggerShutdown)
	return err
}

func (s *BackupService) snapshot(ctx context.Context, trigger backup.Trigger) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	snap, err := s.manager.Create(ctx, trigger, "")
	metrics.RecordBackupSnapshot(string(trigger), err, s.now())
	if err != nil {
		logging.Err(err).Str("trigger", string(trigger)).Msg("library snapshot failed")
		return
	}

	deleted, err := s.manager.ApplyRetention(ctx)
	metrics.RecordBackupRetention(deleted)
	if err != nil {
		logging.Warn().Err(err).Str("snapshot_id", snap.ID).Msg("snapshot retention failed")
	}
}

// String names the service in supervisor events.
func (s *BackupService) String() string {
	return "library-backup"
}
