// Psalter - Worship Service Planning and Song Rotation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/psalter

package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/tomtom215/psalter/internal/backup"
)

type fakeSnapshotter struct {
	mu        sync.Mutex
	triggers  []backup.Trigger
	retention int
	createErr error
}

func (f *fakeSnapshotter) Create(_ context.Context, trigger backup.Trigger, _ string) (*backup.Snapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.triggers = append(f.triggers, trigger)
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &backup.Snapshot{ID: "snap", Trigger: trigger}, nil
}

func (f *fakeSnapshotter) ApplyRetention(context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.retention++
	return 0, nil
}

func (f *fakeSnapshotter) counts() (creates, retention int, last backup.Trigger) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if n := len(f.triggers); n > 0 {
		last = f.triggers[n-1]
	}
	return len(f.triggers), f.retention, last
}

func TestBackupService(t *testing.T) {
	t.Run("snapshots on schedule and at shutdown", func(t *testing.T) {
		mgr := &fakeSnapshotter{}
		svc := NewBackupService(mgr, 5*time.Millisecond, true)

		ctx, cancel := context.WithCancel(context.Background())
		errCh := make(chan error, 1)
		go func() { errCh <- svc.Serve(ctx) }()

		if !waitUntil(time.Second, func() bool { n, _, _ := mgr.counts(); return n >= 2 }) {
			t.Fatal("no scheduled snapshots")
		}
		cancel()
		if err := <-errCh; !errors.Is(err, context.Canceled) {
			t.Errorf("Serve() = %v, want context.Canceled", err)
		}

		creates, retention, last := mgr.counts()
		if last != backup.TriggerShutdown {
			t.Errorf("last trigger = %s, want shutdown", last)
		}
		if retention != creates {
			t.Errorf("retention passes = %d, snapshots = %d", retention, creates)
		}
	})

	t.Run("failures do not stop the service", func(t *testing.T) {
		mgr := &fakeSnapshotter{createErr: errors.New("disk full")}
		svc := NewBackupService(mgr, time.Millisecond, false)

		ctx, cancel := context.WithCancel(context.Background())
		errCh := make(chan error, 1)
		go func() { errCh <- svc.Serve(ctx) }()

		if !waitUntil(time.Second, func() bool { n, _, _ := mgr.counts(); return n >= 3 }) {
			t.Fatal("service stopped retrying after a failed snapshot")
		}
		cancel()
		<-errCh

		_, retention, last := mgr.counts()
		if retention != 0 {
			t.Errorf("retention ran %d times after failed snapshots", retention)
		}
		if last == backup.TriggerShutdown {
			t.Error("shutdown snapshot taken with snapshotOnShutdown unset")
		}
	})

	t.Run("defaults", func(t *testing.T) {
		svc := NewBackupService(&fakeSnapshotter{}, 0, false)
		if svc.interval != DefaultBackupInterval || svc.String() != "library-backup" {
			t.Errorf("interval = %v, name = %q", svc.interval, svc.String())
		}
	})
}
