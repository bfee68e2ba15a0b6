// Psalter - Worship Service Planning and Song Rotation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/psalter

package backup

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/tomtom215/psalter/internal/models"
)

type fakeExporter struct {
	lib   *models.Library
	err   error
	calls int
}

func (f *fakeExporter) ExportLibrary(context.Context) (*models.Library, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.lib, nil
}

func sampleLibrary() *models.Library {
	return &models.Library{
		Churches: []models.Church{{ID: "c1", Name: "Grace", Timezone: "UTC", Hemisphere: models.HemisphereNorthern}},
		Songs: []models.Song{
			{ID: "s1", ChurchID: "c1", Title: "Amazing Grace", Key: "G", Tempo: 72, Tags: []string{"grace"}},
			{ID: "s2", ChurchID: "c1", Title: "Come Thou Fount", Key: "D", Tempo: 96, Retired: true},
		},
		Usage: []models.UsageRecord{
			{SongID: "s1", ServiceID: "svc1", UsedOn: time.Date(2026, 10, 11, 10, 0, 0, 0, time.UTC)},
		},
		Members: []models.Member{{ChurchID: "c1", UserID: "u1", IsLeader: true, Active: true}},
		Preferences: []models.UserPreference{
			{UserID: "u1", SongID: "s1", Rating: models.RatingFavorable},
		},
	}
}

func newTestManager(t *testing.T, compress bool) (*Manager, *fakeExporter) {
	t.Helper()
	src := &fakeExporter{lib: sampleLibrary()}
	cfg := DefaultConfig()
	cfg.Dir = t.TempDir()
	cfg.Compress = compress
	m, err := NewManager(cfg, src)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	return m, src
}

func TestManager_CreateAndLoad(t *testing.T) {
	for _, compress := range []bool{true, false} {
		name := "plain"
		if compress {
			name = "gzip"
		}
		t.Run(name, func(t *testing.T) {
			m, _ := newTestManager(t, compress)

			snap, err := m.Create(context.Background(), TriggerManual, "before upgrade")
			if err != nil {
				t.Fatalf("Create: %v", err)
			}
			if snap.Compressed != compress || strings.HasSuffix(snap.FileName, ".gz") != compress {
				t.Errorf("snapshot %+v, compress = %v", snap, compress)
			}
			if snap.Counts != (Counts{Churches: 1, Songs: 2, Usage: 1, Members: 1, Preferences: 1}) {
				t.Errorf("counts = %+v", snap.Counts)
			}
			if len(snap.Checksum) != 64 || snap.FileSize == 0 {
				t.Errorf("checksum %q size %d", snap.Checksum, snap.FileSize)
			}

			info, err := os.Stat(filepath.Join(m.Config().Dir, snap.FileName))
			if err != nil {
				t.Fatalf("snapshot file: %v", err)
			}
			if info.Size() != snap.FileSize {
				t.Errorf("file size = %d, recorded %d", info.Size(), snap.FileSize)
			}

			lib, err := m.Load(snap.ID)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if len(lib.Songs) != 2 || !lib.Songs[1].Retired || lib.Songs[0].Tags[0] != "grace" {
				t.Errorf("loaded songs = %+v", lib.Songs)
			}
			if len(lib.Preferences) != 1 || lib.Preferences[0].Rating != models.RatingFavorable {
				t.Errorf("loaded preferences = %+v", lib.Preferences)
			}
		})
	}
}

func TestManager_ExportError(t *testing.T) {
	m, src := newTestManager(t, true)
	src.err = errors.New("database is closed")

	if _, err := m.Create(context.Background(), TriggerScheduled, ""); err == nil || !strings.Contains(err.Error(), "database is closed") {
		t.Fatalf("Create error = %v", err)
	}
	if got := len(m.List()); got != 0 {
		t.Errorf("List() = %d snapshots after failed export", got)
	}
}

func TestManager_IndexPersists(t *testing.T) {
	m, src := newTestManager(t, false)

	first, err := m.Create(context.Background(), TriggerManual, "")
	if err != nil {
		t.Fatal(err)
	}
	m.now = func() time.Time { return time.Now().Add(time.Hour) }
	second, err := m.Create(context.Background(), TriggerScheduled, "")
	if err != nil {
		t.Fatal(err)
	}

	reopened, err := NewManager(m.Config(), src)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	list := reopened.List()
	if len(list) != 2 {
		t.Fatalf("List() = %d, want 2", len(list))
	}
	if list[0].ID != second.ID || list[1].ID != first.ID {
		t.Errorf("List order = %s, %s; want newest first", list[0].ID, list[1].ID)
	}
	if list[0].Trigger != TriggerScheduled {
		t.Errorf("trigger = %s", list[0].Trigger)
	}
}

func TestManager_DetectsCorruption(t *testing.T) {
	m, _ := newTestManager(t, false)
	snap, err := m.Create(context.Background(), TriggerManual, "")
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(m.Config().Dir, snap.FileName)
	if err := os.WriteFile(path, []byte(`{"songs":[]}`), 0o600); err != nil {
		t.Fatal(err)
	}

	if err := m.Verify(snap.ID); err == nil || !strings.Contains(err.Error(), "corrupted") {
		t.Errorf("Verify error = %v", err)
	}
	if _, err := m.Load(snap.ID); err == nil {
		t.Error("Load succeeded on a corrupted snapshot")
	}
}

func TestManager_Delete(t *testing.T) {
	m, _ := newTestManager(t, true)
	snap, err := m.Create(context.Background(), TriggerManual, "")
	if err != nil {
		t.Fatal(err)
	}

	if err := m.Delete(snap.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := os.Stat(filepath.Join(m.Config().Dir, snap.FileName)); !os.IsNotExist(err) {
		t.Errorf("snapshot file still present: %v", err)
	}
	if _, err := m.Get(snap.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after delete = %v", err)
	}
	if err := m.Delete(snap.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete = %v", err)
	}
	if _, err := m.Load("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Load missing = %v", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"default", func(*Config) {}, ""},
		{"no dir", func(c *Config) { c.Dir = "" }, "directory is required"},
		{"short interval", func(c *Config) { c.Interval = time.Second }, "at least 1m"},
		{"negative retention", func(c *Config) { c.Retention.MaxAgeDays = -1 }, "non-negative"},
		{"max below min", func(c *Config) { c.Retention.MaxCount = 2 }, "must be at least min_count"},
		{"unlimited max", func(c *Config) { c.Retention.MaxCount = 0 }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.want == "" {
				if err != nil {
					t.Errorf("Validate() = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Validate() = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestNewManager_RequiresSource(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Dir = t.TempDir()
	if _, err := NewManager(cfg, nil); err == nil {
		t.Error("NewManager(nil source) succeeded")
	}
}
