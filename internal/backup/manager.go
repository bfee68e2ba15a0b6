// Psalter - Worship Service Planning and Song Rotation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/psalter

package backup

import (
	"bytes"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tomtom215/psalter/internal/logging"
	"github.com/tomtom215/psalter/internal/models"
)

const indexFile = "index.json"

// Exporter produces the library to snapshot. *database.DB implements it.
type Exporter interface {
	ExportLibrary(ctx context.Context) (*models.Library, error)
}

// Manager creates, lists, loads and prunes snapshots. It is safe for
// concurrent use.
type Manager struct {
	cfg    Config
	source Exporter
	now    func() time.Time
	logger zerolog.Logger

	mu  sync.Mutex
	idx index
}

// NewManager validates cfg, creates the backup directory and loads the
// snapshot index. A missing index starts empty.
func NewManager(cfg Config, source Exporter) (*Manager, error) {
	if source == nil {
		return nil, fmt.Errorf("backup source is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.ensureDir(); err != nil {
		return nil, err
	}

	m := &Manager{cfg: cfg, source: source, now: time.Now, logger: logging.WithComponent("backup")}
	if err := m.loadIndex(); err != nil {
		return nil, err
	}
	return m, nil
}

// Config returns the manager's configuration.
func (m *Manager) Config() Config {
	return m.cfg
}

// Create exports the library and writes it as a new snapshot.
func (m *Manager) Create(ctx context.Context, trigger Trigger, notes string) (*Snapshot, error) {
	start := m.now()

	lib, err := m.source.ExportLibrary(ctx)
	if err != nil {
		return nil, fmt.Errorf("export library: %w", err)
	}

	id := uuid.NewString()
	snap := &Snapshot{
		ID:         id,
		Trigger:    trigger,
		CreatedAt:  start.UTC(),
		FileName:   snapshotFileName(start, id, m.cfg.Compress),
		Compressed: m.cfg.Compress,
		Notes:      notes,
		Counts: Counts{
			Churches:    len(lib.Churches),
			Songs:       len(lib.Songs),
			Usage:       len(lib.Usage),
			Members:     len(lib.Members),
			Preferences: len(lib.Preferences),
		},
	}

	size, checksum, err := m.writeSnapshot(snap.FileName, lib)
	if err != nil {
		return nil, err
	}
	snap.FileSize = size
	snap.Checksum = checksum
	snap.Duration = m.now().Sub(start)

	m.mu.Lock()
	m.idx.Snapshots = append(m.idx.Snapshots, snap)
	err = m.saveIndexLocked()
	m.mu.Unlock()
	if err != nil {
		return nil, err
	}

	m.logger.Info().
		Str("snapshot_id", snap.ID).
		Str("trigger", string(trigger)).
		Int("songs", snap.Counts.Songs).
		Int64("bytes", snap.FileSize).
		Dur("duration", snap.Duration).
		Msg("library snapshot created")

	copied := *snap
	return &copied, nil
}

// List returns every snapshot, newest first.
func (m *Manager) List() []Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Snapshot, 0, len(m.idx.Snapshots))
	for _, s := range m.idx.Snapshots {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

// Get returns one snapshot or ErrNotFound.
func (m *Manager) Get(id string) (*Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, _ := m.findLocked(id); s != nil {
		copied := *s
		return &copied, nil
	}
	return nil, ErrNotFound
}

// Load verifies a snapshot's checksum and decodes its library.
func (m *Manager) Load(id string) (*models.Library, error) {
	snap, err := m.Get(id)
	if err != nil {
		return nil, err
	}

	data, err := m.readVerified(snap)
	if err != nil {
		return nil, err
	}

	var r io.Reader = bytes.NewReader(data)
	if snap.Compressed {
		gz, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("open snapshot %s: %w", id, err)
		}
		defer gz.Close()
		r = gz
	}
	return models.DecodeLibrary(r)
}

// Verify recomputes a snapshot's checksum.
func (m *Manager) Verify(id string) error {
	snap, err := m.Get(id)
	if err != nil {
		return err
	}
	_, err = m.readVerified(snap)
	return err
}

// Delete removes a snapshot file and its index entry.
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	snap, i := m.findLocked(id)
	if snap == nil {
		return ErrNotFound
	}
	if err := m.removeFile(snap); err != nil {
		return err
	}
	m.idx.Snapshots = append(m.idx.Snapshots[:i], m.idx.Snapshots[i+1:]...)
	return m.saveIndexLocked()
}

func (m *Manager) findLocked(id string) (*Snapshot, int) {
	for i, s := range m.idx.Snapshots {
		if s.ID == id {
			return s, i
		}
	}
	return nil, -1
}

func (m *Manager) removeFile(snap *Snapshot) error {
	err := os.Remove(filepath.Join(m.cfg.Dir, snap.FileName))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete snapshot %s: %w", snap.ID, err)
	}
	return nil
}

func (m *Manager) readVerified(snap *Snapshot) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(m.cfg.Dir, snap.FileName))
	if err != nil {
		return nil, fmt.Errorf("read snapshot %s: %w", snap.ID, err)
	}
	sum := sha256.Sum256(data)
	if got := hex.EncodeToString(sum[:]); got != snap.Checksum {
		return nil, fmt.Errorf("snapshot %s is corrupted: checksum %s, want %s", snap.ID, got, snap.Checksum)
	}
	return data, nil
}

// writeSnapshot writes lib to a temporary file and renames it into place,
// returning the final size and SHA-256 checksum.
func (m *Manager) writeSnapshot(name string, lib *models.Library) (int64, string, error) {
	tmp, err := os.CreateTemp(m.cfg.Dir, ".snapshot-*")
	if err != nil {
		return 0, "", fmt.Errorf("create snapshot: %w", err)
	}
	defer os.Remove(tmp.Name())

	hash := sha256.New()
	counter := &countingWriter{}
	out := io.MultiWriter(tmp, hash, counter)

	if m.cfg.Compress {
		gz := gzip.NewWriter(out)
		if err := models.EncodeLibrary(gz, lib); err != nil {
			tmp.Close()
			return 0, "", err
		}
		if err := gz.Close(); err != nil {
			tmp.Close()
			return 0, "", fmt.Errorf("compress snapshot: %w", err)
		}
	} else if err := models.EncodeLibrary(out, lib); err != nil {
		tmp.Close()
		return 0, "", err
	}

	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return 0, "", fmt.Errorf("sync snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return 0, "", fmt.Errorf("close snapshot: %w", err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(m.cfg.Dir, name)); err != nil {
		return 0, "", fmt.Errorf("rename snapshot: %w", err)
	}
	return counter.n, hex.EncodeToString(hash.Sum(nil)), nil
}

func (m *Manager) loadIndex() error {
	data, err := os.ReadFile(filepath.Join(m.cfg.Dir, indexFile))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read backup index: %w", err)
	}
	if err := json.Unmarshal(data, &m.idx); err != nil {
		return fmt.Errorf("decode backup index: %w", err)
	}
	return nil
}

func (m *Manager) saveIndexLocked() error {
	if m.idx.Snapshots == nil {
		m.idx.Snapshots = []*Snapshot{}
	}
	data, err := json.MarshalIndent(&m.idx, "", "  ")
	if err != nil {
		return fmt.Errorf("encode backup index: %w", err)
	}

	path := filepath.Join(m.cfg.Dir, indexFile)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o640); err != nil {
		return fmt.Errorf("write backup index: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("write backup index: %w", err)
	}
	return nil
}

func snapshotFileName(t time.Time, id string, compressed bool) string {
	name := fmt.Sprintf("library-%s-%s.json", t.UTC().Format("20060102-150405"), id[:8])
	if compressed {
		name += ".gz"
	}
	return name
}

type countingWriter struct{ n int64 }

func (w *countingWriter) Write(p []byte) (int, error) {
	w.n += int64(len(p))
	return len(p), nil
}
