// Psalter - Worship Service Planning and Song Rotation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/psalter

package database

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/tomtom215/psalter/internal/config"
)

// testDBSemaphore serializes DuckDB usage across tests. Concurrent CGO
// connections from parallel tests can hang under CI resource pressure, so
// the slot is held for the whole test.
var testDBSemaphore = make(chan struct{}, 1)

// setupTestDB creates an in-memory database that is closed when the test ends.
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	testDBSemaphore <- struct{}{}
	t.Cleanup(func() {
		<-testDBSemaphore
	})

	type result struct {
		db  *DB
		err error
	}
	resultCh := make(chan result, 1)
	go func() {
		db, err := New(&config.DatabaseConfig{
			Path:        ":memory:",
			MaxMemory:   "512MB",
			Threads:     2,
			SkipIndexes: true,
		})
		resultCh <- result{db: db, err: err}
	}()

	select {
	case res := <-resultCh:
		if res.err != nil {
			t.Fatalf("Failed to create test database: %v", res.err)
		}
		t.Cleanup(func() {
			if err := res.db.Close(); err != nil {
				t.Errorf("Close() error = %v", err)
			}
		})
		return res.db
	case <-time.After(120 * time.Second):
		t.Fatal("Timed out creating test database")
		return nil
	}
}

func TestNew_InMemory(t *testing.T) {
	db := setupTestDB(t)

	if err := db.Ping(context.Background()); err != nil {
		t.Fatalf("Ping() error = %v", err)
	}
	if db.Conn() == nil {
		t.Fatal("Conn() = nil")
	}

	for _, table := range []string{"churches", "songs", "song_usage", "church_members", "user_preferences", "schema_migrations"} {
		var n int
		err := db.Conn().QueryRowContext(context.Background(),
			`SELECT COUNT(*) FROM information_schema.tables WHERE table_name = ?`, table).Scan(&n)
		if err != nil {
			t.Fatalf("information_schema query error = %v", err)
		}
		if n != 1 {
			t.Errorf("table %s missing", table)
		}
	}
}

func TestNew_FileBackedReopen(t *testing.T) {
	testDBSemaphore <- struct{}{}
	defer func() { <-testDBSemaphore }()

	path := filepath.Join(t.TempDir(), "nested", "psalter.duckdb")
	cfg := &config.DatabaseConfig{Path: path, MaxMemory: "256MB", Threads: 1}

	db, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := db.UpsertChurch(context.Background(), testChurch("grace")); err != nil {
		t.Fatalf("UpsertChurch() error = %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	reopened, err := New(cfg)
	if err != nil {
		t.Fatalf("New() on reopen error = %v", err)
	}
	defer reopened.Close()

	church, err := reopened.Church(context.Background(), "grace")
	if err != nil {
		t.Fatalf("Church() after reopen error = %v", err)
	}
	if church.Name != "Grace Fellowship" {
		t.Errorf("Name = %q, want Grace Fellowship", church.Name)
	}
}

func TestMigrations_AppliedOnce(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	applied, err := db.appliedMigrations(ctx)
	if err != nil {
		t.Fatalf("appliedMigrations() error = %v", err)
	}
	if len(applied) != len(migrations()) {
		t.Fatalf("applied %d migrations, want %d", len(applied), len(migrations()))
	}

	if err := db.runVersionedMigrations(); err != nil {
		t.Fatalf("second runVersionedMigrations() error = %v", err)
	}
	again, err := db.appliedMigrations(ctx)
	if err != nil {
		t.Fatalf("appliedMigrations() error = %v", err)
	}
	for v, m := range applied {
		if !again[v].AppliedAt.Equal(m.AppliedAt) {
			t.Errorf("migration %d re-applied", v)
		}
	}
}

func TestIsTransactionConflict(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"conflict", errString("TransactionContext Error: Transaction conflict: cannot update"), true},
		{"update conflict", errString("Conflict on update!"), true},
		{"other", errString("Catalog Error: table not found"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isTransactionConflict(tt.err); got != tt.want {
				t.Errorf("isTransactionConflict() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWithWriteRetry(t *testing.T) {
	db := &DB{}

	t.Run("retries conflicts", func(t *testing.T) {
		calls := 0
		err := db.withWriteRetry(context.Background(), func(context.Context) error {
			calls++
			if calls < 3 {
				return errString("Transaction conflict")
			}
			return nil
		})
		if err != nil {
			t.Fatalf("withWriteRetry() error = %v", err)
		}
		if calls != 3 {
			t.Errorf("calls = %d, want 3", calls)
		}
	})

	t.Run("does not retry other errors", func(t *testing.T) {
		calls := 0
		err := db.withWriteRetry(context.Background(), func(context.Context) error {
			calls++
			return errString("constraint violated")
		})
		if err == nil {
			t.Fatal("withWriteRetry() error = nil")
		}
		if calls != 1 {
			t.Errorf("calls = %d, want 1", calls)
		}
	})

	t.Run("gives up after max retries", func(t *testing.T) {
		calls := 0
		err := db.withWriteRetry(context.Background(), func(context.Context) error {
			calls++
			return errString("Transaction conflict")
		})
		if err == nil {
			t.Fatal("withWriteRetry() error = nil")
		}
		if calls != maxWriteRetries {
			t.Errorf("calls = %d, want %d", calls, maxWriteRetries)
		}
	})
}

type errString string

func (e errString) Error() string { return string(e) }
