// Psalter - Worship Service Planning and Song Rotation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/psalter

package services

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/psalter/internal/logging"
)

// DefaultCheckpointInterval is how often the DuckDB WAL is folded into the
// database file.
const DefaultCheckpointInterval = 5 * time.Minute

// Checkpointer is satisfied by *database.DB.
type Checkpointer interface {
	Checkpoint(ctx context.Context) error
}

// CheckpointService checkpoints the database periodically and once more on
// shutdown, so rating writes survive a crash without a long WAL replay.
type CheckpointService struct {
	db       Checkpointer
	interval time.Duration
	timeout  time.Duration
}

// NewCheckpointService creates a checkpoint service. A non-positive
// interval uses DefaultCheckpointInterval.
func NewCheckpointService(db Checkpointer, interval time.Duration) *CheckpointService {
	if interval <= 0 {
		interval = DefaultCheckpointInterval
	}
	return &CheckpointService{db: db, interval: interval, timeout: 30 * time.Second}
}

// Serve implements suture.Service.
func (s *CheckpointService) Serve(ctx context.Context) error {
	err := runEvery(ctx, s.interval, s.checkpoint)
	if ctx.Err() == nil {
		return err
	}

	// Final checkpoint on shutdown.
	finalCtx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	if cerr := s.checkpoint(finalCtx); cerr != nil {
		logging.Warn().Err(cerr).Msg("final checkpoint failed")
	}
	return err
}

func (s *CheckpointService) checkpoint(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	if err := s.db.Checkpoint(ctx); err != nil {
		return fmt.Errorf("checkpoint: %w", err)
	}
	logging.Debug().Dur("duration", time.Since(start)).Msg("database checkpoint complete")
	return nil
}

// String names the service in supervisor events.
func (s *CheckpointService) String() string {
	return "db-checkpoint"
}
