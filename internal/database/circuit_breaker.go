// Psalter - Worship Service Planning and Song Rotation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/psalter

package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/psalter/internal/config"
	"github.com/tomtom215/psalter/internal/logging"
	"github.com/tomtom215/psalter/internal/metrics"
	"github.com/tomtom215/psalter/internal/models"
)

// Store is the set of reads the suggestion engine and church context
// resolver make against the database.
type Store interface {
	ActiveSongs(ctx context.Context, churchID string) ([]models.Song, error)
	Song(ctx context.Context, churchID, songID string) (*models.Song, error)
	UsageSince(ctx context.Context, churchID string, since time.Time) ([]models.UsageRecord, error)
	UserPreferences(ctx context.Context, userID string, songIDs []string) ([]models.UserPreference, error)
	SongPreferences(ctx context.Context, songID string) ([]models.UserPreference, error)
	Members(ctx context.Context, churchID string) ([]models.Member, error)
	Church(ctx context.Context, id string) (*models.Church, error)
}

var _ Store = (*DB)(nil)

// CircuitBreakerStore wraps a Store with the circuit breaker pattern so a
// struggling database fails fast instead of stalling every request.
type CircuitBreakerStore struct {
	store Store
	cb    *gobreaker.CircuitBreaker[interface{}]
	name  string
}

// NewCircuitBreakerStore wraps store. The circuit opens once at least
// cfg.MinRequests calls were made in the current interval and the failure
// ratio reaches cfg.FailureRatio. Not-found results and caller
// cancellation do not count as failures.
func NewCircuitBreakerStore(store Store, cfg config.BreakerConfig) *CircuitBreakerStore {
	cbName := cfg.Name
	if cbName == "" {
		cbName = "duckdb-store"
	}

	metrics.CircuitBreakerState.WithLabelValues(cbName).Set(0) // 0 = closed
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(cbName).Set(0)

	cb := gobreaker.NewCircuitBreaker[interface{}](gobreaker.Settings{
		Name:        cbName,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}

			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			shouldTrip := failureRatio >= cfg.FailureRatio

			if shouldTrip {
				logging.Warn().Str("breaker", cbName).Uint32("failures", counts.TotalFailures).
					Float64("failure_rate", failureRatio*100).Msg("[CIRCUIT BREAKER] Opening circuit")
			}

			return shouldTrip
		},

		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, models.ErrNotFound) || errors.Is(err, context.Canceled)
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr := stateToString(from)
			toStr := stateToString(to)

			logging.Info().Str("breaker", name).Str("from", fromStr).Str("to", toStr).Msg("[CIRCUIT BREAKER] State transition")

			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()

			if to == gobreaker.StateClosed {
				metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)
			}
		},
	})

	return &CircuitBreakerStore{
		store: store,
		cb:    cb,
		name:  cbName,
	}
}

// State returns the breaker state as "closed", "half-open" or "open".
func (s *CircuitBreakerStore) State() string {
	return stateToString(s.cb.State())
}

// execute wraps a store call with circuit breaker protection
func (s *CircuitBreakerStore) execute(fn func() (interface{}, error)) (interface{}, error) {
	result, err := s.cb.Execute(fn)

	if err != nil {
		switch {
		case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
			metrics.CircuitBreakerRequests.WithLabelValues(s.name, "rejected").Inc()
			logging.Warn().Err(err).Str("breaker", s.name).Msg("[CIRCUIT BREAKER] Request rejected")
		case errors.Is(err, models.ErrNotFound):
			metrics.CircuitBreakerRequests.WithLabelValues(s.name, "success").Inc()
		default:
			metrics.CircuitBreakerRequests.WithLabelValues(s.name, "failure").Inc()
			counts := s.cb.Counts()
			metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(s.name).Set(float64(counts.ConsecutiveFailures))
		}
		return nil, err
	}

	metrics.CircuitBreakerRequests.WithLabelValues(s.name, "success").Inc()
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(s.name).Set(0)

	return result, nil
}

// castResult safely type-casts the circuit breaker result with error checking
func castResult[T any](result interface{}, err error) (T, error) {
	var zero T
	if err != nil {
		return zero, err
	}
	if result == nil {
		return zero, nil
	}
	typed, ok := result.(T)
	if !ok {
		return zero, fmt.Errorf("circuit breaker: unexpected result type %T", result)
	}
	return typed, nil
}

// stateToFloat converts circuit breaker state to numeric value for metrics
func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

// stateToString converts circuit breaker state to string for logging
func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

// ActiveSongs reads the church's active songs with circuit breaker protection
func (s *CircuitBreakerStore) ActiveSongs(ctx context.Context, churchID string) ([]models.Song, error) {
	return castResult[[]models.Song](s.execute(func() (interface{}, error) {
		return s.store.ActiveSongs(ctx, churchID)
	}))
}

// Song reads one song with circuit breaker protection
func (s *CircuitBreakerStore) Song(ctx context.Context, churchID, songID string) (*models.Song, error) {
	return castResult[*models.Song](s.execute(func() (interface{}, error) {
		return s.store.Song(ctx, churchID, songID)
	}))
}

// UsageSince reads usage history with circuit breaker protection
func (s *CircuitBreakerStore) UsageSince(ctx context.Context, churchID string, since time.Time) ([]models.UsageRecord, error) {
	return castResult[[]models.UsageRecord](s.execute(func() (interface{}, error) {
		return s.store.UsageSince(ctx, churchID, since)
	}))
}

// UserPreferences reads a user's ratings with circuit breaker protection
func (s *CircuitBreakerStore) UserPreferences(ctx context.Context, userID string, songIDs []string) ([]models.UserPreference, error) {
	return castResult[[]models.UserPreference](s.execute(func() (interface{}, error) {
		return s.store.UserPreferences(ctx, userID, songIDs)
	}))
}

// SongPreferences reads a song's ratings with circuit breaker protection
func (s *CircuitBreakerStore) SongPreferences(ctx context.Context, songID string) ([]models.UserPreference, error) {
	return castResult[[]models.UserPreference](s.execute(func() (interface{}, error) {
		return s.store.SongPreferences(ctx, songID)
	}))
}

// Members reads church membership with circuit breaker protection
func (s *CircuitBreakerStore) Members(ctx context.Context, churchID string) ([]models.Member, error) {
	return castResult[[]models.Member](s.execute(func() (interface{}, error) {
		return s.store.Members(ctx, churchID)
	}))
}

// Church reads one church with circuit breaker protection
func (s *CircuitBreakerStore) Church(ctx context.Context, id string) (*models.Church, error) {
	return castResult[*models.Church](s.execute(func() (interface{}, error) {
		return s.store.Church(ctx, id)
	}))
}
