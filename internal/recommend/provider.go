// Psalter - Worship Service Planning and Song Rotation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/psalter

package recommend

import (
	"context"
	"errors"
	"time"

	"github.com/tomtom215/psalter/internal/models"
)

// Errors returned by the engine and rating service.
var (
	// ErrInvalidRequest marks malformed requests.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrPartialFetch marks results assembled from a fetch in which some
	// chunks failed. The accompanying results are still usable.
	ErrPartialFetch = errors.New("partial fetch")
)

// SongLookup returns songs. Implementations return models.ErrNotFound for
// missing records.
type SongLookup interface {
	// ActiveSongs returns the church's songs that are not retired.
	ActiveSongs(ctx context.Context, churchID string) ([]models.Song, error)

	// Song returns one song, retired or not.
	Song(ctx context.Context, churchID, songID string) (*models.Song, error)
}

// UsageLookup returns service usage history.
type UsageLookup interface {
	UsageSince(ctx context.Context, churchID string, since time.Time) ([]models.UsageRecord, error)
}

// PreferenceLookup returns a user's ratings for the given songs. Songs the
// user has not rated are simply absent from the result.
type PreferenceLookup interface {
	UserPreferences(ctx context.Context, userID string, songIDs []string) ([]models.UserPreference, error)
}

// MemberLookup returns church membership records.
type MemberLookup interface {
	Members(ctx context.Context, churchID string) ([]models.Member, error)
}

// RatingLookup returns every rating of one song.
type RatingLookup interface {
	SongPreferences(ctx context.Context, songID string) ([]models.UserPreference, error)
}

// DataProvider bundles every lookup the engine consumes. This is typically
// implemented by the database layer.
type DataProvider interface {
	SongLookup
	UsageLookup
	PreferenceLookup
	MemberLookup
	RatingLookup
}

// ContextResolver resolves a church's hemisphere, timezone and month.
type ContextResolver interface {
	Resolve(ctx context.Context, churchID string) models.ChurchContext
}

// isNotFound reports whether err means "no records", which callers treat
// as an empty result.
func isNotFound(err error) bool {
	return errors.Is(err, models.ErrNotFound)
}
