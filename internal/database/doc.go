// Psalter - Worship Service Planning and Song Rotation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/psalter

// Package database stores the song library in DuckDB.
//
// DB implements every read the suggestion engine needs (active songs, usage
// history, memberships, ratings) plus the rating writes behind the ratings
// service and the church lookup behind the context resolver. Missing
// records surface as models.ErrNotFound.
//
// CircuitBreakerStore wraps those reads with sony/gobreaker so a failing
// database trips open and subsequent fetches fail fast; the engine treats
// each failed fetch as an empty, degraded input.
//
// Files:
//   - database.go: connection lifecycle
//   - database_schema.go, migrations.go: tables, indexes, versioned migrations
//   - crud_*.go: per-table reads and writes
//   - import.go: bulk load of a JSON library export
//   - circuit_breaker.go: breaker-wrapped Store
package database
