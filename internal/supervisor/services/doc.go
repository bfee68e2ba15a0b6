// Psalter - Worship Service Planning and Song Rotation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/psalter

// Package services adapts Psalter components to suture.Service.
//
//   - HTTPServerService: ListenAndServe with graceful Shutdown
//   - CheckpointService: periodic DuckDB CHECKPOINT, plus one on shutdown
//   - CacheMetricsService: exports rating cache hit/miss growth to Prometheus
//   - BackupService: scheduled library snapshots and retention
//
// Every wrapper returns ctx.Err() on cancellation and a wrapped error on
// failure so the supervisor can restart it.
package services
