// Psalter - Worship Service Planning and Song Rotation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/psalter

// Package backup writes point-in-time library snapshots and prunes them by
// a retention policy.
//
// A snapshot is the JSON library export of the whole database (churches,
// songs, usage, members and ratings), optionally gzip-compressed, with a
// SHA-256 checksum recorded in an index file next to the snapshots. The
// export format is the same one the importer and psalterctl read, so
// restoring is an ordinary import:
//
//	lib, err := manager.Load(snapshotID)
//	stats, err := db.ImportLibrary(ctx, lib, "")
//
// Retention:
//
//	MinCount:         newest snapshots always kept
//	KeepDailyForDays: newest snapshot of each day kept for this many days
//	MaxAgeDays:       other snapshots older than this are deleted
//	MaxCount:         oldest snapshots beyond this count are deleted
//
// Scheduling is done by the supervisor's backup service, which calls
// Manager.Create followed by Manager.ApplyRetention.
package backup
