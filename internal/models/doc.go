// Psalter - Worship Service Planning and Song Rotation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/psalter

/*
Package models defines data structures for the Psalter application.

This package holds the plain records exchanged between the record store, the
suggestion engine and the HTTP layer. The engine treats every record here as
read-only input.

Key Components:

  - Song: Library entry with optional key, tempo, tags, notes and lyrics
  - UsageRecord: One use of a song in a service, led by a worship leader
  - UserPreference: A user's rating and "difficult to play" flag for a song
  - Church / Member: Tenant record and membership with leader capability
  - ChurchContext: Resolved hemisphere, timezone and current month
  - APIResponse: Standardized API response wrapper

Songs carry an optional derived DaysSinceLastUsed that the pipeline fills in
from usage history before scoring; stores never persist it.
*/
package models
