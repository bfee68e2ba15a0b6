// Psalter - Worship Service Planning and Song Rotation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/psalter

/*
Package cache provides the stores behind the rating cache.

A Store is a minimal key/value contract (Get, Set, Invalidate). Two
implementations exist:

  - LRU: an in-process least-recently-used map bounded by entry count.
  - BadgerStore: a persistent store backed by BadgerDB, values encoded as JSON.

Neither expires entries by time. Entries leave the cache only by eviction or
explicit invalidation.

RatingCache composes two stores: one keyed by user holding the user's
last-known song ratings, and one keyed by song holding the aggregate
RatingSummary. Reads that miss are populated by the caller; any rating write
must invalidate both the user entry and the song aggregate.

# Thread Safety

All types are safe for concurrent use. Concurrent writers to the same key
race, and the last write wins.
*/
package cache
