// Psalter - Worship Service Planning and Song Rotation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/psalter

package models

import "errors"

// ErrNotFound is returned by lookups when a record does not exist.
// Callers in the scoring path treat it as an empty result, not a failure.
var ErrNotFound = errors.New("record not found")
