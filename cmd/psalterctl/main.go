// Psalter - Worship Service Planning and Song Rotation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/psalter

// Command psalterctl runs the suggestion engine against a library export
// file, without a server or database.
//
//	psalterctl --library library.json --church grace suggest --theme grace --mood upbeat
//	psalterctl --library library.json --church grace insights
//	psalterctl --library library.json --church grace retire s42 --apply
//	psalterctl --library library.json rate s42 favorable --user u1
//	psalterctl --library library.json import --db /data/psalter.duckdb
//	psalterctl --library library.json snapshot create --dir ./snapshots
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
