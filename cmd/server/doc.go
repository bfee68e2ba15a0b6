// Psalter - Worship Service Planning and Song Rotation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/psalter

/*
Package main is the entry point for the Psalter server.

Psalter suggests songs for upcoming worship services and reports on the
health of a church's song library. The server exposes both over a JSON
HTTP API backed by DuckDB.

# Application Architecture

Long-running components are managed by a Suture v4 supervisor tree:

	RootSupervisor ("psalter")
	├── DataSupervisor ("data-layer")
	│   ├── db-checkpoint (periodic DuckDB checkpoint)
	│   ├── cache-metrics-rating (rating cache hit/miss export)
	│   └── library-backup (scheduled library snapshots, when enabled)
	└── APISupervisor ("api-layer")
	    └── HTTP Server

Component initialization order:

 1. Environment: optional .env file (godotenv)
 2. Configuration: Koanf v2 with defaults, config.yaml and environment variables
 3. Logging: zerolog, bridged to slog for the supervisor
 4. Database: DuckDB, optionally seeded from a library export
 5. Circuit breaker around database reads
 6. Rating cache: in-memory LRU or BadgerDB
 7. Suggestion engine and church context resolver
 8. Chi router and HTTP server
 9. Supervisor tree, including the backup service when BACKUP_ENABLED is set

# Configuration

Commonly used environment variables:

	HTTP_PORT=3858
	DUCKDB_PATH=/data/psalter.duckdb
	PSALTER_SEED_PATH=/data/library.json
	PSALTER_SEED_CHURCH=grace
	CACHE_BACKEND=badger
	CACHE_PATH=/data/rating-cache
	CHURCH_DEFAULT_TIMEZONE=Australia/Sydney
	BACKUP_ENABLED=true
	BACKUP_DIR=/data/backups
	LOG_LEVEL=debug
	LOG_FORMAT=console

A config.yaml in the working directory, /etc/psalter, or the path in
CONFIG_PATH is read before environment variables.

# Signal Handling

SIGINT and SIGTERM cancel the root context. The supervisor stops the HTTP
server (draining in-flight requests), takes a final library snapshot when
BACKUP_ON_SHUTDOWN is set, runs a final checkpoint and exits.
*/
package main
