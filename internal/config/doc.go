// Psalter - Worship Service Planning and Song Rotation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/psalter

/*
Package config loads Psalter configuration with Koanf v2.

Sources are layered, later ones winning:
  - built-in defaults (defaultConfig)
  - an optional YAML file (CONFIG_PATH, ./config.yaml or /etc/psalter/config.yaml)
  - environment variables mapped through envMappings

Example config.yaml:

	server:
	  port: 3858
	  cors_origins: ["https://planning.example.org"]
	database:
	  path: /data/psalter.duckdb
	suggest:
	  max_results: 5
	  min_days_since_used: 14
	cache:
	  backend: badger
	  path: /data/cache
	church:
	  default_timezone: Australia/Sydney
	  default_hemisphere: southern

Config.Validate runs once after loading; invalid configuration stops startup.
*/
package config
