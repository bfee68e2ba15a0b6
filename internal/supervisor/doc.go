// Psalter - Worship Service Planning and Song Rotation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/psalter

/*
Package supervisor runs Psalter's long-lived services under suture v4.

	RootSupervisor ("psalter")
	├── DataSupervisor ("data-layer")
	│   ├── CheckpointService    periodic DuckDB CHECKPOINT
	│   ├── CacheMetricsService  rating cache hits/misses to Prometheus
	│   └── BackupService        scheduled library snapshots (optional)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Crashed services are restarted with suture's backoff; a failing data-layer
service never takes the API down. Supervisor events are logged through
sutureslog, fed by the zerolog-backed slog handler from internal/logging:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	return tree.Serve(ctx)

See the services subpackage for the wrappers.
*/
package supervisor
