// RaidProgress - World of Warcraft Raid Progress Aggregation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/raidprogress

/*
Package supervisor provides process supervision for RaidProgress using suture v4.

	RootSupervisor ("raidprogress")
	├── DataSupervisor ("data-layer")
	│   ├── CacheMaintenanceService "cache-janitor" (memory backend)
	│   └── CacheMaintenanceService "cache-value-log-gc" (badger backend)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Crashed services restart with suture's backoff; each layer counts its own
failures. Supervisor events are logged through sutureslog using the slog
bridge in internal/logging:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	tree.AddDataService(services.NewCacheJanitorService(store, cfg.Cache.CleanupInterval))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.Addr(), 10*time.Second))
	err = tree.Serve(ctx)
*/
package supervisor
