// RaidProgress - World of Warcraft Raid Progress Aggregation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/raidprogress

/*
Package main is the entry point for the RaidProgress server.

RaidProgress aggregates World of Warcraft guild raid progress from the
Raider.io rankings across difficulty tiers, decorates it with boss icons
from the Blizzard Game Data API, and serves the result as JSON.

# Application Architecture

	RootSupervisor ("raidprogress")
	├── DataSupervisor ("data-layer")
	│   └── cache janitor (memory) or value-log GC (badger)
	└── APISupervisor ("api-layer")
	    └── HTTP Server

Component initialization order:

 1. Configuration: Koanf v2 (defaults, config.yaml, environment)
 2. Logging: zerolog, with the debug ring when DEBUG_MODE=true
 3. Cache: memory or badger store shared by every client
 4. Clients: Raider.io, Blizzard OAuth token manager and Game Data
 5. Icons: disk blob store and the icon resolution service
 6. Aggregator and HTTP router
 7. Supervisor tree, until SIGINT or SIGTERM

# Configuration

See internal/config for every setting. The minimum is:

	RAIDERIO_API_KEY=...          # rankings
	BLIZZARD_CLIENT_ID=...        # optional: icons, realms, header art
	BLIZZARD_CLIENT_SECRET=...
	ADMIN_TOKEN=...               # optional: admin routes
*/
package main
