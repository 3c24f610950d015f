// RaidProgress - World of Warcraft Raid Progress Aggregation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/raidprogress

/*
Package config provides centralized configuration management for RaidProgress.

Configuration is layered with Koanf v2: built-in defaults, then an optional
YAML file, then environment variables. The merged result is validated with
the shared validator (custom raid tags included) before use.

# Config File Search

CONFIG_PATH wins when it points at an existing file. Otherwise the first of
these is used:
  - config.yaml / config.yml in the working directory
  - /etc/raidprogress/config.yaml / config.yml

# Environment Variables

Raider.io (RaiderIOConfig):
  - RAIDERIO_API_KEY: API key, rankings are unavailable without it
  - RAIDERIO_BASE_URL: API root (default: https://raider.io/api/v1)
  - RAIDERIO_TIMEOUT: Per-request timeout (default: 8s)
  - RAIDERIO_RPS: Client-side request rate (default: 5)

Blizzard (BlizzardConfig):
  - BLIZZARD_CLIENT_ID / BLIZZARD_CLIENT_SECRET: OAuth client credentials
  - BLIZZARD_REGION: Game Data region (default: eu)
  - BLIZZARD_USE_ICONS: Download achievement icons (default: true)

Request defaults (DefaultsConfig):
  - DEFAULT_RAID, DEFAULT_EXPANSION, DEFAULT_DIFFICULTY, DEFAULT_REGION
  - DEFAULT_REALM, DEFAULT_GUILD_IDS
  - CACHE_MINUTES: Result cache lifetime, 0 disables (default: 60)
  - RESULTS_LIMIT: Ranking page size (default: 50)

Infrastructure:
  - CACHE_BACKEND: memory or badger (default: memory)
  - CACHE_PATH: Badger directory (required for badger)
  - MEDIA_DIR: Icon storage directory (default: /data/media)
  - HTTP_HOST, HTTP_PORT, HTTP_TIMEOUT
  - ADMIN_TOKEN: Bearer token for admin routes, admin routes are disabled when empty
  - CORS_ORIGINS: Comma-separated allowed origins
  - RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW

Logging:
  - LOG_LEVEL, LOG_FORMAT, LOG_CALLER, DEBUG_MODE

# Usage Example

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	fmt.Println(cfg.Server.Addr())
*/
package config
