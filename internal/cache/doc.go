// RaidProgress - World of Warcraft Raid Progress Aggregation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/raidprogress

/*
Package cache provides the TTL key-value store shared by every upstream
client.

# Overview

The cache provides:
  - A Store contract with per-entry TTL and glob bulk deletion
  - MemoryStore: RWMutex map with lazy expiry plus a janitor Cleanup
  - BadgerStore: persistent BadgerDB backend using native entry TTLs
  - Namespaced key builders and InvalidateNamespace
  - GetJSON / SetJSON typed helpers (goccy/go-json)

# Namespaces

Keys are "<namespace>:<part>:...". Each concern owns one namespace:

	ranking      ranking responses and their ":error" negative entries
	static       raid catalogs per expansion (minimum 24h)
	token        OAuth access tokens per region
	icon         blob identifiers for boss and raid icons (30 days)
	achievement  achievement maps and raid achievements (30 days)
	realm        realm lists per region (24h)
	journal      journal instance ids and header images (30 days)

"Clear all cache" invalidates every namespace; "refresh raids" invalidates
only static.

# TTL Semantics

A ttl of zero or less passed to Set is "do not cache". Callers that want to
bypass the store for reads (cache_ttl=0 on a ranking fetch) skip Get as
well.

# Negative Entries

ErrorKey(key) derives the companion key under which an upstream failure is
stored for a short time (120s, or 300s after a rate limit). The entry lives
in the same namespace, so invalidating the namespace clears both.
*/
package cache
