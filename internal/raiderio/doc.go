// RaidProgress - World of Warcraft Raid Progress Aggregation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/raidprogress

/*
Package raiderio is the client for the Raider.io raiding API.

It serves two endpoints:

  - /raiding/raid-rankings: guild rankings for one raid and difficulty,
    optionally scoped by realm or guild ids (FetchRankings)
  - /raiding/static-data: the raids and boss rosters of an expansion
    (FetchCatalog, ListRaids)

Calls go through an upstream.Caller, which applies the request timeout,
client-side rate limiting and a circuit breaker. Results are cached in a
cache.Store; ranking failures are negative-cached so a struggling upstream
is not hammered by identical queries.

Build queries with NewQuery so that equivalent inputs share a cache key:

	q := raiderio.NewQuery("nerub-ar-palace", models.DifficultyMythic, "eu", "Tarren Mill", "", 50, 0)
	result, err := client.FetchRankings(ctx, q, time.Hour)
*/
package raiderio
