// RaidProgress - World of Warcraft Raid Progress Aggregation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/raidprogress

/*
Package models defines the data structures shared by the RaidProgress
clients, the aggregator and the HTTP API.

Model Categories:

1. Raid metadata (raid.go):
  - Difficulty: tiers (normal, heroic, mythic) and display modes (all, highest)
  - Expansion: supported expansions and their achievement category ids
  - RaidCatalog: static raid list with ordered boss rosters

2. Rankings (ranking.go):
  - RankingQuery: normalized ranking lookup key
  - GuildRankingEntry: one guild's standing and defeated bosses
  - RankingResult: ordered entries plus an optional world rank

3. Rendered output (progress.go):
  - RenderableProgress: the aggregated view returned by /api/v1/progress
  - SectionProgress, BossEntry, Standing, Notice

4. API envelopes (api_responses.go):
  - APIResponse, APIError, Metadata
  - Admin results: IconImportResult, RegionCheck

All types are plain values with JSON tags; none of them perform I/O.
*/
package models
