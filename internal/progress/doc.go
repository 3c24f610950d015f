// RaidProgress - World of Warcraft Raid Progress Aggregation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/raidprogress

/*
Package progress resolves a guild's or realm's progress through a raid.

A request names a raid, a difficulty and a scope (realm, region or a list
of guild ids). Rankings for the difficulty tiers are fetched, reconciled
and laid over the raid's boss roster to produce a models.RenderableProgress.

Difficulty modes:

  - normal, heroic, mythic: the requested tier is tried first, then each
    lower tier in FallbackOrder until one has entries. Grid and guild
    identity both come from the tier that was used.
  - all: one section per tier, each grid from its own tier only. The
    guild identity panel falls back to lower tiers.
  - highest: one section for the tier chosen by SelectHighest. The grid
    comes from that tier even when it is empty.

Failures never abort a resolution. Each failing tier or guild becomes a
Notice on its scope; rate-limit failures are logged and dropped.
*/
package progress
