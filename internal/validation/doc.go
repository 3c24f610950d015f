// RaidProgress - World of Warcraft Raid Progress Aggregation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/raidprogress

/*
Package validation validates request and configuration structs with
go-playground/validator and normalizes free-form user input.

Custom tags cover the raid domain (difficulty, tier, ranking_region,
gamedata_region, expansion, guildids). SanitizeRealm and SanitizeGuilds
turn user-entered realm names and guild id lists into the canonical form
sent upstream and used in cache keys.
*/
package validation
