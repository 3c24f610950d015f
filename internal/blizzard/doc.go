// RaidProgress - World of Warcraft Raid Progress Aggregation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/raidprogress

// Package blizzard talks to the Battle.net OAuth service and the Blizzard
// Game Data API.
//
// TokenManager exchanges client credentials for per-region access tokens
// and caches them until shortly before they expire. GameData uses those
// tokens for achievement, media, journal and realm lookups, and
// AchievementResolver maps raid bosses to their "Mythic:" achievements
// so icons can be found for them.
//
// Without credentials every lookup reports the API as unavailable rather
// than failing.
package blizzard
