// RaidProgress - World of Warcraft Raid Progress Aggregation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/raidprogress

// Package main provides the RaidProgress HTTP server
//
// @title RaidProgress API
// @version 1.0
// @description Raid progress for World of Warcraft guilds and realms, aggregated from Raider.io
// @description rankings and decorated with boss icons from the Blizzard Game Data API.
// @contact.name GitHub Repository
// @contact.url https://github.com/tomtom215/raidprogress/issues
//
// @license.name AGPL-3.0-or-later
// @license.url https://www.gnu.org/licenses/agpl-3.0.html
//
// @host localhost:3857
// @BasePath /api/v1
// @schemes http https
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description "Bearer <ADMIN_TOKEN>". Admin routes are not mounted when ADMIN_TOKEN is empty.
//
// @tag.name Core
// @tag.description Liveness and readiness probes
//
// @tag.name Progress
// @tag.description Aggregated raid progress across difficulty tiers
//
// @tag.name Catalog
// @tag.description Expansions, raids and realms
//
// @tag.name Media
// @tag.description Stored boss and raid icons
//
// @tag.name Admin
// @tag.description Cache, raid list, icon and debug log maintenance
package main
