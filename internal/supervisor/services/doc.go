// RaidProgress - World of Warcraft Raid Progress Aggregation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/raidprogress

// Package services adapts long-running components to suture.Service: the
// HTTP server and the cache maintenance loops.
package services
