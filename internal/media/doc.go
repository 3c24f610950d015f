// RaidProgress - World of Warcraft Raid Progress Aggregation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/raidprogress

// Package media is a small disk-backed blob store for downloaded icons.
// Each blob is a file named by UUID plus a JSON sidecar holding its
// filename, title, source URL and provenance tags.
package media
