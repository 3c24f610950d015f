// RaidProgress - World of Warcraft Raid Progress Aggregation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/raidprogress

// Package icons resolves raid and boss icons to stored media ids.
//
// Icons come from Blizzard achievement media and are downloaded once into
// a BlobStore under deterministic filenames, so a wiped cache can recover
// ids without downloading again. A missing icon is a normal outcome.
package icons
