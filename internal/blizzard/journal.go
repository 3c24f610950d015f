// RaidProgress - World of Warcraft Raid Progress Aggregation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/raidprogress

package blizzard

import (
	"context"
	"strings"

	"github.com/tomtom215/raidprogress/internal/cache"
	"github.com/tomtom215/raidprogress/internal/logging"
	"github.com/tomtom215/raidprogress/internal/upstream"
)

// matchInstance returns the instance named raidName, preferring an exact
// case-insensitive match over the first substring match.
func matchInstance(raidName string, instances []JournalInstance) (JournalInstance, bool) {
	for _, in := range instances {
		if strings.EqualFold(in.Name, raidName) {
			return in, true
		}
	}
	needle := strings.ToLower(raidName)
	for _, in := range instances {
		if strings.Contains(strings.ToLower(in.Name), needle) {
			return in, true
		}
	}
	return JournalInstance{}, false
}

// RaidTileURL returns the journal tile image of a raid, used as a header
// image. Cached for 30 days.
func (g *GameData) RaidTileURL(ctx context.Context, raidName string) (string, error) {
	raidName = strings.TrimSpace(raidName)
	if raidName == "" {
		return "", upstream.InvalidInput("Raid name is required")
	}

	key := cache.Key(cache.NSJournal, g.region, strings.ToLower(raidName))
	if cached, ok := cache.GetJSON[string](ctx, g.store, key); ok {
		return cached, nil
	}

	instances, err := g.JournalInstances(ctx, g.region)
	if err != nil {
		return "", err
	}
	instance, ok := matchInstance(raidName, instances)
	if !ok {
		return "", upstream.NotFound("No journal instance for raid %q", raidName)
	}

	tile, err := g.JournalInstanceTile(ctx, g.region, instance.ID)
	if err != nil {
		return "", err
	}
	if err := cache.SetJSON(ctx, g.store, key, tile, cache.JournalTTL); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("raid", raidName).Msg("Failed to cache raid tile")
	}
	return tile, nil
}
