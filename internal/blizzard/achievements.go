// RaidProgress - World of Warcraft Raid Progress Aggregation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/raidprogress

package blizzard

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/tomtom215/raidprogress/internal/cache"
	"github.com/tomtom215/raidprogress/internal/logging"
	"github.com/tomtom215/raidprogress/internal/models"
	"github.com/tomtom215/raidprogress/internal/upstream"
)

// mythicPrefix marks the per-boss achievements of a raid category.
const mythicPrefix = "Mythic:"

// bossNameOverrides maps catalog boss names to the names used in their
// achievements when the two differ.
var bossNameOverrides = map[string]string{
	"Dimensius": "Dimensius the All-Devouring",
}

// AchievementMap maps boss slug to achievement id.
type AchievementMap map[string]int

// BuildAchievementMap matches each encounter to the first "Mythic: <boss>"
// achievement whose boss name equals the (override-resolved) encounter
// name, ignoring case. Encounters without a match are left out.
func BuildAchievementMap(encounters []models.Encounter, achievements []Achievement) AchievementMap {
	type candidate struct {
		id   int
		boss string
	}
	candidates := make([]candidate, 0, len(achievements))
	for _, a := range achievements {
		if !strings.HasPrefix(a.Name, mythicPrefix) {
			continue
		}
		candidates = append(candidates, candidate{id: a.ID, boss: strings.TrimSpace(strings.TrimPrefix(a.Name, mythicPrefix))})
	}

	out := make(AchievementMap, len(encounters))
	for _, e := range encounters {
		name := e.Name
		if override, ok := bossNameOverrides[name]; ok {
			name = override
		}
		for _, c := range candidates {
			if strings.EqualFold(c.boss, name) {
				out[e.Slug] = c.id
				break
			}
		}
	}
	return out
}

// FindRaidAchievement picks the achievement representing a whole raid:
// the first whose name contains the raid name, else the first "Glory of
// the ... Raider" meta achievement.
func FindRaidAchievement(raidName string, achievements []Achievement) (int, bool) {
	needle := strings.ToLower(raidName)
	if needle != "" {
		for _, a := range achievements {
			if strings.Contains(strings.ToLower(a.Name), needle) {
				return a.ID, true
			}
		}
	}
	for _, a := range achievements {
		name := strings.ToLower(a.Name)
		if strings.Contains(name, "glory of") && strings.Contains(name, "raider") {
			return a.ID, true
		}
	}
	return 0, false
}

// CatalogFetcher supplies the raid catalog of an expansion.
type CatalogFetcher interface {
	FetchCatalog(ctx context.Context, expansionID int, ttl time.Duration) (*models.RaidCatalog, error)
}

// AchievementResolver resolves bosses and raids to achievement ids.
// Results are cached for 30 days; empty maps are not cached.
type AchievementResolver struct {
	data    *GameData
	catalog CatalogFetcher
	store   cache.Store
}

// NewAchievementResolver builds an AchievementResolver.
func NewAchievementResolver(data *GameData, catalog CatalogFetcher, store cache.Store) *AchievementResolver {
	return &AchievementResolver{data: data, catalog: catalog, store: store}
}

// Raid looks a raid up in the expansion catalog.
func (r *AchievementResolver) Raid(ctx context.Context, expansionID int, raidSlug string) (*models.RaidCatalogEntry, error) {
	catalog, err := r.catalog.FetchCatalog(ctx, expansionID, cache.StaticMinTTL)
	if err != nil {
		return nil, err
	}
	raid, ok := catalog.FindRaid(raidSlug)
	if !ok {
		return nil, upstream.NotFound("Raid %q not found", raidSlug)
	}
	return raid, nil
}

func (r *AchievementResolver) category(ctx context.Context, expansionID int) ([]Achievement, error) {
	exp, ok := models.ExpansionByID(expansionID)
	if !ok {
		return nil, upstream.InvalidInput("Unknown expansion %d", expansionID)
	}
	return r.data.AchievementCategory(ctx, r.data.Region(), exp.AchievementCategoryID)
}

// BossAchievements returns the achievement map of a raid.
func (r *AchievementResolver) BossAchievements(ctx context.Context, expansionID int, raidSlug string) (AchievementMap, error) {
	key := cache.Key(cache.NSAchievement, "bosses", strconv.Itoa(expansionID), raidSlug)
	if cached, ok := cache.GetJSON[AchievementMap](ctx, r.store, key); ok {
		return cached, nil
	}

	raid, err := r.Raid(ctx, expansionID, raidSlug)
	if err != nil {
		return nil, err
	}
	achievements, err := r.category(ctx, expansionID)
	if err != nil {
		return nil, err
	}

	m := BuildAchievementMap(raid.Encounters, achievements)
	if len(m) > 0 {
		if err := cache.SetJSON(ctx, r.store, key, m, cache.AchievementTTL); err != nil {
			logging.Ctx(ctx).Warn().Err(err).Str("raid", raidSlug).Msg("Failed to cache achievement map")
		}
	}
	logging.Ctx(ctx).Debug().Str("raid", raidSlug).Int("matched", len(m)).Int("bosses", len(raid.Encounters)).Msg("Built achievement map")
	return m, nil
}

// RaidAchievement returns the achievement id representing a raid.
func (r *AchievementResolver) RaidAchievement(ctx context.Context, expansionID int, raidSlug string) (int, error) {
	key := cache.Key(cache.NSAchievement, "raid", strconv.Itoa(expansionID), raidSlug)
	if cached, ok := cache.GetJSON[int](ctx, r.store, key); ok {
		return cached, nil
	}

	raid, err := r.Raid(ctx, expansionID, raidSlug)
	if err != nil {
		return 0, err
	}
	achievements, err := r.category(ctx, expansionID)
	if err != nil {
		return 0, err
	}

	id, ok := FindRaidAchievement(raid.Name, achievements)
	if !ok {
		return 0, upstream.NotFound("No achievement found for raid %q", raidSlug)
	}
	if err := cache.SetJSON(ctx, r.store, key, id, cache.AchievementTTL); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("raid", raidSlug).Msg("Failed to cache raid achievement")
	}
	return id, nil
}

// AchievementIcon returns the icon URL of an achievement.
func (r *AchievementResolver) AchievementIcon(ctx context.Context, achievementID int) (string, error) {
	return r.data.AchievementIcon(ctx, r.data.Region(), achievementID)
}

// Configured reports whether the Game Data API can be used at all.
func (r *AchievementResolver) Configured() bool {
	return r.data.Configured()
}
