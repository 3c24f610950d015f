// RaidProgress - World of Warcraft Raid Progress Aggregation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/raidprogress

package progress

import "github.com/tomtom215/raidprogress/internal/models"

// FallbackOrder lists, per tier, the tiers to try in order when looking
// for data: the tier itself, then each lower tier.
var FallbackOrder = map[models.Difficulty][]models.Difficulty{
	models.DifficultyMythic: {models.DifficultyMythic, models.DifficultyHeroic, models.DifficultyNormal},
	models.DifficultyHeroic: {models.DifficultyHeroic, models.DifficultyNormal},
	models.DifficultyNormal: {models.DifficultyNormal},
}

// displayOrder is the section order of the "all" view, hardest first.
var displayOrder = []models.Difficulty{models.DifficultyMythic, models.DifficultyHeroic, models.DifficultyNormal}

// SelectHighest picks the tier shown in "highest" mode from the number of
// bosses defeated per tier out of total.
//
// A tier with partial progress (0 < defeated < total) wins outright,
// checked mythic first. Otherwise the target starts at normal, moves to
// heroic once normal has a kill, and to mythic once heroic is cleared.
func SelectHighest(defeated map[models.Difficulty]int, total int) models.Difficulty {
	if total > 0 {
		for _, tier := range displayOrder {
			if n := defeated[tier]; n > 0 && n < total {
				return tier
			}
		}
	}

	target := models.DifficultyNormal
	if defeated[models.DifficultyNormal] >= 1 {
		target = models.DifficultyHeroic
	}
	if total > 0 && defeated[models.DifficultyHeroic] >= total {
		target = models.DifficultyMythic
	}
	return target
}
