// RaidProgress - World of Warcraft Raid Progress Aggregation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/raidprogress

package models

import "strings"

// Difficulty is a raid difficulty tier or one of the display modes
// "all" and "highest".
type Difficulty string

const (
	DifficultyNormal  Difficulty = "normal"
	DifficultyHeroic  Difficulty = "heroic"
	DifficultyMythic  Difficulty = "mythic"
	DifficultyAll     Difficulty = "all"
	DifficultyHighest Difficulty = "highest"
)

// Tiers lists the real difficulty tiers in ascending order of challenge.
var Tiers = []Difficulty{DifficultyNormal, DifficultyHeroic, DifficultyMythic}

// ParseDifficulty normalizes s and reports whether it names a tier or mode.
func ParseDifficulty(s string) (Difficulty, bool) {
	d := Difficulty(strings.ToLower(strings.TrimSpace(s)))
	return d, d.Valid()
}

// IsTier reports whether d is normal, heroic or mythic.
func (d Difficulty) IsTier() bool {
	return d == DifficultyNormal || d == DifficultyHeroic || d == DifficultyMythic
}

// Valid reports whether d is a tier or a display mode.
func (d Difficulty) Valid() bool {
	return d.IsTier() || d == DifficultyAll || d == DifficultyHighest
}

// Rank orders tiers: normal=1, heroic=2, mythic=3. Modes return 0.
func (d Difficulty) Rank() int {
	switch d {
	case DifficultyNormal:
		return 1
	case DifficultyHeroic:
		return 2
	case DifficultyMythic:
		return 3
	default:
		return 0
	}
}

// Label returns the display name, e.g. "Heroic".
func (d Difficulty) Label() string {
	if d == "" {
		return ""
	}
	return strings.ToUpper(string(d[:1])) + string(d[1:])
}

// RegionWorld is the ranking sentinel that spans every region.
const RegionWorld = "world"

// GameDataRegions are the regions served by the Blizzard Game Data API.
var GameDataRegions = []string{"us", "eu", "kr", "tw"}

// IsGameDataRegion reports whether r is one of GameDataRegions.
func IsGameDataRegion(r string) bool {
	for _, known := range GameDataRegions {
		if r == known {
			return true
		}
	}
	return false
}

// IsRankingRegion reports whether r is accepted by the ranking API.
func IsRankingRegion(r string) bool {
	return r == RegionWorld || IsGameDataRegion(r)
}

// Expansion describes a supported expansion and the achievement category
// holding its raid achievements.
type Expansion struct {
	ID                    int    `json:"id"`
	Name                  string `json:"name"`
	AchievementCategoryID int    `json:"achievement_category_id"`
}

// Expansions is ordered newest first.
var Expansions = []Expansion{
	{ID: 10, Name: "The War Within", AchievementCategoryID: 15526},
	{ID: 9, Name: "Dragonflight", AchievementCategoryID: 15468},
	{ID: 8, Name: "Shadowlands", AchievementCategoryID: 15438},
	{ID: 7, Name: "Battle for Azeroth", AchievementCategoryID: 15286},
}

// ExpansionByID looks up an expansion.
func ExpansionByID(id int) (Expansion, bool) {
	for _, e := range Expansions {
		if e.ID == id {
			return e, true
		}
	}
	return Expansion{}, false
}

// Encounter is one boss of a raid.
type Encounter struct {
	ID   int    `json:"id"`
	Slug string `json:"slug"`
	Name string `json:"name"`
}

// RaidCatalogEntry is a raid and its ordered boss roster.
type RaidCatalogEntry struct {
	ID         int         `json:"id"`
	Slug       string      `json:"slug"`
	Name       string      `json:"name"`
	ShortName  string      `json:"short_name,omitempty"`
	Encounters []Encounter `json:"encounters"`
}

// Summary drops the roster, keeping its size.
func (e RaidCatalogEntry) Summary() RaidSummary {
	return RaidSummary{Slug: e.Slug, Name: e.Name, TotalBosses: len(e.Encounters)}
}

// RaidCatalog is the static raid list of one expansion.
type RaidCatalog struct {
	ExpansionID int                `json:"expansion_id"`
	Raids       []RaidCatalogEntry `json:"raids"`
}

// FindRaid returns the raid with the given slug.
func (c *RaidCatalog) FindRaid(slug string) (*RaidCatalogEntry, bool) {
	if c == nil {
		return nil, false
	}
	for i := range c.Raids {
		if c.Raids[i].Slug == slug {
			return &c.Raids[i], true
		}
	}
	return nil, false
}
