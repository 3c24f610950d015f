// RaidProgress - World of Warcraft Raid Progress Aggregation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/raidprogress

package models

// RankingQuery identifies a single ranking lookup. Build it with
// raiderio.NewQuery so that equivalent inputs normalize to equal values.
type RankingQuery struct {
	Raid       string     `json:"raid"`
	Difficulty Difficulty `json:"difficulty"`
	Region     string     `json:"region"`
	Realm      string     `json:"realm"`
	Guilds     string     `json:"guilds"`
	Limit      int        `json:"limit"`
	Page       int        `json:"page"`
}

// GuildScoped reports whether the query filters on guild ids.
func (q RankingQuery) GuildScoped() bool {
	return q.Guilds != ""
}

// GuildRealm is the realm a guild belongs to.
type GuildRealm struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// GuildRegion is the region a guild belongs to.
type GuildRegion struct {
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	ShortName string `json:"short_name"`
}

// Guild is the identity shown in the rank panel.
type Guild struct {
	ID      int         `json:"id"`
	Name    string      `json:"name"`
	Faction string      `json:"faction,omitempty"`
	Realm   GuildRealm  `json:"realm"`
	Region  GuildRegion `json:"region"`
}

// EncounterPull is a guild's attempt history on one boss.
type EncounterPull struct {
	NumPulls    int     `json:"num_pulls"`
	BestPercent float64 `json:"best_percent"`
}

// GuildRankingEntry is one guild's standing in a ranking response.
type GuildRankingEntry struct {
	Rank               int                      `json:"rank"`
	RegionRank         int                      `json:"region_rank,omitempty"`
	Guild              Guild                    `json:"guild"`
	EncountersDefeated []string                 `json:"encounters_defeated"`
	EncountersPulled   map[string]EncounterPull `json:"encounters_pulled,omitempty"`
}

// Defeated reports whether the boss slug was killed.
func (e *GuildRankingEntry) Defeated(slug string) bool {
	for _, s := range e.EncountersDefeated {
		if s == slug {
			return true
		}
	}
	return false
}

// HasIdentity reports whether the entry names a guild.
func (e *GuildRankingEntry) HasIdentity() bool {
	return e != nil && e.Guild.Name != ""
}

// RankingResult is a successful ranking response. Entries are rank
// ascending and may be empty.
type RankingResult struct {
	Entries   []GuildRankingEntry `json:"entries"`
	WorldRank *int                `json:"world_rank,omitempty"`
}

// Empty reports whether the result has no entries.
func (r *RankingResult) Empty() bool {
	return r == nil || len(r.Entries) == 0
}

// First returns the leading entry or nil.
func (r *RankingResult) First() *GuildRankingEntry {
	if r.Empty() {
		return nil
	}
	return &r.Entries[0]
}
