// RaidProgress - World of Warcraft Raid Progress Aggregation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/raidprogress

package models

// BossStatus is the kill state of one boss in a section grid.
type BossStatus string

const (
	BossDefeated   BossStatus = "defeated"
	BossInProgress BossStatus = "in_progress"
	BossNotStarted BossStatus = "not_started"
)

// RenderableProgress is the aggregated answer for one raid. It contains no
// timestamps so repeated resolutions over a warm cache serialize identically.
type RenderableProgress struct {
	Raid      RaidInfo        `json:"raid"`
	Requested Difficulty      `json:"requested_difficulty"`
	Region    string          `json:"region"`
	Realm     string          `json:"realm,omitempty"`
	Scopes    []ScopeProgress `json:"scopes"`
}

// RaidInfo describes the raid being displayed.
type RaidInfo struct {
	Slug           string `json:"slug"`
	Name           string `json:"name"`
	TotalBosses    int    `json:"total_bosses"`
	IconID         string `json:"icon_id,omitempty"`
	HeaderImageURL string `json:"header_image_url,omitempty"`
}

// ScopeProgress is the result for one guild, or for the realm/region when
// no guild was requested (GuildID empty).
type ScopeProgress struct {
	GuildID  string            `json:"guild_id,omitempty"`
	Sections []SectionProgress `json:"sections"`
	Notices  []Notice          `json:"notices,omitempty"`
}

// SectionProgress is one displayed difficulty.
type SectionProgress struct {
	Difficulty   Difficulty  `json:"difficulty"`
	IdentityFrom Difficulty  `json:"identity_from,omitempty"`
	FallbackFrom Difficulty  `json:"fallback_from,omitempty"`
	Guild        *Guild      `json:"guild,omitempty"`
	Rank         int         `json:"rank,omitempty"`
	RegionRank   int         `json:"region_rank,omitempty"`
	WorldRank    *int        `json:"world_rank,omitempty"`
	Defeated     int         `json:"defeated"`
	Total        int         `json:"total"`
	Percent      float64     `json:"percent"`
	Bosses       []BossEntry `json:"bosses"`
	Standings    []Standing  `json:"standings,omitempty"`
}

// BossEntry is one cell of the boss grid.
type BossEntry struct {
	Slug        string     `json:"slug"`
	Name        string     `json:"name"`
	Status      BossStatus `json:"status"`
	NumPulls    int        `json:"num_pulls,omitempty"`
	BestPercent float64    `json:"best_percent,omitempty"`
	IconID      string     `json:"icon_id,omitempty"`
}

// Standing is one row of a realm-wide leaderboard.
type Standing struct {
	Rank     int   `json:"rank"`
	Guild    Guild `json:"guild"`
	Defeated int   `json:"defeated"`
}

// Notice is an inline message scoped to a tier or guild.
type Notice struct {
	Difficulty Difficulty `json:"difficulty,omitempty"`
	Kind       string     `json:"kind"`
	Message    string     `json:"message"`
}
