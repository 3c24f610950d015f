// RaidProgress - World of Warcraft Raid Progress Aggregation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/raidprogress

package raiderio

import (
	"sort"
	"strings"

	"github.com/tomtom215/raidprogress/internal/cache"
	"github.com/tomtom215/raidprogress/internal/models"
	"github.com/tomtom215/raidprogress/internal/validation"
)

const (
	MinLimit     = 1
	MaxLimit     = 100
	DefaultLimit = 50
)

// NewQuery normalizes raw inputs into a RankingQuery: realm and guild ids
// are sanitized, region and difficulty lowercased, limit clamped to
// [1,100] and page floored at 0.
func NewQuery(raid string, difficulty models.Difficulty, region, realm, guilds string, limit, page int) models.RankingQuery {
	if limit < MinLimit {
		limit = MinLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if page < 0 {
		page = 0
	}
	return models.RankingQuery{
		Raid:       strings.TrimSpace(raid),
		Difficulty: models.Difficulty(strings.ToLower(strings.TrimSpace(string(difficulty)))),
		Region:     strings.ToLower(strings.TrimSpace(region)),
		Realm:      validation.SanitizeRealm(realm),
		Guilds:     validation.SanitizeGuilds(guilds),
		Limit:      limit,
		Page:       page,
	}
}

// rankingKeySeed is the canonical form hashed into a ranking cache key.
// Guild ids are sorted so their input order does not matter.
type rankingKeySeed struct {
	Raid       string   `json:"raid"`
	Difficulty string   `json:"difficulty"`
	Region     string   `json:"region"`
	Realm      string   `json:"realm"`
	Guilds     []string `json:"guilds"`
	Limit      int      `json:"limit"`
	Page       int      `json:"page"`
}

// RankingKey is the cache key of a normalized query.
func RankingKey(q models.RankingQuery) string {
	guilds := validation.GuildIDs(q.Guilds)
	sort.Strings(guilds)
	return cache.Key(cache.NSRanking, cache.Fingerprint(rankingKeySeed{
		Raid:       q.Raid,
		Difficulty: string(q.Difficulty),
		Region:     q.Region,
		Realm:      q.Realm,
		Guilds:     guilds,
		Limit:      q.Limit,
		Page:       q.Page,
	}))
}
