// RaidProgress - World of Warcraft Raid Progress Aggregation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/raidprogress

package raiderio

import (
	"context"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/raidprogress/internal/cache"
	"github.com/tomtom215/raidprogress/internal/logging"
	"github.com/tomtom215/raidprogress/internal/metrics"
	"github.com/tomtom215/raidprogress/internal/models"
	"github.com/tomtom215/raidprogress/internal/upstream"
)

// FetchRankings returns the ranking for a normalized query.
//
// With ttl > 0 a cached success is returned verbatim, and a cached failure
// is replayed without contacting Raider.io. Failures are negative-cached
// for 120s (300s when rate limited); parse failures are not cached. With
// ttl == 0 the store is bypassed entirely.
//
// A non-empty guild-scoped result is enriched with the guild's world rank
// from a nested world-region query; failure of that query is ignored.
//
// Every returned error is an *upstream.Error.
func (c *Client) FetchRankings(ctx context.Context, q models.RankingQuery, ttl time.Duration) (*models.RankingResult, error) {
	if q.Raid == "" {
		return nil, upstream.InvalidInput("Raid slug is required")
	}
	if !q.Difficulty.IsTier() {
		return nil, upstream.InvalidInput("Invalid difficulty %q", q.Difficulty)
	}
	if !models.IsRankingRegion(q.Region) {
		return nil, upstream.InvalidInput("Invalid region %q", q.Region)
	}

	key := RankingKey(q)
	if ttl > 0 {
		if cached, ok := cache.GetJSON[models.RankingResult](ctx, c.store, key); ok {
			return &cached, nil
		}
	}

	if c.apiKey == "" {
		return nil, upstream.Config("Raider.io API key is not configured")
	}

	errKey := cache.ErrorKey(key)
	if ttl > 0 {
		if cachedErr, ok := cache.GetJSON[upstream.Error](ctx, c.store, errKey); ok {
			cachedErr.Cached = true
			metrics.NegativeCacheHits.WithLabelValues(string(cachedErr.Kind)).Inc()
			logging.Ctx(ctx).Debug().Str("raid", q.Raid).Str("difficulty", string(q.Difficulty)).Str("kind", string(cachedErr.Kind)).Msg("Serving cached ranking error")
			return nil, &cachedErr
		}
	}

	result, err := c.requestRankings(ctx, q)
	if err != nil {
		e := upstream.Wrap(err)
		if ttl > 0 {
			if negTTL := e.NegativeTTL(); negTTL > 0 {
				if cerr := cache.SetJSON(ctx, c.store, errKey, e, negTTL); cerr != nil {
					logging.Ctx(ctx).Warn().Err(cerr).Msg("Failed to cache ranking error")
				}
			}
		}
		logFailure(ctx, q, e)
		return nil, e
	}

	if !result.Empty() && q.GuildScoped() && q.Region != models.RegionWorld {
		result.WorldRank = c.worldRank(ctx, q, ttl)
	}

	if ttl > 0 {
		if err := cache.SetJSON(ctx, c.store, key, result, ttl); err != nil {
			logging.Ctx(ctx).Warn().Err(err).Msg("Failed to cache ranking result")
		}
	}
	return result, nil
}

// worldRank runs the dependent world-scoped query for a guild query.
func (c *Client) worldRank(ctx context.Context, q models.RankingQuery, ttl time.Duration) *int {
	wq := q
	wq.Region = models.RegionWorld
	wq.Realm = ""

	world, err := c.FetchRankings(ctx, wq, ttl)
	if err != nil {
		logging.Ctx(ctx).Debug().Err(err).Str("raid", q.Raid).Str("guilds", q.Guilds).Msg("World rank lookup failed")
		return nil
	}
	first := world.First()
	if first == nil {
		return nil
	}
	rank := first.Rank
	return &rank
}

func (c *Client) requestRankings(ctx context.Context, q models.RankingQuery) (*models.RankingResult, error) {
	params := url.Values{}
	params.Set("access_key", c.apiKey)
	params.Set("raid", q.Raid)
	params.Set("difficulty", string(q.Difficulty))
	params.Set("region", q.Region)
	params.Set("limit", strconv.Itoa(q.Limit))
	params.Set("page", strconv.Itoa(q.Page))
	if q.Realm != "" {
		params.Set("realm", q.Realm)
	}
	if q.Guilds != "" {
		params.Set("guilds", q.Guilds)
	}

	resp, err := c.caller.Get(ctx, "raid-rankings", c.baseURL+"/raiding/raid-rankings?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	if resp.Status != http.StatusOK {
		return nil, upstream.FromResponse(serviceName, resp.Status, resp.Body)
	}

	var payload rankingsResponse
	if err := json.Unmarshal(resp.Body, &payload); err != nil {
		return nil, upstream.Parse(serviceName, err)
	}
	if payload.RaidRankings == nil {
		return nil, upstream.InvalidResponse(serviceName, "raidRankings")
	}

	result := &models.RankingResult{Entries: make([]models.GuildRankingEntry, 0, len(*payload.RaidRankings))}
	for _, e := range *payload.RaidRankings {
		result.Entries = append(result.Entries, e.toModel())
	}
	sort.SliceStable(result.Entries, func(i, j int) bool {
		return result.Entries[i].Rank < result.Entries[j].Rank
	})
	return result, nil
}

func logFailure(ctx context.Context, q models.RankingQuery, e *upstream.Error) {
	event := logging.Ctx(ctx).Warn()
	if !e.IsRateLimit() && e.Kind != upstream.KindConnection {
		event = logging.Ctx(ctx).Debug()
	}
	event.Str("raid", q.Raid).
		Str("difficulty", string(q.Difficulty)).
		Str("region", q.Region).
		Str("kind", string(e.Kind)).
		Int("status", e.Status).
		Msg(e.Message)
}
