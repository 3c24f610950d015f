// RaidProgress - World of Warcraft Raid Progress Aggregation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/raidprogress

package raiderio

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/raidprogress/internal/cache"
	"github.com/tomtom215/raidprogress/internal/logging"
	"github.com/tomtom215/raidprogress/internal/models"
	"github.com/tomtom215/raidprogress/internal/upstream"
)

// FetchCatalog returns the raids and boss rosters of an expansion. The
// catalog is always cached for at least 24 hours, whatever ttl is passed.
func (c *Client) FetchCatalog(ctx context.Context, expansionID int, ttl time.Duration) (*models.RaidCatalog, error) {
	if expansionID <= 0 {
		return nil, upstream.InvalidInput("Invalid expansion id %d", expansionID)
	}
	if ttl < cache.StaticMinTTL {
		ttl = cache.StaticMinTTL
	}

	key := cache.Key(cache.NSStatic, "expansion", strconv.Itoa(expansionID))
	if cached, ok := cache.GetJSON[models.RaidCatalog](ctx, c.store, key); ok {
		return &cached, nil
	}

	params := url.Values{}
	if c.apiKey != "" {
		params.Set("access_key", c.apiKey)
	}
	params.Set("expansion_id", strconv.Itoa(expansionID))

	resp, err := c.caller.Get(ctx, "static-data", c.baseURL+"/raiding/static-data?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	if resp.Status != http.StatusOK {
		return nil, upstream.FromResponse(serviceName, resp.Status, resp.Body)
	}

	var payload staticDataResponse
	if err := json.Unmarshal(resp.Body, &payload); err != nil {
		return nil, upstream.Parse(serviceName, err)
	}
	if payload.Raids == nil {
		return nil, upstream.InvalidResponse(serviceName, "raids")
	}

	catalog := &models.RaidCatalog{ExpansionID: expansionID, Raids: make([]models.RaidCatalogEntry, 0, len(*payload.Raids))}
	for _, r := range *payload.Raids {
		catalog.Raids = append(catalog.Raids, r.toModel())
	}

	if err := cache.SetJSON(ctx, c.store, key, catalog, ttl); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Int("expansion", expansionID).Msg("Failed to cache raid catalog")
	}
	logging.Ctx(ctx).Debug().Int("expansion", expansionID).Int("raids", len(catalog.Raids)).Msg("Fetched raid catalog")
	return catalog, nil
}

// RefreshCatalog drops every cached catalog and refetches one expansion.
func (c *Client) RefreshCatalog(ctx context.Context, expansionID int) (*models.RaidCatalog, error) {
	if _, err := cache.InvalidateNamespace(ctx, c.store, cache.NSStatic); err != nil {
		return nil, err
	}
	return c.FetchCatalog(ctx, expansionID, cache.StaticMinTTL)
}

// ListRaids summarizes the raids of an expansion.
func (c *Client) ListRaids(ctx context.Context, expansionID int) ([]models.RaidSummary, error) {
	catalog, err := c.FetchCatalog(ctx, expansionID, cache.StaticMinTTL)
	if err != nil {
		return nil, err
	}
	out := make([]models.RaidSummary, 0, len(catalog.Raids))
	for _, r := range catalog.Raids {
		out = append(out, r.Summary())
	}
	return out, nil
}
