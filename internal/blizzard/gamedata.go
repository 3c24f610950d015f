// RaidProgress - World of Warcraft Raid Progress Aggregation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/raidprogress

package blizzard

import (
	"context"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/raidprogress/internal/cache"
	"github.com/tomtom215/raidprogress/internal/logging"
	"github.com/tomtom215/raidprogress/internal/models"
	"github.com/tomtom215/raidprogress/internal/upstream"
)

// Achievement is an entry of an achievement category.
type Achievement struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// JournalInstance is an entry of the journal instance index.
type JournalInstance struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type mediaAsset struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// GameData is the client for the Blizzard Game Data API.
type GameData struct {
	baseURL string
	region  string
	locale  string
	tokens  *TokenManager
	caller  *upstream.Caller
	store   cache.Store
}

// NewGameData builds a GameData client sharing tokens with the manager.
func NewGameData(cfg Config, tokens *TokenManager, store cache.Store) *GameData {
	cfg = cfg.withDefaults()
	return &GameData{
		baseURL: cfg.APIBaseURL,
		region:  cfg.Region,
		locale:  DefaultLocale,
		tokens:  tokens,
		store:   store,
		caller: upstream.NewCaller(upstream.CallerConfig{
			Name:              "blizzard",
			Service:           serviceName,
			Timeout:           cfg.Timeout,
			RequestsPerSecond: cfg.RequestsPerSecond,
			UserAgent:         cfg.UserAgent,
			HTTPClient:        cfg.HTTPClient,
		}),
	}
}

// Configured reports whether client credentials are set.
func (g *GameData) Configured() bool {
	return g.tokens.Configured()
}

// Region is the region used for region-independent catalog lookups.
func (g *GameData) Region() string {
	return g.region
}

// get fetches path from the regional API with a bearer token and decodes
// the body into out.
func (g *GameData) get(ctx context.Context, region, endpoint, path string, params url.Values, out interface{}) error {
	token, ok := g.tokens.Token(ctx, region)
	if !ok {
		return upstream.Config("Blizzard API access token is unavailable")
	}

	header := http.Header{}
	header.Set("Authorization", "Bearer "+token)

	resp, err := g.caller.Get(ctx, endpoint, forRegion(g.baseURL, region)+path+"?"+params.Encode(), header)
	if err != nil {
		return err
	}
	if resp.Status == http.StatusUnauthorized {
		g.tokens.Invalidate(ctx, region)
	}
	if resp.Status != http.StatusOK {
		return upstream.FromResponse(serviceName, resp.Status, resp.Body)
	}
	if err := json.Unmarshal(resp.Body, out); err != nil {
		return upstream.Parse(serviceName, err)
	}
	return nil
}

func staticParams(region, locale string) url.Values {
	params := url.Values{}
	params.Set("namespace", "static-"+region)
	if locale != "" {
		params.Set("locale", locale)
	}
	return params
}

// AchievementCategory lists the achievements of a category.
func (g *GameData) AchievementCategory(ctx context.Context, region string, categoryID int) ([]Achievement, error) {
	var payload struct {
		Achievements *[]Achievement `json:"achievements"`
	}
	path := "/data/wow/achievement-category/" + strconv.Itoa(categoryID)
	if err := g.get(ctx, region, "achievement-category", path, staticParams(region, g.locale), &payload); err != nil {
		return nil, err
	}
	if payload.Achievements == nil {
		return nil, upstream.InvalidResponse(serviceName, "achievements")
	}
	return *payload.Achievements, nil
}

// AchievementIcon returns the icon URL of an achievement.
func (g *GameData) AchievementIcon(ctx context.Context, region string, achievementID int) (string, error) {
	path := "/data/wow/media/achievement/" + strconv.Itoa(achievementID)
	return g.mediaAsset(ctx, region, "achievement-media", path, "icon")
}

// JournalInstances lists every journal instance.
func (g *GameData) JournalInstances(ctx context.Context, region string) ([]JournalInstance, error) {
	var payload struct {
		Instances *[]JournalInstance `json:"instances"`
	}
	if err := g.get(ctx, region, "journal-instance-index", "/data/wow/journal-instance/index", staticParams(region, g.locale), &payload); err != nil {
		return nil, err
	}
	if payload.Instances == nil {
		return nil, upstream.InvalidResponse(serviceName, "instances")
	}
	return *payload.Instances, nil
}

// JournalInstanceTile returns the tile image URL of a journal instance.
func (g *GameData) JournalInstanceTile(ctx context.Context, region string, instanceID int) (string, error) {
	path := "/data/wow/media/journal-instance/" + strconv.Itoa(instanceID)
	return g.mediaAsset(ctx, region, "journal-instance-media", path, "tile")
}

func (g *GameData) mediaAsset(ctx context.Context, region, endpoint, path, key string) (string, error) {
	var payload struct {
		Assets *[]mediaAsset `json:"assets"`
	}
	if err := g.get(ctx, region, endpoint, path, staticParams(region, ""), &payload); err != nil {
		return "", err
	}
	if payload.Assets == nil {
		return "", upstream.InvalidResponse(serviceName, "assets")
	}
	for _, a := range *payload.Assets {
		if a.Key == key && a.Value != "" {
			return a.Value, nil
		}
	}
	return "", upstream.NotFound("No %s asset at %s", key, path)
}

// Realms lists the realms of a region sorted by name, cached for a day.
func (g *GameData) Realms(ctx context.Context, region string) ([]models.Realm, error) {
	region = strings.ToLower(strings.TrimSpace(region))
	if !models.IsGameDataRegion(region) {
		return nil, upstream.InvalidInput("Invalid region %q", region)
	}

	key := cache.Key(cache.NSRealm, region)
	if cached, ok := cache.GetJSON[[]models.Realm](ctx, g.store, key); ok {
		return cached, nil
	}

	params := url.Values{}
	params.Set("namespace", "dynamic-"+region)
	params.Set("locale", g.locale)

	var payload struct {
		Realms *[]models.Realm `json:"realms"`
	}
	if err := g.get(ctx, region, "realm-index", "/data/wow/realm/index", params, &payload); err != nil {
		return nil, err
	}
	if payload.Realms == nil {
		return nil, upstream.InvalidResponse(serviceName, "realms")
	}

	realms := *payload.Realms
	sort.SliceStable(realms, func(i, j int) bool {
		return strings.ToLower(realms[i].Name) < strings.ToLower(realms[j].Name)
	})

	if err := cache.SetJSON(ctx, g.store, key, realms, cache.RealmTTL); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("region", region).Msg("Failed to cache realm list")
	}
	return realms, nil
}

// CheckRegions reports, for every Game Data region, whether a token could
// be obtained and how many realms the API returned.
func (g *GameData) CheckRegions(ctx context.Context) []models.RegionCheck {
	out := make([]models.RegionCheck, 0, len(models.GameDataRegions))
	for _, region := range models.GameDataRegions {
		check := models.RegionCheck{Region: region}
		if _, ok := g.tokens.Token(ctx, region); !ok {
			check.Error = "Failed to obtain access token"
			out = append(out, check)
			continue
		}
		check.TokenOK = true

		realms, err := g.Realms(ctx, region)
		if err != nil {
			check.Error = err.Error()
		} else {
			check.RealmCount = len(realms)
		}
		out = append(out, check)
	}
	return out
}
