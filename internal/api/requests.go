// RaidProgress - World of Warcraft Raid Progress Aggregation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/raidprogress

package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/tomtom215/raidprogress/internal/config"
	"github.com/tomtom215/raidprogress/internal/models"
	"github.com/tomtom215/raidprogress/internal/progress"
)

// ProgressRequest holds the query parameters of GET /api/v1/progress.
// Missing values come from DefaultsConfig. Limit and page are clamped
// downstream rather than rejected, and malformed guild ids become
// per-guild notices.
type ProgressRequest struct {
	Raid         string `query:"raid" validate:"required,max=100"`
	Difficulty   string `query:"difficulty" validate:"difficulty"`
	Region       string `query:"region" validate:"ranking_region"`
	Realm        string `query:"realm" validate:"max=100"`
	Guilds       string `query:"guilds" validate:"max=500"`
	ExpansionID  int    `query:"expansion" validate:"expansion"`
	CacheMinutes int    `query:"cache" validate:"gte=0,lte=1440"`
	Limit        int    `query:"limit"`
	Page         int    `query:"page"`
	Icons        bool   `query:"icons"`
}

// parseProgressRequest reads r's query over the configured defaults.
func parseProgressRequest(r *http.Request, defaults config.DefaultsConfig) ProgressRequest {
	q := r.URL.Query()
	// Invalid values are kept and rejected by the difficulty tag.
	difficulty, _ := models.ParseDifficulty(stringParam(q.Get("difficulty"), defaults.Difficulty))
	return ProgressRequest{
		Raid:         stringParam(q.Get("raid"), defaults.Raid),
		Difficulty:   string(difficulty),
		Region:       strings.ToLower(stringParam(q.Get("region"), defaults.Region)),
		Realm:        stringParam(q.Get("realm"), defaults.Realm),
		Guilds:       stringParam(q.Get("guilds"), defaults.GuildIDs),
		ExpansionID:  intParam(q.Get("expansion"), defaults.ExpansionID),
		CacheMinutes: intParam(q.Get("cache"), defaults.CacheMinutes),
		Limit:        intParam(q.Get("limit"), defaults.Limit),
		Page:         intParam(q.Get("page"), 0),
		Icons:        boolParam(q.Get("icons"), defaults.ShowIcons),
	}
}

// toProgress converts to the aggregator's request.
func (p ProgressRequest) toProgress() progress.Request {
	return progress.Request{
		Raid:        p.Raid,
		Difficulty:  models.Difficulty(p.Difficulty),
		Region:      p.Region,
		Realm:       p.Realm,
		Guilds:      p.Guilds,
		ExpansionID: p.ExpansionID,
		CacheTTL:    time.Duration(p.CacheMinutes) * time.Minute,
		Limit:       p.Limit,
		Page:        p.Page,
		Icons:       p.Icons,
	}
}

// ExpansionRequest is the ?expansion= parameter shared by catalog routes.
type ExpansionRequest struct {
	ExpansionID int `query:"expansion" validate:"expansion"`
}

// RealmsRequest is the query of GET /api/v1/realms.
type RealmsRequest struct {
	Region string `query:"region" validate:"gamedata_region"`
}

// IconImportRequest is the query of POST /api/v1/admin/icons/import.
type IconImportRequest struct {
	Raid        string `query:"raid" validate:"required,max=100"`
	ExpansionID int    `query:"expansion" validate:"expansion"`
}

func stringParam(value, defaultValue string) string {
	if value = strings.TrimSpace(value); value != "" {
		return value
	}
	return defaultValue
}

// intParam falls back to defaultValue for missing or malformed input.
func intParam(value string, defaultValue int) int {
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return defaultValue
	}
	return n
}

func boolParam(value string, defaultValue bool) bool {
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return b
}
