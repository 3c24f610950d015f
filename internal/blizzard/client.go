// RaidProgress - World of Warcraft Raid Progress Aggregation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/raidprogress

package blizzard

import (
	"net/http"
	"strings"
	"time"
)

const (
	// DefaultOAuthURL is the Battle.net client-credentials endpoint.
	DefaultOAuthURL = "https://oauth.battle.net/token"

	// DefaultAPIBaseURL is the Game Data API root; {region} is substituted
	// per call.
	DefaultAPIBaseURL = "https://{region}.api.blizzard.com"

	// DefaultRegion is used when no region is configured.
	DefaultRegion = "eu"

	// DefaultLocale is requested on localized endpoints.
	DefaultLocale = "en_US"

	regionPlaceholder = "{region}"
	serviceName       = "Blizzard"
)

// Config configures the token manager and the Game Data client.
type Config struct {
	ClientID     string
	ClientSecret string

	// Region is the region used for catalog lookups (achievements,
	// journal, media) that are the same in every region.
	Region string

	OAuthURL          string
	APIBaseURL        string
	Timeout           time.Duration
	RequestsPerSecond float64
	UserAgent         string

	// HTTPClient overrides the transport (tests).
	HTTPClient *http.Client
}

// Configured reports whether client credentials are set.
func (c Config) Configured() bool {
	return c.ClientID != "" && c.ClientSecret != ""
}

func (c Config) withDefaults() Config {
	if c.OAuthURL == "" {
		c.OAuthURL = DefaultOAuthURL
	}
	if c.APIBaseURL == "" {
		c.APIBaseURL = DefaultAPIBaseURL
	}
	c.APIBaseURL = strings.TrimRight(c.APIBaseURL, "/")
	c.Region = strings.ToLower(strings.TrimSpace(c.Region))
	if c.Region == "" {
		c.Region = DefaultRegion
	}
	return c
}

func forRegion(template, region string) string {
	return strings.ReplaceAll(template, regionPlaceholder, region)
}
