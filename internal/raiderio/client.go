// RaidProgress - World of Warcraft Raid Progress Aggregation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/raidprogress

package raiderio

import (
	"net/http"
	"strings"
	"time"

	"github.com/tomtom215/raidprogress/internal/cache"
	"github.com/tomtom215/raidprogress/internal/upstream"
)

const (
	// DefaultBaseURL is the public Raider.io API root.
	DefaultBaseURL = "https://raider.io/api/v1"

	serviceName = "Raider.io"
)

// Config configures the Raider.io client.
type Config struct {
	APIKey            string
	BaseURL           string
	Timeout           time.Duration
	RequestsPerSecond float64
	Burst             int
	UserAgent         string

	// HTTPClient overrides the transport (tests).
	HTTPClient *http.Client
}

// Client talks to the Raider.io raiding endpoints. Responses and failures
// are cached in the shared Store.
type Client struct {
	apiKey  string
	baseURL string
	caller  *upstream.Caller
	store   cache.Store
}

// NewClient builds a Client.
func NewClient(cfg Config, store cache.Store) *Client {
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}
	return &Client{
		apiKey:  cfg.APIKey,
		baseURL: base,
		store:   store,
		caller: upstream.NewCaller(upstream.CallerConfig{
			Name:              "raiderio",
			Service:           serviceName,
			Timeout:           cfg.Timeout,
			RequestsPerSecond: cfg.RequestsPerSecond,
			Burst:             cfg.Burst,
			UserAgent:         cfg.UserAgent,
			HTTPClient:        cfg.HTTPClient,
		}),
	}
}

// Configured reports whether an API key is set.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}
