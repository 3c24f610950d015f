// RaidProgress - World of Warcraft Raid Progress Aggregation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/raidprogress

package config

import (
	"net"
	"strconv"
	"time"
)

// Config holds all application configuration loaded from defaults, an
// optional YAML file and environment variables.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in defaults for every setting
//  2. Config File: Optional YAML config file (config.yaml)
//  3. Environment Variables: Override any setting via environment variables
//
// Configuration Categories:
//
//  1. Upstreams:
//     - RaiderIO: ranking and static raid data (API key required for rankings)
//     - Blizzard: OAuth client credentials for icons, realms and journal art
//
//  2. Behaviour:
//     - Defaults: raid, difficulty, region and paging used when a request omits them
//
//  3. Infrastructure:
//     - Cache: memory or badger backed TTL store
//     - Media: where downloaded icons are kept and served from
//     - Server: HTTP listener, admin token, CORS and rate limiting
//
//  4. Observability:
//     - Logging: level, format and the in-memory debug log
type Config struct {
	RaiderIO RaiderIOConfig `koanf:"raiderio"`
	Blizzard BlizzardConfig `koanf:"blizzard"`
	Defaults DefaultsConfig `koanf:"defaults"`
	Cache    CacheConfig    `koanf:"cache"`
	Media    MediaConfig    `koanf:"media"`
	Server   ServerConfig   `koanf:"server"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// RaiderIOConfig configures the Raider.io client.
type RaiderIOConfig struct {
	APIKey            string        `koanf:"api_key"`
	BaseURL           string        `koanf:"base_url" validate:"required,url"`
	Timeout           time.Duration `koanf:"timeout" validate:"gt=0"`
	RequestsPerSecond float64       `koanf:"requests_per_second" validate:"gt=0"`
	UserAgent         string        `koanf:"user_agent"`
}

// BlizzardConfig configures the Battle.net OAuth and Game Data clients.
// Both credentials must be set, or neither.
type BlizzardConfig struct {
	ClientID     string `koanf:"client_id" validate:"required_with=ClientSecret"`
	ClientSecret string `koanf:"client_secret" validate:"required_with=ClientID"`
	Region       string `koanf:"region" validate:"gamedata_region"`
	OAuthURL     string `koanf:"oauth_url" validate:"required,url"`
	APIBaseURL   string `koanf:"api_base_url" validate:"required"`
	UseIcons     bool   `koanf:"use_icons"`
}

// Configured reports whether client credentials are set.
func (b BlizzardConfig) Configured() bool {
	return b.ClientID != "" && b.ClientSecret != ""
}

// DefaultsConfig holds the values used when a progress request omits them.
type DefaultsConfig struct {
	Raid         string `koanf:"raid"`
	ExpansionID  int    `koanf:"expansion_id" validate:"expansion"`
	Difficulty   string `koanf:"difficulty" validate:"difficulty"`
	Region       string `koanf:"region" validate:"gamedata_region"`
	Realm        string `koanf:"realm"`
	GuildIDs     string `koanf:"guild_ids" validate:"omitempty,guildids"`
	CacheMinutes int    `koanf:"cache_minutes" validate:"gte=0,lte=1440"`
	Limit        int    `koanf:"limit" validate:"gte=1,lte=100"`
	ShowIcons    bool   `koanf:"show_icons"`
}

// CacheTTL converts CacheMinutes to a duration. Zero disables caching.
func (d DefaultsConfig) CacheTTL() time.Duration {
	return time.Duration(d.CacheMinutes) * time.Minute
}

// CacheConfig selects the cache backend.
type CacheConfig struct {
	Backend         string        `koanf:"backend" validate:"oneof=memory badger"`
	Path            string        `koanf:"path"`
	CleanupInterval time.Duration `koanf:"cleanup_interval" validate:"gt=0"`
}

// MediaConfig configures the icon blob store.
type MediaConfig struct {
	Dir        string `koanf:"dir" validate:"required"`
	PublicPath string `koanf:"public_path" validate:"required,startswith=/"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Host              string        `koanf:"host"`
	Port              int           `koanf:"port" validate:"gte=1,lte=65535"`
	Timeout           time.Duration `koanf:"timeout" validate:"gt=0"`
	AdminToken        string        `koanf:"admin_token"`
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitRequests int           `koanf:"rate_limit_requests" validate:"gte=0"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window" validate:"gt=0"`
}

// Addr is the listen address.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// LoggingConfig configures zerolog.
type LoggingConfig struct {
	Level     string `koanf:"level" validate:"oneof=trace debug info warn error"`
	Format    string `koanf:"format" validate:"oneof=json console"`
	Caller    bool   `koanf:"caller"`
	DebugMode bool   `koanf:"debug_mode"`
}
