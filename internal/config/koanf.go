// RaidProgress - World of Warcraft Raid Progress Aggregation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/raidprogress

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/raidprogress/config.yaml",
	"/etc/raidprogress/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config struct with all default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		RaiderIO: RaiderIOConfig{
			APIKey:            "",
			BaseURL:           "https://raider.io/api/v1",
			Timeout:           8 * time.Second,
			RequestsPerSecond: 5,
			UserAgent:         "RaidProgress/1.0",
		},
		Blizzard: BlizzardConfig{
			ClientID:     "",
			ClientSecret: "",
			Region:       "eu",
			OAuthURL:     "https://oauth.battle.net/token",
			APIBaseURL:   "https://{region}.api.blizzard.com",
			UseIcons:     true,
		},
		Defaults: DefaultsConfig{
			Raid:         "",
			ExpansionID:  10,
			Difficulty:   "highest",
			Region:       "eu",
			Realm:        "",
			GuildIDs:     "",
			CacheMinutes: 60,
			Limit:        50,
			ShowIcons:    true,
		},
		Cache: CacheConfig{
			Backend:         "memory",
			Path:            "/data/cache",
			CleanupInterval: 5 * time.Minute,
		},
		Media: MediaConfig{
			Dir:        "/data/media",
			PublicPath: "/media",
		},
		Server: ServerConfig{
			Host:              "0.0.0.0",
			Port:              3857,
			Timeout:           30 * time.Second,
			AdminToken:        "",
			CORSOrigins:       []string{"*"},
			RateLimitRequests: 120,
			RateLimitWindow:   time.Minute,
		},
		Logging: LoggingConfig{
			Level:     "info",
			Format:    "json",
			Caller:    false,
			DebugMode: false,
		},
	}
}

// Load reads configuration from defaults, an optional config file and
// environment variables, in that order of precedence, then validates it.
func Load() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Load environment variables (highest priority)
	// RAIDERIO_API_KEY -> raiderio.api_key
	// CACHE_MINUTES    -> defaults.cache_minutes
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	// Post-process slice fields from comma-separated strings
	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths should be parsed as comma-separated slices
var sliceConfigPaths = []string{
	"server.cors_origins",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
// Env vars come in as strings, but the config expects slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envMappings maps environment variable names (lowercased) to config paths.
var envMappings = map[string]string{
	"raiderio_api_key":    "raiderio.api_key",
	"raiderio_base_url":   "raiderio.base_url",
	"raiderio_timeout":    "raiderio.timeout",
	"raiderio_rps":        "raiderio.requests_per_second",
	"raiderio_user_agent": "raiderio.user_agent",

	"blizzard_client_id":     "blizzard.client_id",
	"blizzard_client_secret": "blizzard.client_secret",
	"blizzard_region":        "blizzard.region",
	"blizzard_oauth_url":     "blizzard.oauth_url",
	"blizzard_api_base_url":  "blizzard.api_base_url",
	"blizzard_use_icons":     "blizzard.use_icons",

	"default_raid":       "defaults.raid",
	"default_expansion":  "defaults.expansion_id",
	"default_difficulty": "defaults.difficulty",
	"default_region":     "defaults.region",
	"default_realm":      "defaults.realm",
	"default_guild_ids":  "defaults.guild_ids",
	"cache_minutes":      "defaults.cache_minutes",
	"results_limit":      "defaults.limit",
	"show_icons":         "defaults.show_icons",

	"cache_backend":          "cache.backend",
	"cache_path":             "cache.path",
	"cache_cleanup_interval": "cache.cleanup_interval",

	"media_dir":         "media.dir",
	"media_public_path": "media.public_path",

	"http_host":           "server.host",
	"http_port":           "server.port",
	"http_timeout":        "server.timeout",
	"admin_token":         "server.admin_token",
	"cors_origins":        "server.cors_origins",
	"rate_limit_requests": "server.rate_limit_requests",
	"rate_limit_window":   "server.rate_limit_window",

	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
	"debug_mode": "logging.debug_mode",
}

// envTransformFunc transforms environment variable names to koanf config paths.
//
// Examples:
//   - RAIDERIO_API_KEY -> raiderio.api_key
//   - BLIZZARD_CLIENT_ID -> blizzard.client_id
//   - CACHE_MINUTES -> defaults.cache_minutes
//   - HTTP_PORT -> server.port
func envTransformFunc(key string) string {
	// Unmapped keys return "" and are skipped, so unrelated environment
	// variables never leak into the config.
	return envMappings[strings.ToLower(key)]
}
