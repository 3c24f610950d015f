// RaidProgress - World of Warcraft Raid Progress Aggregation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/raidprogress

package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/tomtom215/raidprogress/internal/validation"
)

// Validate checks struct constraints and the cross-field rules that tags
// cannot express.
func (c *Config) Validate() error {
	if verr := validation.ValidateStruct(c); verr != nil {
		return verr
	}

	if err := c.validateBlizzard(); err != nil {
		return err
	}

	if err := c.validateCache(); err != nil {
		return err
	}

	return validateHTTPURL(c.RaiderIO.BaseURL, "RAIDERIO_BASE_URL")
}

func (c *Config) validateBlizzard() error {
	if !strings.Contains(c.Blizzard.APIBaseURL, "{region}") {
		return fmt.Errorf("BLIZZARD_API_BASE_URL must contain the {region} placeholder")
	}
	if err := validateHTTPURL(strings.ReplaceAll(c.Blizzard.APIBaseURL, "{region}", "eu"), "BLIZZARD_API_BASE_URL"); err != nil {
		return err
	}
	return validateHTTPURL(c.Blizzard.OAuthURL, "BLIZZARD_OAUTH_URL")
}

func (c *Config) validateCache() error {
	if c.Cache.Backend == "badger" && c.Cache.Path == "" {
		return fmt.Errorf("CACHE_PATH is required when CACHE_BACKEND=badger")
	}
	return nil
}

// validateHTTPURL checks that rawURL is an absolute http(s) URL without a
// query string.
func validateHTTPURL(rawURL, fieldName string) error {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%s failed to parse URL: %w", fieldName, err)
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("%s scheme must be http or https, got: %s", fieldName, parsedURL.Scheme)
	}

	if parsedURL.Host == "" {
		return fmt.Errorf("%s host is required", fieldName)
	}

	if parsedURL.RawQuery != "" {
		return fmt.Errorf("%s should not contain query parameters, remove: ?%s", fieldName, parsedURL.RawQuery)
	}

	return nil
}
