// RaidProgress - World of Warcraft Raid Progress Aggregation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/raidprogress

package models

import (
	"time"
)

// APIResponse represents a standardized API response wrapper used by all HTTP endpoints.
//
// Status field values:
//   - "success": Request completed successfully, see Data field
//   - "error": Request failed, see Error field for details
//
// Example error response:
//
//	{
//	  "status": "error",
//	  "error": {
//	    "code": "VALIDATION_ERROR",
//	    "message": "Invalid difficulty",
//	    "details": {"field": "difficulty"}
//	  },
//	  "metadata": {"timestamp": "2026-01-12T12:00:00Z"}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata contains response timing.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
}

// APIError is the error body of an APIResponse.
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// IconImportResult is the per-boss outcome of a bulk icon import.
type IconImportResult struct {
	Boss    string `json:"boss"`
	Name    string `json:"name"`
	Status  string `json:"status"` // success, exists, unavailable, error
	IconID  string `json:"icon_id,omitempty"`
	Message string `json:"message,omitempty"`
}

// RegionCheck is the per-region outcome of the Blizzard API self-test.
type RegionCheck struct {
	Region     string `json:"region"`
	TokenOK    bool   `json:"token_ok"`
	RealmCount int    `json:"realm_count"`
	Error      string `json:"error,omitempty"`
}

// RaidSummary is a raid listed for an expansion.
type RaidSummary struct {
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	TotalBosses int    `json:"total_bosses"`
}

// Realm is one entry of a region's realm index.
type Realm struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}
