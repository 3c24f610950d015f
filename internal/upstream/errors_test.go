// RaidProgress - World of Warcraft Raid Progress Aggregation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/raidprogress

package upstream

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/tomtom215/raidprogress/internal/cache"
)

func TestDescribeStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"401 default", 401, ``, "API authentication failed. Please check your API key. Details: Invalid or expired API key"},
		{"401 string error", 401, `{"error":"bad key"}`, "API authentication failed. Please check your API key. Details: bad key"},
		{"403 object error", 403, `{"error":{"message":"scope"}}`, "Access forbidden. Please verify API key permissions. Details: scope"},
		{"404 message field", 404, `{"message":"no raid"}`, "Resource not found. Please check raid name and parameters. Details: no raid"},
		{"404 default", 404, `not json`, "Resource not found. Please check raid name and parameters. Details: The requested raid or guild was not found"},
		{"429 ignores detail", 429, `{"message":"slow"}`, "API rate limit exceeded. Please try again in a few minutes."},
		{"502 default", 502, ``, "API server error. The service may be temporarily unavailable. Details: Please try again later"},
		{"418 other", 418, ``, "API Error (HTTP 418): Unknown error occurred"},
	}

	for _, tt := range tests {
		if got := DescribeStatus(tt.status, []byte(tt.body)); got != tt.want {
			t.Errorf("%s: got %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestFromResponse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status int
		kind   Kind
		ttl    time.Duration
	}{
		{401, KindUnauthorized, 120 * time.Second},
		{403, KindForbidden, 120 * time.Second},
		{404, KindHTTPNotFound, 120 * time.Second},
		{429, KindRateLimited, 300 * time.Second},
		{500, KindServer, 120 * time.Second},
		{503, KindServer, 120 * time.Second},
		{400, KindHTTP, 120 * time.Second},
	}

	for _, tt := range tests {
		err := FromResponse("Raider.io", tt.status, nil)
		if err.Kind != tt.kind {
			t.Errorf("status %d: kind %s, want %s", tt.status, err.Kind, tt.kind)
		}
		if err.NegativeTTL() != tt.ttl {
			t.Errorf("status %d: ttl %v, want %v", tt.status, err.NegativeTTL(), tt.ttl)
		}
		if !strings.HasPrefix(err.Message, fmt.Sprintf("Raider.io API error (HTTP %d): ", tt.status)) {
			t.Errorf("status %d: unexpected message %q", tt.status, err.Message)
		}
	}
}

func TestNegativeTTLNotCachedKinds(t *testing.T) {
	t.Parallel()

	for _, e := range []*Error{
		Parse("Raider.io", errors.New("eof")),
		InvalidResponse("Raider.io", "raidRankings"),
		Config("missing key"),
		NotFound("Raid %q not found", "x"),
	} {
		if e.NegativeTTL() != 0 {
			t.Errorf("%s should not be cached", e.Kind)
		}
	}
	if Connection("Raider.io", errors.New("refused")).NegativeTTL() != 120*time.Second {
		t.Error("connection errors are cached for 120s")
	}
}

func TestNegativeTTLUsesCacheConstants(t *testing.T) {
	t.Parallel()

	if got := FromResponse("Raider.io", 429, nil).NegativeTTL(); got != cache.RateLimitErrorTTL {
		t.Errorf("rate limit ttl = %v, want cache.RateLimitErrorTTL (%v)", got, cache.RateLimitErrorTTL)
	}
	if got := FromResponse("Raider.io", 500, nil).NegativeTTL(); got != cache.ErrorTTL {
		t.Errorf("error ttl = %v, want cache.ErrorTTL (%v)", got, cache.ErrorTTL)
	}
}

func TestWrapAndAs(t *testing.T) {
	t.Parallel()

	base := NotFound("gone")
	wrapped := fmt.Errorf("outer: %w", base)

	if got, ok := As(wrapped); !ok || got != base {
		t.Error("As should find the wrapped *Error")
	}
	if Wrap(wrapped) != base {
		t.Error("Wrap should return the existing *Error")
	}
	if w := Wrap(errors.New("deadline")); w.Kind != KindConnection {
		t.Errorf("unknown errors map to connection, got %s", w.Kind)
	}
	if Wrap(nil) != nil {
		t.Error("Wrap(nil) must be nil")
	}
}

func TestResult(t *testing.T) {
	t.Parallel()

	ok := From(42, nil)
	if !ok.OK() || ok.Value != 42 {
		t.Errorf("unexpected ok result %+v", ok)
	}
	failed := From(0, Config("nope"))
	if failed.OK() || failed.Err.Kind != KindConfig {
		t.Errorf("unexpected failed result %+v", failed)
	}
}
