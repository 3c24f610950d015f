// RaidProgress - World of Warcraft Raid Progress Aggregation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/raidprogress

package progress

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"

	"github.com/tomtom215/raidprogress/internal/cache"
	"github.com/tomtom215/raidprogress/internal/models"
	"github.com/tomtom215/raidprogress/internal/raiderio"
)

func TestResolve_IdempotentWithWarmCache(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		switch r.URL.Query().Get("difficulty") {
		case "normal":
			_, _ = w.Write([]byte(`{"raidRankings":[{"rank":4,"regionRank":2,"guild":{"id":42,"name":"Method","realm":{"name":"Tarren Mill","slug":"tarren-mill"},"region":{"name":"Europe","slug":"eu","short_name":"EU"}},"encountersDefeated":[{"slug":"b1"},{"slug":"b2"},{"slug":"b3"},{"slug":"b4"},{"slug":"b5"},{"slug":"b6"},{"slug":"b7"},{"slug":"b8"}],"encountersPulled":[]}]}`))
		case "heroic":
			_, _ = w.Write([]byte(`{"raidRankings":[{"rank":9,"guild":{"id":42,"name":"Method"},"encountersDefeated":[{"slug":"b1"},{"slug":"b2"},{"slug":"b3"}],"encountersPulled":[{"slug":"b4","numPulls":40,"bestPercent":1.5}]}]}`))
		case "mythic":
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":"Not Found"}`))
		}
	}))
	defer server.Close()

	store := cache.NewMemoryStore()
	client := raiderio.NewClient(raiderio.Config{APIKey: "secret", BaseURL: server.URL, Timeout: 2 * time.Second}, store)
	agg := NewAggregator(client, fakeCatalog{}, nil)
	req := request(models.DifficultyHighest, "42")

	first, err := agg.Resolve(context.Background(), req)
	if err != nil {
		t.Fatalf("first Resolve: %v", err)
	}
	warm := calls.Load()

	second, err := agg.Resolve(context.Background(), req)
	if err != nil {
		t.Fatalf("second Resolve: %v", err)
	}

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("resolution changed (-first +second):\n%s", diff)
	}
	a, _ := json.Marshal(first)
	b, _ := json.Marshal(second)
	if !bytes.Equal(a, b) {
		t.Error("serialized output differs")
	}
	if got := calls.Load(); got != warm {
		t.Errorf("warm resolution made %d upstream calls", got-warm)
	}

	if sec := first.Scopes[0].Sections[0]; sec.Difficulty != models.DifficultyHeroic || sec.Defeated != 3 {
		t.Errorf("section = %s %d", sec.Difficulty, sec.Defeated)
	}
}
