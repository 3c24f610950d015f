// RaidProgress - World of Warcraft Raid Progress Aggregation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/raidprogress

package raiderio

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/tomtom215/raidprogress/internal/cache"
	"github.com/tomtom215/raidprogress/internal/models"
	"github.com/tomtom215/raidprogress/internal/upstream"
)

const rankingsBody = `{"raidRankings":[{"rank":12,"regionRank":3,"guild":{"id":42,"name":"Method","faction":"horde","realm":{"name":"Twisting Nether","slug":"twisting-nether"},"region":{"name":"Europe","slug":"eu","short_name":"EU"}},"encountersDefeated":[{"slug":"ulgrax"},{"slug":"ulgrax"},{"slug":"bloodbound-horror"}],"encountersPulled":[{"slug":"sikran","numPulls":31,"bestPercent":12.5}]}]}`

type fakeRaiderIO struct {
	calls  atomic.Int32
	world  atomic.Int32
	status int
	body   string
}

func (f *fakeRaiderIO) handler(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		switch r.URL.Path {
		case "/raiding/raid-rankings":
			if q.Get("access_key") != "secret" {
				t.Errorf("missing access key")
			}
			if q.Get("region") == "world" {
				f.world.Add(1)
				_, _ = w.Write([]byte(`{"raidRankings":[{"rank":7,"guild":{"id":42,"name":"Method"},"encountersDefeated":[]}]}`))
				return
			}
			f.calls.Add(1)
		case "/raiding/static-data":
			f.calls.Add(1)
		default:
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if f.status != 0 {
			w.WriteHeader(f.status)
		}
		_, _ = w.Write([]byte(f.body))
	})
}

func newTestClient(t *testing.T, f *fakeRaiderIO, apiKey string) (*Client, cache.Store) {
	t.Helper()
	server := httptest.NewServer(f.handler(t))
	t.Cleanup(server.Close)
	store := cache.NewMemoryStore()
	return NewClient(Config{APIKey: apiKey, BaseURL: server.URL + "/", Timeout: 2 * time.Second}, store), store
}

func TestNewQuery_Normalizes(t *testing.T) {
	t.Parallel()

	q := NewQuery(" nerub-ar-palace ", "Mythic", "EU", "Tarren Mill", "12, x, 12,9", 500, -3)
	if q.Raid != "nerub-ar-palace" || q.Difficulty != models.DifficultyMythic || q.Region != "eu" {
		t.Errorf("unexpected normalization: %+v", q)
	}
	if q.Realm != "tarren-mill" {
		t.Errorf("Realm = %q", q.Realm)
	}
	if q.Guilds != "12,9" {
		t.Errorf("Guilds = %q", q.Guilds)
	}
	if q.Limit != MaxLimit || q.Page != 0 {
		t.Errorf("Limit/Page = %d/%d", q.Limit, q.Page)
	}
	if got := NewQuery("r", "normal", "us", "", "", 0, 0).Limit; got != MinLimit {
		t.Errorf("Limit floor = %d", got)
	}
}

func TestRankingKey_Deterministic(t *testing.T) {
	t.Parallel()

	a := NewQuery("raid", "heroic", "eu", "", "3,1,2", 50, 0)
	b := NewQuery("raid", "heroic", "eu", "", "2,3,1", 50, 0)
	if RankingKey(a) != RankingKey(b) {
		t.Error("guild order changed the key")
	}
	if !strings.HasPrefix(RankingKey(a), "ranking:") {
		t.Errorf("key %q not in ranking namespace", RankingKey(a))
	}

	c := NewQuery("raid", "mythic", "eu", "", "3,1,2", 50, 0)
	if RankingKey(a) == RankingKey(c) {
		t.Error("difficulty did not change the key")
	}
}

func TestFetchRankings_DecodesAndCaches(t *testing.T) {
	t.Parallel()

	f := &fakeRaiderIO{body: rankingsBody}
	client, _ := newTestClient(t, f, "secret")
	q := NewQuery("nerub-ar-palace", "mythic", "eu", "", "", 50, 0)

	for i := 0; i < 2; i++ {
		res, err := client.FetchRankings(context.Background(), q, time.Hour)
		if err != nil {
			t.Fatalf("FetchRankings: %v", err)
		}
		e := res.First()
		if e == nil || e.Guild.Name != "Method" || e.Rank != 12 || e.RegionRank != 3 {
			t.Fatalf("unexpected entry %+v", e)
		}
		if got := len(e.EncountersDefeated); got != 2 {
			t.Errorf("duplicate defeats not collapsed: %v", e.EncountersDefeated)
		}
		if e.EncountersPulled["sikran"].NumPulls != 31 {
			t.Errorf("pulls not decoded: %+v", e.EncountersPulled)
		}
		if res.WorldRank != nil {
			t.Error("world rank set for a non-guild query")
		}
	}
	if got := f.calls.Load(); got != 1 {
		t.Errorf("upstream calls = %d, want 1", got)
	}
}

func TestFetchRankings_ZeroTTLBypassesCache(t *testing.T) {
	t.Parallel()

	f := &fakeRaiderIO{body: rankingsBody}
	client, store := newTestClient(t, f, "secret")
	q := NewQuery("nerub-ar-palace", "mythic", "eu", "", "", 50, 0)

	for i := 0; i < 2; i++ {
		if _, err := client.FetchRankings(context.Background(), q, 0); err != nil {
			t.Fatalf("FetchRankings: %v", err)
		}
	}
	if got := f.calls.Load(); got != 2 {
		t.Errorf("upstream calls = %d, want 2", got)
	}
	if _, ok := store.Get(context.Background(), RankingKey(q)); ok {
		t.Error("ttl 0 wrote to the store")
	}
}

func TestFetchRankings_NegativeCache(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status int
		kind   upstream.Kind
	}{
		{"rate limited", http.StatusTooManyRequests, upstream.KindRateLimited},
		{"server error", http.StatusBadGateway, upstream.KindServer},
		{"unauthorized", http.StatusUnauthorized, upstream.KindUnauthorized},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := &fakeRaiderIO{status: tt.status, body: `{"message":"nope"}`}
			client, _ := newTestClient(t, f, "secret")
			q := NewQuery("raid", "heroic", "us", "", "", 50, 0)

			_, err := client.FetchRankings(context.Background(), q, time.Hour)
			first, ok := upstream.As(err)
			if !ok || first.Kind != tt.kind || first.Cached {
				t.Fatalf("first call: %v", err)
			}

			_, err = client.FetchRankings(context.Background(), q, time.Hour)
			second, ok := upstream.As(err)
			if !ok || second.Kind != tt.kind || !second.Cached {
				t.Fatalf("second call should replay cached error, got %v", err)
			}
			if second.Message != first.Message {
				t.Errorf("message changed: %q vs %q", second.Message, first.Message)
			}
			if got := f.calls.Load(); got != 1 {
				t.Errorf("upstream calls = %d, want 1", got)
			}
		})
	}
}

func TestFetchRankings_SortsByRank(t *testing.T) {
	t.Parallel()

	f := &fakeRaiderIO{body: `{"raidRankings":[{"rank":9,"guild":{"name":"C"}},{"rank":2,"guild":{"name":"A"}},{"rank":5,"guild":{"name":"B"}}]}`}
	client, _ := newTestClient(t, f, "secret")

	result, err := client.FetchRankings(context.Background(), NewQuery("raid", "mythic", "eu", "tarren-mill", "", 50, 0), time.Hour)
	if err != nil {
		t.Fatalf("FetchRankings: %v", err)
	}
	var names string
	for _, e := range result.Entries {
		names += e.Guild.Name
	}
	if names != "ABC" {
		t.Errorf("entry order = %q, want ABC", names)
	}
}

func TestFetchRankings_ParseErrorsNotCached(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
		kind upstream.Kind
	}{
		{"malformed", `{"raidRankings":`, upstream.KindParse},
		{"missing field", `{"other":[]}`, upstream.KindInvalidResponse},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := &fakeRaiderIO{body: tt.body}
			client, _ := newTestClient(t, f, "secret")
			q := NewQuery("raid", "normal", "eu", "", "", 50, 0)

			for i := 0; i < 2; i++ {
				_, err := client.FetchRankings(context.Background(), q, time.Hour)
				e, ok := upstream.As(err)
				if !ok || e.Kind != tt.kind || e.Cached {
					t.Fatalf("call %d: %v", i, err)
				}
			}
			if got := f.calls.Load(); got != 2 {
				t.Errorf("upstream calls = %d, want 2", got)
			}
		})
	}
}

func TestFetchRankings_GuildQueryAddsWorldRank(t *testing.T) {
	t.Parallel()

	f := &fakeRaiderIO{body: rankingsBody}
	client, _ := newTestClient(t, f, "secret")
	q := NewQuery("nerub-ar-palace", "mythic", "eu", "", "42", 50, 0)

	res, err := client.FetchRankings(context.Background(), q, time.Hour)
	if err != nil {
		t.Fatalf("FetchRankings: %v", err)
	}
	if res.WorldRank == nil || *res.WorldRank != 7 {
		t.Fatalf("WorldRank = %v, want 7", res.WorldRank)
	}
	if got := f.world.Load(); got != 1 {
		t.Errorf("world calls = %d, want 1", got)
	}
}

func TestFetchRankings_InputAndConfigErrors(t *testing.T) {
	t.Parallel()

	f := &fakeRaiderIO{body: rankingsBody}
	client, _ := newTestClient(t, f, "")

	tests := []struct {
		name string
		q    models.RankingQuery
		kind upstream.Kind
	}{
		{"no raid", NewQuery("", "mythic", "eu", "", "", 50, 0), upstream.KindInvalidInput},
		{"bad difficulty", NewQuery("raid", "highest", "eu", "", "", 50, 0), upstream.KindInvalidInput},
		{"bad region", NewQuery("raid", "mythic", "mars", "", "", 50, 0), upstream.KindInvalidInput},
		{"no api key", NewQuery("raid", "mythic", "eu", "", "", 50, 0), upstream.KindConfig},
	}
	for _, tt := range tests {
		_, err := client.FetchRankings(context.Background(), tt.q, time.Hour)
		if e, ok := upstream.As(err); !ok || e.Kind != tt.kind {
			t.Errorf("%s: got %v, want %s", tt.name, err, tt.kind)
		}
	}
	if got := f.calls.Load(); got != 0 {
		t.Errorf("upstream calls = %d, want 0", got)
	}
}

func TestFetchCatalog_MinimumTTLAndListRaids(t *testing.T) {
	t.Parallel()

	f := &fakeRaiderIO{body: `{"raids":[{"id":1,"slug":"nerub-ar-palace","name":"Nerub-ar Palace","short_name":"NP","encounters":[{"id":1,"slug":"ulgrax","name":"Ulgrax the Devourer"},{"id":2,"slug":"the-bloodbound-horror","name":"The Bloodbound Horror"}]}]}`}
	client, _ := newTestClient(t, f, "")

	// ttl 0 is raised to the 24h floor, so the second call is a hit.
	for i := 0; i < 2; i++ {
		catalog, err := client.FetchCatalog(context.Background(), 10, 0)
		if err != nil {
			t.Fatalf("FetchCatalog: %v", err)
		}
		raid, ok := catalog.FindRaid("nerub-ar-palace")
		if !ok || len(raid.Encounters) != 2 {
			t.Fatalf("unexpected catalog %+v", catalog)
		}
	}
	if got := f.calls.Load(); got != 1 {
		t.Errorf("upstream calls = %d, want 1", got)
	}

	raids, err := client.ListRaids(context.Background(), 10)
	if err != nil || len(raids) != 1 || raids[0].TotalBosses != 2 {
		t.Fatalf("ListRaids = %+v, %v", raids, err)
	}

	if _, err := client.RefreshCatalog(context.Background(), 10); err != nil {
		t.Fatalf("RefreshCatalog: %v", err)
	}
	if got := f.calls.Load(); got != 2 {
		t.Errorf("refresh did not refetch, calls = %d", got)
	}
}

func TestFetchCatalog_MissingRaids(t *testing.T) {
	t.Parallel()

	f := &fakeRaiderIO{body: `{}`}
	client, _ := newTestClient(t, f, "")

	_, err := client.FetchCatalog(context.Background(), 10, time.Hour)
	if e, ok := upstream.As(err); !ok || e.Kind != upstream.KindInvalidResponse {
		t.Fatalf("got %v", err)
	}
}
