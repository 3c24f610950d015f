// RaidProgress - World of Warcraft Raid Progress Aggregation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/raidprogress

package cache

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"
)

// storeFactories runs each contract test against every backend.
func storeFactories(t *testing.T) map[string]func() Store {
	t.Helper()
	return map[string]func() Store{
		"memory": func() Store { return NewMemoryStore() },
		"badger": func() Store {
			s, err := OpenBadger("", true)
			if err != nil {
				t.Fatalf("open badger: %v", err)
			}
			t.Cleanup(func() { _ = s.Close() })
			return s
		},
	}
}

func TestStore_GetSet(t *testing.T) {
	for name, factory := range storeFactories(t) {
		factory := factory
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s := factory()

			if _, ok := s.Get(ctx, "ranking:missing"); ok {
				t.Fatal("expected miss on empty store")
			}
			if err := s.Set(ctx, "ranking:a", []byte("payload"), time.Minute); err != nil {
				t.Fatalf("Set: %v", err)
			}
			got, ok := s.Get(ctx, "ranking:a")
			if !ok || string(got) != "payload" {
				t.Fatalf("Get = %q, %v", got, ok)
			}
		})
	}
}

func TestStore_ZeroTTLDoesNotCache(t *testing.T) {
	for name, factory := range storeFactories(t) {
		factory := factory
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s := factory()

			if err := s.Set(ctx, "ranking:zero", []byte("x"), 0); err != nil {
				t.Fatalf("Set: %v", err)
			}
			if _, ok := s.Get(ctx, "ranking:zero"); ok {
				t.Error("ttl=0 must not store the value")
			}
		})
	}
}

func TestStore_DeleteMatching(t *testing.T) {
	for name, factory := range storeFactories(t) {
		factory := factory
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s := factory()

			keys := []string{
				Key(NSRanking, "abc"),
				ErrorKey(Key(NSRanking, "abc")),
				Key(NSStatic, "expansion", "10"),
				Key(NSIcon, "boss", "raid", "boss"),
				Key(NSIcon, "raid", "raid"),
			}
			for _, k := range keys {
				if err := s.Set(ctx, k, []byte("1"), time.Hour); err != nil {
					t.Fatal(err)
				}
			}

			n, err := InvalidateNamespace(ctx, s, NSRanking)
			if err != nil {
				t.Fatal(err)
			}
			if n != 2 {
				t.Errorf("removed %d ranking keys, want 2", n)
			}
			if _, ok := s.Get(ctx, Key(NSStatic, "expansion", "10")); !ok {
				t.Error("static key should survive ranking invalidation")
			}

			n, err = s.DeleteMatching(ctx, "icon:boss:*")
			if err != nil {
				t.Fatal(err)
			}
			if n != 1 {
				t.Errorf("removed %d boss icon keys, want 1", n)
			}

			n, err = s.DeleteMatching(ctx, "*")
			if err != nil {
				t.Fatal(err)
			}
			if n != 2 {
				t.Errorf("removed %d remaining keys, want 2", n)
			}
		})
	}
}

func TestStore_DeleteMatchingRejectsBadPattern(t *testing.T) {
	t.Parallel()

	if _, err := NewMemoryStore().DeleteMatching(context.Background(), "icon:[boss"); err == nil {
		t.Error("expected error for unterminated character class")
	}
}

func TestMemoryStore_Expiry(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	s := NewMemoryStore()
	s.now = func() time.Time { return now }

	_ = s.Set(ctx, "token:eu", []byte("t"), 30*time.Second)
	_ = s.Set(ctx, "token:us", []byte("t"), time.Hour)

	now = now.Add(31 * time.Second)
	if _, ok := s.Get(ctx, "token:eu"); ok {
		t.Error("expected expired entry to miss")
	}
	if removed := s.Cleanup(); removed != 0 {
		t.Errorf("Cleanup removed %d, want 0 (eu already evicted lazily)", removed)
	}

	now = now.Add(2 * time.Hour)
	if removed := s.Cleanup(); removed != 1 {
		t.Errorf("Cleanup removed %d, want 1", removed)
	}

	stats := s.GetStats()
	if stats.TotalKeys != 0 || stats.Evictions != 2 {
		t.Errorf("unexpected stats %+v", stats)
	}
}

func TestMemoryStore_HitRate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewMemoryStore()
	_ = s.Set(ctx, "k", []byte("v"), time.Minute)
	s.Get(ctx, "k")
	s.Get(ctx, "k")
	s.Get(ctx, "k")
	s.Get(ctx, "missing")

	if got := s.HitRate(); got != 75.0 {
		t.Errorf("HitRate = %v, want 75", got)
	}
}

func TestMemoryStore_ConcurrentWriters(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewMemoryStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = s.Set(ctx, "ranking:shared", []byte(fmt.Sprintf("v%d", i)), time.Minute)
			s.Get(ctx, "ranking:shared")
		}(i)
	}
	wg.Wait()

	if _, ok := s.Get(ctx, "ranking:shared"); !ok {
		t.Error("expected a value after concurrent writes")
	}
}

func TestKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		ns    Namespace
		parts []string
		want  string
	}{
		{NSToken, []string{"eu"}, "token:eu"},
		{NSIcon, []string{"boss", "nerub-ar-palace", "ulgrax"}, "icon:boss:nerub-ar-palace:ulgrax"},
		{NSIcon, []string{"boss", "a/b", "c:d*"}, "icon:boss:a_b:c_d_"},
		{NSStatic, nil, "static"},
	}
	for _, tt := range tests {
		if got := Key(tt.ns, tt.parts...); got != tt.want {
			t.Errorf("Key(%s, %v) = %q, want %q", tt.ns, tt.parts, got, tt.want)
		}
	}
}

func TestFingerprintDeterministic(t *testing.T) {
	t.Parallel()

	type q struct {
		Raid   string
		Guilds []string
	}
	a := Fingerprint(q{Raid: "x", Guilds: []string{"1", "2"}})
	b := Fingerprint(q{Raid: "x", Guilds: []string{"1", "2"}})
	c := Fingerprint(q{Raid: "x", Guilds: []string{"2", "1"}})

	if a != b {
		t.Error("equal values must fingerprint equally")
	}
	if a == c {
		t.Error("different values should not collide")
	}
}

func TestJSONHelpers(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewMemoryStore()

	type payload struct {
		Names []string `json:"names"`
	}
	if err := SetJSON(ctx, s, "realm:eu", payload{Names: []string{"b", "a"}}, time.Hour); err != nil {
		t.Fatal(err)
	}
	got, ok := GetJSON[payload](ctx, s, "realm:eu")
	if !ok {
		t.Fatal("expected hit")
	}
	sort.Strings(got.Names)
	if got.Names[0] != "a" {
		t.Errorf("unexpected payload %+v", got)
	}

	_ = s.Set(ctx, "realm:bad", []byte("{not json"), time.Hour)
	if _, ok := GetJSON[payload](ctx, s, "realm:bad"); ok {
		t.Error("undecodable value should be a miss")
	}

	if err := SetJSON(ctx, s, "realm:skip", payload{}, 0); err != nil {
		t.Fatal(err)
	}
	if _, ok := s.Get(ctx, "realm:skip"); ok {
		t.Error("ttl=0 must skip the write")
	}
}

func TestOpen(t *testing.T) {
	t.Parallel()

	s, closeFn, err := Open(Config{Backend: BackendBadger, InMemory: true})
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = closeFn() }()
	if _, ok := s.(*BadgerStore); !ok {
		t.Errorf("expected *BadgerStore, got %T", s)
	}

	if _, _, err := Open(Config{Backend: "redis"}); err == nil {
		t.Error("expected error for unknown backend")
	}
}
