// RaidProgress - World of Warcraft Raid Progress Aggregation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/raidprogress

package icons

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"

	"github.com/tomtom215/raidprogress/internal/blizzard"
	"github.com/tomtom215/raidprogress/internal/cache"
	"github.com/tomtom215/raidprogress/internal/models"
	"github.com/tomtom215/raidprogress/internal/upstream"
)

type memBlob struct {
	filename string
	title    string
	url      string
	tags     map[string]string
}

type fakeBlobs struct {
	mu        sync.Mutex
	blobs     map[string]*memBlob
	next      int
	sideloads int
}

func newFakeBlobs() *fakeBlobs {
	return &fakeBlobs{blobs: make(map[string]*memBlob)}
}

func (f *fakeBlobs) Sideload(_ context.Context, url, filename, title string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sideloads++
	f.next++
	id := fmt.Sprintf("blob-%d", f.next)
	f.blobs[id] = &memBlob{filename: filename, title: title, url: url}
	return id, nil
}

func (f *fakeBlobs) FindByFilename(filename string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, b := range f.blobs {
		if b.filename == filename {
			return id, true
		}
	}
	return "", false
}

func (f *fakeBlobs) Exists(id string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.blobs[id]
	return ok
}

func (f *fakeBlobs) Tag(id string, tags map[string]string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.blobs[id]
	if !ok {
		return errors.New("missing")
	}
	b.tags = tags
	return nil
}

func (f *fakeBlobs) FindByTag(key, value string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var ids []string
	for id, b := range f.blobs {
		if v, ok := b.tags[key]; ok && (value == "" || v == value) {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

func (f *fakeBlobs) Delete(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.blobs, id)
	return nil
}

type fakeAchievements struct {
	configured bool
	iconErr    map[int]error
	mu         sync.Mutex
	iconCalls  int
}

func (f *fakeAchievements) Configured() bool { return f.configured }

func (f *fakeAchievements) Raid(_ context.Context, _ int, slug string) (*models.RaidCatalogEntry, error) {
	if slug != "nerub-ar-palace" {
		return nil, upstream.NotFound("Raid %q not found", slug)
	}
	return &models.RaidCatalogEntry{Slug: slug, Name: "Nerub-ar Palace", Encounters: []models.Encounter{
		{Slug: "ulgrax", Name: "Ulgrax the Devourer"},
		{Slug: "sikran", Name: "Sikran"},
		{Slug: "ansurek", Name: "Queen Ansurek"},
	}}, nil
}

func (f *fakeAchievements) BossAchievements(context.Context, int, string) (blizzard.AchievementMap, error) {
	return blizzard.AchievementMap{"ulgrax": 1, "ansurek": 3}, nil
}

func (f *fakeAchievements) RaidAchievement(context.Context, int, string) (int, error) {
	return 100, nil
}

func (f *fakeAchievements) AchievementIcon(_ context.Context, id int) (string, error) {
	f.mu.Lock()
	f.iconCalls++
	f.mu.Unlock()
	if err := f.iconErr[id]; err != nil {
		return "", err
	}
	return fmt.Sprintf("https://render.example/%d.jpg", id), nil
}

func TestFilenames(t *testing.T) {
	t.Parallel()

	if got := BossFilename("nerub-ar-palace", "ulgrax/../x"); got != "nerub-ar-palace_ulgrax..x.jpg" {
		t.Errorf("BossFilename = %q", got)
	}
	if got := RaidFilename("liberation of undermine"); got != "raid_liberationofundermine.jpg" {
		t.Errorf("RaidFilename = %q", got)
	}
}

func TestBossIcon_ResolutionChain(t *testing.T) {
	t.Parallel()

	blobs := newFakeBlobs()
	ach := &fakeAchievements{configured: true}
	svc := NewService(blobs, ach, nil, cache.NewMemoryStore(), true)
	ctx := context.Background()

	id, source, err := svc.resolveBoss(ctx, 10, "nerub-ar-palace", "ulgrax", "Ulgrax the Devourer")
	if err != nil || source != SourceDownload || id == "" {
		t.Fatalf("first resolve: %q %s %v", id, source, err)
	}
	b := blobs.blobs[id]
	if b.filename != "nerub-ar-palace_ulgrax.jpg" || b.title != "Ulgrax the Devourer" || b.tags[TagKind] != "boss" || b.tags[TagBoss] != "ulgrax" {
		t.Errorf("unexpected blob %+v", b)
	}

	if again, source, _ := svc.resolveBoss(ctx, 10, "nerub-ar-palace", "ulgrax", "Ulgrax the Devourer"); again != id || source != SourceCache {
		t.Errorf("second resolve: %q %s", again, source)
	}

	// A wiped cache recovers the id from the blob store by filename.
	fresh := NewService(blobs, ach, nil, cache.NewMemoryStore(), true)
	if again, source, _ := fresh.resolveBoss(ctx, 10, "nerub-ar-palace", "ulgrax", "Ulgrax the Devourer"); again != id || source != SourceBlobStore {
		t.Errorf("after cache wipe: %q %s", again, source)
	}

	if blobs.sideloads != 1 || ach.iconCalls != 1 {
		t.Errorf("sideloads=%d iconCalls=%d, want 1/1", blobs.sideloads, ach.iconCalls)
	}
}

func TestBossIcon_StaleCachedIDRefetched(t *testing.T) {
	t.Parallel()

	blobs := newFakeBlobs()
	svc := NewService(blobs, &fakeAchievements{configured: true}, nil, cache.NewMemoryStore(), true)
	ctx := context.Background()

	first, ok := svc.BossIcon(ctx, 10, "nerub-ar-palace", "ulgrax", "Ulgrax the Devourer")
	if !ok {
		t.Fatal("no icon")
	}
	_ = blobs.Delete(first)

	second, ok := svc.BossIcon(ctx, 10, "nerub-ar-palace", "ulgrax", "Ulgrax the Devourer")
	if !ok || second == first {
		t.Errorf("stale id returned: %q", second)
	}
}

func TestBossIcon_UnavailableIsNotAnError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		ach     *fakeAchievements
		enabled bool
		boss    string
	}{
		{"no credentials", &fakeAchievements{configured: false}, true, "ulgrax"},
		{"icons disabled", &fakeAchievements{configured: true}, false, "ulgrax"},
		{"no achievement", &fakeAchievements{configured: true}, true, "sikran"},
	}
	for _, tt := range tests {
		blobs := newFakeBlobs()
		svc := NewService(blobs, tt.ach, nil, cache.NewMemoryStore(), tt.enabled)
		id, source, err := svc.resolveBoss(context.Background(), 10, "nerub-ar-palace", tt.boss, "x")
		if id != "" || source != SourceUnavailable || err != nil {
			t.Errorf("%s: %q %s %v", tt.name, id, source, err)
		}
		if blobs.sideloads != 0 {
			t.Errorf("%s: downloaded anyway", tt.name)
		}
	}
}

func TestRaidIcon_TitleFromCatalog(t *testing.T) {
	t.Parallel()

	blobs := newFakeBlobs()
	svc := NewService(blobs, &fakeAchievements{configured: true}, nil, cache.NewMemoryStore(), true)

	id, ok := svc.RaidIcon(context.Background(), 10, "nerub-ar-palace")
	if !ok {
		t.Fatal("no raid icon")
	}
	b := blobs.blobs[id]
	if b.filename != "raid_nerub-ar-palace.jpg" || b.title != "Nerub-ar Palace Icon" || b.url != "https://render.example/100.jpg" {
		t.Errorf("unexpected blob %+v", b)
	}
	if b.tags[TagKind] != "raid" || b.tags[TagRaid] != "nerub-ar-palace" {
		t.Errorf("unexpected tags %v", b.tags)
	}
}

func TestImportBossIcons_Statuses(t *testing.T) {
	t.Parallel()

	blobs := newFakeBlobs()
	ach := &fakeAchievements{configured: true, iconErr: map[int]error{3: upstream.FromResponse("Blizzard", 503, nil)}}
	svc := NewService(blobs, ach, nil, cache.NewMemoryStore(), true)
	ctx := context.Background()

	if _, ok := svc.BossIcon(ctx, 10, "nerub-ar-palace", "ulgrax", "Ulgrax the Devourer"); !ok {
		t.Fatal("warmup failed")
	}

	results, err := svc.ImportBossIcons(ctx, 10, "nerub-ar-palace")
	if err != nil {
		t.Fatalf("ImportBossIcons: %v", err)
	}
	want := map[string]string{"ulgrax": StatusExists, "sikran": StatusUnavailable, "ansurek": StatusError}
	if len(results) != len(want) {
		t.Fatalf("got %d results", len(results))
	}
	for _, r := range results {
		if r.Status != want[r.Boss] {
			t.Errorf("%s: status %s, want %s", r.Boss, r.Status, want[r.Boss])
		}
	}

	if _, err := svc.ImportBossIcons(ctx, 10, "unknown"); err == nil {
		t.Error("expected error for unknown raid")
	}
}

func TestDeleteAll(t *testing.T) {
	t.Parallel()

	blobs := newFakeBlobs()
	store := cache.NewMemoryStore()
	svc := NewService(blobs, &fakeAchievements{configured: true}, nil, store, true)
	ctx := context.Background()

	svc.BossIcon(ctx, 10, "nerub-ar-palace", "ulgrax", "Ulgrax the Devourer")
	svc.RaidIcon(ctx, 10, "nerub-ar-palace")
	untagged, _ := blobs.Sideload(ctx, "https://elsewhere.example/a.png", "a.png", "unrelated")

	n, err := svc.DeleteAll(ctx)
	if err != nil || n != 2 {
		t.Fatalf("DeleteAll = %d, %v", n, err)
	}
	if !blobs.Exists(untagged) {
		t.Error("untagged blob deleted")
	}
	if _, ok := store.Get(ctx, cache.Key(cache.NSIcon, "boss", "nerub-ar-palace", "ulgrax")); ok {
		t.Error("icon cache not invalidated")
	}
}
