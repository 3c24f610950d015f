// RaidProgress - World of Warcraft Raid Progress Aggregation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/raidprogress

package icons

import (
	"context"
	"errors"
	"regexp"
	"strconv"

	"github.com/tomtom215/raidprogress/internal/blizzard"
	"github.com/tomtom215/raidprogress/internal/cache"
	"github.com/tomtom215/raidprogress/internal/logging"
	"github.com/tomtom215/raidprogress/internal/metrics"
	"github.com/tomtom215/raidprogress/internal/models"
)

// Provenance tags attached to every imported icon.
const (
	TagKind = "raidprogress_icon"
	TagRaid = "raid"
	TagBoss = "boss"

	kindBoss = "boss"
	kindRaid = "raid"
)

// Source records where a resolved icon came from.
type Source string

const (
	SourceCache       Source = "cache"
	SourceBlobStore   Source = "blob_store"
	SourceDownload    Source = "download"
	SourceUnavailable Source = "unavailable"
	SourceError       Source = "error"
)

// Import statuses reported per boss.
const (
	StatusSuccess     = "success"
	StatusExists      = "exists"
	StatusUnavailable = "unavailable"
	StatusError       = "error"
)

var errNoAchievement = errors.New("no matching achievement")

var unsafeFilename = regexp.MustCompile(`[^A-Za-z0-9._-]`)

// BlobStore stores downloaded files behind opaque ids.
type BlobStore interface {
	Sideload(ctx context.Context, sourceURL, filename, title string) (string, error)
	FindByFilename(filename string) (string, bool)
	Exists(id string) bool
	Tag(id string, tags map[string]string) error
	FindByTag(key, value string) []string
	Delete(id string) error
}

// Achievements resolves bosses and raids to achievement icons.
type Achievements interface {
	Configured() bool
	Raid(ctx context.Context, expansionID int, raidSlug string) (*models.RaidCatalogEntry, error)
	BossAchievements(ctx context.Context, expansionID int, raidSlug string) (blizzard.AchievementMap, error)
	RaidAchievement(ctx context.Context, expansionID int, raidSlug string) (int, error)
	AchievementIcon(ctx context.Context, achievementID int) (string, error)
}

// TileSource supplies raid header images.
type TileSource interface {
	RaidTileURL(ctx context.Context, raidName string) (string, error)
}

// Service resolves boss and raid icons to blob ids.
//
// Each lookup tries, in order: the cached id (verified to still exist),
// a blob already stored under the deterministic filename, and finally a
// download of the achievement icon. Without Game Data credentials the
// last step reports the icon unavailable. Failures are logged and never
// returned from BossIcon or RaidIcon.
type Service struct {
	blobs        BlobStore
	achievements Achievements
	tiles        TileSource
	store        cache.Store
	enabled      bool
}

// NewService builds a Service. With enabled false no icon is downloaded,
// though previously stored icons are still found.
func NewService(blobs BlobStore, achievements Achievements, tiles TileSource, store cache.Store, enabled bool) *Service {
	return &Service{
		blobs:        blobs,
		achievements: achievements,
		tiles:        tiles,
		store:        store,
		enabled:      enabled,
	}
}

// BossFilename is the stored filename of a boss icon.
func BossFilename(raidSlug, bossSlug string) string {
	return unsafeFilename.ReplaceAllString(raidSlug+"_"+bossSlug+".jpg", "")
}

// RaidFilename is the stored filename of a raid icon.
func RaidFilename(raidSlug string) string {
	return unsafeFilename.ReplaceAllString("raid_"+raidSlug+".jpg", "")
}

// BossIcon returns the blob id of a boss icon, if one is available.
func (s *Service) BossIcon(ctx context.Context, expansionID int, raidSlug, bossSlug, bossName string) (string, bool) {
	id, _, err := s.resolveBoss(ctx, expansionID, raidSlug, bossSlug, bossName)
	if err != nil {
		logging.Ctx(ctx).Debug().Err(err).Str("raid", raidSlug).Str("boss", bossSlug).Msg("Boss icon unavailable")
	}
	return id, id != ""
}

// RaidIcon returns the blob id of a raid icon, if one is available.
func (s *Service) RaidIcon(ctx context.Context, expansionID int, raidSlug string) (string, bool) {
	id, _, err := s.resolveRaid(ctx, expansionID, raidSlug)
	if err != nil {
		logging.Ctx(ctx).Debug().Err(err).Str("raid", raidSlug).Msg("Raid icon unavailable")
	}
	return id, id != ""
}

// HeaderImage returns the raid's journal tile URL, or "".
func (s *Service) HeaderImage(ctx context.Context, raidName string) string {
	if !s.downloadsEnabled() || s.tiles == nil {
		return ""
	}
	url, err := s.tiles.RaidTileURL(ctx, raidName)
	if err != nil {
		logging.Ctx(ctx).Debug().Err(err).Str("raid", raidName).Msg("Raid header image unavailable")
		return ""
	}
	return url
}

func (s *Service) downloadsEnabled() bool {
	return s.enabled && s.achievements != nil && s.achievements.Configured()
}

func (s *Service) resolveBoss(ctx context.Context, expansionID int, raidSlug, bossSlug, bossName string) (string, Source, error) {
	key := cache.Key(cache.NSIcon, kindBoss, raidSlug, bossSlug)
	fetch := func() (string, error) {
		achievements, err := s.achievements.BossAchievements(ctx, expansionID, raidSlug)
		if err != nil {
			return "", err
		}
		achievementID, ok := achievements[bossSlug]
		if !ok {
			return "", errNoAchievement
		}
		return s.achievements.AchievementIcon(ctx, achievementID)
	}
	tags := map[string]string{TagKind: kindBoss, TagRaid: raidSlug, TagBoss: bossSlug}
	return s.resolve(ctx, kindBoss, key, BossFilename(raidSlug, bossSlug), &bossName, tags, fetch)
}

func (s *Service) resolveRaid(ctx context.Context, expansionID int, raidSlug string) (string, Source, error) {
	key := cache.Key(cache.NSIcon, kindRaid, strconv.Itoa(expansionID), raidSlug)
	title := raidSlug + " Icon"
	fetch := func() (string, error) {
		raid, err := s.achievements.Raid(ctx, expansionID, raidSlug)
		if err != nil {
			return "", err
		}
		title = raid.Name + " Icon"
		achievementID, err := s.achievements.RaidAchievement(ctx, expansionID, raidSlug)
		if err != nil {
			return "", err
		}
		return s.achievements.AchievementIcon(ctx, achievementID)
	}
	tags := map[string]string{TagKind: kindRaid, TagRaid: raidSlug}
	return s.resolve(ctx, kindRaid, key, RaidFilename(raidSlug), &title, tags, fetch)
}

// resolve runs the lookup chain. title is read after fetch so that fetch
// may refine it.
func (s *Service) resolve(ctx context.Context, kind, key, filename string, title *string, tags map[string]string, fetch func() (string, error)) (id string, source Source, err error) {
	defer func() {
		metrics.IconResolutions.WithLabelValues(kind, string(source)).Inc()
	}()

	if cached, ok := cache.GetJSON[string](ctx, s.store, key); ok {
		if s.blobs.Exists(cached) {
			return cached, SourceCache, nil
		}
		_ = s.store.Delete(ctx, key)
	}

	if existing, ok := s.blobs.FindByFilename(filename); ok {
		s.remember(ctx, key, existing)
		return existing, SourceBlobStore, nil
	}

	if !s.downloadsEnabled() {
		return "", SourceUnavailable, nil
	}

	url, err := fetch()
	if err != nil {
		if errors.Is(err, errNoAchievement) {
			return "", SourceUnavailable, nil
		}
		return "", SourceError, err
	}

	id, err = s.blobs.Sideload(ctx, url, filename, *title)
	if err != nil {
		return "", SourceError, err
	}
	if err := s.blobs.Tag(id, tags); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("id", id).Msg("Failed to tag icon")
	}
	s.remember(ctx, key, id)
	return id, SourceDownload, nil
}

func (s *Service) remember(ctx context.Context, key, id string) {
	if err := cache.SetJSON(ctx, s.store, key, id, cache.IconTTL); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("Failed to cache icon id")
	}
}
