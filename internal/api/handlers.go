// RaidProgress - World of Warcraft Raid Progress Aggregation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/raidprogress

package api

import (
	"context"
	"os"
	"time"

	"github.com/tomtom215/raidprogress/internal/cache"
	"github.com/tomtom215/raidprogress/internal/config"
	"github.com/tomtom215/raidprogress/internal/logging"
	"github.com/tomtom215/raidprogress/internal/media"
	"github.com/tomtom215/raidprogress/internal/models"
	"github.com/tomtom215/raidprogress/internal/progress"
)

// ProgressResolver is satisfied by *progress.Aggregator.
type ProgressResolver interface {
	Resolve(ctx context.Context, req progress.Request) (*models.RenderableProgress, error)
}

// RaidCatalog is satisfied by *raiderio.Client.
type RaidCatalog interface {
	ListRaids(ctx context.Context, expansionID int) ([]models.RaidSummary, error)
	RefreshCatalog(ctx context.Context, expansionID int) (*models.RaidCatalog, error)
}

// GameData is satisfied by *blizzard.GameData.
type GameData interface {
	Configured() bool
	Region() string
	Realms(ctx context.Context, region string) ([]models.Realm, error)
	CheckRegions(ctx context.Context) []models.RegionCheck
}

// IconAdmin is satisfied by *icons.Service.
type IconAdmin interface {
	ImportBossIcons(ctx context.Context, expansionID int, raidSlug string) ([]models.IconImportResult, error)
	DeleteAll(ctx context.Context) (int, error)
}

// BlobOpener is satisfied by *media.DiskStore.
type BlobOpener interface {
	Open(id string) (*media.Blob, *os.File, error)
}

// ReadyCheck is one readiness probe.
type ReadyCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

// Deps collects the handler's collaborators. Icons and Media may be nil,
// which disables their endpoints.
type Deps struct {
	Progress ProgressResolver
	Catalog  RaidCatalog
	GameData GameData
	Icons    IconAdmin
	Media    BlobOpener
	Store    cache.Store
	Defaults config.DefaultsConfig
	DebugLog *logging.DebugRing
	Ready    []ReadyCheck
}

// Handler contains dependencies for API handlers
//
// Handler methods are split across files:
//   - handlers_health.go: liveness and readiness
//   - handlers_progress.go: the progress view
//   - handlers_catalog.go: expansions, raids, realms, media blobs
//   - handlers_admin.go: cache, raid, icon and debug-log administration
type Handler struct {
	progress  ProgressResolver
	catalog   RaidCatalog
	gameData  GameData
	icons     IconAdmin
	media     BlobOpener
	store     cache.Store
	defaults  config.DefaultsConfig
	debugLog  *logging.DebugRing
	ready     []ReadyCheck
	startTime time.Time
}

// NewHandler creates a new API handler.
func NewHandler(deps Deps) *Handler {
	return &Handler{
		progress:  deps.Progress,
		catalog:   deps.Catalog,
		gameData:  deps.GameData,
		icons:     deps.Icons,
		media:     deps.Media,
		store:     deps.Store,
		defaults:  deps.Defaults,
		debugLog:  deps.DebugLog,
		ready:     deps.Ready,
		startTime: time.Now(),
	}
}
