// RaidProgress - World of Warcraft Raid Progress Aggregation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/raidprogress

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/raidprogress/internal/api"
	"github.com/tomtom215/raidprogress/internal/blizzard"
	"github.com/tomtom215/raidprogress/internal/cache"
	"github.com/tomtom215/raidprogress/internal/config"
	"github.com/tomtom215/raidprogress/internal/icons"
	"github.com/tomtom215/raidprogress/internal/logging"
	"github.com/tomtom215/raidprogress/internal/media"
	"github.com/tomtom215/raidprogress/internal/progress"
	"github.com/tomtom215/raidprogress/internal/raiderio"
	"github.com/tomtom215/raidprogress/internal/supervisor"
	"github.com/tomtom215/raidprogress/internal/supervisor/services"
)

// shutdownTimeout bounds graceful HTTP shutdown and supervisor teardown.
const shutdownTimeout = 10 * time.Second

func main() {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		DebugMode: cfg.Logging.DebugMode,
	})

	logging.Info().Msg("Starting RaidProgress with supervisor tree")

	// === CACHE ===
	store, closeStore, err := cache.Open(cache.Config{
		Backend: cache.Backend(cfg.Cache.Backend),
		Path:    cfg.Cache.Path,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open cache")
	}
	defer func() {
		if err := closeStore(); err != nil {
			logging.Error().Err(err).Msg("Error closing cache")
		}
	}()
	logging.Info().Str("backend", cfg.Cache.Backend).Msg("Cache initialized")

	// === UPSTREAM CLIENTS ===
	rio := raiderio.NewClient(raiderio.Config{
		APIKey:            cfg.RaiderIO.APIKey,
		BaseURL:           cfg.RaiderIO.BaseURL,
		Timeout:           cfg.RaiderIO.Timeout,
		RequestsPerSecond: cfg.RaiderIO.RequestsPerSecond,
		UserAgent:         cfg.RaiderIO.UserAgent,
	}, store)
	if !rio.Configured() {
		logging.Warn().Msg("RAIDERIO_API_KEY is not set; progress requests will report a configuration error")
	}

	bcfg := blizzard.Config{
		ClientID:     cfg.Blizzard.ClientID,
		ClientSecret: cfg.Blizzard.ClientSecret,
		Region:       cfg.Blizzard.Region,
		OAuthURL:     cfg.Blizzard.OAuthURL,
		APIBaseURL:   cfg.Blizzard.APIBaseURL,
		Timeout:      cfg.RaiderIO.Timeout,
		UserAgent:    cfg.RaiderIO.UserAgent,
	}
	tokens := blizzard.NewTokenManager(bcfg, store)
	gameData := blizzard.NewGameData(bcfg, tokens, store)
	if gameData.Configured() {
		logging.Info().Str("region", gameData.Region()).Msg("Blizzard Game Data API enabled")
	} else {
		logging.Info().Msg("Blizzard credentials not set; icons, realms and header images disabled")
	}

	// === ICONS ===
	var iconService *icons.Service
	blobs, err := media.NewDiskStore(cfg.Media.Dir, nil, cfg.RaiderIO.UserAgent)
	if err != nil {
		logging.Warn().Err(err).Str("dir", cfg.Media.Dir).Msg("Failed to open media store, icons disabled")
	} else {
		achievements := blizzard.NewAchievementResolver(gameData, rio, store)
		iconService = icons.NewService(blobs, achievements, gameData, store, cfg.Blizzard.UseIcons)
	}

	// === AGGREGATOR ===
	var iconResolver progress.IconResolver
	var iconAdmin api.IconAdmin
	var blobOpener api.BlobOpener
	if iconService != nil {
		iconResolver = iconService
		iconAdmin = iconService
		blobOpener = blobs
	}
	aggregator := progress.NewAggregator(rio, rio, iconResolver)

	// === HTTP ===
	handler := api.NewHandler(api.Deps{
		Progress: aggregator,
		Catalog:  rio,
		GameData: gameData,
		Icons:    iconAdmin,
		Media:    blobOpener,
		Store:    store,
		Defaults: cfg.Defaults,
		DebugLog: logging.DebugLog(),
		Ready:    readyChecks(rio, store),
	})

	if cfg.Server.AdminToken == "" {
		logging.Info().Msg("ADMIN_TOKEN is not set; admin routes are disabled")
	}
	for _, origin := range cfg.Server.CORSOrigins {
		if origin == "*" {
			logging.Warn().Msg("CORS is configured with wildcard origin (CORS_ORIGINS=*)")
			break
		}
	}

	mwConfig := api.DefaultChiMiddlewareConfig()
	mwConfig.CORSAllowedOrigins = cfg.Server.CORSOrigins
	mwConfig.RateLimitRequests = cfg.Server.RateLimitRequests
	mwConfig.RateLimitWindow = cfg.Server.RateLimitWindow

	server := &http.Server{
		Addr: cfg.Server.Addr(),
		Handler: api.NewRouter(handler, api.RouterConfig{
			Middleware:     mwConfig,
			AdminToken:     cfg.Server.AdminToken,
			MediaPath:      cfg.Media.PublicPath,
			RequestTimeout: cfg.Server.Timeout,
		}),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// === SUPERVISOR TREE ===
	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: shutdownTimeout,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	if svc := maintenanceService(store, cfg.Cache.CleanupInterval); svc != nil {
		tree.AddDataService(svc)
	}
	tree.AddAPIService(services.NewHTTPServerService(server, server.Addr, shutdownTimeout))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish...")
		if err := <-errCh; err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor stopped with error")
		}
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor stopped unexpectedly")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
	}

	logging.Info().Msg("RaidProgress stopped")
}

// maintenanceService picks the housekeeping loop for the cache backend.
func maintenanceService(store cache.Store, interval time.Duration) *services.CacheMaintenanceService {
	switch s := store.(type) {
	case *cache.MemoryStore:
		return services.NewCacheJanitorService(s, interval)
	case *cache.BadgerStore:
		return services.NewValueLogGCService(s, interval, services.DefaultDiscardRatio)
	default:
		return nil
	}
}

// healthProbeKey lives outside every namespace so cache clears skip it.
const healthProbeKey = "health:probe"

func readyChecks(rio *raiderio.Client, store cache.Store) []api.ReadyCheck {
	return []api.ReadyCheck{
		{
			Name: "raiderio",
			Check: func(context.Context) error {
				if !rio.Configured() {
					return errors.New("RAIDERIO_API_KEY is not set")
				}
				return nil
			},
		},
		{
			Name: "cache",
			Check: func(ctx context.Context) error {
				stamp := []byte(time.Now().UTC().Format(time.RFC3339Nano))
				if err := store.Set(ctx, healthProbeKey, stamp, time.Minute); err != nil {
					return fmt.Errorf("write: %w", err)
				}
				if _, ok := store.Get(ctx, healthProbeKey); !ok {
					return errors.New("read back failed")
				}
				return nil
			},
		},
	}
}
