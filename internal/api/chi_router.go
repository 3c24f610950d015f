// RaidProgress - World of Warcraft Raid Progress Aggregation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/raidprogress

package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/raidprogress/internal/middleware"
)

// RouterConfig configures NewRouter.
type RouterConfig struct {
	Middleware *ChiMiddlewareConfig

	// AdminToken guards the admin routes. Empty leaves them unmounted.
	AdminToken string

	// MediaPath is where blobs are served, e.g. "/media".
	MediaPath string

	// RequestTimeout bounds each API request.
	RequestTimeout time.Duration
}

// NewRouter builds the chi router for h.
func NewRouter(h *Handler, cfg RouterConfig) http.Handler {
	mw := NewChiMiddleware(cfg.Middleware)
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 30 * time.Second
	}

	r := chi.NewRouter()

	// ========================
	// Global Middleware Stack
	// ========================
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(mw.CORS()) // global so OPTIONS preflight is answered
	r.Use(middleware.PrometheusMetrics)

	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1/health", func(r chi.Router) {
		r.Get("/live", h.HealthLive)
		r.Get("/ready", h.HealthReady)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(mw.RateLimit())
		r.Use(chimiddleware.Timeout(cfg.RequestTimeout))
		r.Use(chimiddleware.Compress(5, "application/json"))

		r.Get("/progress", h.Progress)
		r.Get("/expansions", h.Expansions)
		r.Get("/raids", h.Raids)
		r.Get("/realms", h.Realms)

		if cfg.AdminToken != "" {
			r.Route("/admin", func(r chi.Router) {
				r.Use(middleware.AdminAuth(cfg.AdminToken))

				r.Get("/cache/stats", h.AdminCacheStats)
				r.Post("/cache/clear", h.AdminClearCache)
				r.Post("/raids/refresh", h.AdminRefreshRaids)
				r.Post("/icons/import", h.AdminImportIcons)
				r.Delete("/icons", h.AdminDeleteIcons)
				r.Get("/blizzard/test", h.AdminTestBlizzard)
				r.Get("/debug-log", h.AdminDebugLog)
				r.Delete("/debug-log", h.AdminClearDebugLog)
			})
		}
	})

	mediaPath := "/" + strings.Trim(cfg.MediaPath, "/")
	if mediaPath == "/" {
		mediaPath = "/media"
	}
	r.With(mw.RateLimit()).Get(mediaPath+"/{id}", h.MediaBlob)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusNotFound, ErrCodeNotFound, "Route not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
	})

	return r
}
