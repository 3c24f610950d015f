// RaidProgress - World of Warcraft Raid Progress Aggregation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/raidprogress

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/raidprogress/internal/cache"
	"github.com/tomtom215/raidprogress/internal/logging"
	"github.com/tomtom215/raidprogress/internal/models"
	"github.com/tomtom215/raidprogress/internal/validation"
)

// CacheClearResult is the body of POST /admin/cache/clear.
type CacheClearResult struct {
	Deleted int `json:"deleted"`
}

// IconDeleteResult is the body of DELETE /admin/icons.
type IconDeleteResult struct {
	Deleted int `json:"deleted"`
}

// CacheStatsResult is the body of GET /admin/cache/stats. Counters are
// only present for backends that keep them.
type CacheStatsResult struct {
	Backend     string     `json:"backend"`
	Available   bool       `json:"available"`
	Hits        int64      `json:"hits,omitempty"`
	Misses      int64      `json:"misses,omitempty"`
	Evictions   int64      `json:"evictions,omitempty"`
	TotalKeys   int64      `json:"total_keys,omitempty"`
	HitRate     float64    `json:"hit_rate,omitempty"`
	LastCleanup *time.Time `json:"last_cleanup,omitempty"`
}

// RaidRefreshResult is the body of POST /admin/raids/refresh.
type RaidRefreshResult struct {
	ExpansionID int                  `json:"expansion_id"`
	Raids       []models.RaidSummary `json:"raids"`
}

// AdminClearCache deletes every cache namespace.
//
// @Summary Clear all cache
// @Description Deletes every cache namespace (rankings, static data, tokens, icons, achievements, realms, journal).
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.APIResponse{data=CacheClearResult} "Number of deleted entries"
// @Failure 401 {object} models.APIResponse "Missing or invalid admin token"
// @Failure 500 {object} models.APIResponse "Cache backend failure"
// @Router /admin/cache/clear [post]
func (h *Handler) AdminClearCache(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	deleted, err := cache.InvalidateNamespace(r.Context(), h.store, cache.Namespaces...)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, ErrCodeInternalError, "Failed to clear cache", err)
		return
	}

	logging.Ctx(r.Context()).Info().Int("deleted", deleted).Msg("Cleared cache")
	respondSuccess(w, start, CacheClearResult{Deleted: deleted})
}

// AdminCacheStats reports lookup counters of the cache backend.
//
// @Summary Cache statistics
// @Description Returns hit, miss and eviction counters for backends that track them. The badger backend reports available=false.
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.APIResponse{data=CacheStatsResult} "Cache statistics"
// @Failure 401 {object} models.APIResponse "Missing or invalid admin token"
// @Router /admin/cache/stats [get]
func (h *Handler) AdminCacheStats(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var result CacheStatsResult
	if _, ok := h.store.(*cache.BadgerStore); ok {
		result.Backend = string(cache.BackendBadger)
	}
	if reporter, ok := h.store.(cache.StatsReporter); ok {
		stats := reporter.GetStats()
		result = CacheStatsResult{
			Backend:   string(cache.BackendMemory),
			Available: true,
			Hits:      stats.Hits,
			Misses:    stats.Misses,
			Evictions: stats.Evictions,
			TotalKeys: stats.TotalKeys,
			HitRate:   reporter.HitRate(),
		}
		if !stats.LastCleanup.IsZero() {
			last := stats.LastCleanup
			result.LastCleanup = &last
		}
	}

	respondSuccess(w, start, result)
}

// AdminRefreshRaids drops the static catalog cache and refetches it.
//
// @Summary Refresh raid list
// @Description Invalidates the static catalog cache and refetches the raids of an expansion from Raider.io.
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param expansion query int false "Expansion id (7-10), defaults to DEFAULT_EXPANSION"
// @Success 200 {object} models.APIResponse{data=RaidRefreshResult} "Refreshed raid list"
// @Failure 400 {object} models.APIResponse "Unknown expansion"
// @Failure 401 {object} models.APIResponse "Missing or invalid admin token"
// @Failure 502 {object} models.APIResponse "Raider.io request failed"
// @Router /admin/raids/refresh [post]
func (h *Handler) AdminRefreshRaids(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	req := ExpansionRequest{ExpansionID: intParam(r.URL.Query().Get("expansion"), h.defaults.ExpansionID)}
	if verr := validation.ValidateStruct(&req); verr != nil {
		respondValidation(w, verr)
		return
	}

	catalog, err := h.catalog.RefreshCatalog(r.Context(), req.ExpansionID)
	if err != nil {
		respondUpstreamError(w, r, err)
		return
	}

	result := RaidRefreshResult{ExpansionID: req.ExpansionID, Raids: make([]models.RaidSummary, 0, len(catalog.Raids))}
	for _, raid := range catalog.Raids {
		result.Raids = append(result.Raids, raid.Summary())
	}

	logging.Ctx(r.Context()).Info().Int("expansion", req.ExpansionID).Int("raids", len(result.Raids)).Msg("Refreshed raid catalog")
	respondSuccess(w, start, result)
}

// AdminImportIcons resolves every boss icon of ?raid=.
//
// @Summary Import boss icons
// @Description Resolves and stores the achievement icon of every boss in a raid. Returns one status per boss.
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param raid query string true "Raid slug"
// @Param expansion query int false "Expansion id (7-10)"
// @Success 200 {object} models.APIResponse{data=[]models.IconImportResult} "Per-boss import results"
// @Failure 400 {object} models.APIResponse "Invalid parameters"
// @Failure 401 {object} models.APIResponse "Missing or invalid admin token"
// @Failure 404 {object} models.APIResponse "Raid not found"
// @Failure 503 {object} models.APIResponse "Icon storage is not configured"
// @Router /admin/icons/import [post]
func (h *Handler) AdminImportIcons(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if h.icons == nil {
		respondError(w, r, http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "Icon storage is not configured", nil)
		return
	}

	q := r.URL.Query()
	req := IconImportRequest{
		Raid:        stringParam(q.Get("raid"), h.defaults.Raid),
		ExpansionID: intParam(q.Get("expansion"), h.defaults.ExpansionID),
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		respondValidation(w, verr)
		return
	}

	results, err := h.icons.ImportBossIcons(r.Context(), req.ExpansionID, req.Raid)
	if err != nil {
		respondUpstreamError(w, r, err)
		return
	}
	respondSuccess(w, start, results)
}

// AdminDeleteIcons deletes every stored icon.
//
// @Summary Delete stored icons
// @Description Deletes every icon blob tagged by the icon service and invalidates the icon cache.
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.APIResponse{data=IconDeleteResult} "Number of deleted icons"
// @Failure 401 {object} models.APIResponse "Missing or invalid admin token"
// @Failure 503 {object} models.APIResponse "Icon storage is not configured"
// @Router /admin/icons [delete]
func (h *Handler) AdminDeleteIcons(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if h.icons == nil {
		respondError(w, r, http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "Icon storage is not configured", nil)
		return
	}

	deleted, err := h.icons.DeleteAll(r.Context())
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, ErrCodeInternalError, "Failed to delete icons", err)
		return
	}

	logging.Ctx(r.Context()).Info().Int("deleted", deleted).Msg("Deleted icons")
	respondSuccess(w, start, IconDeleteResult{Deleted: deleted})
}

// AdminTestBlizzard checks token issuance and realm listing per region.
//
// @Summary Test Blizzard API
// @Description For every Game Data region, reports whether a token was issued and how many realms were listed.
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.APIResponse{data=[]models.RegionCheck} "Per-region results"
// @Failure 401 {object} models.APIResponse "Missing or invalid admin token"
// @Failure 503 {object} models.APIResponse "Blizzard credentials are not configured"
// @Router /admin/blizzard/test [get]
func (h *Handler) AdminTestBlizzard(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if h.gameData == nil || !h.gameData.Configured() {
		respondError(w, r, http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "Blizzard API credentials are not configured", nil)
		return
	}
	respondSuccess(w, start, h.gameData.CheckRegions(r.Context()))
}

// AdminDebugLog returns the captured debug events.
//
// @Summary Read debug log
// @Description Returns the last captured log events when DEBUG_MODE is enabled.
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.APIResponse{data=[]logging.DebugEntry} "Captured events, newest last"
// @Failure 401 {object} models.APIResponse "Missing or invalid admin token"
// @Router /admin/debug-log [get]
func (h *Handler) AdminDebugLog(w http.ResponseWriter, r *http.Request) {
	entries := []logging.DebugEntry{}
	if h.debugLog != nil {
		entries = h.debugLog.Entries()
	}
	respondSuccess(w, time.Now(), entries)
}

// AdminClearDebugLog empties the debug ring.
//
// @Summary Clear debug log
// @Tags Admin
// @Security BearerAuth
// @Success 204 "Debug log cleared"
// @Failure 401 {object} models.APIResponse "Missing or invalid admin token"
// @Router /admin/debug-log [delete]
func (h *Handler) AdminClearDebugLog(w http.ResponseWriter, r *http.Request) {
	if h.debugLog != nil {
		h.debugLog.Clear()
	}
	w.WriteHeader(http.StatusNoContent)
}
