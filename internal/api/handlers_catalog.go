// RaidProgress - World of Warcraft Raid Progress Aggregation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/raidprogress

package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/raidprogress/internal/media"
	"github.com/tomtom215/raidprogress/internal/models"
	"github.com/tomtom215/raidprogress/internal/validation"
)

// Expansions lists the supported expansions, newest first.
//
// @Summary List expansions
// @Tags Catalog
// @Produce json
// @Success 200 {object} models.APIResponse{data=[]models.Expansion} "Supported expansions"
// @Router /expansions [get]
func (h *Handler) Expansions(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, time.Now(), models.Expansions)
}

// Raids lists the raids of ?expansion= (default: the configured one).
//
// @Summary List raids
// @Description Returns the raids of an expansion from the cached Raider.io static catalog.
// @Tags Catalog
// @Produce json
// @Param expansion query int false "Expansion id (7-10)"
// @Success 200 {object} models.APIResponse{data=[]models.RaidSummary} "Raids with boss counts"
// @Failure 400 {object} models.APIResponse "Unknown expansion"
// @Failure 502 {object} models.APIResponse "Raider.io request failed"
// @Router /raids [get]
func (h *Handler) Raids(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	req := ExpansionRequest{ExpansionID: intParam(r.URL.Query().Get("expansion"), h.defaults.ExpansionID)}
	if verr := validation.ValidateStruct(&req); verr != nil {
		respondValidation(w, verr)
		return
	}

	raids, err := h.catalog.ListRaids(r.Context(), req.ExpansionID)
	if err != nil {
		respondUpstreamError(w, r, err)
		return
	}
	respondSuccess(w, start, raids)
}

// Realms lists the realms of ?region= (default: the Game Data region).
//
// @Summary List realms
// @Description Returns the realm index of a region from the Blizzard Game Data API, sorted by name.
// @Tags Catalog
// @Produce json
// @Param region query string false "Region (us, eu, kr, tw)"
// @Success 200 {object} models.APIResponse{data=[]models.Realm} "Realms"
// @Failure 400 {object} models.APIResponse "Unknown region"
// @Failure 503 {object} models.APIResponse "Blizzard credentials are not configured"
// @Router /realms [get]
func (h *Handler) Realms(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if h.gameData == nil || !h.gameData.Configured() {
		respondError(w, r, http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "Blizzard API credentials are not configured", nil)
		return
	}

	req := RealmsRequest{Region: strings.ToLower(stringParam(r.URL.Query().Get("region"), h.gameData.Region()))}
	if verr := validation.ValidateStruct(&req); verr != nil {
		respondValidation(w, verr)
		return
	}

	realms, err := h.gameData.Realms(r.Context(), req.Region)
	if err != nil {
		respondUpstreamError(w, r, err)
		return
	}
	respondSuccess(w, start, realms)
}

// MediaBlob serves a stored icon by id.
//
// @Summary Serve stored icon
// @Description Mounted at MEDIA_PUBLIC_PATH (default /media), outside the /api/v1 base path.
// @Tags Media
// @Produce image/jpeg
// @Param id path string true "Blob id"
// @Success 200 {file} binary "Icon bytes"
// @Failure 404 {object} models.APIResponse "Unknown blob"
// @Router /media/{id} [get]
func (h *Handler) MediaBlob(w http.ResponseWriter, r *http.Request) {
	if h.media == nil {
		http.NotFound(w, r)
		return
	}

	blob, f, err := h.media.Open(chi.URLParam(r, "id"))
	if errors.Is(err, media.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, ErrCodeInternalError, "Failed to open media", err)
		return
	}
	defer f.Close()

	if blob.ContentType != "" {
		w.Header().Set("Content-Type", blob.ContentType)
	}
	w.Header().Set("Cache-Control", "public, max-age=86400, immutable")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	http.ServeContent(w, r, blob.Filename, blob.CreatedAt, f)
}
