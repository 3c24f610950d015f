// RaidProgress - World of Warcraft Raid Progress Aggregation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/raidprogress

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/raidprogress/internal/logging"
	"github.com/tomtom215/raidprogress/internal/validation"
)

// Progress resolves the aggregated progress view.
//
// @Summary Get raid progress
// @Description Aggregates Raider.io rankings across difficulty tiers for a realm or a list of guilds.
// @Description Per-tier and per-guild failures are reported as inline notices, not as HTTP errors.
// @Tags Progress
// @Produce json
// @Param raid query string false "Raid slug, defaults to DEFAULT_RAID"
// @Param difficulty query string false "normal, heroic, mythic, all or highest"
// @Param region query string false "us, eu, kr, tw or world"
// @Param realm query string false "Realm name or slug"
// @Param guilds query string false "Comma-separated guild ids (max 10)"
// @Param cache query int false "Cache minutes (0-1440), 0 disables caching"
// @Param limit query int false "Ranking page size (1-100)"
// @Param page query int false "Ranking page"
// @Param expansion query int false "Expansion id (7-10)"
// @Param icons query bool false "Resolve boss and raid icons"
// @Success 200 {object} models.APIResponse{data=models.RenderableProgress} "Aggregated progress"
// @Failure 400 {object} models.APIResponse "Invalid parameters"
// @Failure 404 {object} models.APIResponse "Raid not found"
// @Failure 503 {object} models.APIResponse "Raider.io API key is not configured"
// @Router /progress [get]
func (h *Handler) Progress(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	req := parseProgressRequest(r, h.defaults)
	if verr := validation.ValidateStruct(&req); verr != nil {
		respondValidation(w, verr)
		return
	}

	view, err := h.progress.Resolve(r.Context(), req.toProgress())
	if err != nil {
		respondUpstreamError(w, r, err)
		return
	}

	logging.Ctx(r.Context()).Debug().
		Str("raid", view.Raid.Slug).
		Str("difficulty", req.Difficulty).
		Int("scopes", len(view.Scopes)).
		Dur("duration", time.Since(start)).
		Msg("Resolved progress")

	respondSuccess(w, start, view)
}
