// RaidProgress - World of Warcraft Raid Progress Aggregation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/raidprogress

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/raidprogress/internal/models"
)

// readyCheckTimeout bounds the whole readiness probe.
const readyCheckTimeout = 3 * time.Second

// HealthStatus is the body of the health endpoints.
type HealthStatus struct {
	Status string            `json:"status"`
	Uptime float64           `json:"uptime_seconds"`
	Checks map[string]string `json:"checks,omitempty"`
}

// HealthLive reports that the process is serving.
//
// @Summary Liveness probe
// @Description Returns 200 while the process is serving, regardless of upstream state.
// @Tags Core
// @Produce json
// @Success 200 {object} models.APIResponse{data=HealthStatus} "Service is alive"
// @Router /health/live [get]
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, time.Now(), HealthStatus{
		Status: "alive",
		Uptime: time.Since(h.startTime).Seconds(),
	})
}

// HealthReady runs every readiness check. Any failure answers 503.
//
// @Summary Readiness probe
// @Description Returns 200 only when the Raider.io key is configured and the cache answers.
// @Tags Core
// @Produce json
// @Success 200 {object} models.APIResponse{data=HealthStatus} "Service is ready"
// @Failure 503 {object} models.APIResponse{data=HealthStatus} "Service is not ready"
// @Router /health/ready [get]
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ctx, cancel := context.WithTimeout(r.Context(), readyCheckTimeout)
	defer cancel()

	status := HealthStatus{
		Status: "ready",
		Uptime: time.Since(h.startTime).Seconds(),
		Checks: make(map[string]string, len(h.ready)),
	}
	for _, c := range h.ready {
		if err := c.Check(ctx); err != nil {
			status.Status = "not_ready"
			status.Checks[c.Name] = err.Error()
			continue
		}
		status.Checks[c.Name] = "ok"
	}

	code := http.StatusOK
	if status.Status != "ready" {
		code = http.StatusServiceUnavailable
	}
	respondJSON(w, code, &models.APIResponse{
		Status: "success",
		Data:   status,
		Metadata: models.Metadata{
			Timestamp:   time.Now(),
			QueryTimeMS: time.Since(start).Milliseconds(),
		},
	})
}
