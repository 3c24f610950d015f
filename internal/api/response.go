// RaidProgress - World of Warcraft Raid Progress Aggregation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/raidprogress

package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/raidprogress/internal/logging"
	"github.com/tomtom215/raidprogress/internal/models"
	"github.com/tomtom215/raidprogress/internal/upstream"
	"github.com/tomtom215/raidprogress/internal/validation"
)

// Error codes for API responses
const (
	ErrCodeBadRequest          = "BAD_REQUEST"
	ErrCodeValidation          = "VALIDATION_ERROR"
	ErrCodeNotFound            = "NOT_FOUND"
	ErrCodeTooManyRequests     = "TOO_MANY_REQUESTS"
	ErrCodeInternalError       = "INTERNAL_ERROR"
	ErrCodeServiceUnavailable  = "SERVICE_UNAVAILABLE"
	ErrCodeExternalServiceFail = "EXTERNAL_SERVICE_FAILED"
)

// sanitizeLogValue escapes control characters so user input cannot forge
// log lines.
func sanitizeLogValue(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			fmt.Fprintf(&b, "\\x%02x", r)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// respondJSON writes response with status.
func respondJSON(w http.ResponseWriter, status int, response *models.APIResponse) {
	data, err := json.Marshal(response)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// respondSuccess wraps data in a success envelope.
func respondSuccess(w http.ResponseWriter, start time.Time, data interface{}) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   data,
		Metadata: models.Metadata{
			Timestamp:   time.Now(),
			QueryTimeMS: time.Since(start).Milliseconds(),
		},
	})
}

// respondError sends an error response. err, when set, is logged.
func respondError(w http.ResponseWriter, r *http.Request, status int, code, message string, err error) {
	if err != nil {
		logging.Ctx(r.Context()).Error().
			Str("code", code).
			Str("path", sanitizeLogValue(r.URL.Path)).
			Str("error", sanitizeLogValue(err.Error())).
			Msg("API error")
	}

	respondJSON(w, status, &models.APIResponse{
		Status:   "error",
		Metadata: models.Metadata{Timestamp: time.Now()},
		Error: &models.APIError{
			Code:    code,
			Message: message,
		},
	})
}

// respondValidation sends the validator's field errors as a 400.
func respondValidation(w http.ResponseWriter, verr *validation.RequestValidationError) {
	apiErr := verr.ToAPIError()
	respondJSON(w, http.StatusBadRequest, &models.APIResponse{
		Status:   "error",
		Metadata: models.Metadata{Timestamp: time.Now()},
		Error: &models.APIError{
			Code:    ErrCodeValidation,
			Message: apiErr.Message,
			Details: apiErr.Details,
		},
	})
}

// respondUpstreamError maps an error from the clients or the aggregator to
// an HTTP status by its kind.
func respondUpstreamError(w http.ResponseWriter, r *http.Request, err error) {
	var e *upstream.Error
	if !errors.As(err, &e) {
		respondError(w, r, http.StatusInternalServerError, ErrCodeInternalError, "Internal server error", err)
		return
	}

	switch e.Kind {
	case upstream.KindInvalidInput:
		respondError(w, r, http.StatusBadRequest, ErrCodeBadRequest, e.Message, nil)
	case upstream.KindNotFound:
		respondError(w, r, http.StatusNotFound, ErrCodeNotFound, e.Message, nil)
	case upstream.KindConfig:
		respondError(w, r, http.StatusServiceUnavailable, ErrCodeServiceUnavailable, e.Message, nil)
	case upstream.KindRateLimited:
		respondError(w, r, http.StatusTooManyRequests, ErrCodeTooManyRequests, e.Message, nil)
	default:
		respondError(w, r, http.StatusBadGateway, ErrCodeExternalServiceFail, e.Message, err)
	}
}
