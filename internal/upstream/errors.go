// RaidProgress - World of Warcraft Raid Progress Aggregation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/raidprogress

package upstream

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/raidprogress/internal/cache"
)

// Kind classifies an upstream failure.
type Kind string

const (
	KindConnection      Kind = "connection"
	KindUnauthorized    Kind = "http_401"
	KindForbidden       Kind = "http_403"
	KindHTTPNotFound    Kind = "http_404"
	KindRateLimited     Kind = "http_429"
	KindServer          Kind = "http_5xx"
	KindHTTP            Kind = "http_other"
	KindParse           Kind = "parse"
	KindInvalidResponse Kind = "invalid_response"
	KindConfig          Kind = "config"
	KindNotFound        Kind = "not_found"
	KindInvalidInput    Kind = "invalid_input"
)

// Error is the only error type returned across client boundaries. The
// exported fields are what the negative cache persists.
type Error struct {
	Kind    Kind   `json:"kind"`
	Status  int    `json:"status,omitempty"`
	Message string `json:"message"`

	// Cached is set when the error was replayed from the negative cache.
	Cached bool `json:"-"`

	Err error `json:"-"`
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsRateLimit reports whether the upstream asked us to slow down.
func (e *Error) IsRateLimit() bool {
	return e != nil && e.Kind == KindRateLimited
}

// NegativeTTL is how long the error should suppress identical calls.
// Zero means the error must not be cached.
func (e *Error) NegativeTTL() time.Duration {
	switch e.Kind {
	case KindRateLimited:
		return cache.RateLimitErrorTTL
	case KindConnection, KindUnauthorized, KindForbidden, KindHTTPNotFound, KindServer, KindHTTP:
		return cache.ErrorTTL
	default:
		return 0
	}
}

// As extracts an *Error from err.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// Wrap returns err as an *Error, classifying unknown errors as connection
// failures (context deadlines, transport errors).
func Wrap(err error) *Error {
	if err == nil {
		return nil
	}
	if e, ok := As(err); ok {
		return e
	}
	return &Error{Kind: KindConnection, Message: err.Error(), Err: err}
}

// Connection reports a transport failure talking to service.
func Connection(service string, err error) *Error {
	return &Error{
		Kind:    KindConnection,
		Message: fmt.Sprintf("Failed to connect to %s API: %v", service, err),
		Err:     err,
	}
}

// FromResponse classifies a non-200 response.
func FromResponse(service string, status int, body []byte) *Error {
	return &Error{
		Kind:    KindForStatus(status),
		Status:  status,
		Message: fmt.Sprintf("%s API error (HTTP %d): %s", service, status, DescribeStatus(status, body)),
	}
}

// Parse reports a malformed 200 body.
func Parse(service string, err error) *Error {
	return &Error{
		Kind:    KindParse,
		Message: fmt.Sprintf("Failed to parse %s API response: %v", service, err),
		Err:     err,
	}
}

// InvalidResponse reports a well-formed body missing a required field.
func InvalidResponse(service, field string) *Error {
	return &Error{
		Kind:    KindInvalidResponse,
		Message: fmt.Sprintf("Invalid response from %s API: missing %q", service, field),
	}
}

// Config reports missing credentials or settings.
func Config(message string) *Error {
	return &Error{Kind: KindConfig, Message: message}
}

// NotFound reports a semantic miss, such as a raid absent from the catalog.
func NotFound(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// InvalidInput reports a bad argument.
func InvalidInput(format string, args ...interface{}) *Error {
	return &Error{Kind: KindInvalidInput, Message: fmt.Sprintf(format, args...)}
}

// KindForStatus maps an HTTP status to a Kind.
func KindForStatus(status int) Kind {
	switch {
	case status == http.StatusUnauthorized:
		return KindUnauthorized
	case status == http.StatusForbidden:
		return KindForbidden
	case status == http.StatusNotFound:
		return KindHTTPNotFound
	case status == http.StatusTooManyRequests:
		return KindRateLimited
	case status >= 500 && status <= 599:
		return KindServer
	default:
		return KindHTTP
	}
}

// DescribeStatus renders the user-facing explanation for a failed call,
// pulling detail from the body's "error" or "message" field when present.
func DescribeStatus(status int, body []byte) string {
	detail := extractDetail(body)
	or := func(fallback string) string {
		if detail != "" {
			return detail
		}
		return fallback
	}

	switch status {
	case http.StatusUnauthorized:
		return "API authentication failed. Please check your API key. Details: " + or("Invalid or expired API key")
	case http.StatusForbidden:
		return "Access forbidden. Please verify API key permissions. Details: " + or("Insufficient permissions")
	case http.StatusNotFound:
		return "Resource not found. Please check raid name and parameters. Details: " + or("The requested raid or guild was not found")
	case http.StatusTooManyRequests:
		return "API rate limit exceeded. Please try again in a few minutes."
	case http.StatusInternalServerError, http.StatusBadGateway, http.StatusServiceUnavailable:
		return "API server error. The service may be temporarily unavailable. Details: " + or("Please try again later")
	default:
		return fmt.Sprintf("API Error (HTTP %d): %s", status, or("Unknown error occurred"))
	}
}

func extractDetail(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	var payload struct {
		Error   json.RawMessage `json:"error"`
		Message string          `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if len(payload.Error) > 0 {
		var s string
		if err := json.Unmarshal(payload.Error, &s); err == nil && s != "" {
			return s
		}
		var obj struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(payload.Error, &obj); err == nil && obj.Message != "" {
			return obj.Message
		}
	}
	return payload.Message
}
