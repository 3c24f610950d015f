// RaidProgress - World of Warcraft Raid Progress Aggregation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/raidprogress

/*
Package middleware provides HTTP middleware for the RaidProgress API.

All middleware has the chi signature func(http.Handler) http.Handler:

  - RequestID: X-Request-ID propagation plus request and correlation ids
    in the logging context
  - PrometheusMetrics: request count, latency and in-flight gauge labelled
    by chi route pattern
  - AdminAuth: bearer token check for the admin routes

CORS and rate limiting come from go-chi/cors and go-chi/httprate and are
configured in internal/api.
*/
package middleware
