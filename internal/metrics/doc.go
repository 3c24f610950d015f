// RaidProgress - World of Warcraft Raid Progress Aggregation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/raidprogress

/*
Package metrics provides Prometheus collectors for the progress service.

# Overview

The package exposes metrics for:
  - HTTP API latency and throughput
  - Upstream calls to Raider.io and the Blizzard Game Data API, by outcome
  - Cache hits, misses and writes per backend
  - Calls suppressed by the negative (error) cache
  - OAuth token exchanges per region
  - Circuit breaker state transitions
  - Progress resolutions and explicit-tier fallbacks
  - Icon resolution by the step that answered

# Metrics Endpoint

Metrics are exposed at /metrics in Prometheus text format:

	curl http://localhost:3857/metrics

All collectors are registered with the default registry through promauto.
*/
package metrics
