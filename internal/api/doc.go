// RaidProgress - World of Warcraft Raid Progress Aggregation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/raidprogress

/*
Package api provides the HTTP surface of RaidProgress using the chi router.

# Routes

Public (rate limited, CORS enabled):

	GET  /api/v1/health/live          liveness
	GET  /api/v1/health/ready         readiness checks
	GET  /api/v1/progress             aggregated raid progress
	GET  /api/v1/expansions           supported expansions
	GET  /api/v1/raids?expansion=     raids of an expansion
	GET  /api/v1/realms?region=       realm list from the Game Data API
	GET  {media.public_path}/{id}     stored icon blobs
	GET  /metrics                     Prometheus

Admin (Authorization: Bearer <ADMIN_TOKEN>, not mounted without a token):

	GET    /api/v1/admin/cache/stats
	POST   /api/v1/admin/cache/clear
	POST   /api/v1/admin/raids/refresh?expansion=
	POST   /api/v1/admin/icons/import?raid=&expansion=
	DELETE /api/v1/admin/icons
	GET    /api/v1/admin/blizzard/test
	GET    /api/v1/admin/debug-log
	DELETE /api/v1/admin/debug-log

# Responses

Every JSON endpoint answers with models.APIResponse:

	{"status": "success", "data": {...}, "metadata": {"timestamp": "...", "query_time_ms": 12}}

Upstream failures are mapped to HTTP statuses by their kind: invalid input
is 400, unknown raids 404, missing credentials 503, upstream rate limiting
429 and any other upstream failure 502. Per-guild failures inside a
progress view are not errors; they are notices on the affected scope.
*/
package api
