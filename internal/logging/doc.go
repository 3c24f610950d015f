// RaidProgress - World of Warcraft Raid Progress Aggregation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/raidprogress

/*
Package logging wraps zerolog as the process-wide structured logger.

# Usage

	logging.Init(logging.Config{Level: "debug", Format: "console"})
	logging.Info().Str("region", "eu").Msg("Token refreshed")

Request handlers should prefer logging.Ctx(ctx), which adds the request and
correlation ids injected by the HTTP middleware.

# Debug Ring

With DebugMode enabled every event at debug level or above is also copied
into a bounded ring (100 events, one hour). The admin API exposes it so an
operator can inspect recent upstream failures without shell access.

# slog Bridge

NewSlogLogger adapts the global logger for libraries that take a
*slog.Logger, such as the suture supervisor.
*/
package logging
