// RaidProgress - World of Warcraft Raid Progress Aggregation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/raidprogress

/*
Package upstream holds what the Raider.io and Blizzard clients share: the
error taxonomy, the Result type and a rate-limited, circuit-broken HTTP
caller.

# Error Taxonomy

	connection        network failure or timeout (negative-cached 120s)
	http_401/403/404  auth, permission and lookup failures (120s)
	http_429          rate limited (300s)
	http_5xx          upstream server errors (120s)
	http_other        any other non-200 (120s)
	parse             malformed 200 body (never cached)
	invalid_response  well-formed body missing a required field
	config            missing credentials, returned immediately
	not_found         semantic miss such as a raid absent from the catalog

Every client returns *Error through the error interface; use As to inspect
it.
*/
package upstream
