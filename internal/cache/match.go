// RaidProgress - World of Warcraft Raid Progress Aggregation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/raidprogress

package cache

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// compilePattern validates a glob and returns a matcher plus the literal
// prefix before the first metacharacter, used to narrow iteration.
func compilePattern(pattern string) (func(string) bool, string, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, "", fmt.Errorf("invalid cache pattern %q", pattern)
	}
	prefix := pattern
	if i := strings.IndexAny(pattern, `*?[{\`); i >= 0 {
		prefix = pattern[:i]
	}
	return func(key string) bool {
		ok, err := doublestar.Match(pattern, key)
		return err == nil && ok
	}, prefix, nil
}
