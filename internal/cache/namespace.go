// RaidProgress - World of Warcraft Raid Progress Aggregation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/raidprogress

package cache

import (
	"context"
	"crypto/sha256"
	"fmt"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

// Namespace groups keys by concern so they can be invalidated together.
type Namespace string

const (
	NSRanking     Namespace = "ranking"
	NSStatic      Namespace = "static"
	NSToken       Namespace = "token"
	NSIcon        Namespace = "icon"
	NSAchievement Namespace = "achievement"
	NSRealm       Namespace = "realm"
	NSJournal     Namespace = "journal"
)

// Namespaces lists every namespace, used by "clear all cache".
var Namespaces = []Namespace{NSRanking, NSStatic, NSToken, NSIcon, NSAchievement, NSRealm, NSJournal}

// Common TTLs.
const (
	StaticMinTTL      = 24 * time.Hour
	AchievementTTL    = 30 * 24 * time.Hour
	IconTTL           = 30 * 24 * time.Hour
	RealmTTL          = 24 * time.Hour
	JournalTTL        = 30 * 24 * time.Hour
	ErrorTTL          = 120 * time.Second
	RateLimitErrorTTL = 300 * time.Second
)

const keySep = ":"

var keyReplacer = strings.NewReplacer("/", "_", ":", "_", " ", "_", "*", "_", "?", "_", "[", "_", "]", "_", "{", "_", "}", "_", "\\", "_")

// Key builds "<namespace>:<part>:<part>...". Parts are scrubbed of
// separators and glob metacharacters so namespace patterns stay exact.
//
// Example:
//
//	cache.Key(cache.NSIcon, "boss", "nerub-ar-palace", "ulgrax") // icon:boss:nerub-ar-palace:ulgrax
func Key(ns Namespace, parts ...string) string {
	var b strings.Builder
	b.WriteString(string(ns))
	for _, p := range parts {
		b.WriteString(keySep)
		b.WriteString(keyReplacer.Replace(p))
	}
	return b.String()
}

// Pattern matches every key in ns.
func Pattern(ns Namespace) string {
	return string(ns) + keySep + "*"
}

// ErrorKey derives the negative-cache key paired with a success key.
func ErrorKey(key string) string {
	return key + keySep + "error"
}

// Fingerprint hashes v's JSON encoding into a compact, deterministic key
// part. Map keys are sorted by the encoder, so equal values hash equally.
func Fingerprint(v interface{}) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	sum := sha256.Sum256(data)
	return fmt.Sprintf("%x", sum[:16])
}

// InvalidateNamespace removes every key in the given namespaces.
func InvalidateNamespace(ctx context.Context, s Store, namespaces ...Namespace) (int, error) {
	total := 0
	for _, ns := range namespaces {
		n, err := s.DeleteMatching(ctx, Pattern(ns))
		total += n
		if err != nil {
			return total, fmt.Errorf("invalidate %s: %w", ns, err)
		}
	}
	return total, nil
}

// GetJSON decodes the value under key into a T. Undecodable values are
// treated as misses.
func GetJSON[T any](ctx context.Context, s Store, key string) (T, bool) {
	var out T
	data, ok := s.Get(ctx, key)
	if !ok {
		return out, false
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, false
	}
	return out, true
}

// SetJSON encodes v and stores it. A ttl <= 0 skips the write.
func SetJSON(ctx context.Context, s Store, key string, v interface{}, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode cache value %s: %w", key, err)
	}
	return s.Set(ctx, key, data, ttl)
}
