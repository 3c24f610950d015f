// RaidProgress - World of Warcraft Raid Progress Aggregation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/raidprogress

package validation

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	// MaxRealmLength is the longest raw realm input accepted, in bytes.
	MaxRealmLength = 50

	// MaxGuilds caps the number of guild ids per query.
	MaxGuilds = 10
)

var (
	realmDisallowed = regexp.MustCompile(`[^a-z0-9\- ]+`)
	realmSpaces     = regexp.MustCompile(`\s+`)
	digitsOnly      = regexp.MustCompile(`^\d+$`)
)

// SanitizeRealm converts a realm name to its slug form:
//
//	"Twisting Nether!!" -> "twisting-nether"
//	"Aggra (Português)" -> "aggra-portugues"
//
// Inputs longer than MaxRealmLength bytes yield "".
func SanitizeRealm(realm string) string {
	if realm == "" || len(realm) > MaxRealmLength {
		return ""
	}

	realm = stripAccents(strings.TrimSpace(realm))
	realm = strings.ToLower(realm)
	realm = realmDisallowed.ReplaceAllString(realm, "")
	realm = realmSpaces.ReplaceAllString(strings.TrimSpace(realm), "-")
	return strings.Trim(realm, "-")
}

func stripAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// SplitGuildTokens splits raw guild input on commas. Tokens are trimmed,
// so "12345 67890" stays one (invalid) token.
func SplitGuildTokens(raw string) []string {
	var tokens []string
	for _, token := range strings.Split(raw, ",") {
		if token = strings.TrimSpace(token); token != "" {
			tokens = append(tokens, token)
		}
	}
	return tokens
}

// IsGuildID reports whether token is a positive integer.
func IsGuildID(token string) bool {
	return digitsOnly.MatchString(token) && strings.TrimLeft(token, "0") != ""
}

// SanitizeGuilds returns a comma-joined, deduplicated, order-preserving
// list of at most MaxGuilds numeric ids. Malformed tokens are dropped
// whole: "12345, 12345 ,67890abc" -> "12345".
func SanitizeGuilds(raw string) string {
	return strings.Join(GuildIDs(raw), ",")
}

// GuildIDs is SanitizeGuilds before joining.
func GuildIDs(raw string) []string {
	seen := make(map[string]struct{})
	ids := make([]string, 0, MaxGuilds)
	for _, token := range SplitGuildTokens(raw) {
		if !digitsOnly.MatchString(token) {
			continue
		}
		if _, dup := seen[token]; dup {
			continue
		}
		seen[token] = struct{}{}
		ids = append(ids, token)
		if len(ids) == MaxGuilds {
			break
		}
	}
	return ids
}
