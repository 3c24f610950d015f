// RaidProgress - World of Warcraft Raid Progress Aggregation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/raidprogress

package validation

import (
	"strings"
	"testing"
)

func TestSanitizeRealm(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"punctuation dropped", "Twisting Nether!!", "twisting-nether"},
		{"accents stripped", "Aggra (Português)", "aggra-portugues"},
		{"umlaut", "Der Rat von Dalaran", "der-rat-von-dalaran"},
		{"already slug", "silvermoon", "silvermoon"},
		{"collapse spaces", "  Burning   Legion  ", "burning-legion"},
		{"edge hyphens trimmed", "-Draenor-", "draenor"},
		{"apostrophe", "Mal'Ganis", "malganis"},
		{"empty", "", ""},
		{"only symbols", "!!!", ""},
		{"too long", strings.Repeat("a", 51), ""},
		{"exactly fifty", strings.Repeat("b", 50), strings.Repeat("b", 50)},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := SanitizeRealm(tt.input); got != tt.want {
				t.Errorf("SanitizeRealm(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSanitizeRealmOutputShape(t *testing.T) {
	t.Parallel()

	inputs := []string{"Äzjol-Nerub", "Kel'Thuzad", "Area 52", "Ravencrest  ", "Zul'jin --", "Ñoño Realm"}
	for _, in := range inputs {
		out := SanitizeRealm(in)
		if out != strings.ToLower(out) {
			t.Errorf("%q: output %q not lowercase", in, out)
		}
		if strings.HasPrefix(out, "-") || strings.HasSuffix(out, "-") {
			t.Errorf("%q: output %q has edge hyphen", in, out)
		}
		for _, r := range out {
			if !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '-') {
				t.Errorf("%q: output %q contains %q", in, out, r)
			}
		}
	}
}

func TestSanitizeGuilds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"malformed token dropped whole", "12345, 12345 ,67890abc", "12345"},
		{"order preserved", "3,1,2", "3,1,2"},
		{"whitespace is not a separator", "10 20,30", "30"},
		{"duplicates removed", "5,5,5,6", "5,6"},
		{"empty", "", ""},
		{"only junk", "abc, -1, 1.5", ""},
		{"capped at ten", "1,2,3,4,5,6,7,8,9,10,11,12", "1,2,3,4,5,6,7,8,9,10"},
	}

	for _, tt := range tests {
		if got := SanitizeGuilds(tt.input); got != tt.want {
			t.Errorf("%s: SanitizeGuilds(%q) = %q, want %q", tt.name, tt.input, got, tt.want)
		}
	}
}

func TestSplitGuildTokens(t *testing.T) {
	t.Parallel()

	got := SplitGuildTokens(" 12345 67890 ,, 42 ")
	if len(got) != 2 || got[0] != "12345 67890" || got[1] != "42" {
		t.Errorf("SplitGuildTokens() = %q", got)
	}
}

func TestIsGuildID(t *testing.T) {
	t.Parallel()

	valid := []string{"1", "12345", "007"}
	invalid := []string{"", "0", "000", "-5", "12a", "1.0", " 1"}

	for _, v := range valid {
		if !IsGuildID(v) {
			t.Errorf("IsGuildID(%q) = false, want true", v)
		}
	}
	for _, v := range invalid {
		if IsGuildID(v) {
			t.Errorf("IsGuildID(%q) = true, want false", v)
		}
	}
}
