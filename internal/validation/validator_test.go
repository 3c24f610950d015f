// RaidProgress - World of Warcraft Raid Progress Aggregation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/raidprogress

package validation

import (
	"strings"
	"testing"
)

type progressParams struct {
	Raid       string `query:"raid" validate:"required"`
	Difficulty string `query:"difficulty" validate:"difficulty"`
	Region     string `query:"region" validate:"ranking_region"`
	Guilds     string `query:"guilds" validate:"omitempty,guildids"`
	Expansion  int    `query:"expansion" validate:"expansion"`
	Limit      int    `query:"limit" validate:"min=1,max=100"`
}

func validParams() progressParams {
	return progressParams{
		Raid:       "liberation-of-undermine",
		Difficulty: "highest",
		Region:     "eu",
		Guilds:     "12345,67890",
		Expansion:  10,
		Limit:      50,
	}
}

func TestGetValidator_Singleton(t *testing.T) {
	if GetValidator() != GetValidator() {
		t.Error("GetValidator() should return the same instance")
	}
}

func TestValidateStruct(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		mutate    func(*progressParams)
		wantField string
	}{
		{"valid", func(*progressParams) {}, ""},
		{"world region", func(p *progressParams) { p.Region = "world" }, ""},
		{"missing raid", func(p *progressParams) { p.Raid = "" }, "raid"},
		{"bad difficulty", func(p *progressParams) { p.Difficulty = "lfr" }, "difficulty"},
		{"bad region", func(p *progressParams) { p.Region = "cn" }, "region"},
		{"bad guild", func(p *progressParams) { p.Guilds = "123,abc" }, "guilds"},
		{"zero guild", func(p *progressParams) { p.Guilds = "0" }, "guilds"},
		{"bad expansion", func(p *progressParams) { p.Expansion = 3 }, "expansion"},
		{"limit too high", func(p *progressParams) { p.Limit = 101 }, "limit"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p := validParams()
			tt.mutate(&p)

			err := ValidateStruct(p)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error on %s", tt.wantField)
			}
			if got := err.Errors()[0].Field(); got != tt.wantField {
				t.Errorf("field = %q, want %q", got, tt.wantField)
			}
			apiErr := err.ToAPIError()
			if apiErr.Code != "VALIDATION_ERROR" || !strings.Contains(apiErr.Message, tt.wantField) {
				t.Errorf("unexpected API error: %+v", apiErr)
			}
		})
	}
}

func TestValidateStruct_MultipleErrors(t *testing.T) {
	t.Parallel()

	p := validParams()
	p.Raid = ""
	p.Limit = 0

	err := ValidateStruct(p)
	if err == nil || len(err.Errors()) != 2 {
		t.Fatalf("expected 2 errors, got %v", err)
	}
	if _, ok := err.ToAPIError().Details["fields"]; !ok {
		t.Error("expected fields detail for multiple errors")
	}
}
