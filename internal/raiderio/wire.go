// RaidProgress - World of Warcraft Raid Progress Aggregation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/raidprogress

package raiderio

import "github.com/tomtom215/raidprogress/internal/models"

// Raider.io response shapes. Only the fields we use are declared; anything
// else in the payload is ignored.

type rankingsResponse struct {
	RaidRankings *[]rankingEntry `json:"raidRankings"`
}

type rankingEntry struct {
	Rank       int `json:"rank"`
	RegionRank int `json:"regionRank"`
	Guild      struct {
		ID      int    `json:"id"`
		Name    string `json:"name"`
		Faction string `json:"faction"`
		Realm   struct {
			Name string `json:"name"`
			Slug string `json:"slug"`
		} `json:"realm"`
		Region struct {
			Name      string `json:"name"`
			Slug      string `json:"slug"`
			ShortName string `json:"short_name"`
		} `json:"region"`
	} `json:"guild"`
	EncountersDefeated []struct {
		Slug string `json:"slug"`
	} `json:"encountersDefeated"`
	EncountersPulled []struct {
		Slug        string  `json:"slug"`
		NumPulls    int     `json:"numPulls"`
		BestPercent float64 `json:"bestPercent"`
	} `json:"encountersPulled"`
}

func (e rankingEntry) toModel() models.GuildRankingEntry {
	out := models.GuildRankingEntry{
		Rank:       e.Rank,
		RegionRank: e.RegionRank,
		Guild: models.Guild{
			ID:      e.Guild.ID,
			Name:    e.Guild.Name,
			Faction: e.Guild.Faction,
			Realm:   models.GuildRealm{Name: e.Guild.Realm.Name, Slug: e.Guild.Realm.Slug},
			Region: models.GuildRegion{
				Name:      e.Guild.Region.Name,
				Slug:      e.Guild.Region.Slug,
				ShortName: e.Guild.Region.ShortName,
			},
		},
		EncountersDefeated: make([]string, 0, len(e.EncountersDefeated)),
	}

	seen := make(map[string]struct{}, len(e.EncountersDefeated))
	for _, d := range e.EncountersDefeated {
		if d.Slug == "" {
			continue
		}
		if _, dup := seen[d.Slug]; dup {
			continue
		}
		seen[d.Slug] = struct{}{}
		out.EncountersDefeated = append(out.EncountersDefeated, d.Slug)
	}

	if len(e.EncountersPulled) > 0 {
		out.EncountersPulled = make(map[string]models.EncounterPull, len(e.EncountersPulled))
		for _, p := range e.EncountersPulled {
			if p.Slug == "" {
				continue
			}
			out.EncountersPulled[p.Slug] = models.EncounterPull{NumPulls: p.NumPulls, BestPercent: p.BestPercent}
		}
	}
	return out
}

type staticDataResponse struct {
	Raids *[]staticRaid `json:"raids"`
}

type staticRaid struct {
	ID         int    `json:"id"`
	Slug       string `json:"slug"`
	Name       string `json:"name"`
	ShortName  string `json:"short_name"`
	Encounters []struct {
		ID   int    `json:"id"`
		Slug string `json:"slug"`
		Name string `json:"name"`
	} `json:"encounters"`
}

func (r staticRaid) toModel() models.RaidCatalogEntry {
	out := models.RaidCatalogEntry{
		ID:         r.ID,
		Slug:       r.Slug,
		Name:       r.Name,
		ShortName:  r.ShortName,
		Encounters: make([]models.Encounter, 0, len(r.Encounters)),
	}
	for _, e := range r.Encounters {
		out.Encounters = append(out.Encounters, models.Encounter{ID: e.ID, Slug: e.Slug, Name: e.Name})
	}
	return out
}
