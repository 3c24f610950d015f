// RaidProgress - World of Warcraft Raid Progress Aggregation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/raidprogress

package progress

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/raidprogress/internal/logging"
	"github.com/tomtom215/raidprogress/internal/metrics"
	"github.com/tomtom215/raidprogress/internal/models"
	"github.com/tomtom215/raidprogress/internal/raiderio"
	"github.com/tomtom215/raidprogress/internal/upstream"
	"github.com/tomtom215/raidprogress/internal/validation"
)

const (
	// guildQueryLimit and guildQueryPage are used for every per-guild
	// ranking query regardless of the request's paging.
	guildQueryLimit = 50
	guildQueryPage  = 0

	// iconConcurrency bounds parallel boss icon lookups.
	iconConcurrency = 4
)

// RankingFetcher fetches one ranking.
type RankingFetcher interface {
	FetchRankings(ctx context.Context, q models.RankingQuery, ttl time.Duration) (*models.RankingResult, error)
}

// CatalogFetcher fetches the raid catalog of an expansion.
type CatalogFetcher interface {
	FetchCatalog(ctx context.Context, expansionID int, ttl time.Duration) (*models.RaidCatalog, error)
}

// IconResolver supplies icon ids and header images. Lookups never fail;
// a missing icon is reported as absent.
type IconResolver interface {
	BossIcon(ctx context.Context, expansionID int, raidSlug, bossSlug, bossName string) (string, bool)
	RaidIcon(ctx context.Context, expansionID int, raidSlug string) (string, bool)
	HeaderImage(ctx context.Context, raidName string) string
}

// Request is one progress resolution.
type Request struct {
	Raid        string
	Difficulty  models.Difficulty
	Region      string
	Realm       string
	Guilds      string
	ExpansionID int
	CacheTTL    time.Duration
	Limit       int
	Page        int
	Icons       bool
}

// Aggregator answers progress requests by combining rankings across
// difficulty tiers with the raid's boss roster.
type Aggregator struct {
	rankings RankingFetcher
	catalog  CatalogFetcher
	icons    IconResolver
}

// NewAggregator builds an Aggregator. icons may be nil.
func NewAggregator(rankings RankingFetcher, catalog CatalogFetcher, icons IconResolver) *Aggregator {
	return &Aggregator{rankings: rankings, catalog: catalog, icons: icons}
}

// Resolve builds the progress view for req.
//
// Only request validation and catalog failures are returned as errors.
// Ranking failures, invalid guild ids and missing data are reported as
// notices on the affected scope while the other scopes resolve normally.
func (a *Aggregator) Resolve(ctx context.Context, req Request) (*models.RenderableProgress, error) {
	start := time.Now()
	mode := modeLabel(req.Difficulty)

	out, err := a.resolve(ctx, req)

	outcome := "resolved"
	switch {
	case err != nil:
		outcome = "error"
	case hasNotices(out):
		outcome = "partial"
	}
	metrics.RecordResolution(mode, outcome, time.Since(start))

	return out, err
}

func hasNotices(p *models.RenderableProgress) bool {
	for _, s := range p.Scopes {
		if len(s.Notices) > 0 {
			return true
		}
	}
	return false
}

func (a *Aggregator) resolve(ctx context.Context, req Request) (*models.RenderableProgress, error) {
	base := raiderio.NewQuery(req.Raid, models.DifficultyNormal, req.Region, req.Realm, "", req.Limit, req.Page)
	if base.Raid == "" {
		return nil, upstream.InvalidInput("Raid slug is required")
	}
	if !req.Difficulty.Valid() {
		return nil, upstream.InvalidInput("Invalid difficulty %q", req.Difficulty)
	}
	if !models.IsRankingRegion(base.Region) {
		return nil, upstream.InvalidInput("Invalid region %q", req.Region)
	}

	catalog, err := a.catalog.FetchCatalog(ctx, req.ExpansionID, req.CacheTTL)
	if err != nil {
		return nil, err
	}
	raid, ok := catalog.FindRaid(base.Raid)
	if !ok {
		return nil, upstream.NotFound("Raid %q not found", base.Raid)
	}

	progress := &models.RenderableProgress{
		Raid: models.RaidInfo{
			Slug:        raid.Slug,
			Name:        raid.Name,
			TotalBosses: len(raid.Encounters),
		},
		Requested: req.Difficulty,
		Region:    base.Region,
		Realm:     base.Realm,
	}

	r := &resolution{
		agg:     a,
		req:     req,
		raid:    raid,
		base:    base,
		bossIco: map[string]string{},
	}
	if req.Icons && a.icons != nil {
		r.loadIcons(ctx, progress)
	}

	scopes := r.scopes()
	progress.Scopes = make([]models.ScopeProgress, len(scopes))

	g, gctx := errgroup.WithContext(ctx)
	for i, sc := range scopes {
		g.Go(func() error {
			progress.Scopes[i] = r.resolveScope(gctx, sc)
			return nil
		})
	}
	_ = g.Wait()

	logging.Ctx(ctx).Debug().
		Str("raid", raid.Slug).
		Str("difficulty", string(req.Difficulty)).
		Int("scopes", len(progress.Scopes)).
		Msg("Resolved raid progress")
	return progress, nil
}

// scope is one guild, or the realm/region when guild is empty.
type scope struct {
	guild   string
	invalid bool
}

// scopes splits the guild list. Invalid tokens keep their position so
// their notices appear where the user typed them; valid ids are
// deduplicated and capped.
func (r *resolution) scopes() []scope {
	tokens := validation.SplitGuildTokens(r.req.Guilds)
	if len(tokens) == 0 {
		return []scope{{}}
	}

	seen := make(map[string]struct{}, len(tokens))
	var out []scope
	valid := 0
	for _, token := range tokens {
		if !validation.IsGuildID(token) {
			out = append(out, scope{guild: token, invalid: true})
			continue
		}
		if _, dup := seen[token]; dup || valid == validation.MaxGuilds {
			continue
		}
		seen[token] = struct{}{}
		valid++
		out = append(out, scope{guild: token})
	}
	return out
}

func (r *resolution) loadIcons(ctx context.Context, progress *models.RenderableProgress) {
	icons := r.agg.icons
	if id, ok := icons.RaidIcon(ctx, r.req.ExpansionID, r.raid.Slug); ok {
		progress.Raid.IconID = id
	}
	progress.Raid.HeaderImageURL = icons.HeaderImage(ctx, r.raid.Name)

	ids := make([]string, len(r.raid.Encounters))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(iconConcurrency)
	for i, boss := range r.raid.Encounters {
		g.Go(func() error {
			if id, ok := icons.BossIcon(gctx, r.req.ExpansionID, r.raid.Slug, boss.Slug, boss.Name); ok {
				ids[i] = id
			}
			return nil
		})
	}
	_ = g.Wait()

	for i, boss := range r.raid.Encounters {
		if ids[i] != "" {
			r.bossIco[boss.Slug] = ids[i]
		}
	}
}

func modeLabel(d models.Difficulty) string {
	switch d {
	case models.DifficultyAll, models.DifficultyHighest:
		return string(d)
	default:
		return "explicit"
	}
}
