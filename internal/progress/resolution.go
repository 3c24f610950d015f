// RaidProgress - World of Warcraft Raid Progress Aggregation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/raidprogress

package progress

import (
	"context"
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/raidprogress/internal/logging"
	"github.com/tomtom215/raidprogress/internal/metrics"
	"github.com/tomtom215/raidprogress/internal/models"
	"github.com/tomtom215/raidprogress/internal/upstream"
)

// Notice kinds not derived from an upstream.Kind.
const (
	NoticeInvalidGuild = "invalid_guild"
	NoticeNoData       = "no_data"
)

type tierResult = upstream.Result[*models.RankingResult]

// resolution carries the per-request state shared by every scope.
type resolution struct {
	agg     *Aggregator
	req     Request
	raid    *models.RaidCatalogEntry
	base    models.RankingQuery
	bossIco map[string]string
}

func (r *resolution) query(sc scope, tier models.Difficulty) models.RankingQuery {
	q := r.base
	q.Difficulty = tier
	if sc.guild != "" {
		q.Guilds = sc.guild
		q.Realm = ""
		q.Limit = guildQueryLimit
		q.Page = guildQueryPage
	}
	return q
}

func (r *resolution) fetch(ctx context.Context, sc scope, tier models.Difficulty) tierResult {
	return upstream.From(r.agg.rankings.FetchRankings(ctx, r.query(sc, tier), r.req.CacheTTL))
}

// fetchAll fetches the three tiers concurrently.
func (r *resolution) fetchAll(ctx context.Context, sc scope) map[models.Difficulty]tierResult {
	results := make([]tierResult, len(models.Tiers))
	g, gctx := errgroup.WithContext(ctx)
	for i, tier := range models.Tiers {
		g.Go(func() error {
			results[i] = r.fetch(gctx, sc, tier)
			return nil
		})
	}
	_ = g.Wait()

	out := make(map[models.Difficulty]tierResult, len(results))
	for i, tier := range models.Tiers {
		out[tier] = results[i]
	}
	return out
}

func (r *resolution) resolveScope(ctx context.Context, sc scope) models.ScopeProgress {
	out := models.ScopeProgress{GuildID: sc.guild, Sections: []models.SectionProgress{}}
	if sc.invalid {
		out.Notices = append(out.Notices, models.Notice{
			Kind:    NoticeInvalidGuild,
			Message: fmt.Sprintf("Invalid guild ID: %s", sc.guild),
		})
		return out
	}

	switch r.req.Difficulty {
	case models.DifficultyAll:
		r.resolveAll(ctx, sc, &out)
	case models.DifficultyHighest:
		r.resolveHighest(ctx, sc, &out)
	default:
		r.resolveExplicit(ctx, sc, &out)
	}
	return out
}

// resolveAll renders one section per tier. Each grid uses only its own
// tier; the identity panel falls back to lower tiers.
func (r *resolution) resolveAll(ctx context.Context, sc scope, out *models.ScopeProgress) {
	results := r.fetchAll(ctx, sc)

	for _, tier := range displayOrder {
		if res := results[tier]; !res.OK() {
			r.surface(ctx, out, sc, tier, res.Err)
		}
	}
	if !anyIdentity(results) {
		r.noData(out, sc)
		return
	}

	for _, tier := range displayOrder {
		entry, idResult, from := identity(results, tier)
		if entry == nil {
			r.tierNoData(out, sc, tier)
			continue
		}
		out.Sections = append(out.Sections, r.section(tier, results[tier].Value, entry, idResult, from, sc))
	}
}

// resolveHighest renders the single tier chosen by SelectHighest. The
// grid uses that tier's data only, even when empty.
func (r *resolution) resolveHighest(ctx context.Context, sc scope, out *models.ScopeProgress) {
	results := r.fetchAll(ctx, sc)

	defeated := make(map[models.Difficulty]int, len(results))
	for tier, res := range results {
		if res.OK() {
			defeated[tier] = r.defeatedCount(res.Value.First())
		}
	}
	target := SelectHighest(defeated, len(r.raid.Encounters))

	if res := results[target]; !res.OK() {
		r.surface(ctx, out, sc, target, res.Err)
	}
	if !anyIdentity(results) {
		r.noData(out, sc)
		return
	}

	entry, idResult, from := identity(results, target)
	if entry == nil {
		r.tierNoData(out, sc, target)
		return
	}
	out.Sections = append(out.Sections, r.section(target, results[target].Value, entry, idResult, from, sc))
}

// resolveExplicit walks the fallback ladder of the requested tier and
// renders the first tier with entries. Grid and identity both come from
// that tier.
func (r *resolution) resolveExplicit(ctx context.Context, sc scope, out *models.ScopeProgress) {
	requested := r.req.Difficulty

	type tierErr struct {
		tier models.Difficulty
		err  *upstream.Error
	}
	var failures []tierErr

	for _, tier := range FallbackOrder[requested] {
		res := r.fetch(ctx, sc, tier)
		if !res.OK() {
			failures = append(failures, tierErr{tier, res.Err})
			continue
		}
		if res.Value.Empty() {
			continue
		}

		sec := r.section(tier, res.Value, res.Value.First(), res.Value, tier, sc)
		if tier != requested {
			sec.FallbackFrom = requested
			metrics.TierFallbacks.WithLabelValues(string(requested), string(tier)).Inc()
		}
		out.Sections = append(out.Sections, sec)
		return
	}

	for _, f := range failures {
		r.surface(ctx, out, sc, f.tier, f.err)
	}

	r.tierNoData(out, sc, requested)
}

// tierNoData reports a tier for which neither it nor any lower tier
// names a guild.
func (r *resolution) tierNoData(out *models.ScopeProgress, sc scope, tier models.Difficulty) {
	msg := fmt.Sprintf("No %s data found for %s (and no lower-tier data either)", tier.Label(), r.raid.Name)
	if sc.guild != "" {
		msg = fmt.Sprintf("No %s data found for guild %s in %s (and no lower-tier data either)", tier.Label(), sc.guild, r.raid.Name)
	}
	out.Notices = append(out.Notices, models.Notice{Difficulty: tier, Kind: NoticeNoData, Message: msg})
}

// surface adds err to the scope's notices. Rate limits are only logged.
func (r *resolution) surface(ctx context.Context, out *models.ScopeProgress, sc scope, tier models.Difficulty, err *upstream.Error) {
	if err.IsRateLimit() {
		logging.Ctx(ctx).Warn().
			Str("raid", r.raid.Slug).
			Str("difficulty", string(tier)).
			Str("guild", sc.guild).
			Bool("cached", err.Cached).
			Msg("Suppressed rate limit error")
		return
	}

	msg := fmt.Sprintf("Error loading %s data: %s", tier.Label(), err.Message)
	if sc.guild != "" {
		msg = fmt.Sprintf("Error loading %s data for guild %s: %s", tier.Label(), sc.guild, err.Message)
	}
	out.Notices = append(out.Notices, models.Notice{Difficulty: tier, Kind: string(err.Kind), Message: msg})
}

func (r *resolution) noData(out *models.ScopeProgress, sc scope) {
	msg := fmt.Sprintf("No data found for %s at any difficulty", r.raid.Name)
	if sc.guild != "" {
		msg = fmt.Sprintf("No data found for guild %s in %s at any difficulty", sc.guild, r.raid.Name)
	}
	out.Notices = append(out.Notices, models.Notice{Kind: NoticeNoData, Message: msg})
}

// identity finds the first tier at or below from whose leading entry
// names a guild.
func identity(results map[models.Difficulty]tierResult, from models.Difficulty) (*models.GuildRankingEntry, *models.RankingResult, models.Difficulty) {
	for _, tier := range FallbackOrder[from] {
		res := results[tier]
		if !res.OK() {
			continue
		}
		if entry := res.Value.First(); entry.HasIdentity() {
			return entry, res.Value, tier
		}
	}
	return nil, nil, ""
}

func anyIdentity(results map[models.Difficulty]tierResult) bool {
	entry, _, _ := identity(results, models.DifficultyMythic)
	return entry != nil
}

// section builds one displayed tier. grid may be nil.
func (r *resolution) section(tier models.Difficulty, grid *models.RankingResult, entry *models.GuildRankingEntry, idResult *models.RankingResult, from models.Difficulty, sc scope) models.SectionProgress {
	gridEntry := grid.First()
	sec := models.SectionProgress{
		Difficulty: tier,
		Total:      len(r.raid.Encounters),
		Defeated:   r.defeatedCount(gridEntry),
		Bosses:     r.bosses(gridEntry),
	}
	if sec.Total > 0 {
		sec.Percent = math.Round(float64(sec.Defeated)/float64(sec.Total)*1000) / 10
	}

	if entry != nil {
		guild := entry.Guild
		sec.Guild = &guild
		sec.IdentityFrom = from
		sec.Rank = entry.Rank
		sec.RegionRank = entry.RegionRank
		if sc.guild != "" {
			sec.WorldRank = idResult.WorldRank
		}
	}

	if sc.guild == "" && !grid.Empty() {
		sec.Standings = make([]models.Standing, 0, len(grid.Entries))
		for i := range grid.Entries {
			e := &grid.Entries[i]
			sec.Standings = append(sec.Standings, models.Standing{Rank: e.Rank, Guild: e.Guild, Defeated: r.defeatedCount(e)})
		}
	}
	return sec
}

func (r *resolution) bosses(entry *models.GuildRankingEntry) []models.BossEntry {
	out := make([]models.BossEntry, 0, len(r.raid.Encounters))
	for _, enc := range r.raid.Encounters {
		b := models.BossEntry{
			Slug:   enc.Slug,
			Name:   enc.Name,
			Status: models.BossNotStarted,
			IconID: r.bossIco[enc.Slug],
		}
		if entry != nil {
			pull, pulled := entry.EncountersPulled[enc.Slug]
			if pulled {
				b.NumPulls = pull.NumPulls
				b.BestPercent = pull.BestPercent
			}
			switch {
			case entry.Defeated(enc.Slug):
				b.Status = models.BossDefeated
			case pulled && pull.NumPulls > 0:
				b.Status = models.BossInProgress
			}
		}
		out = append(out, b)
	}
	return out
}

// defeatedCount counts the raid's bosses killed by entry. Slugs outside
// the roster are ignored.
func (r *resolution) defeatedCount(entry *models.GuildRankingEntry) int {
	if entry == nil {
		return 0
	}
	n := 0
	for _, enc := range r.raid.Encounters {
		if entry.Defeated(enc.Slug) {
			n++
		}
	}
	return n
}
