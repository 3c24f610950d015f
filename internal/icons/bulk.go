// RaidProgress - World of Warcraft Raid Progress Aggregation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/raidprogress

package icons

import (
	"context"
	"fmt"

	"github.com/tomtom215/raidprogress/internal/cache"
	"github.com/tomtom215/raidprogress/internal/logging"
	"github.com/tomtom215/raidprogress/internal/models"
	"github.com/tomtom215/raidprogress/internal/upstream"
)

// ImportBossIcons resolves every boss icon of a raid and reports what
// happened to each. Bosses are processed sequentially.
func (s *Service) ImportBossIcons(ctx context.Context, expansionID int, raidSlug string) ([]models.IconImportResult, error) {
	if s.achievements == nil {
		return nil, upstream.Config("Blizzard API is not configured")
	}
	raid, err := s.achievements.Raid(ctx, expansionID, raidSlug)
	if err != nil {
		return nil, err
	}

	results := make([]models.IconImportResult, 0, len(raid.Encounters))
	for _, boss := range raid.Encounters {
		id, source, err := s.resolveBoss(ctx, expansionID, raid.Slug, boss.Slug, boss.Name)
		result := models.IconImportResult{Boss: boss.Slug, Name: boss.Name, IconID: id}

		switch {
		case err != nil:
			result.Status = StatusError
			result.Message = err.Error()
		case source == SourceDownload:
			result.Status = StatusSuccess
			result.Message = "Icon imported"
		case source == SourceCache || source == SourceBlobStore:
			result.Status = StatusExists
			result.Message = "Icon already imported"
		default:
			result.Status = StatusUnavailable
			result.Message = "No icon available"
		}
		results = append(results, result)
	}

	logging.Ctx(ctx).Info().Str("raid", raidSlug).Int("bosses", len(results)).Msg("Boss icon import finished")
	return results, nil
}

// DeleteAll removes every imported icon from the blob store and forgets
// all cached icon ids. It returns the number of blobs deleted.
func (s *Service) DeleteAll(ctx context.Context) (int, error) {
	deleted := 0
	var firstErr error
	for _, id := range s.blobs.FindByTag(TagKind, "") {
		if err := s.blobs.Delete(id); err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("failed to delete icon %s: %w", id, err)
			}
			continue
		}
		deleted++
	}

	if _, err := cache.InvalidateNamespace(ctx, s.store, cache.NSIcon); err != nil && firstErr == nil {
		firstErr = err
	}

	logging.Ctx(ctx).Info().Int("deleted", deleted).Msg("Deleted imported icons")
	return deleted, firstErr
}
