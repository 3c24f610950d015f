// RaidProgress - World of Warcraft Raid Progress Aggregation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/raidprogress

package services

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/raidprogress/internal/logging"
)

// ExpiringStore drops expired entries in bulk. Satisfied by
// *cache.MemoryStore.
type ExpiringStore interface {
	Cleanup() int
}

// CompactingStore reclaims disk space. Satisfied by *cache.BadgerStore.
type CompactingStore interface {
	RunGC(discardRatio float64) error
}

// DefaultDiscardRatio is the value-log GC threshold badger recommends.
const DefaultDiscardRatio = 0.5

// CacheMaintenanceService runs one housekeeping step on a fixed interval.
// A failing step is returned to suture, which restarts the loop with
// backoff.
type CacheMaintenanceService struct {
	name     string
	interval time.Duration
	step     func() error
}

// NewCacheJanitorService sweeps expired entries out of a memory store.
func NewCacheJanitorService(store ExpiringStore, interval time.Duration) *CacheMaintenanceService {
	log := logging.WithComponent("cache-janitor")
	return newMaintenance("cache-janitor", interval, func() error {
		if removed := store.Cleanup(); removed > 0 {
			log.Debug().Int("removed", removed).Msg("Swept expired cache entries")
		}
		return nil
	})
}

// NewValueLogGCService runs badger value-log GC.
func NewValueLogGCService(store CompactingStore, interval time.Duration, discardRatio float64) *CacheMaintenanceService {
	if discardRatio <= 0 || discardRatio >= 1 {
		discardRatio = DefaultDiscardRatio
	}
	return newMaintenance("cache-value-log-gc", interval, func() error {
		if err := store.RunGC(discardRatio); err != nil {
			return fmt.Errorf("value log gc: %w", err)
		}
		return nil
	})
}

func newMaintenance(name string, interval time.Duration, step func() error) *CacheMaintenanceService {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &CacheMaintenanceService{name: name, interval: interval, step: step}
}

// Serve implements suture.Service.
func (s *CacheMaintenanceService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := s.step(); err != nil {
				return err
			}
		}
	}
}

// String names the service in suture events.
func (s *CacheMaintenanceService) String() string {
	return s.name
}
