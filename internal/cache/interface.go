// RaidProgress - World of Warcraft Raid Progress Aggregation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/raidprogress

package cache

import (
	"context"
	"fmt"
	"time"
)

// Store is a key-value store with per-entry TTL. Values are opaque bytes
// so that persistent backends can hold them; use GetJSON and SetJSON for
// typed access.
//
// A ttl <= 0 passed to Set means "do not cache": the call is a no-op.
// That is different from an entry that expires immediately.
type Store interface {
	// Get returns the value and true when key exists and has not expired.
	Get(ctx context.Context, key string) ([]byte, bool)

	// Set stores value under key for ttl. Concurrent writers race with
	// last-write-wins semantics.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes key. Missing keys are not an error.
	Delete(ctx context.Context, key string) error

	// DeleteMatching removes every key matching a glob pattern such as
	// "ranking:*" and returns how many were removed.
	DeleteMatching(ctx context.Context, pattern string) (int, error)
}

// StatsReporter is implemented by stores that count their own lookups.
type StatsReporter interface {
	GetStats() Stats
	HitRate() float64
}

// Backend names a Store implementation.
type Backend string

const (
	BackendMemory Backend = "memory"
	BackendBadger Backend = "badger"
)

// Config selects and configures a backend.
type Config struct {
	Backend Backend

	// Path is the badger directory. Ignored for memory.
	Path string

	// InMemory runs badger without touching disk (tests).
	InMemory bool
}

// Open builds the configured Store. The returned close function releases
// backend resources and is safe to call on the memory backend.
func Open(cfg Config) (Store, func() error, error) {
	switch cfg.Backend {
	case BackendMemory, "":
		return NewMemoryStore(), func() error { return nil }, nil
	case BackendBadger:
		s, err := OpenBadger(cfg.Path, cfg.InMemory)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}
