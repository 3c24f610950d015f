// RaidProgress - World of Warcraft Raid Progress Aggregation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/raidprogress

package cache

import (
	"context"
	"sync"
	"time"

	"github.com/tomtom215/raidprogress/internal/metrics"
)

// entry is a cached value with its expiry.
type entry struct {
	data      []byte
	expiresAt time.Time
}

// Stats tracks cache performance.
type Stats struct {
	Hits        int64
	Misses      int64
	Evictions   int64
	TotalKeys   int64
	LastCleanup time.Time
}

// MemoryStore is a thread-safe in-process Store. Expired entries are
// dropped lazily on Get and in bulk by Cleanup, which the supervisor's
// janitor service calls periodically.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]entry
	stats   Stats
	now     func() time.Time
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]entry),
		stats:   Stats{LastCleanup: time.Now()},
		now:     time.Now,
	}
}

// Get retrieves a value by key with expiration checking.
//
// Behavior:
//   - Returns (nil, false) if key doesn't exist
//   - Returns (nil, false) if entry has expired (entry is deleted)
//   - Returns (data, true) if entry is valid
func (m *MemoryStore) Get(_ context.Context, key string) ([]byte, bool) {
	m.mu.RLock()
	e, exists := m.entries[key]
	m.mu.RUnlock()

	if !exists {
		m.record(false)
		return nil, false
	}

	if !m.now().Before(e.expiresAt) {
		m.mu.Lock()
		// Re-check under the write lock; a concurrent Set may have refreshed it.
		if cur, ok := m.entries[key]; ok && !m.now().Before(cur.expiresAt) {
			delete(m.entries, key)
			m.stats.Evictions++
		}
		m.mu.Unlock()
		m.record(false)
		return nil, false
	}

	m.record(true)
	return e.data, true
}

// Set stores a copy of value for ttl. A ttl <= 0 is a no-op.
func (m *MemoryStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	data := make([]byte, len(value))
	copy(data, value)

	m.mu.Lock()
	m.entries[key] = entry{data: data, expiresAt: m.now().Add(ttl)}
	m.stats.TotalKeys = int64(len(m.entries))
	m.mu.Unlock()

	metrics.RecordCacheWrite(string(BackendMemory), nil)
	return nil
}

// Delete removes key.
func (m *MemoryStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	if _, ok := m.entries[key]; ok {
		delete(m.entries, key)
		m.stats.Evictions++
		m.stats.TotalKeys = int64(len(m.entries))
	}
	m.mu.Unlock()
	return nil
}

// DeleteMatching removes every key matching pattern.
func (m *MemoryStore) DeleteMatching(_ context.Context, pattern string) (int, error) {
	match, prefix, err := compilePattern(pattern)
	if err != nil {
		return 0, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for key := range m.entries {
		if len(key) < len(prefix) || key[:len(prefix)] != prefix || !match(key) {
			continue
		}
		delete(m.entries, key)
		removed++
	}
	m.stats.Evictions += int64(removed)
	m.stats.TotalKeys = int64(len(m.entries))
	return removed, nil
}

// Cleanup drops every expired entry and returns how many were removed.
func (m *MemoryStore) Cleanup() int {
	now := m.now()

	m.mu.Lock()
	removed := 0
	for key, e := range m.entries {
		if !now.Before(e.expiresAt) {
			delete(m.entries, key)
			removed++
		}
	}
	m.stats.Evictions += int64(removed)
	m.stats.TotalKeys = int64(len(m.entries))
	m.stats.LastCleanup = now
	size := len(m.entries)
	m.mu.Unlock()

	metrics.CacheEntries.WithLabelValues(string(BackendMemory)).Set(float64(size))
	return removed
}

// GetStats returns a snapshot of the counters.
func (m *MemoryStore) GetStats() Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.stats
}

// HitRate returns hits as a percentage of lookups.
func (m *MemoryStore) HitRate() float64 {
	s := m.GetStats()
	total := s.Hits + s.Misses
	if total == 0 {
		return 0.0
	}
	return float64(s.Hits) / float64(total) * 100.0
}

func (m *MemoryStore) record(hit bool) {
	m.mu.Lock()
	if hit {
		m.stats.Hits++
	} else {
		m.stats.Misses++
	}
	m.mu.Unlock()
	metrics.RecordCacheLookup(string(BackendMemory), hit)
}
