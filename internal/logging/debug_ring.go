// RaidProgress - World of Warcraft Raid Progress Aggregation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/raidprogress

package logging

import (
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

const (
	// DefaultRingSize is the number of events the admin debug log keeps.
	DefaultRingSize = 100

	// DefaultRingTTL is how long a captured event stays visible.
	DefaultRingTTL = time.Hour
)

// DebugEntry is one captured log event.
type DebugEntry struct {
	Time    time.Time              `json:"time"`
	Level   string                 `json:"level"`
	Message string                 `json:"message"`
	Fields  map[string]interface{} `json:"fields,omitempty"`
}

// DebugRing is a bounded, expiring buffer of recent log events. It
// implements zerolog.LevelWriter so it can sit behind MultiLevelWriter.
type DebugRing struct {
	mu      sync.Mutex
	entries []DebugEntry
	size    int
	ttl     time.Duration
	now     func() time.Time
}

// NewDebugRing creates a ring holding at most size events for ttl.
func NewDebugRing(size int, ttl time.Duration) *DebugRing {
	if size <= 0 {
		size = DefaultRingSize
	}
	return &DebugRing{size: size, ttl: ttl, now: time.Now}
}

// Write implements io.Writer.
func (r *DebugRing) Write(p []byte) (int, error) {
	return r.WriteLevel(zerolog.NoLevel, p)
}

// WriteLevel decodes a JSON event and appends it. Events below debug are
// dropped. Non-JSON input (console format) is stored as a raw message.
func (r *DebugRing) WriteLevel(level zerolog.Level, p []byte) (int, error) {
	if level != zerolog.NoLevel && level < zerolog.DebugLevel {
		return len(p), nil
	}

	entry := DebugEntry{Time: r.now(), Level: level.String()}
	fields := map[string]interface{}{}
	if err := json.Unmarshal(p, &fields); err == nil {
		if msg, ok := fields[zerolog.MessageFieldName].(string); ok {
			entry.Message = msg
		}
		delete(fields, zerolog.MessageFieldName)
		delete(fields, zerolog.LevelFieldName)
		delete(fields, zerolog.TimestampFieldName)
		if len(fields) > 0 {
			entry.Fields = fields
		}
	} else {
		entry.Message = strings.TrimSpace(string(p))
	}

	r.mu.Lock()
	r.entries = append(r.entries, entry)
	if over := len(r.entries) - r.size; over > 0 {
		r.entries = append(r.entries[:0:0], r.entries[over:]...)
	}
	r.mu.Unlock()
	return len(p), nil
}

// Entries returns live events, oldest first.
func (r *DebugRing) Entries() []DebugEntry {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-r.ttl)
	out := make([]DebugEntry, 0, len(r.entries))
	for _, e := range r.entries {
		if r.ttl > 0 && e.Time.Before(cutoff) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Clear drops every captured event.
func (r *DebugRing) Clear() {
	r.mu.Lock()
	r.entries = nil
	r.mu.Unlock()
}
