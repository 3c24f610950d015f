// RaidProgress - World of Warcraft Raid Progress Aggregation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/raidprogress

package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warning", zerolog.WarnLevel},
		{"ERROR", zerolog.ErrorLevel},
		{"disabled", zerolog.Disabled},
		{"bogus", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		if got := parseLevel(tt.input); got != tt.expected {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}

func TestCtxAddsRequestIDs(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(zerolog.New(&buf))
	defer Init(DefaultConfig())

	ctx := ContextWithRequestID(context.Background(), "req-1")
	ctx = ContextWithCorrelationID(ctx, "corr-1")
	Ctx(ctx).Info().Msg("hello")

	out := buf.String()
	if !strings.Contains(out, `"request_id":"req-1"`) {
		t.Errorf("missing request_id in %s", out)
	}
	if !strings.Contains(out, `"correlation_id":"corr-1"`) {
		t.Errorf("missing correlation_id in %s", out)
	}
}

func TestDebugRingBoundsAndExpiry(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	r := NewDebugRing(3, time.Hour)
	r.now = func() time.Time { return now }

	for _, msg := range []string{"a", "b", "c", "d"} {
		if _, err := r.WriteLevel(zerolog.InfoLevel, []byte(`{"level":"info","message":"`+msg+`","raid":"x"}`)); err != nil {
			t.Fatal(err)
		}
	}

	entries := r.Entries()
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[0].Message != "b" || entries[2].Message != "d" {
		t.Errorf("unexpected order: %+v", entries)
	}
	if entries[0].Fields["raid"] != "x" {
		t.Errorf("expected raid field, got %v", entries[0].Fields)
	}

	now = now.Add(2 * time.Hour)
	if got := len(r.Entries()); got != 0 {
		t.Errorf("expected expired entries to be hidden, got %d", got)
	}

	r.Clear()
	if got := len(r.Entries()); got != 0 {
		t.Errorf("expected empty ring after Clear, got %d", got)
	}
}

func TestDebugRingSkipsTrace(t *testing.T) {
	t.Parallel()

	r := NewDebugRing(10, time.Hour)
	_, _ = r.WriteLevel(zerolog.TraceLevel, []byte(`{"message":"noise"}`))
	if len(r.Entries()) != 0 {
		t.Error("trace events should not be captured")
	}
}

func TestSlogBridge(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(zerolog.New(&buf))
	defer Init(DefaultConfig())

	NewSlogLogger().WithGroup("svc").Info("started", "name", "http")

	out := buf.String()
	if !strings.Contains(out, `"svc.name":"http"`) || !strings.Contains(out, "started") {
		t.Errorf("unexpected slog output: %s", out)
	}
}
