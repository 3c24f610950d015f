// RaidProgress - World of Warcraft Raid Progress Aggregation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/raidprogress

package upstream

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestCaller_ReturnsEveryStatus(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") != "RaidProgress/test" {
			t.Errorf("missing user agent, got %q", r.Header.Get("User-Agent"))
		}
		switch r.URL.Path {
		case "/ok":
			_, _ = w.Write([]byte(`{"ok":true}`))
		case "/missing":
			w.WriteHeader(http.StatusNotFound)
		default:
			w.WriteHeader(http.StatusBadGateway)
		}
	}))
	defer server.Close()

	c := NewCaller(CallerConfig{Name: "test-status", Service: "Test", UserAgent: "RaidProgress/test"})

	for path, want := range map[string]int{"/ok": 200, "/missing": 404, "/broken": 502} {
		resp, err := c.Get(context.Background(), "test", server.URL+path, nil)
		if err != nil {
			t.Fatalf("%s: unexpected error %v", path, err)
		}
		if resp.Status != want {
			t.Errorf("%s: status %d, want %d", path, resp.Status, want)
		}
	}
}

func TestCaller_ConnectionError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := server.URL
	server.Close()

	c := NewCaller(CallerConfig{Name: "test-conn", Service: "Raider.io"})
	_, err := c.Get(context.Background(), "test", url, nil)

	e, ok := As(err)
	if !ok || e.Kind != KindConnection {
		t.Fatalf("expected connection error, got %v", err)
	}
	if !strings.HasPrefix(e.Message, "Failed to connect to Raider.io API: ") {
		t.Errorf("unexpected message %q", e.Message)
	}
}

func TestCaller_Timeout(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	c := NewCaller(CallerConfig{Name: "test-timeout", Service: "Test", Timeout: 50 * time.Millisecond})
	start := time.Now()
	_, err := c.Get(context.Background(), "test", server.URL, nil)
	if e, ok := As(err); !ok || e.Kind != KindConnection {
		t.Fatalf("expected connection error on timeout, got %v", err)
	}
	if time.Since(start) > 2*time.Second {
		t.Error("timeout was not enforced")
	}
}

func TestCaller_ForwardsHeaders(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(r.Header.Get("Authorization")))
	}))
	defer server.Close()

	c := NewCaller(CallerConfig{Name: "test-headers", Service: "Test"})
	resp, err := c.Get(context.Background(), "test", server.URL, http.Header{"Authorization": {"Bearer abc"}})
	if err != nil {
		t.Fatal(err)
	}
	if string(resp.Body) != "Bearer abc" {
		t.Errorf("authorization not forwarded, got %q", resp.Body)
	}
}
