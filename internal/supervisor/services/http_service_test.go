// RaidProgress - World of Warcraft Raid Progress Aggregation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/raidprogress

package services

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/thejerf/suture/v4"
)

// blockingServer holds the listener until Shutdown.
type blockingServer struct {
	shutdownErr error
	serveErr    error

	addr      chan net.Addr
	shutdowns atomic.Int32
	stop      chan struct{}
	stopOnce  sync.Once
}

func newBlockingServer() *blockingServer {
	return &blockingServer{addr: make(chan net.Addr, 1), stop: make(chan struct{})}
}

func (b *blockingServer) Serve(l net.Listener) error {
	defer l.Close()
	b.addr <- l.Addr()
	if b.serveErr != nil {
		return b.serveErr
	}
	<-b.stop
	return http.ErrServerClosed
}

func (b *blockingServer) Shutdown(context.Context) error {
	b.shutdowns.Add(1)
	b.stopOnce.Do(func() { close(b.stop) })
	return b.shutdownErr
}

var _ suture.Service = (*HTTPServerService)(nil)

func waitAddr(t *testing.T, b *blockingServer) net.Addr {
	t.Helper()
	select {
	case addr := <-b.addr:
		return addr
	case <-time.After(2 * time.Second):
		t.Fatal("server never received a listener")
		return nil
	}
}

func TestNewHTTPServerService_Defaults(t *testing.T) {
	t.Parallel()

	for _, timeout := range []time.Duration{0, -5 * time.Second} {
		svc := NewHTTPServerService(newBlockingServer(), "127.0.0.1:0", timeout)
		if svc.shutdownTimeout != DefaultShutdownTimeout {
			t.Errorf("timeout %v: got %v", timeout, svc.shutdownTimeout)
		}
	}
	if got := NewHTTPServerService(newBlockingServer(), "", time.Second).String(); got != "http-server" {
		t.Errorf("String() = %q", got)
	}
}

func TestHTTPServerService_ServesRealRouter(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/health/live", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "ok")
	})
	server := &http.Server{Handler: mux, ReadHeaderTimeout: time.Second}

	// Reserve a free port, then hand its address to the service.
	probe, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	addr := probe.Addr().String()
	_ = probe.Close()

	svc := NewHTTPServerService(server, addr, time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- svc.Serve(ctx) }()

	var resp *http.Response
	deadline := time.Now().Add(2 * time.Second)
	for {
		resp, err = http.Get("http://" + addr + "/api/v1/health/live")
		if err == nil || time.Now().After(deadline) {
			break
		}
		time.Sleep(20 * time.Millisecond)
	}
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if string(body) != "ok" {
		t.Errorf("body = %q", body)
	}

	cancel()
	select {
	case err := <-errCh:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Serve() = %v, want context.Canceled", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("Serve did not return after cancellation")
	}
}

func TestHTTPServerService_PortInUse(t *testing.T) {
	t.Parallel()

	taken, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer taken.Close()

	server := newBlockingServer()
	err = NewHTTPServerService(server, taken.Addr().String(), time.Second).Serve(context.Background())
	if err == nil {
		t.Fatal("expected a bind error")
	}
	select {
	case <-server.addr:
		t.Error("Serve reached the server despite the bind error")
	default:
	}
}

func TestHTTPServerService_Errors(t *testing.T) {
	t.Parallel()

	t.Run("serve failure", func(t *testing.T) {
		t.Parallel()

		serveErr := errors.New("accept: too many open files")
		server := newBlockingServer()
		server.serveErr = serveErr

		err := NewHTTPServerService(server, "127.0.0.1:0", time.Second).Serve(context.Background())
		if !errors.Is(err, serveErr) {
			t.Errorf("Serve() = %v, want %v", err, serveErr)
		}
	})

	t.Run("shutdown failure", func(t *testing.T) {
		t.Parallel()

		shutdownErr := errors.New("drain timeout")
		server := newBlockingServer()
		server.shutdownErr = shutdownErr
		svc := NewHTTPServerService(server, "127.0.0.1:0", time.Second)

		ctx, cancel := context.WithCancel(context.Background())
		errCh := make(chan error, 1)
		go func() { errCh <- svc.Serve(ctx) }()

		waitAddr(t, server)
		cancel()

		select {
		case err := <-errCh:
			if !errors.Is(err, shutdownErr) {
				t.Errorf("Serve() = %v, want %v", err, shutdownErr)
			}
		case <-time.After(2 * time.Second):
			t.Fatal("Serve did not return")
		}
	})
}

func TestHTTPServerService_WithSupervisor(t *testing.T) {
	t.Parallel()

	server := newBlockingServer()
	sup := suture.New("test-sup", suture.Spec{
		FailureThreshold: 3,
		FailureBackoff:   10 * time.Millisecond,
		Timeout:          2 * time.Second,
	})
	sup.Add(NewHTTPServerService(server, "127.0.0.1:0", time.Second))

	ctx, cancel := context.WithCancel(context.Background())
	errCh := sup.ServeBackground(ctx)

	waitAddr(t, server)
	cancel()
	<-errCh

	if server.shutdowns.Load() < 1 {
		t.Error("Shutdown was not called")
	}
}
