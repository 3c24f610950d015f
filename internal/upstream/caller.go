// RaidProgress - World of Warcraft Raid Progress Aggregation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/raidprogress

package upstream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/tomtom215/raidprogress/internal/logging"
	"github.com/tomtom215/raidprogress/internal/metrics"
)

const (
	// DefaultTimeout bounds every upstream call.
	DefaultTimeout = 8 * time.Second

	// maxBodySize caps how much of a response body is read.
	maxBodySize = 8 << 20
)

var errServerStatus = errors.New("upstream returned 5xx")

// Response is a fully read HTTP response.
type Response struct {
	Status int
	Header http.Header
	Body   []byte
}

// CallerConfig configures a Caller.
type CallerConfig struct {
	// Name labels metrics and the circuit breaker, e.g. "raiderio".
	Name string

	// Service is the human name used in error messages, e.g. "Raider.io".
	Service string

	Timeout           time.Duration
	RequestsPerSecond float64
	Burst             int
	UserAgent         string

	// HTTPClient overrides the default client (tests).
	HTTPClient *http.Client
}

// Caller performs rate-limited, circuit-broken HTTP calls against one
// upstream. It returns a Response for every HTTP status; only transport
// failures and an open circuit produce an error.
//
// Circuit breaker configuration:
//   - Max 3 concurrent requests in half-open state
//   - 1 minute measurement window
//   - 2 minute timeout before attempting recovery
//   - Opens after 60% failure rate with minimum 10 requests
//   - Transport errors and 5xx count as failures; 4xx do not
type Caller struct {
	name      string
	service   string
	client    *http.Client
	timeout   time.Duration
	limiter   *rate.Limiter
	cb        *gobreaker.CircuitBreaker[*Response]
	userAgent string
}

// NewCaller builds a Caller.
func NewCaller(cfg CallerConfig) *Caller {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}

	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}

	c := &Caller{
		name:      cfg.Name,
		service:   cfg.Service,
		client:    client,
		timeout:   cfg.Timeout,
		limiter:   rate.NewLimiter(limit, burst),
		userAgent: cfg.UserAgent,
	}
	c.cb = newBreaker(cfg.Name)
	return c
}

// Service returns the human-readable upstream name.
func (c *Caller) Service() string {
	return c.service
}

func newBreaker(name string) *gobreaker.CircuitBreaker[*Response] {
	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)

	return gobreaker.NewCircuitBreaker[*Response](gobreaker.Settings{
		Name:        name,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     2 * time.Minute,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			shouldTrip := failureRatio >= 0.6
			if shouldTrip {
				logging.Warn().Str("upstream", name).Uint32("failures", counts.TotalFailures).Float64("failure_rate", failureRatio*100).Msg("[CIRCUIT BREAKER] Opening circuit")
			}
			return shouldTrip
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Info().Str("upstream", name).Str("from", from.String()).Str("to", to.String()).Msg("[CIRCUIT BREAKER] State transition")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, from.String(), to.String()).Inc()
		},
	})
}

// Do executes req. endpoint labels metrics (e.g. "raid-rankings").
func (c *Caller) Do(ctx context.Context, endpoint string, req *http.Request) (*Response, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	req = req.WithContext(ctx)
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	if err := c.limiter.Wait(ctx); err != nil {
		metrics.RecordUpstream(c.name, endpoint, "connection", time.Since(start))
		return nil, Connection(c.service, fmt.Errorf("rate limiter: %w", err))
	}

	var served *Response
	_, err := c.cb.Execute(func() (*Response, error) {
		resp, err := c.client.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
		if err != nil {
			return nil, fmt.Errorf("read body: %w", err)
		}
		served = &Response{Status: resp.StatusCode, Header: resp.Header, Body: body}
		if resp.StatusCode >= 500 {
			return served, errServerStatus
		}
		return served, nil
	})
	elapsed := time.Since(start)

	switch {
	case err == nil, errors.Is(err, errServerStatus):
		metrics.RecordUpstream(c.name, endpoint, outcomeFor(served.Status), elapsed)
		metrics.CircuitBreakerRequests.WithLabelValues(c.name, breakerResult(err)).Inc()
		return served, nil
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		metrics.CircuitBreakerRequests.WithLabelValues(c.name, "rejected").Inc()
		metrics.RecordUpstream(c.name, endpoint, "rejected", elapsed)
		logging.Warn().Err(err).Str("upstream", c.name).Msg("[CIRCUIT BREAKER] Request rejected")
		return nil, Connection(c.service, err)
	default:
		metrics.CircuitBreakerRequests.WithLabelValues(c.name, "failure").Inc()
		metrics.RecordUpstream(c.name, endpoint, "connection", elapsed)
		return nil, Connection(c.service, err)
	}
}

// Get issues a GET to rawURL.
func (c *Caller) Get(ctx context.Context, endpoint, rawURL string, header http.Header) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return nil, Connection(c.service, fmt.Errorf("create request: %w", err))
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	return c.Do(ctx, endpoint, req)
}

func outcomeFor(status int) string {
	switch {
	case status == http.StatusOK:
		return "ok"
	case status == http.StatusTooManyRequests:
		return "rate_limited"
	case status >= 500:
		return "http_5xx"
	default:
		return "http_4xx"
	}
}

func breakerResult(err error) string {
	if err != nil {
		return "failure"
	}
	return "success"
}

// stateToFloat converts circuit breaker state to numeric value for metrics
func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}
