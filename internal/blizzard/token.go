// RaidProgress - World of Warcraft Raid Progress Aggregation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/raidprogress

package blizzard

import (
	"context"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/sync/singleflight"

	"github.com/tomtom215/raidprogress/internal/cache"
	"github.com/tomtom215/raidprogress/internal/logging"
	"github.com/tomtom215/raidprogress/internal/metrics"
	"github.com/tomtom215/raidprogress/internal/models"
)

const (
	// tokenSafetyMargin is subtracted from the server-reported lifetime so
	// a token is never handed out moments before it expires.
	tokenSafetyMargin = 60 * time.Second

	// defaultTokenLifetime applies when the server omits expires_in.
	defaultTokenLifetime = time.Hour
)

// oauthToken is the cached form of a region's access token.
type oauthToken struct {
	AccessToken string    `json:"access_token"`
	Region      string    `json:"region"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// TokenManager obtains and caches client-credentials tokens per region.
//
// Token never fails loudly: missing credentials, transport errors and
// rejected exchanges all report the token as unavailable. Concurrent
// callers for the same region share one exchange.
type TokenManager struct {
	clientID     string
	clientSecret string
	oauthURL     string
	timeout      time.Duration
	httpClient   *http.Client
	store        cache.Store
	group        singleflight.Group
	now          func() time.Time
}

// NewTokenManager builds a TokenManager.
func NewTokenManager(cfg Config, store cache.Store) *TokenManager {
	cfg = cfg.withDefaults()
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 8 * time.Second
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}
	return &TokenManager{
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		oauthURL:     cfg.OAuthURL,
		timeout:      timeout,
		httpClient:   client,
		store:        store,
		now:          time.Now,
	}
}

// Configured reports whether client credentials are set.
func (m *TokenManager) Configured() bool {
	return m.clientID != "" && m.clientSecret != ""
}

// Token returns a valid access token for region, or false when none can
// be obtained.
func (m *TokenManager) Token(ctx context.Context, region string) (string, bool) {
	region = strings.ToLower(strings.TrimSpace(region))
	if !models.IsGameDataRegion(region) || !m.Configured() {
		return "", false
	}

	key := cache.Key(cache.NSToken, region)
	if tok, ok := cache.GetJSON[oauthToken](ctx, m.store, key); ok && tok.ExpiresAt.Sub(m.now()) > tokenSafetyMargin {
		return tok.AccessToken, true
	}

	v, err, shared := m.group.Do(region, func() (interface{}, error) {
		return m.exchange(ctx, region)
	})
	if err != nil {
		return "", false
	}
	if shared {
		logging.Ctx(ctx).Debug().Str("region", region).Msg("Joined in-flight token exchange")
	}
	return v.(string), true
}

// Invalidate drops the cached token for region, forcing the next Token
// call to exchange again.
func (m *TokenManager) Invalidate(ctx context.Context, region string) {
	if err := m.store.Delete(ctx, cache.Key(cache.NSToken, region)); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("region", region).Msg("Failed to drop cached token")
	}
}

func (m *TokenManager) exchange(ctx context.Context, region string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()
	ctx = context.WithValue(ctx, oauth2.HTTPClient, m.httpClient)

	conf := clientcredentials.Config{
		ClientID:     m.clientID,
		ClientSecret: m.clientSecret,
		TokenURL:     forRegion(m.oauthURL, region),
		AuthStyle:    oauth2.AuthStyleInHeader,
	}

	tok, err := conf.Token(ctx)
	if err != nil {
		metrics.TokenRefreshes.WithLabelValues(region, "failure").Inc()
		logging.Ctx(ctx).Warn().Err(err).Str("region", region).Msg("Blizzard token exchange failed")
		return "", err
	}
	metrics.TokenRefreshes.WithLabelValues(region, "success").Inc()

	now := m.now()
	expiresAt := tok.Expiry
	if expiresAt.IsZero() {
		expiresAt = now.Add(defaultTokenLifetime)
	}

	ttl := expiresAt.Sub(now) - tokenSafetyMargin
	cached := oauthToken{AccessToken: tok.AccessToken, Region: region, ExpiresAt: expiresAt}
	if err := cache.SetJSON(ctx, m.store, cache.Key(cache.NSToken, region), cached, ttl); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("region", region).Msg("Failed to cache token")
	}

	logging.Ctx(ctx).Debug().Str("region", region).Time("expires_at", expiresAt).Msg("Obtained Blizzard access token")
	return tok.AccessToken, nil
}
