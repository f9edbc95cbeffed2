// Package idp wraps the identity provider as the gateway consumes it:
// OIDC discovery, the authorization-code exchange, userinfo lookups and
// upstream logout. The provider itself is an external collaborator — only
// its protocol contract lives here.
package idp

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/prosthetix/reports-platform/identity"
	"github.com/prosthetix/reports-platform/internal/config"
	apperrors "github.com/prosthetix/reports-platform/internal/errors"
	"golang.org/x/oauth2"
)

// Tokens is the material returned by a successful code exchange.
type Tokens struct {
	AccessToken  string
	RefreshToken string
	IDToken      string
}

// Client is the gateway's view of the identity provider. The OIDC
// implementation is OIDCClient; tests substitute a fake.
type Client interface {
	// AuthCodeURL builds the authorization redirect for a login attempt.
	AuthCodeURL(state, codeChallenge string) string
	// Exchange redeems an authorization code with its PKCE verifier.
	Exchange(ctx context.Context, code, codeVerifier string) (Tokens, error)
	// UserInfo fetches and validates identity claims for an access token.
	// Any failure means the token could not be confirmed live.
	UserInfo(ctx context.Context, accessToken string) (identity.Identity, error)
	// Logout revokes the upstream session bound to a refresh token.
	Logout(ctx context.Context, refreshToken string) error
}

// OIDCClient talks to a real provider discovered from its issuer URL.
type OIDCClient struct {
	provider        *oidc.Provider
	oauth           *oauth2.Config
	endSessionURL   string
	httpClient      *http.Client
	userInfoTimeout time.Duration
	exchangeTimeout time.Duration
	logoutTimeout   time.Duration
}

var _ Client = (*OIDCClient)(nil)

// NewOIDCClient discovers the provider's endpoints from the issuer URL.
func NewOIDCClient(ctx context.Context, cfg config.Config) (*OIDCClient, error) {
	provider, err := oidc.NewProvider(ctx, cfg.GetIssuerURL())
	if err != nil {
		return nil, fmt.Errorf("failed to create OIDC provider: %w", err)
	}

	// The end-session endpoint is a discovery extension, absent from the
	// typed endpoint set.
	var discovery struct {
		EndSessionEndpoint string `json:"end_session_endpoint"`
	}
	_ = provider.Claims(&discovery)

	return &OIDCClient{
		provider: provider,
		oauth: &oauth2.Config{
			ClientID:     cfg.GetClientID(),
			ClientSecret: cfg.GetClientSecret(),
			Endpoint:     provider.Endpoint(),
			RedirectURL:  cfg.GetGatewayURL() + "/auth/callback",
			Scopes:       []string{oidc.ScopeOpenID, "profile", "email"},
		},
		endSessionURL:   discovery.EndSessionEndpoint,
		httpClient:      &http.Client{},
		userInfoTimeout: cfg.GetUserInfoTimeout(),
		exchangeTimeout: cfg.GetExchangeTimeout(),
		logoutTimeout:   cfg.GetLogoutTimeout(),
	}, nil
}

func (c *OIDCClient) AuthCodeURL(state, codeChallenge string) string {
	return c.oauth.AuthCodeURL(state,
		oauth2.SetAuthURLParam("code_challenge", codeChallenge),
		oauth2.SetAuthURLParam("code_challenge_method", "S256"),
	)
}

func (c *OIDCClient) Exchange(ctx context.Context, code, codeVerifier string) (Tokens, error) {
	ctx, cancel := context.WithTimeout(ctx, c.exchangeTimeout)
	defer cancel()

	oauth2Token, err := c.oauth.Exchange(ctx, code,
		oauth2.SetAuthURLParam("code_verifier", codeVerifier),
	)
	if err != nil {
		return Tokens{}, fmt.Errorf("%w: %w", apperrors.ErrUpstreamExchange, err)
	}

	idToken, _ := oauth2Token.Extra("id_token").(string)
	return Tokens{
		AccessToken:  oauth2Token.AccessToken,
		RefreshToken: oauth2Token.RefreshToken,
		IDToken:      idToken,
	}, nil
}

func (c *OIDCClient) UserInfo(ctx context.Context, accessToken string) (identity.Identity, error) {
	ctx, cancel := context.WithTimeout(ctx, c.userInfoTimeout)
	defer cancel()

	userInfo, err := c.provider.UserInfo(ctx, oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: accessToken,
		TokenType:   "Bearer",
	}))
	if err != nil {
		return identity.Identity{}, fmt.Errorf("userinfo request failed: %w", err)
	}

	var id identity.Identity
	if err := userInfo.Claims(&id); err != nil {
		return identity.Identity{}, fmt.Errorf("failed to extract userinfo claims: %w", err)
	}
	if id.Subject == "" {
		id.Subject = userInfo.Subject
	}

	return id, nil
}

func (c *OIDCClient) Logout(ctx context.Context, refreshToken string) error {
	if c.endSessionURL == "" {
		return fmt.Errorf("provider does not advertise an end-session endpoint")
	}

	ctx, cancel := context.WithTimeout(ctx, c.logoutTimeout)
	defer cancel()

	form := url.Values{
		"client_id":     {c.oauth.ClientID},
		"client_secret": {c.oauth.ClientSecret},
		"refresh_token": {refreshToken},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endSessionURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to build logout request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("logout request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusOK {
		return fmt.Errorf("logout endpoint returned status %d", resp.StatusCode)
	}

	return nil
}
