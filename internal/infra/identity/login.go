package identity

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/oauth2"
)

type LoginConfig struct {
	Domain       string
	ClientID     string
	ClientSecret string
	RedirectURL  string
	BaseURL      string
}

// Authenticator runs the authorization code flow for the back-office login
// page and hands back a verified ID token.
type Authenticator struct {
	oauth    oauth2.Config
	baseURL  string
	clientID string
	verifier *SessionVerifier
}

func NewAuthenticator(cfg LoginConfig, verifier *SessionVerifier) *Authenticator {
	base := cfg.BaseURL
	if base == "" {
		base = "https://" + cfg.Domain
	}
	base = strings.TrimRight(base, "/")
	return &Authenticator{
		oauth: oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Endpoint: oauth2.Endpoint{
				AuthURL:  base + "/authorize",
				TokenURL: base + "/oauth/token",
			},
			Scopes: []string{"openid", "profile", "email"},
		},
		baseURL:  base,
		clientID: cfg.ClientID,
		verifier: verifier,
	}
}

func (a *Authenticator) Configured() bool {
	return a.oauth.ClientID != "" && a.oauth.ClientSecret != "" && a.baseURL != "https://"
}

func (a *Authenticator) AuthCodeURL(state string) string {
	return a.oauth.AuthCodeURL(state)
}

// Exchange trades the callback code for tokens and verifies the ID token.
func (a *Authenticator) Exchange(ctx context.Context, code string) (string, *Session, error) {
	tok, err := a.oauth.Exchange(ctx, code)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrAuthBackendUnavailable, err)
	}
	idToken, ok := tok.Extra("id_token").(string)
	if !ok || idToken == "" {
		return "", nil, fmt.Errorf("%w: no id_token in token response", ErrInvalidSession)
	}
	sess, err := a.verifier.Verify(ctx, idToken)
	if err != nil {
		return "", nil, err
	}
	return idToken, sess, nil
}

func (a *Authenticator) LogoutURL(returnTo string) string {
	q := url.Values{}
	q.Set("client_id", a.clientID)
	q.Set("returnTo", returnTo)
	return a.baseURL + "/v2/logout?" + q.Encode()
}
