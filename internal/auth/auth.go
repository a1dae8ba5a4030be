// Package auth supplies OAuth2 credentials for the Drive API using the
// installed-application flow: a client secret file, a cached user token that
// is refreshed transparently, and an interactive browser handshake on first
// use.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/gdrive-tools/gsync/internal/utils"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// Scopes required by the application.
// https://developers.google.com/drive/api/guides/api-specific-auth#drive-scopes
// If modifying these scopes, delete the cached token file.
var Scopes = []string{
	"https://www.googleapis.com/auth/drive",
}

var ErrNoCredentials = errors.New("auth: client credentials file missing")

// Provider hands out a refreshed token source, persisting refreshed tokens
// back to the cache file.
type Provider struct {
	conf      *oauth2.Config
	tokenPath string
}

// NewProvider reads the OAuth client secret from credentialsPath. tokenPath
// is where the user token is cached between runs.
func NewProvider(credentialsPath, tokenPath string) (*Provider, error) {
	data, err := os.ReadFile(credentialsPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNoCredentials, credentialsPath)
		}
		return nil, fmt.Errorf("read credentials: %w", err)
	}

	conf, err := google.ConfigFromJSON(data, Scopes...)
	if err != nil {
		return nil, fmt.Errorf("parse credentials: %w", err)
	}

	return &Provider{conf: conf, tokenPath: tokenPath}, nil
}

// TokenSource returns a usable token source, running the interactive
// authorization flow when no cached token exists. Renewal is transparent to
// the caller; renewed tokens are written back to the cache file.
func (p *Provider) TokenSource(ctx context.Context) (oauth2.TokenSource, error) {
	tok, err := p.loadToken()
	if err != nil {
		slog.Debug("no cached token, starting interactive flow", "path", p.tokenPath, "reason", err)
		tok, err = p.authorize(ctx)
		if err != nil {
			return nil, err
		}
		if err := p.saveToken(tok); err != nil {
			return nil, err
		}
	}

	return &persistingSource{
		provider: p,
		src:      p.conf.TokenSource(ctx, tok),
		last:     tok.AccessToken,
	}, nil
}

func (p *Provider) loadToken() (*oauth2.Token, error) {
	data, err := os.ReadFile(p.tokenPath)
	if err != nil {
		return nil, err
	}

	var tok oauth2.Token
	if err := json.Unmarshal(data, &tok); err != nil {
		return nil, fmt.Errorf("parse cached token: %w", err)
	}
	if tok.RefreshToken == "" && !tok.Valid() {
		return nil, errors.New("cached token expired with no refresh token")
	}
	return &tok, nil
}

func (p *Provider) saveToken(tok *oauth2.Token) error {
	if err := utils.EnsureParent(p.tokenPath); err != nil {
		return err
	}

	data, err := json.Marshal(tok)
	if err != nil {
		return err
	}

	// The token grants full Drive access, keep it private.
	return os.WriteFile(p.tokenPath, data, 0o600)
}

// persistingSource wraps the refreshing token source and writes the token
// cache whenever the access token rotates.
type persistingSource struct {
	provider *Provider
	src      oauth2.TokenSource
	last     string
}

func (s *persistingSource) Token() (*oauth2.Token, error) {
	tok, err := s.src.Token()
	if err != nil {
		return nil, fmt.Errorf("refresh token: %w", err)
	}

	if tok.AccessToken != s.last {
		s.last = tok.AccessToken
		if err := s.provider.saveToken(tok); err != nil {
			slog.Warn("failed to persist refreshed token", "path", s.provider.tokenPath, "error", err)
		}
	}

	return tok, nil
}
