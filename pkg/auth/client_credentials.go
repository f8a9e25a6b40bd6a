package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/quillside/graphauth/pkg/config"
	"github.com/quillside/graphauth/pkg/errors"
)

// AuthenticationError represents a token endpoint rejection.
// It carries the HTTP status code and the raw response body.
type AuthenticationError struct {
	StatusCode int
	Body       string
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("token request returned status %d: %s", e.StatusCode, e.Body)
}

// Unwrap lets errors.Is match against errors.ErrAuthentication
func (e *AuthenticationError) Unwrap() error {
	return errors.ErrAuthentication
}

// HTTPDoer is a minimal interface for HTTP clients
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// TokenSource fetches access tokens via the client_credentials grant.
// It holds no token state; callers own the caching.
type TokenSource struct {
	tokenURL     string
	clientID     string
	clientSecret string
	scope        string

	doer HTTPDoer
	now  func() time.Time
}

// NewTokenSource creates a TokenSource from OAuth2 settings.
// doer may be nil, in which case a default http.Client is used.
func NewTokenSource(cfg config.OAuth2, doer HTTPDoer) (*TokenSource, error) {
	if cfg.TokenURL == "" {
		return nil, errors.WrapError(
			fmt.Errorf("token URL is required"),
			errors.ErrConfiguration,
			"create token source",
		)
	}
	if cfg.ClientID == "" {
		return nil, errors.WrapError(
			fmt.Errorf("client ID is required"),
			errors.ErrConfiguration,
			"create token source",
		)
	}
	if cfg.ClientSecret == "" {
		return nil, errors.WrapError(
			fmt.Errorf("client secret is required"),
			errors.ErrConfiguration,
			"create token source",
		)
	}

	if doer == nil {
		doer = &http.Client{Timeout: 30 * time.Second}
	}

	return &TokenSource{
		tokenURL:     cfg.TokenURL,
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		scope:        cfg.Scope,
		doer:         doer,
		now:          time.Now,
	}, nil
}

// tokenResponse represents the response from the OAuth2 token endpoint
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
	Scope       string `json:"scope,omitempty"`
}

// Fetch requests a new access token using the client_credentials grant.
// It never retries; any failure surfaces to the caller unchanged.
func (s *TokenSource) Fetch(ctx context.Context) (Token, error) {
	data := url.Values{}
	data.Set("grant_type", "client_credentials")
	data.Set("client_id", s.clientID)
	data.Set("client_secret", s.clientSecret)
	if s.scope != "" {
		data.Set("scope", s.scope)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.tokenURL, strings.NewReader(data.Encode()))
	if err != nil {
		return Token{}, errors.WrapError(err, errors.ErrHTTPRequest, "create token request")
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := s.doer.Do(req)
	if err != nil {
		return Token{}, errors.WrapError(err, errors.ErrHTTPRequest, "token request failed")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Token{}, errors.WrapError(err, errors.ErrHTTPResponse, "read token response")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Token{}, &AuthenticationError{
			StatusCode: resp.StatusCode,
			Body:       string(body),
		}
	}

	var tokenResp tokenResponse
	if err := json.Unmarshal(body, &tokenResp); err != nil {
		return Token{}, errors.WrapError(err, errors.ErrDeserialization, "decode token response")
	}

	return NewToken(tokenResp.AccessToken, tokenResp.ExpiresIn, s.now().UTC())
}

// String returns a string representation of this token source
func (s *TokenSource) String() string {
	return fmt.Sprintf("TokenSource(client_id: %s, url: %s)", s.clientID, s.tokenURL)
}
