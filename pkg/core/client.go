// Package core provides the authenticated GraphQL client: it obtains a
// client-credentials access token lazily, caches it until expiry, and
// forwards GraphQL operations with the bearer header attached.
package core

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/quillside/graphauth/pkg/auth"
	"github.com/quillside/graphauth/pkg/config"
	"github.com/quillside/graphauth/pkg/errors"
	"github.com/quillside/graphauth/pkg/transport/graphql"
)

// Client authenticates and forwards GraphQL requests.
// It holds at most one cached token, replaced whenever a request finds it
// absent or expired. There is no background refresh and no retry; a failed
// token fetch leaves the cached token untouched and surfaces to the caller
// before any GraphQL traffic.
//
// The lock coalesces concurrent expired-token fetches into one, but the
// header map is shared with the request builder and is written while other
// requests may be in flight. Callers that issue requests from multiple
// goroutines need external synchronization.
type Client struct {
	source  *auth.TokenSource
	gql     *graphql.Client
	headers map[string]string // shared with the request builder

	mu    sync.Mutex // guards token and the Authorization header entry
	token auth.Token

	httpClient *http.Client
	ownsHTTP   bool

	now func() time.Time
}

type clientOptions struct {
	doer    graphql.HTTPDoer
	headers map[string]string
}

// Option configures the Client.
type Option func(*clientOptions)

// WithHTTPDoer supplies an external HTTP client, shared by token fetches and
// GraphQL calls. The Client does not own it and Close will not release it.
func WithHTTPDoer(doer graphql.HTTPDoer) Option {
	return func(o *clientOptions) {
		o.doer = doer
	}
}

// WithHeader adds a header to every outgoing GraphQL request.
func WithHeader(key, value string) Option {
	return func(o *clientOptions) {
		o.headers[key] = value
	}
}

// NewClient creates an authenticated GraphQL client from settings.
// Both the token endpoint and the GraphQL endpoint are reached through the
// same HTTP client, created here unless one is supplied via WithHTTPDoer.
func NewClient(cfg *config.Settings, opts ...Option) (*Client, error) {
	if cfg == nil {
		return nil, errors.WrapError(
			fmt.Errorf("settings are required"),
			errors.ErrConfiguration,
			"create client",
		)
	}

	options := &clientOptions{headers: make(map[string]string)}
	for k, v := range cfg.GraphQL.Headers {
		options.headers[k] = v
	}
	for _, opt := range opts {
		opt(options)
	}

	var httpClient *http.Client
	ownsHTTP := false
	doer := options.doer
	if doer == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
		doer = httpClient
		ownsHTTP = true
	} else {
		httpClient, _ = doer.(*http.Client)
	}

	source, err := auth.NewTokenSource(cfg.OAuth2, doer)
	if err != nil {
		return nil, err
	}

	builder := graphql.NewBuilder(cfg.GraphQL.Endpoint, graphql.WithHeaderMap(options.headers))

	return &Client{
		source:     source,
		gql:        graphql.NewClient(doer, builder),
		headers:    options.headers,
		httpClient: httpClient,
		ownsHTTP:   ownsHTTP,
		now:        time.Now,
	}, nil
}

// Execute sends a GraphQL request with a valid bearer token attached.
// The token is checked lazily: absent or expired tokens trigger exactly one
// fetch before the GraphQL call is dispatched. Concurrent calls racing past
// an expired token coalesce on the internal lock, so only one fetch runs.
// GraphQL-level errors come back inside the response envelope.
func (c *Client) Execute(ctx context.Context, req *graphql.Request, target interface{}) (*graphql.Response, error) {
	if err := c.ensureToken(ctx); err != nil {
		return nil, err
	}
	return c.gql.Execute(ctx, req, target)
}

// ensureToken refreshes the cached token if needed and sets the
// Authorization entry on the shared header map. Setting a map key is
// idempotent, so the prior bearer value is replaced, never duplicated.
func (c *Client) ensureToken(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token.State(c.now()) != auth.TokenValid {
		token, err := c.source.Fetch(ctx)
		if err != nil {
			return err
		}
		c.token = token
	}

	c.headers["Authorization"] = "Bearer " + c.token.AccessToken
	return nil
}

// Token returns a copy of the currently cached token.
func (c *Client) Token() auth.Token {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

// Close releases the HTTP client's pooled connections when the Client
// created it. An externally supplied HTTP client is left alone.
func (c *Client) Close() {
	if c.ownsHTTP && c.httpClient != nil {
		c.httpClient.CloseIdleConnections()
	}
}
