package graphql

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/quillside/graphauth/pkg/auth"
)

// Builder constructs GraphQL HTTP requests.
// Headers is a live map: entries added or changed after construction are
// picked up by every subsequent Build call.
type Builder struct {
	Endpoint    string
	Headers     map[string]string
	AuthHandler auth.Handler
}

// NewBuilder sets up a GraphQL Builder.
// Endpoint is the full URL of your GraphQL endpoint.
func NewBuilder(endpoint string, opts ...BuilderOption) *Builder {
	b := &Builder{
		Endpoint: endpoint,
		Headers:  make(map[string]string),
	}
	b.ApplyOptions(opts...)
	return b
}

// Build creates the *http.Request with a JSON {query, variables} body.
// Each built request carries a fresh X-Request-Id for correlation.
func (b *Builder) Build(ctx context.Context, gqlReq *Request) (*http.Request, error) {
	buf, err := json.Marshal(gqlReq)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.Endpoint, bytes.NewReader(buf))
	if err != nil {
		return nil, err
	}
	for k, v := range b.Headers {
		req.Header.Set(k, v)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if b.AuthHandler != nil {
		if err := b.AuthHandler.ApplyAuth(req); err != nil {
			return nil, err
		}
	}
	return req, nil
}
