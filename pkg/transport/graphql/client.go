package graphql

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/quillside/graphauth/pkg/errors"
)

// HTTPDoer is a minimal interface for HTTP clients.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Client executes GraphQL operations against a single endpoint.
type Client struct {
	doer    HTTPDoer
	builder *Builder
}

// NewClient wraps an HTTPDoer (e.g. *http.Client) and a request builder.
func NewClient(doer HTTPDoer, builder *Builder) *Client {
	return &Client{doer: doer, builder: builder}
}

// Execute sends a GraphQL request and decodes the response envelope.
// If target is non-nil and the envelope carries data, the data field is
// unmarshaled into it. GraphQL-level errors are returned inside the
// envelope, not as a Go error.
func (c *Client) Execute(ctx context.Context, gqlReq *Request, target interface{}) (*Response, error) {
	req, err := c.builder.Build(ctx, gqlReq)
	if err != nil {
		return nil, errors.WrapError(err, errors.ErrHTTPRequest, "build GraphQL request")
	}

	resp, err := c.doer.Do(req)
	if err != nil {
		return nil, errors.WrapError(err, errors.ErrHTTPRequest, "execute GraphQL request")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.WrapError(err, errors.ErrHTTPResponse, "read GraphQL response")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errors.WrapError(
			fmt.Errorf("status %d: %s", resp.StatusCode, body),
			errors.ErrHTTPResponse,
			"GraphQL endpoint",
		)
	}

	var envelope Response
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, errors.WrapError(err, errors.ErrDeserialization, "decode GraphQL response")
	}

	if target != nil && len(envelope.Data) > 0 {
		if err := json.Unmarshal(envelope.Data, target); err != nil {
			return nil, errors.WrapError(err, errors.ErrDeserialization, "unmarshal GraphQL data")
		}
	}

	return &envelope, nil
}

// Builder exposes the client's request builder.
func (c *Client) Builder() *Builder {
	return c.builder
}
