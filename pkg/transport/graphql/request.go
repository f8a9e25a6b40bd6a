package graphql

import "encoding/json"

// Request is a GraphQL operation: a query or mutation plus its variables.
type Request struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

// NewRequest creates a Request for the given query string.
func NewRequest(query string) *Request {
	return &Request{Query: query}
}

// Var sets a single variable on the request.
func (r *Request) Var(key string, value interface{}) {
	if r.Variables == nil {
		r.Variables = make(map[string]interface{})
	}
	r.Variables[key] = value
}

// Error is a single GraphQL-level error from the response envelope.
type Error struct {
	Message    string                 `json:"message"`
	Path       []interface{}          `json:"path,omitempty"`
	Extensions map[string]interface{} `json:"extensions,omitempty"`
}

func (e Error) Error() string {
	return e.Message
}

// Response is the standard GraphQL response envelope.
// GraphQL-level errors live in Errors; they are returned to the caller
// inside the envelope, never raised as transport failures.
type Response struct {
	Data   json.RawMessage `json:"data,omitempty"`
	Errors []Error         `json:"errors,omitempty"`
}

// HasErrors reports whether the server returned any GraphQL-level errors.
func (r *Response) HasErrors() bool {
	return len(r.Errors) > 0
}
