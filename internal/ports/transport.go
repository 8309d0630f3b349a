package ports

import (
	"context"
	"net/http"
)

type HTTPRequest struct {
	URL    string
	Method string
	Body   []byte
	Header http.Header
}

// HTTPResult is whatever came back from the server. Body may be partial when
// Perform also returns an error.
type HTTPResult struct {
	StatusCode int
	Body       []byte
}

// Transport performs exactly one HTTP exchange. It does not retry.
type Transport interface {
	Perform(ctx context.Context, req HTTPRequest) (HTTPResult, error)
}
