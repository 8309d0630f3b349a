package httpx

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/bnema/usergrid-go/internal/ports"
)

const maxResponseBytes = 8 << 20

// Transport performs exchanges with a net/http client. Timeouts belong to
// the client and to the caller's context.
type Transport struct {
	HTTPClient     *http.Client
	RequestTimeout time.Duration
	UserAgent      string
}

var _ ports.Transport = (*Transport)(nil)

func New(client *http.Client) *Transport {
	return &Transport{HTTPClient: client}
}

func (t *Transport) Perform(ctx context.Context, req ports.HTTPRequest) (ports.HTTPResult, error) {
	requestCtx, cancel := t.requestContext(ctx)
	defer cancel()

	var body io.Reader
	if len(req.Body) > 0 {
		body = bytes.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(requestCtx, req.Method, req.URL, body)
	if err != nil {
		return ports.HTTPResult{}, fmt.Errorf("create request: %w", err)
	}
	for key, values := range req.Header {
		for _, value := range values {
			httpReq.Header.Add(key, value)
		}
	}
	if t.UserAgent != "" {
		httpReq.Header.Set("User-Agent", t.UserAgent)
	}

	resp, err := t.httpClient().Do(httpReq)
	if err != nil {
		return ports.HTTPResult{}, fmt.Errorf("send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	result := ports.HTTPResult{StatusCode: resp.StatusCode, Body: data}
	if err != nil {
		return result, fmt.Errorf("read response body: %w", err)
	}

	return result, nil
}

func (t *Transport) httpClient() *http.Client {
	if t.HTTPClient != nil {
		return t.HTTPClient
	}
	return http.DefaultClient
}

func (t *Transport) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if t.RequestTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, t.RequestTimeout)
}
