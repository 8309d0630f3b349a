package client

import (
	"strings"

	"github.com/bnema/usergrid-go/internal/domain"
)

// APIRequest sends body to rawURL as is. A url without a scheme is taken
// relative to the application root. The payload is the *domain.APIResponse.
func (c *Client) APIRequest(rawURL string, method domain.Method, body []byte) *Call {
	if err := required(rawURL, "url"); err != nil {
		return c.invalid("api request", err)
	}
	if !method.Valid() {
		return c.invalid("api request", domain.InvalidInput("unsupported http method %q", method))
	}

	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		rawURL = c.routes.Path() + "/" + strings.TrimLeft(rawURL, "/")
	}
	return c.request("api request", asAPIResponse, method.Normalize(), rawURL, body)
}
