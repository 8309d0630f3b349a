package client

import (
	"context"
	"net/url"
	"strings"

	"github.com/bnema/usergrid-go/internal/domain"
	"github.com/bnema/usergrid-go/internal/transaction"
)

// login posts a token grant. The current token is forgotten before the
// request goes out and replaced by the granted one on success.
func (c *Client) login(name string, decode decoder, req transaction.Request) *Call {
	call := c.call(name, decode, func(context.Context, string) (transaction.Request, error) {
		return req, nil
	})
	call.prepare = c.session.clearAuth
	call.succeed = func(_ any, body []byte) {
		resp, err := decodeAPIResponse(body)
		if err != nil || resp.AccessToken == "" {
			return
		}
		c.session.setAuth(resp.AccessToken, resp.TokenExpiry(c.clock.Now()), resp.User)
	}
	return call
}

func (c *Client) tokenGrant(name string, decode decoder, grant url.Values) *Call {
	return c.login(name, decode, transaction.Request{
		URL:    c.routes.Token(),
		Method: domain.MethodPostForm,
		Body:   []byte(grant.Encode()),
	})
}

func required(value, what string) error {
	if strings.TrimSpace(value) == "" {
		return domain.InvalidInput("%s is required", what)
	}
	return nil
}

// LogInUser exchanges a username and password for an access token. The
// payload is the *domain.User the token belongs to.
func (c *Client) LogInUser(username, password string) *Call {
	if err := firstError(required(username, "username"), required(password, "password")); err != nil {
		return c.invalid("log in user", err)
	}
	return c.tokenGrant("log in user", asUser, url.Values{
		"grant_type": {"password"},
		"username":   {username},
		"password":   {password},
	})
}

func (c *Client) LogInUserWithPin(username, pin string) *Call {
	if err := firstError(required(username, "username"), required(pin, "pin")); err != nil {
		return c.invalid("log in user with pin", err)
	}
	return c.tokenGrant("log in user with pin", asUser, url.Values{
		"grant_type": {"pin"},
		"username":   {username},
		"pin":        {pin},
	})
}

// LogInUserWithFacebook trades a Facebook access token for a service token.
func (c *Client) LogInUserWithFacebook(facebookToken string) *Call {
	if err := required(facebookToken, "facebook access token"); err != nil {
		return c.invalid("log in with facebook", err)
	}
	return c.login("log in with facebook", asUser, transaction.Request{
		URL:    c.routes.FacebookAuth(facebookToken),
		Method: domain.MethodGet,
	})
}

// LogInAdmin logs the application in with its client credentials. There is
// no user behind such a token; the payload is the *domain.APIResponse.
func (c *Client) LogInAdmin(clientID, clientSecret string) *Call {
	if err := firstError(required(clientID, "client id"), required(clientSecret, "client secret")); err != nil {
		return c.invalid("log in admin", err)
	}
	return c.tokenGrant("log in admin", asAPIResponse, url.Values{
		"grant_type":    {"client_credentials"},
		"client_id":     {clientID},
		"client_secret": {clientSecret},
	})
}

// LogOut forgets the token locally. Nothing is sent; use RevokeToken to
// invalidate it on the server.
func (c *Client) LogOut() {
	c.session.clearAuth()
}

// RevokeToken invalidates the current token of username on the server, then
// logs out locally.
func (c *Client) RevokeToken(username string) *Call {
	if err := required(username, "username"); err != nil {
		return c.invalid("revoke token", err)
	}

	call := c.call("revoke token", asAPIResponse, func(_ context.Context, token string) (transaction.Request, error) {
		if token == "" {
			return transaction.Request{}, domain.InvalidInput("no access token to revoke")
		}
		return transaction.Request{URL: c.routes.RevokeToken(username, token), Method: domain.MethodPut, Token: token}, nil
	})
	token := ""
	call.prepare = func() { token = c.session.AccessToken() }
	call.succeed = func(any, []byte) { c.session.clearAuthIf(token) }
	return call
}

// RevokeAllTokens invalidates every token of username and logs out locally.
func (c *Client) RevokeAllTokens(username string) *Call {
	if err := required(username, "username"); err != nil {
		return c.invalid("revoke all tokens", err)
	}

	call := c.call("revoke all tokens", asAPIResponse, func(_ context.Context, token string) (transaction.Request, error) {
		return transaction.Request{URL: c.routes.RevokeTokens(username), Method: domain.MethodPut, Token: token}, nil
	})
	call.succeed = func(any, []byte) { c.session.clearAuth() }
	return call
}

func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
