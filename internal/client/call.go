package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/bnema/usergrid-go/internal/domain"
	"github.com/bnema/usergrid-go/internal/multistep"
	"github.com/bnema/usergrid-go/internal/transaction"
)

// Handler receives the terminal envelope of a call started with Go.
type Handler func(domain.Response)

type decoder func(body []byte) (any, error)

// Call is one logical operation, ready to run. Pick the shape at the call
// site: Do blocks, Go returns at once and completes through a handler,
// Dispatch follows the session delegate.
type Call struct {
	client *Client
	name   string

	build   func(ctx context.Context, token string) (transaction.Request, error)
	plan    func(token string) (multistep.Plan, error)
	decode  decoder
	prepare func()
	succeed func(payload any, body []byte)
}

func (c *Client) call(name string, decode decoder, build func(ctx context.Context, token string) (transaction.Request, error)) *Call {
	return &Call{client: c, name: name, build: build, decode: decode}
}

// request is the common case of a call whose url and body are known upfront.
func (c *Client) request(name string, decode decoder, method domain.Method, url string, body []byte) *Call {
	return c.call(name, decode, func(_ context.Context, token string) (transaction.Request, error) {
		return transaction.Request{URL: url, Method: method, Body: body, Token: token}, nil
	})
}

// invalid is a call that fails validation before anything is sent.
func (c *Client) invalid(name string, err error) *Call {
	return c.call(name, nil, func(context.Context, string) (transaction.Request, error) {
		return transaction.Request{}, err
	})
}

func (c *Client) jsonRequest(name string, decode decoder, method domain.Method, url string, body any) *Call {
	encoded, err := json.Marshal(body)
	if err != nil {
		return c.invalid(name, domain.InvalidInput("encode %s body: %v", name, err))
	}
	return c.request(name, decode, method, url, encoded)
}

// Do runs the call on the calling goroutine. The envelope is terminal and
// carries SyncTransactionID.
func (call *Call) Do(ctx context.Context) domain.Response {
	c := call.client

	if call.plan != nil {
		plan, err := call.plan(c.session.AccessToken())
		if err != nil {
			return call.fail(domain.SyncTransactionID, err, nil)
		}
		return c.orchestrator.Run(ctx, plan)
	}

	if call.prepare != nil {
		call.prepare()
	}
	req, err := call.build(ctx, c.session.AccessToken())
	if err != nil {
		return call.fail(domain.SyncTransactionID, err, nil)
	}

	exchange, err := c.pool.Send(ctx, req)
	return call.resolve(domain.SyncTransactionID, exchange, err)
}

// Go starts the call and returns its Pending envelope. handler runs once on
// the client executor with the terminal envelope. A call that cannot start
// returns a Failure with SyncTransactionID and handler is not called.
func (call *Call) Go(ctx context.Context, handler Handler) domain.Response {
	return call.start(ctx, handler, 0)
}

// Dispatch routes the call through the session: with a delegate installed it
// behaves like Go and completes on the delegate, without one it behaves like
// Do.
func (call *Call) Dispatch(ctx context.Context) domain.Response {
	delegate, generation := call.client.session.route()
	if delegate == nil {
		return call.Do(ctx)
	}

	session := call.client.session
	return call.start(ctx, func(resp domain.Response) {
		if !session.current(generation) {
			call.client.pool.Trace(resp.TransactionID).Debug("delegate replaced, envelope dropped")
			return
		}
		delegate.OnResponse(resp)
	}, generation)
}

// Cancel suppresses the envelope a run of this call started under id, see
// Client.Cancel.
func (call *Call) Cancel(id domain.TransactionID) bool {
	return call.client.Cancel(id)
}

func (call *Call) start(ctx context.Context, handler Handler, generation uint64) domain.Response {
	c := call.client

	if call.plan != nil {
		plan, err := call.plan(c.session.AccessToken())
		if err != nil {
			return call.fail(domain.SyncTransactionID, err, nil)
		}
		plan.Generation = generation
		return c.orchestrator.Start(ctx, plan, multistep.Deliver(handler))
	}

	if call.prepare != nil {
		call.prepare()
	}
	req, err := call.build(ctx, c.session.AccessToken())
	if err != nil {
		return call.fail(domain.SyncTransactionID, err, nil)
	}

	id, err := c.pool.SendAsync(ctx, req, func(exchange transaction.Exchange, err error) {
		resp := call.resolve(exchange.TransactionID, exchange, err)
		if handler != nil {
			handler(resp)
		}
	})
	if err != nil {
		return call.fail(domain.SyncTransactionID, err, nil)
	}
	return domain.NewPending(id)
}

func (call *Call) resolve(id domain.TransactionID, exchange transaction.Exchange, err error) domain.Response {
	if err != nil {
		return call.fail(id, err, exchange.Body)
	}

	var payload any
	if call.decode != nil && len(exchange.Body) > 0 {
		payload, err = call.decode(exchange.Body)
		if err != nil {
			return call.fail(id, fmt.Errorf("decode response: %w", err), exchange.Body)
		}
	}
	if call.succeed != nil {
		call.succeed(payload, exchange.Body)
	}
	return domain.NewSuccess(id, payload, exchange.Body)
}

func (call *Call) fail(id domain.TransactionID, err error, raw []byte) domain.Response {
	call.client.pool.Trace(id).WithField("call", call.name).WithError(err).Error("call failed")
	return domain.NewFailure(id, err, raw)
}
