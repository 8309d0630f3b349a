package transaction

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/bnema/usergrid-go/internal/domain"
	"github.com/bnema/usergrid-go/internal/ports"
)

const (
	contentTypeJSON = "application/json"
	contentTypeForm = "application/x-www-form-urlencoded"
)

// Request is one exchange as the channel sends it. Body is already encoded:
// JSON for POST and PUT, url-encoded for POSTFORM, ignored for GET and DELETE.
type Request struct {
	URL    string
	Method domain.Method
	Body   []byte
	Token  string
}

// Exchange is what came back for one transaction. Body may be partial when
// the transport failed midway.
type Exchange struct {
	TransactionID domain.TransactionID
	StatusCode    int
	Body          []byte
}

// Callback receives the outcome of an asynchronous exchange. err is nil only
// for a 2xx answer.
type Callback func(Exchange, error)

type Channel struct {
	pool *Pool

	mu         sync.Mutex
	id         domain.TransactionID
	available  bool
	running    bool
	cancelled  bool
	delivering bool
	token      string
	lastErr    string
}

func (c *Channel) ID() domain.TransactionID {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.id
}

func (c *Channel) IsAvailable() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.available
}

func (c *Channel) setAvailable(available bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.available = available
}

// LastError is the message of the last failed exchange, "" when the last
// exchange succeeded or none has finished since the channel was handed out.
func (c *Channel) LastError() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// ExecuteSync blocks until the transport answers. The channel goes back to the
// pool before ExecuteSync returns.
func (c *Channel) ExecuteSync(ctx context.Context, req Request) (Exchange, error) {
	if err := c.begin(req); err != nil {
		return Exchange{}, err
	}

	exchange, err := c.perform(ctx, req)
	c.record(err)
	c.finish(err)

	return exchange, err
}

// ExecuteAsync starts the exchange on its own goroutine and returns the
// channel's transaction id, or SyncTransactionID when the channel was not
// handed out by the pool or is already running. cb runs on the pool executor
// unless Cancel wins first. The channel is back in the pool by the time cb
// runs, so cb may send again on a capped pool.
func (c *Channel) ExecuteAsync(ctx context.Context, req Request, cb Callback) domain.TransactionID {
	if err := c.begin(req); err != nil {
		return domain.SyncTransactionID
	}
	id := c.ID()

	go func() {
		exchange, err := c.perform(ctx, req)
		c.record(err)
		c.pool.executor.Execute(func() {
			if !c.startDelivery() {
				c.pool.Trace(id).Debug("callback suppressed by cancel")
				c.pool.metrics.observeFinish(outcomeCancelled)
				c.finish(nil)
				return
			}
			c.finish(err)
			if cb != nil {
				cb(exchange, err)
			}
		})
	}()

	return id
}

// Cancel suppresses the pending callback. It reports true when the channel
// observed the cancel before delivery started, in which case the callback will
// never run. The request already sent is not aborted.
func (c *Channel) Cancel() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cancelLocked()
}

// cancelTransaction cancels only while the channel still runs id, so a stale
// id never hits the next transaction of a recycled channel.
func (c *Channel) cancelTransaction(id domain.TransactionID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.id != id {
		return false
	}
	return c.cancelLocked()
}

func (c *Channel) cancelLocked() bool {
	if !c.running || c.delivering {
		return false
	}
	c.cancelled = true
	return true
}

func (c *Channel) begin(req Request) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.available {
		return fmt.Errorf("channel %d was not acquired: %w", c.id, domain.ErrChannelBusy)
	}
	if c.running {
		return fmt.Errorf("channel %d: %w", c.id, domain.ErrChannelBusy)
	}

	c.running = true
	c.cancelled = false
	c.delivering = false
	c.token = req.Token
	c.lastErr = ""
	c.pool.metrics.observeStart()
	return nil
}

func (c *Channel) startDelivery() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cancelled {
		return false
	}
	c.delivering = true
	return true
}

func (c *Channel) record(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		c.lastErr = err.Error()
	}
}

func (c *Channel) finish(err error) {
	c.mu.Lock()
	cancelled := c.cancelled
	c.running = false
	c.delivering = false
	c.mu.Unlock()

	if !cancelled {
		if err != nil {
			c.pool.metrics.observeFinish(outcomeFailure)
		} else {
			c.pool.metrics.observeFinish(outcomeSuccess)
		}
	}
	c.pool.Release(c)
}

func (c *Channel) perform(ctx context.Context, req Request) (Exchange, error) {
	c.mu.Lock()
	token := c.token
	id := c.id
	c.mu.Unlock()

	method := req.Method.Normalize()
	if !method.Valid() {
		return Exchange{TransactionID: id}, domain.InvalidInput("unsupported http method %q", req.Method)
	}

	header := http.Header{}
	header.Set("Accept", contentTypeJSON)
	if method == domain.MethodPostForm {
		header.Set("Content-Type", contentTypeForm)
	} else {
		header.Set("Content-Type", contentTypeJSON)
	}

	if token != "" {
		header.Set("Authorization", "Bearer "+token)
	}

	var body []byte
	switch method {
	case domain.MethodPost, domain.MethodPostForm, domain.MethodPut:
		body = req.Body
		if len(body) == 0 && method != domain.MethodPostForm {
			body = []byte("{}")
		}
	}

	log := c.pool.Trace(id)
	log.WithField("method", method).WithField("url", redactURL(req.URL)).Info("outgoing request")
	if len(body) > 0 {
		log.WithField("body", redactBody(body)).Info("outgoing body")
	}

	result, err := c.pool.transport.Perform(ctx, ports.HTTPRequest{
		URL:    req.URL,
		Method: method.HTTPMethod(),
		Body:   body,
		Header: header,
	})
	exchange := Exchange{TransactionID: id, StatusCode: result.StatusCode, Body: result.Body}
	if err != nil {
		log.WithError(err).Error("transport failure")
		return exchange, fmt.Errorf("%w: %s %s: %w", domain.ErrTransport, method.HTTPMethod(), redactURL(req.URL), err)
	}

	log.WithField("status", result.StatusCode).WithField("body", redactBody(result.Body)).Info("incoming response")

	if result.StatusCode < http.StatusOK || result.StatusCode >= http.StatusMultipleChoices {
		serverErr := decodeServerError(result)
		log.WithError(serverErr).Error("server reported failure")
		return exchange, serverErr
	}

	return exchange, nil
}

type serverErrorBody struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

func decodeServerError(result ports.HTTPResult) *domain.ServerError {
	serverErr := &domain.ServerError{Status: result.StatusCode}

	var payload serverErrorBody
	if err := json.Unmarshal(result.Body, &payload); err == nil {
		serverErr.Code = payload.Error
		serverErr.Description = payload.ErrorDescription
	}

	return serverErr
}
