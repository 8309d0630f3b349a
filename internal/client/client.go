// Package client is the entry point of the SDK: a Client owns the channel
// pool, the compound operation sequencer and one Session.
package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/bnema/usergrid-go/internal/adapters/transport/httpx"
	"github.com/bnema/usergrid-go/internal/domain"
	"github.com/bnema/usergrid-go/internal/endpoint"
	"github.com/bnema/usergrid-go/internal/multistep"
	"github.com/bnema/usergrid-go/internal/ports"
	"github.com/bnema/usergrid-go/internal/transaction"
	"github.com/bnema/usergrid-go/internal/version"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
)

type Config struct {
	BaseURL        string
	OrganizationID string
	ApplicationID  string

	// Logging enables the diagnostic trace from the start.
	Logging     bool
	MaxChannels int
	Logger      log.FieldLogger
	// Registerer receives the pool metrics. Nil keeps them unregistered.
	Registerer prometheus.Registerer
	// Executor is where handlers and delegates run. Defaults to a serial
	// executor.
	Executor  transaction.Executor
	Transport ports.Transport
	Devices   ports.DeviceIDSource
	Clock     ports.Clock
}

type Client struct {
	routes       endpoint.Builder
	pool         *transaction.Pool
	orchestrator *multistep.Orchestrator
	session      *Session
	devices      ports.DeviceIDSource
	clock        ports.Clock
}

func New(cfg Config) (*Client, error) {
	if cfg.OrganizationID == "" || cfg.ApplicationID == "" {
		return nil, domain.InvalidInput("organization and application ids are required")
	}

	metrics, err := transaction.NewMetrics(cfg.Registerer)
	if err != nil {
		return nil, fmt.Errorf("register pool metrics: %w", err)
	}

	transport := cfg.Transport
	if transport == nil {
		transport = httpx.New(http.DefaultClient)
	}
	clock := cfg.Clock
	if clock == nil {
		clock = ports.SystemClock{}
	}

	pool := transaction.NewPool(transport, transaction.Options{
		MaxChannels: cfg.MaxChannels,
		Executor:    cfg.Executor,
		Logger:      cfg.Logger,
		Metrics:     metrics,
	})
	pool.SetLogging(cfg.Logging)

	routes := endpoint.New(cfg.BaseURL, cfg.OrganizationID, cfg.ApplicationID)

	return &Client{
		routes:       routes,
		pool:         pool,
		orchestrator: multistep.New(pool, routes),
		session:      newSession(),
		devices:      cfg.Devices,
		clock:        clock,
	}, nil
}

func (c *Client) Version() string { return version.Version }

func (c *Client) Session() *Session { return c.session }

func (c *Client) AccessToken() string { return c.session.AccessToken() }

func (c *Client) LoggedInUser() *domain.User { return c.session.LoggedInUser() }

func (c *Client) Delegate() Delegate { return c.session.Delegate() }

// SetDelegate installs the target Dispatch completes on: a Delegate, a
// func(domain.Response), or nil for blocking calls. Any other value is
// rejected and the current delegate stays. Installing a target abandons what
// the previous one had in flight.
func (c *Client) SetDelegate(target any) error {
	delegate, err := asDelegate(target)
	if err != nil {
		return err
	}

	previous := c.session.swap(delegate)
	if dropped := c.orchestrator.Abandon(previous); dropped > 0 {
		c.pool.Trace(domain.SyncTransactionID).WithField("dropped", dropped).Debug("abandoned compound operations of previous delegate")
	}
	return nil
}

func (c *Client) SetLogging(enabled bool) { c.pool.SetLogging(enabled) }

func (c *Client) Logging() bool { return c.pool.Logging() }

// Cancel suppresses the envelope of the call reported under id. The request
// already sent still runs on the server.
func (c *Client) Cancel(id domain.TransactionID) bool {
	if c.orchestrator.Cancel(id) {
		return true
	}
	return c.pool.Cancel(id)
}

func (c *Client) Routes() endpoint.Builder { return c.routes }

func (c *Client) deviceID(ctx context.Context) (string, error) {
	if c.devices == nil {
		return "", domain.InvalidInput("no device id source configured")
	}
	id, err := c.devices.DeviceID(ctx)
	if err != nil {
		return "", fmt.Errorf("resolve device id: %w", err)
	}
	if id == "" {
		return "", domain.InvalidInput("device id is empty")
	}
	return id, nil
}
