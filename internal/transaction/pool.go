package transaction

import (
	"context"
	"io"
	"sync"
	"sync/atomic"

	"github.com/bnema/usergrid-go/internal/domain"
	"github.com/bnema/usergrid-go/internal/ports"
	log "github.com/sirupsen/logrus"
)

type Options struct {
	// MaxChannels caps the pool. Zero grows without bound; when the cap is
	// reached Acquire fails instead of queueing.
	MaxChannels int
	Executor    Executor
	Logger      log.FieldLogger
	Metrics     *Metrics
}

// Pool hands out channels and mints transaction ids. It is the only state
// shared between concurrent exchanges.
type Pool struct {
	transport ports.Transport
	executor  Executor
	logger    log.FieldLogger
	discard   log.FieldLogger
	logging   atomic.Bool
	metrics   *Metrics
	max       int

	mu       sync.Mutex
	channels []*Channel
	lastID   domain.TransactionID
}

func NewPool(transport ports.Transport, opts Options) *Pool {
	executor := opts.Executor
	if executor == nil {
		executor = NewSerialExecutor()
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.StandardLogger()
	}

	quiet := log.New()
	quiet.SetOutput(io.Discard)

	return &Pool{
		transport: transport,
		executor:  executor,
		logger:    logger,
		discard:   quiet,
		metrics:   opts.Metrics,
		max:       opts.MaxChannels,
	}
}

// SetLogging turns the diagnostic trace of urls, bodies and errors on or off.
func (p *Pool) SetLogging(enabled bool) {
	p.logging.Store(enabled)
}

func (p *Pool) Logging() bool {
	return p.logging.Load()
}

// Trace returns the diagnostic logger for transaction id. It discards
// everything while logging is off.
func (p *Pool) Trace(id domain.TransactionID) log.FieldLogger {
	if !p.logging.Load() {
		return p.discard
	}
	return p.logger.WithField("txn", int64(id))
}

// NextTransactionID returns an id greater than every id returned before.
func (p *Pool) NextTransactionID() domain.TransactionID {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.nextIDLocked()
}

func (p *Pool) nextIDLocked() domain.TransactionID {
	p.lastID++
	return p.lastID
}

// Acquire returns an idle channel marked busy, creating one when every
// channel is in use.
func (p *Pool) Acquire() (*Channel, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, ch := range p.channels {
		if !ch.IsAvailable() {
			continue
		}
		ch.mu.Lock()
		ch.available = false
		ch.id = p.nextIDLocked()
		ch.mu.Unlock()
		p.observeLocked()
		return ch, nil
	}

	if p.max > 0 && len(p.channels) >= p.max {
		p.Trace(domain.SyncTransactionID).WithField("channels", len(p.channels)).Error("channel pool exhausted")
		return nil, domain.ErrChannelsExhausted
	}

	ch := &Channel{pool: p, id: p.nextIDLocked()}
	p.channels = append(p.channels, ch)
	p.observeLocked()
	return ch, nil
}

// Release puts ch back in rotation.
func (p *Pool) Release(ch *Channel) {
	if ch == nil || ch.pool != p {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	ch.setAvailable(true)
	p.observeLocked()
}

// Send runs req on a pooled channel and blocks for the answer.
func (p *Pool) Send(ctx context.Context, req Request) (Exchange, error) {
	ch, err := p.Acquire()
	if err != nil {
		return Exchange{}, err
	}
	return ch.ExecuteSync(ctx, req)
}

// SendAsync runs req on a pooled channel and returns its transaction id at
// once. cb runs on the executor when the exchange completes.
func (p *Pool) SendAsync(ctx context.Context, req Request, cb Callback) (domain.TransactionID, error) {
	ch, err := p.Acquire()
	if err != nil {
		return domain.SyncTransactionID, err
	}

	id := ch.ExecuteAsync(ctx, req, cb)
	if id == domain.SyncTransactionID {
		p.Release(ch)
		return id, domain.ErrChannelBusy
	}
	return id, nil
}

// Cancel suppresses the callback of the running transaction id. It reports
// false when no running channel carries id or delivery already began.
func (p *Pool) Cancel(id domain.TransactionID) bool {
	p.mu.Lock()
	var target *Channel
	for _, ch := range p.channels {
		if ch.ID() == id && !ch.IsAvailable() {
			target = ch
			break
		}
	}
	p.mu.Unlock()

	if target == nil {
		return false
	}
	return target.cancelTransaction(id)
}

func (p *Pool) Size() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.channels)
}

func (p *Pool) Busy() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.busyLocked()
}

func (p *Pool) busyLocked() int {
	busy := 0
	for _, ch := range p.channels {
		if !ch.IsAvailable() {
			busy++
		}
	}
	return busy
}

func (p *Pool) observeLocked() {
	p.metrics.observeChannels(len(p.channels), p.busyLocked())
}
