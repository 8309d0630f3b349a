package transaction

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"

	"github.com/bnema/usergrid-go/internal/domain"
	"github.com/bnema/usergrid-go/internal/ports"
	"github.com/bnema/usergrid-go/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// heldExecutor queues jobs until the test releases them, so a cancel can be
// placed before or after delivery deterministically.
type heldExecutor struct {
	mu   sync.Mutex
	jobs []func()
	got  chan struct{}
}

func newHeldExecutor() *heldExecutor {
	return &heldExecutor{got: make(chan struct{}, 16)}
}

func (e *heldExecutor) Execute(job func()) {
	e.mu.Lock()
	e.jobs = append(e.jobs, job)
	e.mu.Unlock()
	e.got <- struct{}{}
}

func (e *heldExecutor) runNext(t *testing.T) {
	t.Helper()
	waitClosedOrSignal(t, e.got)

	e.mu.Lock()
	job := e.jobs[0]
	e.jobs = e.jobs[1:]
	e.mu.Unlock()
	job()
}

func waitClosedOrSignal(t *testing.T, signal <-chan struct{}) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		<-signal
		close(done)
	}()
	waitClosed(t, done)
}

func okTransport(t *testing.T) *mocks.MockTransport {
	transport := mocks.NewMockTransport(t)
	transport.EXPECT().Perform(mock.Anything, mock.Anything).
		Return(ports.HTTPResult{StatusCode: http.StatusOK, Body: []byte(`{"ok":true}`)}, nil)
	return transport
}

func TestChannelExecuteSyncRequiresAcquire(t *testing.T) {
	t.Parallel()

	pool := NewPool(mocks.NewMockTransport(t), Options{})
	ch, err := pool.Acquire()
	require.NoError(t, err)
	pool.Release(ch)

	_, err = ch.ExecuteSync(context.Background(), Request{URL: "http://example.test"})
	require.ErrorIs(t, err, domain.ErrChannelBusy)
}

func TestChannelExecuteAsyncOnReleasedChannelReturnsSyncID(t *testing.T) {
	t.Parallel()

	pool := NewPool(mocks.NewMockTransport(t), Options{})
	ch, err := pool.Acquire()
	require.NoError(t, err)
	pool.Release(ch)

	id := ch.ExecuteAsync(context.Background(), Request{URL: "http://example.test"}, nil)
	assert.Equal(t, domain.SyncTransactionID, id)
}

func TestChannelExecuteAsyncRejectsSecondStart(t *testing.T) {
	t.Parallel()

	executor := newHeldExecutor()
	pool := NewPool(okTransport(t), Options{Executor: executor})
	ch, err := pool.Acquire()
	require.NoError(t, err)

	first := ch.ExecuteAsync(context.Background(), Request{URL: "http://example.test"}, nil)
	assert.NotEqual(t, domain.SyncTransactionID, first)

	second := ch.ExecuteAsync(context.Background(), Request{URL: "http://example.test"}, nil)
	assert.Equal(t, domain.SyncTransactionID, second)

	executor.runNext(t)
	assert.True(t, ch.IsAvailable())
}

func TestChannelCancelBeforeDeliverySuppressesCallback(t *testing.T) {
	t.Parallel()

	executor := newHeldExecutor()
	pool := NewPool(okTransport(t), Options{Executor: executor})

	called := false
	id, err := pool.SendAsync(context.Background(), Request{URL: "http://example.test"}, func(Exchange, error) {
		called = true
	})
	require.NoError(t, err)

	assert.True(t, pool.Cancel(id))
	executor.runNext(t)

	assert.False(t, called)
	assert.Equal(t, 0, pool.Busy())
}

func TestChannelCancelAfterDeliveryReportsFalse(t *testing.T) {
	t.Parallel()

	executor := newHeldExecutor()
	pool := NewPool(okTransport(t), Options{Executor: executor})

	var cancelled bool
	ch, err := pool.Acquire()
	require.NoError(t, err)

	ch.ExecuteAsync(context.Background(), Request{URL: "http://example.test"}, func(Exchange, error) {
		cancelled = ch.Cancel()
	})
	executor.runNext(t)

	assert.False(t, cancelled)
	assert.False(t, ch.Cancel())
}

func TestChannelStaleCancelDoesNotHitRecycledChannel(t *testing.T) {
	t.Parallel()

	executor := newHeldExecutor()
	pool := NewPool(okTransport(t), Options{Executor: executor})

	first, err := pool.SendAsync(context.Background(), Request{URL: "http://example.test/1"}, nil)
	require.NoError(t, err)
	executor.runNext(t)
	require.Equal(t, 1, pool.Size())

	called := false
	second, err := pool.SendAsync(context.Background(), Request{URL: "http://example.test/2"}, func(Exchange, error) {
		called = true
	})
	require.NoError(t, err)
	require.Equal(t, 1, pool.Size())
	require.Greater(t, second, first)

	assert.False(t, pool.Cancel(first))
	executor.runNext(t)
	assert.True(t, called)
}

func TestChannelLastErrorTracksFailures(t *testing.T) {
	t.Parallel()

	transport := mocks.NewMockTransport(t)
	transport.EXPECT().Perform(mock.Anything, mock.Anything).
		Return(ports.HTTPResult{}, errors.New("dial tcp: refused")).Once()
	transport.EXPECT().Perform(mock.Anything, mock.Anything).
		Return(ports.HTTPResult{StatusCode: http.StatusOK}, nil).Once()

	pool := NewPool(transport, Options{})
	ch, err := pool.Acquire()
	require.NoError(t, err)

	_, err = ch.ExecuteSync(context.Background(), Request{URL: "http://example.test"})
	require.ErrorIs(t, err, domain.ErrTransport)
	assert.Contains(t, ch.LastError(), "dial tcp: refused")

	ch, err = pool.Acquire()
	require.NoError(t, err)
	_, err = ch.ExecuteSync(context.Background(), Request{URL: "http://example.test"})
	require.NoError(t, err)
	assert.Empty(t, ch.LastError())
}

func TestChannelRequestShaping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		req        Request
		wantMethod string
		wantType   string
		wantBody   string
		wantBearer string
	}{
		{
			name:       "get drops body",
			req:        Request{URL: "http://example.test/a", Method: domain.MethodGet, Body: []byte(`{"x":1}`)},
			wantMethod: http.MethodGet,
			wantType:   contentTypeJSON,
		},
		{
			name:       "empty method defaults to get",
			req:        Request{URL: "http://example.test/a"},
			wantMethod: http.MethodGet,
			wantType:   contentTypeJSON,
		},
		{
			name:       "post defaults to empty object",
			req:        Request{URL: "http://example.test/a", Method: domain.MethodPost},
			wantMethod: http.MethodPost,
			wantType:   contentTypeJSON,
			wantBody:   "{}",
		},
		{
			name:       "postform is form encoded post",
			req:        Request{URL: "http://example.test/token", Method: domain.MethodPostForm, Body: []byte("grant_type=password&username=u")},
			wantMethod: http.MethodPost,
			wantType:   contentTypeForm,
			wantBody:   "grant_type=password&username=u",
		},
		{
			name:       "put carries token",
			req:        Request{URL: "http://example.test/a", Method: domain.MethodPut, Body: []byte(`{"a":1}`), Token: "abc"},
			wantMethod: http.MethodPut,
			wantType:   contentTypeJSON,
			wantBody:   `{"a":1}`,
			wantBearer: "Bearer abc",
		},
		{
			name:       "lowercase delete",
			req:        Request{URL: "http://example.test/a", Method: domain.Method("delete")},
			wantMethod: http.MethodDelete,
			wantType:   contentTypeJSON,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var got ports.HTTPRequest
			transport := mocks.NewMockTransport(t)
			transport.EXPECT().Perform(mock.Anything, mock.Anything).
				RunAndReturn(func(_ context.Context, req ports.HTTPRequest) (ports.HTTPResult, error) {
					got = req
					return ports.HTTPResult{StatusCode: http.StatusOK}, nil
				})

			pool := NewPool(transport, Options{})
			_, err := pool.Send(context.Background(), tt.req)
			require.NoError(t, err)

			assert.Equal(t, tt.wantMethod, got.Method)
			assert.Equal(t, tt.wantType, got.Header.Get("Content-Type"))
			assert.Equal(t, contentTypeJSON, got.Header.Get("Accept"))
			assert.Equal(t, tt.wantBody, string(got.Body))
			assert.Equal(t, tt.wantBearer, got.Header.Get("Authorization"))
		})
	}
}

func TestChannelRejectsUnknownMethod(t *testing.T) {
	t.Parallel()

	pool := NewPool(mocks.NewMockTransport(t), Options{})
	_, err := pool.Send(context.Background(), Request{URL: "http://example.test", Method: domain.Method("PATCH")})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestChannelServerErrorWithoutJSONBody(t *testing.T) {
	t.Parallel()

	transport := mocks.NewMockTransport(t)
	transport.EXPECT().Perform(mock.Anything, mock.Anything).
		Return(ports.HTTPResult{StatusCode: http.StatusBadGateway, Body: []byte("<html>bad gateway</html>")}, nil)

	pool := NewPool(transport, Options{})
	exchange, err := pool.Send(context.Background(), Request{URL: "http://example.test"})

	var serverErr *domain.ServerError
	require.ErrorAs(t, err, &serverErr)
	assert.Equal(t, http.StatusBadGateway, serverErr.Status)
	assert.Empty(t, serverErr.Code)
	assert.Equal(t, "<html>bad gateway</html>", string(exchange.Body))
}

func TestChannelReturnsToPoolBeforeCallback(t *testing.T) {
	t.Parallel()

	executor := newHeldExecutor()
	pool := NewPool(okTransport(t), Options{Executor: executor, MaxChannels: 1})

	var (
		next    domain.TransactionID
		nextErr error
	)
	first, err := pool.SendAsync(context.Background(), Request{URL: "http://example.test/a"}, func(Exchange, error) {
		next, nextErr = pool.SendAsync(context.Background(), Request{URL: "http://example.test/b"}, nil)
	})
	require.NoError(t, err)

	executor.runNext(t)
	require.NoError(t, nextErr)
	assert.Greater(t, next, first)
	assert.Equal(t, 1, pool.Size())

	executor.runNext(t)
	assert.Equal(t, 0, pool.Busy())
}
