package chain

import (
	"context"
	"errors"
	"testing"

	"github.com/bnema/usergrid-go/internal/domain"
	portmocks "github.com/bnema/usergrid-go/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const ref = "usergrid/work/acme/pets/token"

func TestNewStoreNeedsABackend(t *testing.T) {
	t.Parallel()

	_, err := NewStore(nil, nil)
	require.ErrorIs(t, err, errNoStores)
}

func TestStoreGetUsesFirstBackendHoldingRef(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockTokenStore(t)
	fallback := portmocks.NewMockTokenStore(t)
	store, err := NewStore(primary, fallback)
	require.NoError(t, err)

	primary.EXPECT().Get(mock.Anything, ref).Return("", domain.ErrSecretNotFound).Once()
	fallback.EXPECT().Get(mock.Anything, ref).Return("from-file", nil).Once()

	value, err := store.Get(context.Background(), ref)
	require.NoError(t, err)
	assert.Equal(t, "from-file", value)
}

func TestStoreGetReportsNotFoundWhenNoBackendHasRef(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockTokenStore(t)
	fallback := portmocks.NewMockTokenStore(t)
	store, err := NewStore(primary, fallback)
	require.NoError(t, err)

	primary.EXPECT().Get(mock.Anything, ref).Return("", domain.ErrSecretNotFound).Once()
	fallback.EXPECT().Get(mock.Anything, ref).Return("", domain.ErrSecretNotFound).Once()

	_, err = store.Get(context.Background(), ref)
	require.ErrorIs(t, err, domain.ErrSecretNotFound)
}

func TestStoreGetJoinsBackendFailures(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockTokenStore(t)
	fallback := portmocks.NewMockTokenStore(t)
	store, err := NewStore(primary, fallback)
	require.NoError(t, err)

	primary.EXPECT().Get(mock.Anything, ref).Return("", errors.New("pass failed")).Once()
	fallback.EXPECT().Get(mock.Anything, ref).Return("", domain.ErrSecretNotFound).Once()

	_, err = store.Get(context.Background(), ref)
	require.Error(t, err)
	assert.ErrorContains(t, err, "backend 0 get")
	assert.ErrorContains(t, err, "pass failed")
	assert.ErrorContains(t, err, "backend 1 get")
}

func TestStorePutStopsAtFirstSuccess(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockTokenStore(t)
	fallback := portmocks.NewMockTokenStore(t)
	store, err := NewStore(primary, fallback)
	require.NoError(t, err)

	primary.EXPECT().Put(mock.Anything, ref, "tok").Return(errors.New("pass unavailable")).Once()
	fallback.EXPECT().Put(mock.Anything, ref, "tok").Return(nil).Once()

	require.NoError(t, store.Put(context.Background(), ref, "tok"))
}

func TestStorePutDoesNotFallBackWhenCancelled(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockTokenStore(t)
	fallback := portmocks.NewMockTokenStore(t)
	store, err := NewStore(primary, fallback)
	require.NoError(t, err)

	primary.EXPECT().Put(mock.Anything, ref, "tok").Return(context.Canceled).Once()

	require.ErrorIs(t, store.Put(context.Background(), ref, "tok"), context.Canceled)
}

func TestStoreDeleteClearsEveryBackend(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockTokenStore(t)
	fallback := portmocks.NewMockTokenStore(t)
	store, err := NewStore(primary, fallback)
	require.NoError(t, err)

	primary.EXPECT().Delete(mock.Anything, ref).Return(errors.New("pass unavailable")).Once()
	fallback.EXPECT().Delete(mock.Anything, ref).Return(nil).Once()

	require.NoError(t, store.Delete(context.Background(), ref))
}

func TestStoreDeleteFailsWhenEveryBackendFails(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockTokenStore(t)
	store, err := NewStore(primary)
	require.NoError(t, err)

	primary.EXPECT().Delete(mock.Anything, ref).Return(errors.New("broken")).Once()

	require.ErrorContains(t, store.Delete(context.Background(), ref), "broken")
}
