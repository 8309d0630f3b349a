package pass

import (
	"context"
	"errors"
	"testing"

	"github.com/bnema/usergrid-go/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ref = "usergrid/work/acme/pets/token"

func TestStorePutInsertsMultiline(t *testing.T) {
	t.Parallel()

	called := false
	store := &Store{
		run: func(_ context.Context, input string, args ...string) (string, string, error) {
			called = true
			assert.Equal(t, []string{"insert", "-m", "-f", ref}, args)
			assert.Equal(t, "tok\n", input)
			return "", "", nil
		},
	}

	require.NoError(t, store.Put(context.Background(), ref, "tok"))
	assert.True(t, called)
}

func TestStoreGetKeepsFirstLine(t *testing.T) {
	t.Parallel()

	store := &Store{
		run: func(_ context.Context, input string, args ...string) (string, string, error) {
			assert.Equal(t, []string{"show", ref}, args)
			assert.Empty(t, input)
			return "tok\r\nexpires: tomorrow\n", "", nil
		},
	}

	value, err := store.Get(context.Background(), ref)
	require.NoError(t, err)
	assert.Equal(t, "tok", value)
}

func TestStoreGetMapsMissingEntry(t *testing.T) {
	t.Parallel()

	store := &Store{
		run: func(context.Context, string, ...string) (string, string, error) {
			return "", "Error: " + ref + " is not in the password store.", errors.New("exit status 1")
		},
	}

	_, err := store.Get(context.Background(), ref)
	require.ErrorIs(t, err, domain.ErrSecretNotFound)
	assert.ErrorContains(t, err, "pass get")

	require.NoError(t, store.Delete(context.Background(), ref))
}

func TestStoreReportsStderr(t *testing.T) {
	t.Parallel()

	store := &Store{
		run: func(context.Context, string, ...string) (string, string, error) {
			return "", "gpg: decryption failed", errors.New("exit status 2")
		},
	}

	_, err := store.Get(context.Background(), ref)
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrSecretNotFound)
	assert.ErrorContains(t, err, ref)
	assert.ErrorContains(t, err, "gpg: decryption failed")
}

func TestStoreRejectsEmptyRef(t *testing.T) {
	t.Parallel()

	store := &Store{
		run: func(context.Context, string, ...string) (string, string, error) {
			t.Fatal("pass must not run")
			return "", "", nil
		},
	}

	require.Error(t, store.Put(context.Background(), " ", "tok"))
}
