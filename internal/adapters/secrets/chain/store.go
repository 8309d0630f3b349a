package chain

import (
	"context"
	"errors"
	"fmt"

	filestore "github.com/bnema/usergrid-go/internal/adapters/secrets/file"
	passstore "github.com/bnema/usergrid-go/internal/adapters/secrets/pass"
	"github.com/bnema/usergrid-go/internal/domain"
	"github.com/bnema/usergrid-go/internal/ports"
)

var errNoStores = errors.New("token store chain is empty")

// Store tries its backends in order. Put lands in the first backend that
// accepts it, Get reads the first backend holding the ref, and Delete clears
// the ref everywhere.
type Store struct {
	stores []ports.TokenStore
}

var _ ports.TokenStore = (*Store)(nil)

func NewStore(stores ...ports.TokenStore) (*Store, error) {
	kept := make([]ports.TokenStore, 0, len(stores))
	for _, store := range stores {
		if store != nil {
			kept = append(kept, store)
		}
	}
	if len(kept) == 0 {
		return nil, errNoStores
	}
	return &Store{stores: kept}, nil
}

// NewPassFirstWithFileFallback prefers the password store and falls back to
// a token file at path.
func NewPassFirstWithFileFallback(path string) (*Store, error) {
	return NewStore(passstore.NewStore(), filestore.NewStore(path))
}

func (s *Store) Put(ctx context.Context, ref string, token string) error {
	var errs []error
	for i, store := range s.stores {
		err := store.Put(ctx, ref, token)
		if err == nil {
			return nil
		}
		if interrupted(err) {
			return err
		}
		errs = append(errs, fmt.Errorf("backend %d put: %w", i, err))
	}
	return errors.Join(errs...)
}

func (s *Store) Get(ctx context.Context, ref string) (string, error) {
	var errs []error
	missing := 0
	for i, store := range s.stores {
		token, err := store.Get(ctx, ref)
		if err == nil {
			return token, nil
		}
		if interrupted(err) {
			return "", err
		}
		if errors.Is(err, domain.ErrSecretNotFound) {
			missing++
		}
		errs = append(errs, fmt.Errorf("backend %d get: %w", i, err))
	}
	if missing == len(s.stores) {
		return "", fmt.Errorf("token %q: %w", ref, domain.ErrSecretNotFound)
	}
	return "", errors.Join(errs...)
}

// Delete succeeds when at least one backend no longer holds ref.
func (s *Store) Delete(ctx context.Context, ref string) error {
	var errs []error
	for i, store := range s.stores {
		err := store.Delete(ctx, ref)
		if err == nil {
			continue
		}
		if interrupted(err) {
			return err
		}
		errs = append(errs, fmt.Errorf("backend %d delete: %w", i, err))
	}
	if len(errs) == len(s.stores) {
		return errors.Join(errs...)
	}
	return nil
}

func interrupted(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
