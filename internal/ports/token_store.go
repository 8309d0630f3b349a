package ports

import "context"

type TokenStore interface {
	Get(ctx context.Context, ref string) (string, error)
	Put(ctx context.Context, ref string, token string) error
	Delete(ctx context.Context, ref string) error
}
