package ports

import (
	"context"

	"github.com/bnema/usergrid-go/internal/domain"
)

type ProfileRepository interface {
	GetByName(ctx context.Context, name domain.ProfileName) (domain.Profile, error)
	List(ctx context.Context) ([]domain.Profile, error)
	Save(ctx context.Context, profile domain.Profile) error
	Default(ctx context.Context) (domain.ProfileName, error)
	SetDefault(ctx context.Context, name domain.ProfileName) error
}
