package port

import (
	"context"

	"github.com/google/uuid"

	"taskapi/internal/core/domain"
)

// UserRepository persists users. Lookups return (nil, nil) when nothing
// matches. Add must fail with a conflict error when the username is taken,
// which is what closes the race left open by UsernameExists.
type UserRepository interface {
	Get(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	Add(ctx context.Context, user *domain.User) (*domain.User, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
}
