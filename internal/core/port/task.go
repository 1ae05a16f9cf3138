package port

import (
	"context"

	"github.com/google/uuid"

	"taskapi/internal/core/domain"
)

// TaskRepository persists tasks. Get returns (nil, nil) when the task is absent.
// List orders by creation time ascending.
type TaskRepository interface {
	Get(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	List(ctx context.Context, filter domain.TaskFilter) ([]*domain.Task, error)
	Add(ctx context.Context, task *domain.Task) (*domain.Task, error)
	Update(ctx context.Context, task *domain.Task) error
	Delete(ctx context.Context, id uuid.UUID) error
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}
