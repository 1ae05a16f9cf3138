// Package cache decorates repositories with a read-through cache.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"taskapi/internal/core/domain"
	"taskapi/internal/core/port"
)

const taskKeyPrefix = "task:"

// TaskRepository caches Get by id. Values are stored as serialized records,
// so every caller rehydrates its own Task. Writes evict the entry; cache
// failures fall back to the wrapped repository.
//
// A load that overlaps an eviction is returned to its callers but never
// written back, so the cache cannot resurrect a record a write replaced.
type TaskRepository struct {
	next      port.TaskRepository
	cache     port.CacheRepository
	ttl       time.Duration
	telemetry port.Telemetry
	group     singleflight.Group

	mu         sync.RWMutex
	generation uint64
}

func NewTaskRepository(next port.TaskRepository, cache port.CacheRepository, ttl time.Duration, telemetry port.Telemetry) port.TaskRepository {
	return &TaskRepository{
		next:      next,
		cache:     cache,
		ttl:       ttl,
		telemetry: telemetry,
	}
}

func (r *TaskRepository) Get(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	key := taskKeyPrefix + id.String()

	if data, err := r.cache.Get(ctx, key); err == nil {
		var record domain.TaskRecord

		if err := json.Unmarshal(data, &record); err == nil {
			r.telemetry.RecordCacheLookup(ctx, "task", true)
			return domain.RestoreTask(record), nil
		}
	} else if !errors.Is(err, port.ErrCacheMiss) {
		slog.WarnContext(ctx, "Task cache read failed", "key", key, "error", err)
	}

	r.telemetry.RecordCacheLookup(ctx, "task", false)

	value, err, _ := r.group.Do(key, func() (interface{}, error) {
		// Shared by every waiter; it outlives any one caller's cancellation.
		loadCtx := context.WithoutCancel(ctx)
		generation := r.currentGeneration()

		task, err := r.next.Get(loadCtx, id)

		if err != nil || task == nil {
			return nil, err
		}

		record := task.Record()
		r.store(loadCtx, key, record, generation)

		return record, nil
	})

	if err != nil || value == nil {
		return nil, err
	}

	return domain.RestoreTask(value.(domain.TaskRecord)), nil
}

func (r *TaskRepository) List(ctx context.Context, filter domain.TaskFilter) ([]*domain.Task, error) {
	return r.next.List(ctx, filter)
}

func (r *TaskRepository) Add(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	return r.next.Add(ctx, task)
}

func (r *TaskRepository) Update(ctx context.Context, task *domain.Task) error {
	defer r.evict(ctx, task.ID())

	return r.next.Update(ctx, task)
}

func (r *TaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	defer r.evict(ctx, id)

	return r.next.Delete(ctx, id)
}

func (r *TaskRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.next.Exists(ctx, id)
}

// store writes record unless an eviction happened since generation was read.
func (r *TaskRepository) store(ctx context.Context, key string, record domain.TaskRecord, generation uint64) {
	data, err := json.Marshal(record)

	if err != nil {
		return
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.generation != generation {
		slog.DebugContext(ctx, "Task cache write skipped after concurrent eviction", "key", key)
		return
	}

	if err := r.cache.Set(ctx, key, data, r.ttl); err != nil {
		slog.WarnContext(ctx, "Task cache write failed", "key", key, "error", err)
	}
}

func (r *TaskRepository) currentGeneration() uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.generation
}

func (r *TaskRepository) evict(ctx context.Context, id uuid.UUID) {
	key := taskKeyPrefix + id.String()

	r.mu.Lock()
	r.generation++
	r.mu.Unlock()

	if err := r.cache.Delete(ctx, key); err != nil {
		slog.WarnContext(ctx, "Task cache eviction failed", "key", key, "error", err)
	}

	r.group.Forget(key)
}
