package memory

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"

	"taskapi/internal/core/port"
)

type Store struct {
	cache *cache.Cache
}

// NewStore keeps entries in process memory. Expired entries are swept every
// cleanupInterval.
func NewStore(defaultTTL, cleanupInterval time.Duration) port.CacheRepository {
	return &Store{cache: cache.New(defaultTTL, cleanupInterval)}
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	value, found := s.cache.Get(key)

	if !found {
		return nil, port.ErrCacheMiss
	}

	data, ok := value.([]byte)

	if !ok {
		return nil, port.ErrCacheMiss
	}

	return data, nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	stored := make([]byte, len(value))
	copy(stored, value)

	if ttl <= 0 {
		ttl = cache.DefaultExpiration
	}

	s.cache.Set(key, stored, ttl)

	return nil
}

func (s *Store) Delete(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		s.cache.Delete(key)
	}

	return nil
}
