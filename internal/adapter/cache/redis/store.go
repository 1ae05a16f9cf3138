package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"taskapi/internal/core/port"
)

type Config struct {
	Addr     string
	Password string
	DB       int
}

type Store struct {
	rdb    *redis.Client
	prefix string
}

func NewClient(config Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
	})
}

// NewStore namespaces every key under prefix.
func NewStore(rdb *redis.Client, prefix string) port.CacheRepository {
	return &Store{rdb: rdb, prefix: prefix}
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.rdb.Get(ctx, s.prefix+key).Bytes()

	if errors.Is(err, redis.Nil) {
		return nil, port.ErrCacheMiss
	}

	if err != nil {
		return nil, err
	}

	return data, nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return s.rdb.Set(ctx, s.prefix+key, value, ttl).Err()
}

func (s *Store) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	prefixed := make([]string, len(keys))

	for i, key := range keys {
		prefixed[i] = s.prefix + key
	}

	return s.rdb.Del(ctx, prefixed...).Err()
}
