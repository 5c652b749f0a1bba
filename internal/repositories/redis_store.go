package repositories

import (
	"context"
	"fmt"
	"time"

	"apix/internal/repositories/cache"
)

const redisDocumentPrefix = "cep:pdf:"

// RedisStore keeps documents as raw Redis strings.
type RedisStore struct {
	cache *cache.RedisCache
	ttl   time.Duration
}

// NewRedisStore stores documents with the given ttl; zero means no expiry.
func NewRedisStore(c *cache.RedisCache, ttl time.Duration) *RedisStore {
	return &RedisStore{cache: c, ttl: ttl}
}

func (s *RedisStore) Save(ctx context.Context, key string, content []byte) error {
	if err := s.cache.SetBytes(ctx, key, content, s.ttl); err != nil {
		return fmt.Errorf("save document %s: %w", key, err)
	}
	return nil
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.cache.HealthCheck(ctx)
}

func (s *RedisStore) Close() error {
	return s.cache.Close()
}
