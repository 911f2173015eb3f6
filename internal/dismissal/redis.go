package dismissal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/patrickwarner/openinapp/internal/banner"
	"github.com/patrickwarner/openinapp/internal/db"

	"github.com/redis/go-redis/v9"
)

// RedisBackend stores client state under openinapp:{clientID}:{key}.
type RedisBackend struct {
	store *db.RedisStore
	// TTL of zero keeps keys forever.
	TTL time.Duration
}

// NewRedisBackend wraps an initialized RedisStore.
func NewRedisBackend(store *db.RedisStore, ttl time.Duration) *RedisBackend {
	return &RedisBackend{store: store, TTL: ttl}
}

// For returns the store for clientID.
func (b *RedisBackend) For(clientID string) banner.KeyValueStore {
	return &redisStore{backend: b, clientID: clientID}
}

func redisKey(clientID, key string) string {
	return fmt.Sprintf("openinapp:%s:%s", clientID, key)
}

type redisStore struct {
	backend  *RedisBackend
	clientID string
}

func (s *redisStore) client() (*redis.Client, error) {
	if s.backend.store == nil || s.backend.store.Client == nil {
		return nil, ErrNilClient
	}
	return s.backend.store.Client, nil
}

func (s *redisStore) Get(ctx context.Context, key string) (string, bool, error) {
	c, err := s.client()
	if err != nil {
		return "", false, err
	}
	v, err := c.Get(ctx, redisKey(s.clientID, key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get: %w", err)
	}
	return v, true, nil
}

func (s *redisStore) Set(ctx context.Context, key, value string) error {
	c, err := s.client()
	if err != nil {
		return err
	}
	if err := c.Set(ctx, redisKey(s.clientID, key), value, s.backend.TTL).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}
