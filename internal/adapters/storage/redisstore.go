package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/taskflow/core/internal/infrastructure/config"
)

// RedisStore persists key-value state as Redis string keys.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects to Redis with retry logic and verifies the
// connection before returning.
func NewRedisStore(cfg config.RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.GetAddr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	maxRetries := 5
	var err error
	for i := 0; i < maxRetries; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		err = client.Ping(ctx).Err()
		cancel()
		if err == nil {
			return &RedisStore{client: client}, nil
		}
		time.Sleep(time.Duration(i+1) * time.Second)
	}
	client.Close()
	return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.GetAddr(), err)
}

// Load reads the value for key
func (s *RedisStore) Load(ctx context.Context, key string) ([]byte, bool, error) {
	raw, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to load %q: %w", key, err)
	}
	return raw, true, nil
}

// Save overwrites the value for key with no expiration.
func (s *RedisStore) Save(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("failed to save %q: %w", key, err)
	}
	return nil
}

// Close closes the underlying client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
