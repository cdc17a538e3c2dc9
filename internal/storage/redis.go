package storage

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps the key-value state in Redis. This is the default backend:
// it mirrors the flat browser-storage layout the shell used historically.
type RedisStore struct {
	Redis *redis.Client
	Ctx   context.Context
}

// NewRedisStore wraps an already connected Redis client.
func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{
		Redis: rdb,
		Ctx:   context.Background(),
	}
}

func (s *RedisStore) Get(key string) (string, bool, error) {
	val, err := s.Redis.Get(s.Ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

func (s *RedisStore) Set(key, value string) error {
	return s.Redis.Set(s.Ctx, key, value, 0).Err()
}

func (s *RedisStore) Remove(key string) error {
	return s.Redis.Del(s.Ctx, key).Err()
}
