package prefs

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

type redisKV struct {
	rdb *redis.Client
}

// NewRedisKV adapts a Redis client to the KV interface. Preferences are
// durable user settings, so keys are written without expiration.
func NewRedisKV(rdb *redis.Client) KV {
	return &redisKV{rdb: rdb}
}

func (kv *redisKV) Get(ctx context.Context, key string) (string, error) {
	value, err := kv.rdb.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrNotFound
		}
		return "", err
	}
	return value, nil
}

func (kv *redisKV) Set(ctx context.Context, key, value string) error {
	return kv.rdb.Set(ctx, key, value, 0).Err()
}

func (kv *redisKV) Del(ctx context.Context, key string) error {
	return kv.rdb.Del(ctx, key).Err()
}
