package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	redis "github.com/redis/go-redis/v9"
)

const cacheKeyPrefix = "api_cache:"

// RedisCache keeps the generic named-API payloads in Redis. Entries never
// expire; the mock's cache is tiny and restart-safe storage is the point of
// choosing Redis over memory.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache connects from a redis URL. A failed ping returns an error so
// the caller can fall back to another cache backend.
func NewRedisCache(url string) (*RedisCache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return &RedisCache{client: client}, nil
}

func (c *RedisCache) Get(ctx context.Context, name string) (json.RawMessage, error) {
	val, err := c.client.Get(ctx, cacheKeyPrefix+name).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return json.RawMessage(val), nil
}

func (c *RedisCache) Put(ctx context.Context, name string, payload json.RawMessage) error {
	return c.client.Set(ctx, cacheKeyPrefix+name, []byte(payload), 0).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}
