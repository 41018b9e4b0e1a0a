package store

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
)

func testRedisCache(t *testing.T) *RedisCache {
	t.Helper()
	mr := miniredis.RunT(t)
	cache, err := NewRedisCache("redis://" + mr.Addr())
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() { _ = cache.Close() })
	return cache
}

func TestRedisCacheRoundTrip(t *testing.T) {
	cache := testRedisCache(t)
	ctx := context.Background()

	payload := json.RawMessage(`{"goals":[{"id":"g1"}]}`)
	if err := cache.Put(ctx, "GetQuestSkinAPI", payload); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, err := cache.Get(ctx, "GetQuestSkinAPI")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != string(payload) {
		t.Fatalf("payload changed: %s", got)
	}
}

func TestRedisCacheMiss(t *testing.T) {
	cache := testRedisCache(t)

	_, err := cache.Get(context.Background(), "NoSuchAPI")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRedisCacheOverwrite(t *testing.T) {
	cache := testRedisCache(t)
	ctx := context.Background()

	_ = cache.Put(ctx, "Announcement", json.RawMessage(`{"v":1}`))
	_ = cache.Put(ctx, "Announcement", json.RawMessage(`{"v":2}`))

	got, err := cache.Get(ctx, "Announcement")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != `{"v":2}` {
		t.Fatalf("expected latest payload, got %s", got)
	}
}

func TestRedisCacheBadURL(t *testing.T) {
	if _, err := NewRedisCache("not-a-url"); err == nil {
		t.Fatalf("expected error for malformed url")
	}
}
