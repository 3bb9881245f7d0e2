package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
	goRedis "github.com/redis/go-redis/v9"
)

// CacheRepository stores JSON-encoded values with a time to live.
type CacheRepository interface {
	// Get decodes the cached value of key into dest and reports whether it was found.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

type redisCacheRepository struct {
	client *goRedis.Client
}

// NewRedisCacheRepository creates a CacheRepository backed by Redis.
func NewRedisCacheRepository(client *goRedis.Client) CacheRepository {
	return &redisCacheRepository{client: client}
}

func (r *redisCacheRepository) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, goRedis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis get %s: %w", key, err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("decode cached %s: %w", key, err)
	}
	return true, nil
}

func (r *redisCacheRepository) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode cached %s: %w", key, err)
	}
	if err := r.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (r *redisCacheRepository) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}

type memoryCacheRepository struct {
	store *cache.Cache
}

// NewMemoryCacheRepository creates an in-process CacheRepository. Values are kept
// encoded so callers get a private copy on every Get.
func NewMemoryCacheRepository(defaultTTL, cleanupInterval time.Duration) CacheRepository {
	return &memoryCacheRepository{store: cache.New(defaultTTL, cleanupInterval)}
}

func (r *memoryCacheRepository) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	v, ok := r.store.Get(key)
	if !ok {
		return false, nil
	}
	data, ok := v.([]byte)
	if !ok {
		return false, fmt.Errorf("unexpected cached type %T for %s", v, key)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("decode cached %s: %w", key, err)
	}
	return true, nil
}

func (r *memoryCacheRepository) Set(_ context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode cached %s: %w", key, err)
	}
	if ttl <= 0 {
		ttl = cache.DefaultExpiration
	}
	r.store.Set(key, data, ttl)
	return nil
}

func (r *memoryCacheRepository) Delete(_ context.Context, key string) error {
	r.store.Delete(key)
	return nil
}
