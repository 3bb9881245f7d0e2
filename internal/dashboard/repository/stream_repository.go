package repository

import (
	"context"
	"encoding/json"
	"fmt"

	goRedis "github.com/redis/go-redis/v9"
)

// StreamRepository publishes events to a Redis stream.
type StreamRepository interface {
	Publish(ctx context.Context, stream string, payload interface{}) error
}

type redisStreamRepository struct {
	client *goRedis.Client
	maxLen int64
}

// NewRedisStreamRepository creates a StreamRepository capping each stream at maxLen entries.
func NewRedisStreamRepository(client *goRedis.Client, maxLen int64) StreamRepository {
	return &redisStreamRepository{client: client, maxLen: maxLen}
}

func (r *redisStreamRepository) Publish(ctx context.Context, stream string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode stream payload: %w", err)
	}
	if err := r.client.XAdd(ctx, &goRedis.XAddArgs{
		Stream: stream,
		Values: map[string]interface{}{"payload": string(data)},
		MaxLen: r.maxLen,
		Approx: r.maxLen > 0,
	}).Err(); err != nil {
		return fmt.Errorf("xadd %s: %w", stream, err)
	}
	return nil
}

type nopStreamRepository struct{}

// NewNopStreamRepository returns a StreamRepository that drops every event. Used when Redis is disabled.
func NewNopStreamRepository() StreamRepository {
	return nopStreamRepository{}
}

func (nopStreamRepository) Publish(context.Context, string, interface{}) error {
	return nil
}
