package state

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"verse_channel_bot/internal/domain/cursor"
)

// RedisRepository stores the state document as a single string value.
type RedisRepository struct {
	client *redis.Client
	key    string
}

var _ cursor.Repository = (*RedisRepository)(nil)

func NewRedisRepository(client *redis.Client, key string) *RedisRepository {
	return &RedisRepository{client: client, key: key}
}

func (r *RedisRepository) Fetch(ctx context.Context) (cursor.State, error) {
	data, err := r.client.Get(ctx, r.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return cursor.State{}, cursor.ErrNotFound
		}
		return cursor.State{}, fmt.Errorf("redis get %s: %w", r.key, err)
	}
	return decodeDocument(data)
}

func (r *RedisRepository) Persist(ctx context.Context, st cursor.State) error {
	data, err := encodeDocument(st)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, r.key, data, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", r.key, err)
	}
	return nil
}
