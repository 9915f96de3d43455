package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/etnz/folio"
	"github.com/redis/go-redis/v9"
)

// Redis stores keys in a Redis server, under an optional prefix.
type Redis struct {
	client *redis.Client
	prefix string
}

// NewRedis returns a store using the server at addr. No connection is made
// until the first call.
func NewRedis(addr, prefix string) *Redis {
	return NewRedisClient(redis.NewClient(&redis.Options{Addr: addr}), prefix)
}

// NewRedisClient returns a store using an existing client.
func NewRedisClient(client *redis.Client, prefix string) *Redis {
	return &Redis{client: client, prefix: prefix}
}

func (r *Redis) Load(ctx context.Context, key string) ([]byte, error) {
	value, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, folio.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %q failed: %w", key, err)
	}
	return value, nil
}

func (r *Redis) Save(ctx context.Context, key string, value []byte) error {
	if err := r.client.Set(ctx, r.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %q failed: %w", key, err)
	}
	return nil
}

func (r *Redis) Close() error {
	return r.client.Close()
}
