package store

import (
	"context"
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"
)

// RedisStore implements Store on top of a Redis instance. Every operation
// dials a fresh short-lived connection and releases it before returning, so
// no connection state survives across requests
type RedisStore struct {
	opts *redis.Options
}

// NewRedisStore parses the connection URL and returns a store. No connection
// is made until the first operation
func NewRedisStore(url string) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}

	return &RedisStore{opts: opts}, nil
}

// Put persists a value under the given key. Records carry no TTL; expiry is
// managed outside this system
func (s *RedisStore) Put(ctx context.Context, key, value string) error {
	return s.withClient(func(client *redis.Client) error {
		if err := client.Set(ctx, key, value, 0).Err(); err != nil {
			return fmt.Errorf("failed to set %q: %w", key, err)
		}
		return nil
	})
}

// Keys returns all stored keys starting with the given prefix
func (s *RedisStore) Keys(ctx context.Context, prefix string) ([]string, error) {
	var keys []string

	err := s.withClient(func(client *redis.Client) error {
		result, err := client.Keys(ctx, prefix+"*").Result()
		if err != nil {
			return fmt.Errorf("failed to list keys for prefix %q: %w", prefix, err)
		}
		keys = result
		return nil
	})

	return keys, err
}

// MultiGet fetches the values for all given keys with a single MGET
func (s *RedisStore) MultiGet(ctx context.Context, keys []string) ([]*string, error) {
	if len(keys) == 0 {
		return nil, nil
	}

	values := make([]*string, len(keys))

	err := s.withClient(func(client *redis.Client) error {
		result, err := client.MGet(ctx, keys...).Result()
		if err != nil {
			return fmt.Errorf("failed to fetch %d keys: %w", len(keys), err)
		}

		for i, raw := range result {
			if raw == nil {
				continue
			}
			if str, ok := raw.(string); ok {
				values[i] = &str
			}
		}
		return nil
	})

	return values, err
}

// withClient opens a scoped connection, runs fn, and guarantees the
// connection is released on every exit path
func (s *RedisStore) withClient(fn func(client *redis.Client) error) error {
	client := redis.NewClient(s.opts)
	defer func() {
		if err := client.Close(); err != nil {
			log.Printf("[STORE]: failed to close redis connection: %v", err)
		}
	}()

	return fn(client)
}
