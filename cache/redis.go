package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"ncstfeed/types"

	"github.com/redis/go-redis/v9"
)

// RedisConfig configures the Redis-backed slot
type RedisConfig struct {
	Addr     string // e.g. localhost:6379
	Password string
	DB       int
	Key      string // redis key holding the slot
}

// RedisStore keeps the slot in one Redis key so several instances share it
type RedisStore struct {
	client *redis.Client
	key    string
}

// NewRedisStore creates a RedisStore and verifies connectivity
func NewRedisStore(cfg RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Ping to verify
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr, err)
	}

	key := cfg.Key
	if key == "" {
		key = "ncstfeed:payload"
	}
	return &RedisStore{client: client, key: key}, nil
}

func (r *RedisStore) Get(ctx context.Context) (*types.CacheEntry, error) {
	data, err := r.client.Get(ctx, r.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", r.key, err)
	}

	var entry types.CacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, fmt.Errorf("decode cache entry: %w", err)
	}
	return &entry, nil
}

// Set writes the entry with a single SET ... EX so the slot is never partially updated
func (r *RedisStore) Set(ctx context.Context, entry types.CacheEntry, ttl time.Duration) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encode cache entry: %w", err)
	}
	if err := r.client.Set(ctx, r.key, data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", r.key, err)
	}
	return nil
}

func (r *RedisStore) Clear(ctx context.Context) error {
	return r.client.Del(ctx, r.key).Err()
}

// Close closes the underlying Redis client
func (r *RedisStore) Close() error {
	return r.client.Close()
}
