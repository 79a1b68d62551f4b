package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis is a Redis-backed content cache. Values are stored as JSON;
// expiry is delegated to Redis.
type Redis[V any] struct {
	client    *redis.Client
	ttl       time.Duration
	keyPrefix string
}

// RedisConfig holds configuration for the Redis cache.
type RedisConfig struct {
	URL       string        // Redis connection URL (e.g., "redis://localhost:6379")
	TTL       time.Duration // Entry TTL (0 = no expiration)
	KeyPrefix string        // Prefix for all keys (default: "final-english:")
}

// NewRedis creates a Redis cache with the given configuration and
// verifies the connection.
func NewRedis[V any](cfg RedisConfig) (*Redis[V], error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return NewRedisFromClient[V](client, cfg.TTL, cfg.KeyPrefix), nil
}

// NewRedisFromClient creates a Redis cache from an existing client.
func NewRedisFromClient[V any](client *redis.Client, ttl time.Duration, keyPrefix string) *Redis[V] {
	if keyPrefix == "" {
		keyPrefix = "final-english:"
	}
	if ttl < 0 {
		ttl = 0
	}
	return &Redis[V]{
		client:    client,
		ttl:       ttl,
		keyPrefix: keyPrefix,
	}
}

// Get retrieves a value from Redis.
func (c *Redis[V]) Get(key string) (V, bool) {
	var zero V

	ctx := context.Background()
	data, err := c.client.Get(ctx, c.keyPrefix+key).Bytes()
	if err != nil {
		// redis.Nil and transport errors both read as a cache miss.
		return zero, false
	}

	var value V
	if err := json.Unmarshal(data, &value); err != nil {
		return zero, false
	}
	return value, true
}

// Set stores a value in Redis.
func (c *Redis[V]) Set(key string, value V) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(context.Background(), c.keyPrefix+key, data, c.ttl).Err()
}

// Close closes the Redis connection.
func (c *Redis[V]) Close() error {
	return c.client.Close()
}

// Ping tests the Redis connection.
func (c *Redis[V]) Ping() error {
	return c.client.Ping(context.Background()).Err()
}
