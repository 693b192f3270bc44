package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCache stores entries in Redis under a common prefix.
// Backend failures are retried with backoff and reported wrapped in ErrBackend.
type RedisCache struct {
	client *redis.Client
	prefix string
}

// NewRedisCache connects to the Redis server at url (redis://[:pass@]host:port/db)
// and verifies the connection with a PING.
func NewRedisCache(ctx context.Context, url, prefix string) (*RedisCache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	c := &RedisCache{client: redis.NewClient(opts), prefix: prefix}
	if err := c.do(ctx, func() error { return c.client.Ping(ctx).Err() }); err != nil {
		c.client.Close()
		return nil, err
	}
	return c, nil
}

// Get retrieves a value from the cache.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var data []byte
	err := c.do(ctx, func() error {
		var err error
		data, err = c.client.Get(ctx, c.prefix+key).Bytes()
		return err
	})
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// Set stores a value in the cache. A non-positive ttl never expires.
func (c *RedisCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}
	return c.do(ctx, func() error {
		return c.client.Set(ctx, c.prefix+key, data, ttl).Err()
	})
}

// Delete removes a value from the cache.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	return c.do(ctx, func() error {
		return c.client.Del(ctx, c.prefix+key).Err()
	})
}

// Clear deletes every key under the cache prefix. An empty prefix is
// refused so a shared database is never wiped.
func (c *RedisCache) Clear(ctx context.Context) error {
	if c.prefix == "" {
		return errors.New("refusing to clear redis cache without a key prefix")
	}
	var cursor uint64
	for {
		var keys []string
		err := c.do(ctx, func() error {
			var err error
			keys, cursor, err = c.client.Scan(ctx, cursor, c.prefix+"*", 500).Result()
			return err
		})
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.do(ctx, func() error { return c.client.Del(ctx, keys...).Err() }); err != nil {
				return err
			}
		}
		if cursor == 0 {
			return nil
		}
	}
}

// Close closes the underlying client.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// do runs op with retries. Misses and context errors are returned as is;
// anything else is a backend failure.
func (c *RedisCache) do(ctx context.Context, op func() error) error {
	err := RetryWithBackoff(ctx, func() error {
		err := op()
		switch {
		case err == nil, errors.Is(err, redis.Nil):
			return err
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return err
		default:
			return Retryable(err)
		}
	})
	if err == nil || errors.Is(err, redis.Nil) || ctx.Err() != nil {
		return err
	}
	var re *RetryableError
	if errors.As(err, &re) {
		err = re.Err
	}
	return fmt.Errorf("%w: %v", ErrBackend, err)
}

var (
	_ Cache   = (*RedisCache)(nil)
	_ Clearer = (*RedisCache)(nil)
)
