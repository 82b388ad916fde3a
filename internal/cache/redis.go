package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis implements Cache on top of a go-redis client.
type Redis struct {
	client *redis.Client
}

// NewRedis connects to the broker and verifies the connection.
func NewRedis(ctx context.Context, addr, password string, db int) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("cache: ping redis: %w", err)
	}
	return &Redis{client: client}, nil
}

// Close releases the underlying client.
func (r *Redis) Close() error {
	return r.client.Close()
}

// Get returns the value at key, or ErrMiss.
func (r *Redis) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, fmt.Errorf("cache: get %s: %w", key, err)
	}
	return val, nil
}

// SetWithTTL stores value at key with automatic expiry.
func (r *Redis) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := r.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("cache: set %s: %w", key, err)
	}
	return nil
}

// DeleteByPattern scans for keys matching each glob pattern and deletes them.
// SCAN rather than KEYS so a large keyspace never blocks the broker.
func (r *Redis) DeleteByPattern(ctx context.Context, patterns ...string) error {
	var firstErr error
	for _, pattern := range patterns {
		iter := r.client.Scan(ctx, 0, pattern, 0).Iterator()
		for iter.Next(ctx) {
			if err := r.client.Del(ctx, iter.Val()).Err(); err != nil && firstErr == nil {
				firstErr = fmt.Errorf("cache: del %s: %w", iter.Val(), err)
			}
		}
		if err := iter.Err(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("cache: scan %s: %w", pattern, err)
		}
	}
	return firstErr
}

// Publish broadcasts payload on the named channel.
func (r *Redis) Publish(ctx context.Context, channel string, payload []byte) error {
	if err := r.client.Publish(ctx, channel, payload).Err(); err != nil {
		return fmt.Errorf("cache: publish %s: %w", channel, err)
	}
	return nil
}

// Subscribe returns a channel of raw messages published on the named
// channel. The channel closes when ctx is cancelled.
func (r *Redis) Subscribe(ctx context.Context, channel string) <-chan []byte {
	sub := r.client.Subscribe(ctx, channel)
	out := make(chan []byte, 64)
	go func() {
		defer close(out)
		defer sub.Close()
		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				select {
				case out <- []byte(msg.Payload):
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out
}

// Verify *Redis satisfies Cache at compile time.
var _ Cache = (*Redis)(nil)
