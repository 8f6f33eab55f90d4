// Package ratelimit implements a Redis-backed token bucket used to
// throttle mutating API calls per user.
package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Default bucket parameters
const (
	DefaultCapacity        = 13
	DefaultRefillPerMinute = 10
)

// Limiter is a token bucket: each action consumes one token; tokens refill
// continuously at a fixed rate up to the bucket capacity.
type Limiter struct {
	client          *redis.Client
	prefix          string
	capacity        float64
	refillPerMinute float64
}

func NewLimiter(client *redis.Client, capacity, refillPerMinute int) *Limiter {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if refillPerMinute <= 0 {
		refillPerMinute = DefaultRefillPerMinute
	}
	return &Limiter{
		client:          client,
		prefix:          "ratelimit:bucket:",
		capacity:        float64(capacity),
		refillPerMinute: float64(refillPerMinute),
	}
}

// Refill computes the token count after elapsed time, capped at capacity.
// Pure arithmetic, separated out for testing.
func Refill(tokens float64, elapsed time.Duration, refillPerMinute, capacity float64) float64 {
	tokens += elapsed.Minutes() * refillPerMinute
	if tokens > capacity {
		tokens = capacity
	}
	if tokens < 0 {
		tokens = 0
	}
	return tokens
}

// Allow consumes one token for the key if available. It returns whether the
// action is allowed and how many whole tokens remain afterwards.
func (l *Limiter) Allow(ctx context.Context, key string) (bool, int, error) {
	tokens, now, err := l.load(ctx, key)
	if err != nil {
		return false, 0, err
	}

	allowed := tokens >= 1
	if allowed {
		tokens--
	}

	if err := l.save(ctx, key, tokens, now); err != nil {
		return false, 0, err
	}

	return allowed, int(tokens), nil
}

// Remaining returns the current whole-token balance without consuming
func (l *Limiter) Remaining(ctx context.Context, key string) (int, error) {
	tokens, _, err := l.load(ctx, key)
	if err != nil {
		return 0, err
	}
	return int(tokens), nil
}

// Reset refills the bucket for a key
func (l *Limiter) Reset(ctx context.Context, key string) error {
	return l.client.Del(ctx, l.tokensKey(key), l.stampKey(key)).Err()
}

// Capacity returns the bucket capacity
func (l *Limiter) Capacity() int {
	return int(l.capacity)
}

func (l *Limiter) load(ctx context.Context, key string) (float64, time.Time, error) {
	now := time.Now()

	pipe := l.client.Pipeline()
	tokensCmd := pipe.Get(ctx, l.tokensKey(key))
	stampCmd := pipe.Get(ctx, l.stampKey(key))
	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return 0, now, fmt.Errorf("rate limiter error: %w", err)
	}

	tokens := l.capacity
	last := now
	if raw, err := tokensCmd.Result(); err == nil {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			tokens = v
		}
	}
	if raw, err := stampCmd.Result(); err == nil {
		if unixNano, err := strconv.ParseInt(raw, 10, 64); err == nil {
			last = time.Unix(0, unixNano)
		}
	}

	return Refill(tokens, now.Sub(last), l.refillPerMinute, l.capacity), now, nil
}

func (l *Limiter) save(ctx context.Context, key string, tokens float64, now time.Time) error {
	// Expire after a full refill worth of idle time
	ttl := time.Duration(l.capacity/l.refillPerMinute*float64(time.Minute)) + time.Minute

	pipe := l.client.Pipeline()
	pipe.Set(ctx, l.tokensKey(key), strconv.FormatFloat(tokens, 'f', -1, 64), ttl)
	pipe.Set(ctx, l.stampKey(key), strconv.FormatInt(now.UnixNano(), 10), ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("rate limiter error: %w", err)
	}
	return nil
}

func (l *Limiter) tokensKey(key string) string {
	return l.prefix + key + ":tokens"
}

func (l *Limiter) stampKey(key string) string {
	return l.prefix + key + ":stamp"
}
