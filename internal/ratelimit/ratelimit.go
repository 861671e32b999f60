// Package ratelimit caps how often a user may trigger question generation.
// Counters live in an injected CounterStore so that several processes can
// share one window through Redis.
package ratelimit

import (
	"context"
	"fmt"
	"time"
)

// CounterStore increments fixed-window counters.
type CounterStore interface {
	// Incr adds one to key and returns the new count together with the time
	// the current window ends. The first Incr of a window starts it.
	Incr(ctx context.Context, key string, window time.Duration) (int64, time.Time, error)
}

// ErrLimited is returned when a user has used up the current window.
type ErrLimited struct {
	Key        string
	Limit      int
	RetryAfter time.Duration
}

func (e *ErrLimited) Error() string {
	return fmt.Sprintf("rate limit of %d exceeded for %s, retry after %s", e.Limit, e.Key, e.RetryAfter.Round(time.Second))
}

// Config configures a Limiter.
type Config struct {
	// Backend selects the counter store: "memory" or "redis".
	Backend string `mapstructure:"backend"`

	// RedisAddr is the host:port of the Redis server for the redis backend.
	RedisAddr string `mapstructure:"redis_addr"`

	// Limit is the number of calls allowed per window. Zero disables limiting.
	Limit int `mapstructure:"limit"`

	// Window is the fixed window length.
	Window time.Duration `mapstructure:"window"`
}

// Backends.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// DefaultConfig allows 20 generations per user per hour, counted in memory.
func DefaultConfig() Config {
	return Config{
		Backend: BackendMemory,
		Limit:   20,
		Window:  time.Hour,
	}
}

// Limiter enforces a fixed-window limit per key.
type Limiter struct {
	store  CounterStore
	limit  int
	window time.Duration
	prefix string
	now    func() time.Time
}

// NewLimiter returns a Limiter that allows limit calls per window for each
// key, counting in store.
func NewLimiter(store CounterStore, limit int, window time.Duration) *Limiter {
	return &Limiter{
		store:  store,
		limit:  limit,
		window: window,
		prefix: "prepdeck:ratelimit:",
		now:    time.Now,
	}
}

// Allow counts one call for key. It returns *ErrLimited when the call is over
// the limit and any store error unchanged.
func (l *Limiter) Allow(ctx context.Context, key string) error {
	if l.limit <= 0 {
		return nil
	}

	count, resetAt, err := l.store.Incr(ctx, l.prefix+key, l.window)
	if err != nil {
		return fmt.Errorf("rate limit counter: %w", err)
	}
	if count <= int64(l.limit) {
		return nil
	}

	retry := resetAt.Sub(l.now())
	if retry < 0 {
		retry = 0
	}
	return &ErrLimited{Key: key, Limit: l.limit, RetryAfter: retry}
}
