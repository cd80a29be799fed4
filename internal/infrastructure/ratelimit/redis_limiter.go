package ratelimit

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/you/admingate/domain"
)

// ClassConfig is the window and cap for one endpoint class.
type ClassConfig struct {
	Window time.Duration
	Max    int64
}

// Config holds the per-class limits. A class missing from the map is not
// throttled.
type Config map[domain.EndpointClass]ClassConfig

// DefaultConfig mirrors the production limits: login and verification are
// capped generously per window, resets tightly.
func DefaultConfig() Config {
	return Config{
		domain.EndpointLogin:  {Window: 15 * time.Minute, Max: 100},
		domain.EndpointVerify: {Window: 15 * time.Minute, Max: 100},
		domain.EndpointResend: {Window: 15 * time.Minute, Max: 50},
		domain.EndpointReset:  {Window: time.Hour, Max: 3},
	}
}

// RedisLimiterImpl implements domain.RateLimiter with a sliding window
// per (origin, class): a sorted set of request timestamps trimmed to the
// window on every call. Counting happens before recording, so the request
// that exceeds the cap is rejected without being stored against later
// windows forever.
type RedisLimiterImpl struct {
	client *redis.Client
	config Config
	now    func() time.Time
	seq    atomic.Uint64
}

// NewRedisLimiter creates a new redis-backed rate limiter
func NewRedisLimiter(client *redis.Client, config Config) domain.RateLimiter {
	return &RedisLimiterImpl{
		client: client,
		config: config,
		now:    time.Now,
	}
}

// Allow implements domain.RateLimiter
func (l *RedisLimiterImpl) Allow(ctx context.Context, origin string, class domain.EndpointClass) error {
	limit, ok := l.config[class]
	if !ok || limit.Max <= 0 {
		return nil
	}

	key := fmt.Sprintf("rl:%s:%s", class, origin)
	now := l.now()
	windowStart := now.Add(-limit.Window)

	if err := l.client.ZRemRangeByScore(ctx, key, "0", fmt.Sprintf("%d", windowStart.UnixNano())).Err(); err != nil {
		return fmt.Errorf("failed to trim rate limit window: %w", err)
	}

	count, err := l.client.ZCard(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("failed to count rate limit window: %w", err)
	}
	if count >= limit.Max {
		return domain.ErrRateLimited
	}

	// The sequence suffix keeps members unique when two requests land on
	// the same clock tick.
	member := fmt.Sprintf("%d-%d", now.UnixNano(), l.seq.Add(1))
	pipe := l.client.Pipeline()
	pipe.ZAdd(ctx, key, redis.Z{Score: float64(now.UnixNano()), Member: member})
	pipe.Expire(ctx, key, limit.Window)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to record request: %w", err)
	}

	return nil
}
