package ratelimit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/you/admingate/domain"
)

func setupLimiter(t *testing.T, config Config) (*RedisLimiterImpl, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return &RedisLimiterImpl{client: client, config: config, now: time.Now}, mr
}

func TestRedisLimiterImpl_AllowUnderCap(t *testing.T) {
	limiter, _ := setupLimiter(t, Config{
		domain.EndpointLogin: {Window: time.Minute, Max: 3},
	})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := limiter.Allow(ctx, "203.0.113.7", domain.EndpointLogin); err != nil {
			t.Fatalf("request %d under the cap rejected: %v", i+1, err)
		}
	}
	if err := limiter.Allow(ctx, "203.0.113.7", domain.EndpointLogin); !errors.Is(err, domain.ErrRateLimited) {
		t.Errorf("expected ErrRateLimited past the cap, got %v", err)
	}
}

func TestRedisLimiterImpl_OriginsAreIndependent(t *testing.T) {
	limiter, _ := setupLimiter(t, Config{
		domain.EndpointLogin: {Window: time.Minute, Max: 1},
	})
	ctx := context.Background()

	if err := limiter.Allow(ctx, "203.0.113.7", domain.EndpointLogin); err != nil {
		t.Fatalf("first origin rejected: %v", err)
	}
	if err := limiter.Allow(ctx, "203.0.113.8", domain.EndpointLogin); err != nil {
		t.Errorf("second origin must have its own window: %v", err)
	}
	if err := limiter.Allow(ctx, "203.0.113.7", domain.EndpointLogin); !errors.Is(err, domain.ErrRateLimited) {
		t.Errorf("first origin should now be capped, got %v", err)
	}
}

func TestRedisLimiterImpl_ClassesAreIndependent(t *testing.T) {
	limiter, _ := setupLimiter(t, Config{
		domain.EndpointLogin: {Window: time.Minute, Max: 1},
		domain.EndpointReset: {Window: time.Minute, Max: 1},
	})
	ctx := context.Background()

	if err := limiter.Allow(ctx, "203.0.113.7", domain.EndpointLogin); err != nil {
		t.Fatalf("login rejected: %v", err)
	}
	if err := limiter.Allow(ctx, "203.0.113.7", domain.EndpointReset); err != nil {
		t.Errorf("reset class must not share the login window: %v", err)
	}
}

func TestRedisLimiterImpl_UnconfiguredClassIsOpen(t *testing.T) {
	limiter, _ := setupLimiter(t, Config{})
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		if err := limiter.Allow(ctx, "203.0.113.7", domain.EndpointLogin); err != nil {
			t.Fatalf("unconfigured class must not throttle: %v", err)
		}
	}
}

func TestRedisLimiterImpl_WindowSlides(t *testing.T) {
	limiter, _ := setupLimiter(t, Config{
		domain.EndpointReset: {Window: time.Minute, Max: 2},
	})
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	current := base
	limiter.now = func() time.Time { return current }

	if err := limiter.Allow(ctx, "203.0.113.7", domain.EndpointReset); err != nil {
		t.Fatalf("first request rejected: %v", err)
	}
	current = base.Add(30 * time.Second)
	if err := limiter.Allow(ctx, "203.0.113.7", domain.EndpointReset); err != nil {
		t.Fatalf("second request rejected: %v", err)
	}
	current = base.Add(45 * time.Second)
	if err := limiter.Allow(ctx, "203.0.113.7", domain.EndpointReset); !errors.Is(err, domain.ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited inside the window, got %v", err)
	}

	// The first entry falls out of the window; one slot reopens.
	current = base.Add(70 * time.Second)
	if err := limiter.Allow(ctx, "203.0.113.7", domain.EndpointReset); err != nil {
		t.Errorf("request after the window slid must pass: %v", err)
	}
	current = base.Add(75 * time.Second)
	if err := limiter.Allow(ctx, "203.0.113.7", domain.EndpointReset); !errors.Is(err, domain.ErrRateLimited) {
		t.Errorf("window should be full again, got %v", err)
	}
}

func TestRedisLimiterImpl_RejectedRequestNotRecorded(t *testing.T) {
	limiter, _ := setupLimiter(t, Config{
		domain.EndpointReset: {Window: time.Minute, Max: 1},
	})
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	current := base
	limiter.now = func() time.Time { return current }

	if err := limiter.Allow(ctx, "203.0.113.7", domain.EndpointReset); err != nil {
		t.Fatalf("first request rejected: %v", err)
	}
	// Hammering while capped must not extend the lockout.
	for i := 1; i <= 5; i++ {
		current = base.Add(time.Duration(i) * 10 * time.Second)
		if err := limiter.Allow(ctx, "203.0.113.7", domain.EndpointReset); !errors.Is(err, domain.ErrRateLimited) {
			t.Fatalf("expected ErrRateLimited, got %v", err)
		}
	}

	current = base.Add(61 * time.Second)
	if err := limiter.Allow(ctx, "203.0.113.7", domain.EndpointReset); err != nil {
		t.Errorf("window anchored on the first allowed request must have reopened: %v", err)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if got := cfg[domain.EndpointLogin]; got.Max != 100 || got.Window != 15*time.Minute {
		t.Errorf("unexpected login limits %+v", got)
	}
	if got := cfg[domain.EndpointResend]; got.Max != 50 {
		t.Errorf("unexpected resend limit %+v", got)
	}
	if got := cfg[domain.EndpointReset]; got.Max != 3 || got.Window != time.Hour {
		t.Errorf("unexpected reset limits %+v", got)
	}
}
