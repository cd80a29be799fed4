package mocks

import (
	"context"

	"github.com/you/admingate/domain"
)

// MockRateLimiter implements domain.RateLimiter interface for testing
type MockRateLimiter struct {
	AllowFunc func(ctx context.Context, origin string, class domain.EndpointClass) error

	// Calls records every (origin, class) pair Allow saw, so tests can
	// assert the limiter runs before credential state is touched.
	Calls []RateLimiterCall
}

// RateLimiterCall is one recorded Allow invocation.
type RateLimiterCall struct {
	Origin string
	Class  domain.EndpointClass
}

// NewMockRateLimiter creates a new MockRateLimiter with default behaviors
func NewMockRateLimiter() *MockRateLimiter {
	return &MockRateLimiter{}
}

// Allow records the call and permits the request by default
func (m *MockRateLimiter) Allow(ctx context.Context, origin string, class domain.EndpointClass) error {
	m.Calls = append(m.Calls, RateLimiterCall{Origin: origin, Class: class})
	if m.AllowFunc != nil {
		return m.AllowFunc(ctx, origin, class)
	}
	return nil
}

// Compile-time interface compliance verification
var _ domain.RateLimiter = (*MockRateLimiter)(nil)
