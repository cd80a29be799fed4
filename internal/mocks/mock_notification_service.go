package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/you/admingate/domain"
)

// MockNotificationService implements domain.NotificationService interface
// for testing. It records every delivery so tests can assert what was
// (or was not) dispatched.
type MockNotificationService struct {
	SendCodeFunc func(ctx context.Context, to, code string, ttl time.Duration) error

	mu   sync.Mutex
	sent []SentCode
}

// SentCode is one recorded delivery.
type SentCode struct {
	To   string
	Code string
}

// NewMockNotificationService creates a new MockNotificationService with default behaviors
func NewMockNotificationService() *MockNotificationService {
	return &MockNotificationService{}
}

// SendCode records the delivery and succeeds by default
func (m *MockNotificationService) SendCode(ctx context.Context, to, code string, ttl time.Duration) error {
	if m.SendCodeFunc != nil {
		return m.SendCodeFunc(ctx, to, code, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, SentCode{To: to, Code: code})
	return nil
}

// Sent returns a copy of the recorded deliveries
func (m *MockNotificationService) Sent() []SentCode {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]SentCode, len(m.sent))
	copy(out, m.sent)
	return out
}

// Compile-time interface compliance verification
var _ domain.NotificationService = (*MockNotificationService)(nil)
