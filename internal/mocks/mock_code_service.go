package mocks

import (
	"time"

	"github.com/you/admingate/domain"
)

// MockCodeService implements domain.CodeService interface for testing
type MockCodeService struct {
	GenerateFunc func() (string, time.Time, error)
	ValidateFunc func(stored string, storedExpiry *time.Time, input string, consumed bool) domain.CodeStatus
}

// NewMockCodeService creates a new MockCodeService with default behaviors
func NewMockCodeService() *MockCodeService {
	return &MockCodeService{}
}

// Generate returns a fixed code for testing
func (m *MockCodeService) Generate() (string, time.Time, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	// Default behavior: fixed code, five minutes out
	return "123456", time.Now().Add(5 * time.Minute), nil
}

// Validate applies the real precedence rules against the stored state
func (m *MockCodeService) Validate(stored string, storedExpiry *time.Time, input string, consumed bool) domain.CodeStatus {
	if m.ValidateFunc != nil {
		return m.ValidateFunc(stored, storedExpiry, input, consumed)
	}
	if consumed {
		return domain.CodeAlreadyUsed
	}
	if storedExpiry == nil || time.Now().After(*storedExpiry) {
		return domain.CodeExpired
	}
	if stored != input {
		return domain.CodeMismatch
	}
	return domain.CodeValid
}

// Compile-time interface compliance verification
var _ domain.CodeService = (*MockCodeService)(nil)
