package mocks

import (
	"context"

	"github.com/you/admingate/domain"
)

// MockAuthService implements domain.AuthService interface for testing
type MockAuthService struct {
	BeginLoginFunc  func(ctx context.Context, origin, email, password string) (*domain.LoginResult, error)
	VerifyCodeFunc  func(ctx context.Context, origin, intermediateToken, code string) (*domain.VerifyResult, error)
	ResendCodeFunc  func(ctx context.Context, origin, intermediateToken string) error
	ResetEmailFunc  func(ctx context.Context, origin, accessToken, newEmail, password string) (*domain.Profile, error)
	ResetSecretFunc func(ctx context.Context, origin, accessToken, currentSecret, newSecret string) error
	CreateAdminFunc func(ctx context.Context, email, password, name string) (*domain.Profile, error)
	ProfileFunc     func(ctx context.Context, accessToken string) (*domain.Profile, error)
}

// NewMockAuthService creates a new MockAuthService with default behaviors
func NewMockAuthService() *MockAuthService {
	return &MockAuthService{}
}

// BeginLogin runs the first login step
func (m *MockAuthService) BeginLogin(ctx context.Context, origin, email, password string) (*domain.LoginResult, error) {
	if m.BeginLoginFunc != nil {
		return m.BeginLoginFunc(ctx, origin, email, password)
	}
	return &domain.LoginResult{
		IntermediateToken: "intermediate:test-admin",
		MaskedEmail:       "ad***@example.com",
		ExpiresIn:         600,
	}, nil
}

// VerifyCode runs the second login step
func (m *MockAuthService) VerifyCode(ctx context.Context, origin, intermediateToken, code string) (*domain.VerifyResult, error) {
	if m.VerifyCodeFunc != nil {
		return m.VerifyCodeFunc(ctx, origin, intermediateToken, code)
	}
	return &domain.VerifyResult{
		AccessToken: "access:test-admin",
		Profile:     &domain.Profile{ID: "test-admin", Email: "admin@example.com", Name: "Administrator"},
		ExpiresIn:   604800,
	}, nil
}

// ResendCode reissues the pending code
func (m *MockAuthService) ResendCode(ctx context.Context, origin, intermediateToken string) error {
	if m.ResendCodeFunc != nil {
		return m.ResendCodeFunc(ctx, origin, intermediateToken)
	}
	return nil
}

// ResetEmail changes the admin email
func (m *MockAuthService) ResetEmail(ctx context.Context, origin, accessToken, newEmail, password string) (*domain.Profile, error) {
	if m.ResetEmailFunc != nil {
		return m.ResetEmailFunc(ctx, origin, accessToken, newEmail, password)
	}
	return &domain.Profile{ID: "test-admin", Email: newEmail, Name: "Administrator"}, nil
}

// ResetSecret changes the admin password
func (m *MockAuthService) ResetSecret(ctx context.Context, origin, accessToken, currentSecret, newSecret string) error {
	if m.ResetSecretFunc != nil {
		return m.ResetSecretFunc(ctx, origin, accessToken, currentSecret, newSecret)
	}
	return nil
}

// CreateAdmin provisions the admin record
func (m *MockAuthService) CreateAdmin(ctx context.Context, email, password, name string) (*domain.Profile, error) {
	if m.CreateAdminFunc != nil {
		return m.CreateAdminFunc(ctx, email, password, name)
	}
	return &domain.Profile{ID: "test-admin", Email: email, Name: name}, nil
}

// Profile returns the admin's public profile
func (m *MockAuthService) Profile(ctx context.Context, accessToken string) (*domain.Profile, error) {
	if m.ProfileFunc != nil {
		return m.ProfileFunc(ctx, accessToken)
	}
	return &domain.Profile{ID: "test-admin", Email: "admin@example.com", Name: "Administrator"}, nil
}

// Compile-time interface compliance verification
var _ domain.AuthService = (*MockAuthService)(nil)
