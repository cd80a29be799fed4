package mocks

import (
	"context"
	"time"

	"github.com/you/admingate/domain"
)

// MockAdminRepository implements domain.AdminRepository interface for testing
type MockAdminRepository struct {
	CreateFunc             func(ctx context.Context, admin *domain.Admin) error
	FindByEmailFunc        func(ctx context.Context, email string) (*domain.Admin, error)
	FindByIDFunc           func(ctx context.Context, id string) (*domain.Admin, error)
	CountFunc              func(ctx context.Context) (int64, error)
	StorePendingCodeFunc   func(ctx context.Context, id, code string, expiry time.Time, fingerprint string) error
	RefreshPendingCodeFunc func(ctx context.Context, id, code string, expiry time.Time) error
	ConsumeCodeFunc        func(ctx context.Context, id, code, fingerprint string, at time.Time) error
	UpdateEmailFunc        func(ctx context.Context, id, email string) error
	UpdatePasswordFunc     func(ctx context.Context, id, passwordHash string) error
}

// NewMockAdminRepository creates a new MockAdminRepository with default behaviors
func NewMockAdminRepository() *MockAdminRepository {
	return &MockAdminRepository{}
}

// Create creates a new admin record
func (m *MockAdminRepository) Create(ctx context.Context, admin *domain.Admin) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, admin)
	}
	return nil
}

// FindByEmail looks up the admin by email
func (m *MockAdminRepository) FindByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	return nil, domain.ErrAdminNotFound
}

// FindByID looks up the admin by id
func (m *MockAdminRepository) FindByID(ctx context.Context, id string) (*domain.Admin, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, domain.ErrAdminNotFound
}

// Count returns the number of admin records
func (m *MockAdminRepository) Count(ctx context.Context) (int64, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx)
	}
	return 0, nil
}

// StorePendingCode overwrites the pending code state and fingerprint
func (m *MockAdminRepository) StorePendingCode(ctx context.Context, id, code string, expiry time.Time, fingerprint string) error {
	if m.StorePendingCodeFunc != nil {
		return m.StorePendingCodeFunc(ctx, id, code, expiry, fingerprint)
	}
	return nil
}

// RefreshPendingCode overwrites the pending code state, keeping the fingerprint
func (m *MockAdminRepository) RefreshPendingCode(ctx context.Context, id, code string, expiry time.Time) error {
	if m.RefreshPendingCodeFunc != nil {
		return m.RefreshPendingCodeFunc(ctx, id, code, expiry)
	}
	return nil
}

// ConsumeCode marks the pending code consumed when the stored pair still matches
func (m *MockAdminRepository) ConsumeCode(ctx context.Context, id, code, fingerprint string, at time.Time) error {
	if m.ConsumeCodeFunc != nil {
		return m.ConsumeCodeFunc(ctx, id, code, fingerprint, at)
	}
	return nil
}

// UpdateEmail updates the admin's email
func (m *MockAdminRepository) UpdateEmail(ctx context.Context, id, email string) error {
	if m.UpdateEmailFunc != nil {
		return m.UpdateEmailFunc(ctx, id, email)
	}
	return nil
}

// UpdatePassword updates the admin's password hash
func (m *MockAdminRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	if m.UpdatePasswordFunc != nil {
		return m.UpdatePasswordFunc(ctx, id, passwordHash)
	}
	return nil
}

// Compile-time interface compliance verification
var _ domain.AdminRepository = (*MockAdminRepository)(nil)
