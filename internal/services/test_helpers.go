package services

import (
	"context"
	"testing"
	"time"

	"github.com/you/admingate/domain"
	"github.com/you/admingate/internal/mocks"
)

// createAuthServiceForTest creates an AuthService with mock dependencies for testing
func createAuthServiceForTest(t *testing.T,
	adminRepo domain.AdminRepository,
	passwordSvc domain.PasswordService,
	tokenSvc domain.TokenService,
	codeSvc domain.CodeService,
	notifier domain.NotificationService,
	limiter domain.RateLimiter) domain.AuthService {
	t.Helper()

	// Use provided mocks or create defaults
	if adminRepo == nil {
		adminRepo = mocks.NewMockAdminRepository()
	}
	if passwordSvc == nil {
		passwordSvc = mocks.NewMockPasswordService()
	}
	if tokenSvc == nil {
		tokenSvc = mocks.NewMockTokenService()
	}
	if codeSvc == nil {
		codeSvc = mocks.NewMockCodeService()
	}
	if notifier == nil {
		notifier = mocks.NewMockNotificationService()
	}
	if limiter == nil {
		limiter = mocks.NewMockRateLimiter()
	}

	return NewAuthService(adminRepo, passwordSvc, tokenSvc, codeSvc, notifier, limiter, nil, AuthConfig{})
}

// createValidAdmin creates a valid admin record for testing
func createValidAdmin(t *testing.T) *domain.Admin {
	t.Helper()

	return &domain.Admin{
		ID:           "admin-1",
		Email:        "admin@example.com",
		Name:         "Administrator",
		PasswordHash: "hashed_password123",
		CreatedAt:    time.Now().Add(-24 * time.Hour),
		UpdatedAt:    time.Now().Add(-1 * time.Hour),
	}
}

// createAwaitingCodeAdmin creates an admin mid-login: a live pending code
// and a fingerprint matching the default mock intermediate token.
func createAwaitingCodeAdmin(t *testing.T) *domain.Admin {
	t.Helper()

	admin := createValidAdmin(t)
	expiry := time.Now().Add(5 * time.Minute)
	admin.PendingCode = "123456"
	admin.PendingCodeExpiry = &expiry
	admin.PendingCodeConsumed = false
	admin.IntermediateFingerprint = fingerprint(intermediateTokenFor(admin.ID))
	return admin
}

// intermediateTokenFor returns the token the default MockTokenService
// mints for a subject.
func intermediateTokenFor(id string) string {
	return string(domain.TokenKindIntermediate) + ":" + id
}

// accessTokenFor returns the access token the default MockTokenService
// mints for a subject.
func accessTokenFor(id string) string {
	return string(domain.TokenKindAccess) + ":" + id
}

// createTestContext creates a context for testing with timeout
func createTestContext(t *testing.T) context.Context {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}
