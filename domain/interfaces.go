package domain

import (
	"context"
	"time"
)

// AdminRepository defines credential record data access operations.
// The conditional mutations (StorePendingCode, RefreshPendingCode,
// ConsumeCode) must each be applied as a single atomic update.
type AdminRepository interface {
	Create(ctx context.Context, admin *Admin) error
	FindByEmail(ctx context.Context, email string) (*Admin, error)
	FindByID(ctx context.Context, id string) (*Admin, error)
	Count(ctx context.Context) (int64, error)

	// StorePendingCode overwrites the record's pending code, expiry and
	// intermediate-token fingerprint in one write. Last writer wins: any
	// previously issued code/token pair stops validating.
	StorePendingCode(ctx context.Context, id, code string, expiry time.Time, fingerprint string) error

	// RefreshPendingCode overwrites the pending code and expiry but keeps
	// the stored fingerprint, so the caller's intermediate token stays
	// valid after a resend.
	RefreshPendingCode(ctx context.Context, id, code string, expiry time.Time) error

	// ConsumeCode marks the pending code consumed, clears the code state
	// and fingerprint and stamps the login time, but only if the stored
	// code and fingerprint still equal the pair the caller validated and
	// the code has not been consumed yet. Returns ErrCodeAlreadyUsed when
	// the stored state moved on: a concurrent verification consumed it,
	// or a concurrent login superseded it between the caller's read and
	// this write.
	ConsumeCode(ctx context.Context, id, code, fingerprint string, at time.Time) error

	UpdateEmail(ctx context.Context, id, email string) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}

// AuthService defines the authentication state machine.
type AuthService interface {
	BeginLogin(ctx context.Context, origin, email, password string) (*LoginResult, error)
	VerifyCode(ctx context.Context, origin, intermediateToken, code string) (*VerifyResult, error)
	ResendCode(ctx context.Context, origin, intermediateToken string) error
	ResetEmail(ctx context.Context, origin, accessToken, newEmail, password string) (*Profile, error)
	ResetSecret(ctx context.Context, origin, accessToken, currentSecret, newSecret string) error
	CreateAdmin(ctx context.Context, email, password, name string) (*Profile, error)
	Profile(ctx context.Context, accessToken string) (*Profile, error)
}

// CodeService defines one-time code operations. Validate is pure so the
// state machine can be tested without a clock fixture.
type CodeService interface {
	Generate() (code string, expiry time.Time, err error)
	Validate(stored string, storedExpiry *time.Time, input string, consumed bool) CodeStatus
}

// PasswordService defines password operations.
type PasswordService interface {
	Hash(password string) (string, error)
	Verify(hashedPassword, password string) bool
}

// TokenService defines token mint/verify operations. Verify rejects a
// token whose kind does not match expected before returning claims.
type TokenService interface {
	Mint(subjectID string, kind TokenKind) (string, error)
	Verify(token string, expected TokenKind) (*TokenClaims, error)
	TTL(kind TokenKind) time.Duration
}

// NotificationService delivers a one-time code out-of-band. Implementations
// must honour ctx cancellation; the state machine bounds the call with a
// timeout and reports failure as ErrNotificationFailed.
type NotificationService interface {
	SendCode(ctx context.Context, to, code string, ttl time.Duration) error
}

// RateLimiter throttles requests per (origin, endpoint class). Allow both
// checks and records the request; it returns ErrRateLimited when the
// class's cap is exceeded within its window.
type RateLimiter interface {
	Allow(ctx context.Context, origin string, class EndpointClass) error
}
