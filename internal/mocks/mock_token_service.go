package mocks

import (
	"strings"
	"time"

	"github.com/you/admingate/domain"
)

// MockTokenService implements domain.TokenService interface for testing
type MockTokenService struct {
	MintFunc   func(subjectID string, kind domain.TokenKind) (string, error)
	VerifyFunc func(token string, expected domain.TokenKind) (*domain.TokenClaims, error)
	TTLFunc    func(kind domain.TokenKind) time.Duration
}

// NewMockTokenService creates a new MockTokenService with default behaviors
func NewMockTokenService() *MockTokenService {
	return &MockTokenService{}
}

// Mint produces a fake token encoding kind and subject
func (m *MockTokenService) Mint(subjectID string, kind domain.TokenKind) (string, error) {
	if m.MintFunc != nil {
		return m.MintFunc(subjectID, kind)
	}
	// Default behavior: a readable fake token
	return string(kind) + ":" + subjectID, nil
}

// Verify decodes a fake token minted by the default Mint
func (m *MockTokenService) Verify(token string, expected domain.TokenKind) (*domain.TokenClaims, error) {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(token, expected)
	}
	parts := strings.SplitN(token, ":", 2)
	if len(parts) != 2 {
		return nil, domain.ErrTokenMalformed
	}
	if domain.TokenKind(parts[0]) != expected {
		return nil, domain.ErrTokenWrongKind
	}
	now := time.Now()
	return &domain.TokenClaims{
		SubjectID: parts[1],
		Kind:      expected,
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(m.TTL(expected)).Unix(),
	}, nil
}

// TTL returns the lifetime for a token kind
func (m *MockTokenService) TTL(kind domain.TokenKind) time.Duration {
	if m.TTLFunc != nil {
		return m.TTLFunc(kind)
	}
	if kind == domain.TokenKindAccess {
		return 7 * 24 * time.Hour
	}
	return 10 * time.Minute
}

// Compile-time interface compliance verification
var _ domain.TokenService = (*MockTokenService)(nil)
