package auth

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/you/admingate/domain"
)

// JWTServiceImpl implements domain.TokenService. Tokens are stateless:
// everything needed to verify one is in the signature and claims, so no
// storage is consulted here. The kind claim separates the short-lived
// intermediate token from the long-lived access token; Verify rejects a
// token presented to an operation expecting the other kind.
type JWTServiceImpl struct {
	secretKey       []byte
	issuer          string
	intermediateTTL time.Duration
	accessTTL       time.Duration
}

// NewJWTService creates a new JWT service
func NewJWTService(secretKey string, issuer string, intermediateTTL, accessTTL time.Duration) domain.TokenService {
	return &JWTServiceImpl{
		secretKey:       []byte(secretKey),
		issuer:          issuer,
		intermediateTTL: intermediateTTL,
		accessTTL:       accessTTL,
	}
}

// generateJTI creates a unique JWT ID
func (j *JWTServiceImpl) generateJTI() string {
	bytes := make([]byte, 16)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}

// Mint implements domain.TokenService
func (j *JWTServiceImpl) Mint(subjectID string, kind domain.TokenKind) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  subjectID,
		"kind": string(kind),
		"iss":  j.issuer,
		"iat":  now.Unix(),
		"exp":  now.Add(j.TTL(kind)).Unix(),
		"jti":  j.generateJTI(), // Unique JWT ID ensures token uniqueness
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.secretKey)
}

// TTL implements domain.TokenService
func (j *JWTServiceImpl) TTL(kind domain.TokenKind) time.Duration {
	if kind == domain.TokenKindAccess {
		return j.accessTTL
	}
	return j.intermediateTTL
}

// Verify implements domain.TokenService. Signature and shape are checked
// first, then expiry, then kind, so a well-formed but wrong-kind token is
// reported as ErrTokenWrongKind rather than a generic failure.
func (j *JWTServiceImpl) Verify(tokenString string, expected domain.TokenKind) (*domain.TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrTokenMalformed
		}
		return j.secretKey, nil
	}, jwt.WithoutClaimsValidation())

	if err != nil || !token.Valid {
		return nil, domain.ErrTokenInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, domain.ErrTokenMalformed
	}

	subject, ok := claims["sub"].(string)
	if !ok {
		return nil, domain.ErrTokenMalformed
	}

	kind, ok := claims["kind"].(string)
	if !ok {
		return nil, domain.ErrTokenMalformed
	}

	iat, ok := claims["iat"].(float64)
	if !ok {
		return nil, domain.ErrTokenMalformed
	}

	exp, ok := claims["exp"].(float64)
	if !ok {
		return nil, domain.ErrTokenMalformed
	}

	if time.Unix(int64(exp), 0).Before(time.Now()) {
		return nil, domain.ErrTokenExpired
	}

	if domain.TokenKind(kind) != expected {
		return nil, domain.ErrTokenWrongKind
	}

	return &domain.TokenClaims{
		SubjectID: subject,
		Kind:      domain.TokenKind(kind),
		IssuedAt:  int64(iat),
		ExpiresAt: int64(exp),
	}, nil
}
