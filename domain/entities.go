package domain

import "time"

// TokenKind discriminates the two credential classes issued by the token
// service. An intermediate token only proves the password step succeeded;
// an access token proves the full two-step login completed.
type TokenKind string

const (
	TokenKindIntermediate TokenKind = "intermediate"
	TokenKindAccess       TokenKind = "access"
)

// Admin represents the administrator account and its in-flight
// authentication state. There is exactly one of these per deployment,
// created at bootstrap.
type Admin struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string

	// Two-step login state. PendingCode and PendingCodeExpiry are either
	// both set or both empty; PendingCodeConsumed flips to true exactly
	// once per issued code.
	PendingCode             string
	PendingCodeExpiry       *time.Time
	PendingCodeConsumed     bool
	IntermediateFingerprint string

	LastLoginAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Profile is the public view of the admin returned to callers. It never
// carries the password hash or pending code state.
type Profile struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Profile returns the public view of the admin.
func (a *Admin) Profile() *Profile {
	return &Profile{ID: a.ID, Email: a.Email, Name: a.Name}
}

// LoginResult is the outcome of the first login step: the caller holds an
// intermediate token and knows (in masked form) where the code went.
type LoginResult struct {
	IntermediateToken string
	MaskedEmail       string
	ExpiresIn         int64
}

// VerifyResult is the outcome of the second login step.
type VerifyResult struct {
	AccessToken string
	Profile     *Profile
	ExpiresIn   int64
}

// TokenClaims represents the decoded claims of a verified token.
type TokenClaims struct {
	SubjectID string    `json:"sub"`
	Kind      TokenKind `json:"kind"`
	IssuedAt  int64     `json:"iat"`
	ExpiresAt int64     `json:"exp"`
}

// CodeStatus is the result of validating a one-time code against the
// stored state. Consumed is checked before expiry, expiry before value,
// so an expired-but-correct code reports Expired rather than a match.
type CodeStatus int

const (
	CodeValid CodeStatus = iota
	CodeAlreadyUsed
	CodeExpired
	CodeMismatch
)

func (s CodeStatus) String() string {
	switch s {
	case CodeValid:
		return "valid"
	case CodeAlreadyUsed:
		return "already_used"
	case CodeExpired:
		return "expired"
	case CodeMismatch:
		return "mismatch"
	default:
		return "unknown"
	}
}

// EndpointClass identifies which rate-limit bucket a request counts
// against. Each class has its own window and cap.
type EndpointClass string

const (
	EndpointLogin  EndpointClass = "login"
	EndpointVerify EndpointClass = "verify"
	EndpointResend EndpointClass = "resend"
	EndpointReset  EndpointClass = "reset"
)
