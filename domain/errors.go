package domain

import "errors"

// Credential errors
var (
	ErrAdminNotFound      = errors.New("admin not found")
	ErrAdminAlreadyExists = errors.New("admin already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already in use")
	ErrWeakSecret         = errors.New("new password does not meet minimum length")
)

// One-time code errors
var (
	ErrCodeAlreadyUsed = errors.New("code has already been used")
	ErrCodeExpired     = errors.New("code has expired")
	ErrCodeMismatch    = errors.New("code does not match")
)

// Token errors
var (
	ErrTokenInvalid   = errors.New("invalid token")
	ErrTokenMalformed = errors.New("malformed token")
	ErrTokenExpired   = errors.New("token has expired")
	ErrTokenWrongKind = errors.New("token kind does not match operation")
	ErrInvalidSession = errors.New("token superseded by a newer login")
)

// Guarding errors
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrRateLimited  = errors.New("too many requests")
)

// Dependency errors
var (
	ErrNotificationFailed = errors.New("failed to deliver one-time code")
)
