package domain

import (
	"errors"
	"testing"
)

func TestErrors_AreDistinctSentinels(t *testing.T) {
	sentinels := []error{
		ErrAdminNotFound,
		ErrAdminAlreadyExists,
		ErrInvalidCredentials,
		ErrEmailTaken,
		ErrWeakSecret,
		ErrCodeAlreadyUsed,
		ErrCodeExpired,
		ErrCodeMismatch,
		ErrTokenInvalid,
		ErrTokenMalformed,
		ErrTokenExpired,
		ErrTokenWrongKind,
		ErrInvalidSession,
		ErrUnauthorized,
		ErrRateLimited,
		ErrNotificationFailed,
	}

	seen := make(map[string]bool, len(sentinels))
	for _, err := range sentinels {
		if err == nil {
			t.Fatal("sentinel error is nil")
		}
		if seen[err.Error()] {
			t.Errorf("duplicate error message %q", err.Error())
		}
		seen[err.Error()] = true
	}

	// Each failure reason must be individually matchable by callers.
	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j && errors.Is(a, b) {
				t.Errorf("sentinel %q should not match %q", a, b)
			}
		}
	}
}
