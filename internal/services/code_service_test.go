package services

import (
	"testing"
	"time"

	"github.com/you/admingate/domain"
)

func TestCodeServiceImpl_Generate(t *testing.T) {
	svc := NewCodeService(CodeConfig{})

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		code, expiry, err := svc.Generate()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(code) != 6 {
			t.Fatalf("expected 6 digits, got %q", code)
		}
		for _, c := range code {
			if c < '0' || c > '9' {
				t.Fatalf("non-digit character in code %q", code)
			}
		}
		if remaining := time.Until(expiry); remaining < 4*time.Minute || remaining > 6*time.Minute {
			t.Fatalf("expiry %v not near the default five minutes", remaining)
		}
		seen[code] = true
	}
	// 50 draws from a million-value space should essentially never all collide.
	if len(seen) < 2 {
		t.Error("generator produced a single value across 50 draws")
	}
}

func TestCodeServiceImpl_Generate_CustomConfig(t *testing.T) {
	svc := NewCodeService(CodeConfig{Length: 8, TTL: time.Minute})

	code, expiry, err := svc.Generate()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(code) != 8 {
		t.Errorf("expected 8 digits, got %q", code)
	}
	if remaining := time.Until(expiry); remaining > 2*time.Minute {
		t.Errorf("expected a one minute expiry, got %v", remaining)
	}
}

func TestCodeServiceImpl_Validate(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	future := now.Add(3 * time.Minute)
	past := now.Add(-time.Second)

	svc := &CodeServiceImpl{
		config: CodeConfig{Length: 6, TTL: 5 * time.Minute},
		now:    func() time.Time { return now },
	}

	tests := []struct {
		name     string
		stored   string
		expiry   *time.Time
		input    string
		consumed bool
		expected domain.CodeStatus
	}{
		{
			name:     "matching live code",
			stored:   "123456",
			expiry:   &future,
			input:    "123456",
			expected: domain.CodeValid,
		},
		{
			name:     "consumed wins over everything",
			stored:   "123456",
			expiry:   &past,
			input:    "000000",
			consumed: true,
			expected: domain.CodeAlreadyUsed,
		},
		{
			name:     "expired wins over a mismatch",
			stored:   "123456",
			expiry:   &past,
			input:    "000000",
			expected: domain.CodeExpired,
		},
		{
			name:     "expired even when the value matches",
			stored:   "123456",
			expiry:   &past,
			input:    "123456",
			expected: domain.CodeExpired,
		},
		{
			name:     "missing expiry treated as expired",
			stored:   "123456",
			expiry:   nil,
			input:    "123456",
			expected: domain.CodeExpired,
		},
		{
			name:     "wrong value",
			stored:   "123456",
			expiry:   &future,
			input:    "654321",
			expected: domain.CodeMismatch,
		},
		{
			name:     "empty stored code never matches empty input",
			stored:   "",
			expiry:   &future,
			input:    "",
			expected: domain.CodeMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := svc.Validate(tt.stored, tt.expiry, tt.input, tt.consumed); got != tt.expected {
				t.Errorf("Validate() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestCodeServiceImpl_Validate_ExpiryBoundary(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc := &CodeServiceImpl{
		config: CodeConfig{Length: 6, TTL: 5 * time.Minute},
		now:    func() time.Time { return now },
	}

	// A code expiring exactly now is still acceptable.
	exact := now
	if got := svc.Validate("123456", &exact, "123456", false); got != domain.CodeValid {
		t.Errorf("code at its exact expiry instant should be valid, got %v", got)
	}

	after := now.Add(-time.Nanosecond)
	if got := svc.Validate("123456", &after, "123456", false); got != domain.CodeExpired {
		t.Errorf("code past its expiry should be expired, got %v", got)
	}
}
