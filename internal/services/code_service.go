package services

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/you/admingate/domain"
)

// CodeServiceImpl implements domain.CodeService. Codes are fixed-width
// decimal strings drawn uniformly from the whole space; with the rate
// limiter capping verification attempts, six digits resist brute force
// within the five-minute expiry window.
type CodeServiceImpl struct {
	config CodeConfig
	now    func() time.Time
}

type CodeConfig struct {
	Length int
	TTL    time.Duration
}

// NewCodeService creates a new one-time code service
func NewCodeService(config CodeConfig) domain.CodeService {
	if config.Length <= 0 {
		config.Length = 6
	}
	if config.TTL <= 0 {
		config.TTL = 5 * time.Minute
	}
	return &CodeServiceImpl{config: config, now: time.Now}
}

// Generate implements domain.CodeService
func (s *CodeServiceImpl) Generate() (string, time.Time, error) {
	digits := make([]byte, s.config.Length)

	for i := 0; i < s.config.Length; i++ {
		num, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", time.Time{}, fmt.Errorf("failed to generate random digit: %w", err)
		}
		digits[i] = byte('0' + num.Int64())
	}

	return string(digits), s.now().Add(s.config.TTL), nil
}

// Validate implements domain.CodeService. Pure: it only inspects the
// stored state against the input. Consumed is checked first, expiry
// before value, so an expired-but-correct code reports CodeExpired.
func (s *CodeServiceImpl) Validate(stored string, storedExpiry *time.Time, input string, consumed bool) domain.CodeStatus {
	if consumed {
		return domain.CodeAlreadyUsed
	}
	if storedExpiry == nil || s.now().After(*storedExpiry) {
		return domain.CodeExpired
	}
	if stored == "" || stored != input {
		return domain.CodeMismatch
	}
	return domain.CodeValid
}
