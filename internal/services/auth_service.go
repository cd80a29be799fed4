package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/you/admingate/domain"
)

// AuthServiceImpl implements domain.AuthService. It is the authentication
// state machine: UNAUTHENTICATED -> (password match) -> AWAITING_CODE ->
// (code match) -> AUTHENTICATED. Every operation consults the rate
// limiter before touching any credential state.
type AuthServiceImpl struct {
	adminRepo   domain.AdminRepository
	passwordSvc domain.PasswordService
	tokenSvc    domain.TokenService
	codeSvc     domain.CodeService
	notifier    domain.NotificationService
	limiter     domain.RateLimiter
	audit       domain.AuditLogger
	config      AuthConfig
	now         func() time.Time
}

type AuthConfig struct {
	MinSecretLength int
	NotifyTimeout   time.Duration
}

// NewAuthService creates a new auth service
func NewAuthService(
	adminRepo domain.AdminRepository,
	passwordSvc domain.PasswordService,
	tokenSvc domain.TokenService,
	codeSvc domain.CodeService,
	notifier domain.NotificationService,
	limiter domain.RateLimiter,
	audit domain.AuditLogger,
	config AuthConfig,
) domain.AuthService {
	if config.MinSecretLength <= 0 {
		config.MinSecretLength = 6
	}
	if config.NotifyTimeout <= 0 {
		config.NotifyTimeout = 10 * time.Second
	}
	return &AuthServiceImpl{
		adminRepo:   adminRepo,
		passwordSvc: passwordSvc,
		tokenSvc:    tokenSvc,
		codeSvc:     codeSvc,
		notifier:    notifier,
		limiter:     limiter,
		audit:       audit,
		config:      config,
		now:         time.Now,
	}
}

// BeginLogin implements domain.AuthService. On a password match it mints
// a one-time code and an intermediate token, persists them on the record
// in a single write (superseding any earlier pair) and dispatches the
// code to the admin's email. The caller only ever learns
// ErrInvalidCredentials for both unknown email and wrong password.
func (s *AuthServiceImpl) BeginLogin(ctx context.Context, origin, email, password string) (*domain.LoginResult, error) {
	if err := s.allow(ctx, origin, domain.EndpointLogin); err != nil {
		return nil, err
	}

	admin, err := s.adminRepo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrAdminNotFound) {
			// Indistinguishable from a wrong password to prevent
			// account enumeration.
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to load admin: %w", err)
	}

	if !s.passwordSvc.Verify(admin.PasswordHash, password) {
		s.log(domain.NewAuditEvent(domain.LoginStepOneFailureEvent, admin.ID).
			WithOrigin(origin).WithError(domain.ErrInvalidCredentials))
		return nil, domain.ErrInvalidCredentials
	}

	code, expiry, err := s.codeSvc.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate code: %w", err)
	}

	intermediate, err := s.tokenSvc.Mint(admin.ID, domain.TokenKindIntermediate)
	if err != nil {
		return nil, fmt.Errorf("failed to mint intermediate token: %w", err)
	}

	if err := s.adminRepo.StorePendingCode(ctx, admin.ID, code, expiry, fingerprint(intermediate)); err != nil {
		return nil, fmt.Errorf("failed to store pending code: %w", err)
	}

	if err := s.deliver(ctx, admin.Email, code, expiry); err != nil {
		// The code and fingerprint already written stay inert: the next
		// BeginLogin supersedes them.
		return nil, err
	}

	s.log(domain.NewAuditEvent(domain.LoginStepOneEvent, admin.ID).
		WithOrigin(origin).WithEmail(admin.Email))

	return &domain.LoginResult{
		IntermediateToken: intermediate,
		MaskedEmail:       maskEmail(admin.Email),
		ExpiresIn:         int64(s.tokenSvc.TTL(domain.TokenKindIntermediate).Seconds()),
	}, nil
}

// VerifyCode implements domain.AuthService. The check-then-consume step
// is delegated to the repository's conditional update so a racing pair of
// identical correct codes can only succeed once.
func (s *AuthServiceImpl) VerifyCode(ctx context.Context, origin, intermediateToken, code string) (*domain.VerifyResult, error) {
	if err := s.allow(ctx, origin, domain.EndpointVerify); err != nil {
		return nil, err
	}

	admin, err := s.loadByIntermediate(ctx, intermediateToken)
	if err != nil {
		return nil, err
	}

	status := s.codeSvc.Validate(admin.PendingCode, admin.PendingCodeExpiry, code, admin.PendingCodeConsumed)
	if status != domain.CodeValid {
		err := codeStatusError(status)
		s.log(domain.NewAuditEvent(domain.CodeVerifyFailureEvent, admin.ID).
			WithOrigin(origin).WithError(err))
		return nil, err
	}

	fp := fingerprint(intermediateToken)
	if err := s.adminRepo.ConsumeCode(ctx, admin.ID, code, fp, s.now()); err != nil {
		if errors.Is(err, domain.ErrCodeAlreadyUsed) {
			return nil, s.consumeRaceError(ctx, admin.ID, fp)
		}
		return nil, fmt.Errorf("failed to consume code: %w", err)
	}

	access, err := s.tokenSvc.Mint(admin.ID, domain.TokenKindAccess)
	if err != nil {
		return nil, fmt.Errorf("failed to mint access token: %w", err)
	}

	s.log(domain.NewAuditEvent(domain.LoginCompletedEvent, admin.ID).
		WithOrigin(origin).WithEmail(admin.Email))

	return &domain.VerifyResult{
		AccessToken: access,
		Profile:     admin.Profile(),
		ExpiresIn:   int64(s.tokenSvc.TTL(domain.TokenKindAccess).Seconds()),
	}, nil
}

// ResendCode implements domain.AuthService. The stored code, expiry and
// consumed flag are overwritten; the intermediate token and its stored
// fingerprint are left untouched, so the caller keeps using the token it
// already holds.
func (s *AuthServiceImpl) ResendCode(ctx context.Context, origin, intermediateToken string) error {
	if err := s.allow(ctx, origin, domain.EndpointResend); err != nil {
		return err
	}

	admin, err := s.loadByIntermediate(ctx, intermediateToken)
	if err != nil {
		return err
	}

	code, expiry, err := s.codeSvc.Generate()
	if err != nil {
		return fmt.Errorf("failed to generate code: %w", err)
	}

	if err := s.adminRepo.RefreshPendingCode(ctx, admin.ID, code, expiry); err != nil {
		return fmt.Errorf("failed to refresh pending code: %w", err)
	}

	if err := s.deliver(ctx, admin.Email, code, expiry); err != nil {
		return err
	}

	s.log(domain.NewAuditEvent(domain.CodeResentEvent, admin.ID).WithOrigin(origin))
	return nil
}

// ResetEmail implements domain.AuthService
func (s *AuthServiceImpl) ResetEmail(ctx context.Context, origin, accessToken, newEmail, password string) (*domain.Profile, error) {
	if err := s.allow(ctx, origin, domain.EndpointReset); err != nil {
		return nil, err
	}

	admin, err := s.loadByAccess(ctx, accessToken)
	if err != nil {
		return nil, err
	}

	if !s.passwordSvc.Verify(admin.PasswordHash, password) {
		return nil, domain.ErrInvalidCredentials
	}

	email := normalizeEmail(newEmail)
	existing, err := s.adminRepo.FindByEmail(ctx, email)
	if err == nil && existing != nil && existing.ID != admin.ID {
		return nil, domain.ErrEmailTaken
	}
	if err != nil && !errors.Is(err, domain.ErrAdminNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	if err := s.adminRepo.UpdateEmail(ctx, admin.ID, email); err != nil {
		return nil, fmt.Errorf("failed to update email: %w", err)
	}
	admin.Email = email

	s.log(domain.NewAuditEvent(domain.EmailResetEvent, admin.ID).
		WithOrigin(origin).WithEmail(email))

	return admin.Profile(), nil
}

// ResetSecret implements domain.AuthService. The minimum length policy is
// enforced before the current secret is checked: a weak new value is an
// input validation failure, not an authentication one.
func (s *AuthServiceImpl) ResetSecret(ctx context.Context, origin, accessToken, currentSecret, newSecret string) error {
	if err := s.allow(ctx, origin, domain.EndpointReset); err != nil {
		return err
	}

	admin, err := s.loadByAccess(ctx, accessToken)
	if err != nil {
		return err
	}

	if len(newSecret) < s.config.MinSecretLength {
		return domain.ErrWeakSecret
	}

	if !s.passwordSvc.Verify(admin.PasswordHash, currentSecret) {
		return domain.ErrInvalidCredentials
	}

	hash, err := s.passwordSvc.Hash(newSecret)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.adminRepo.UpdatePassword(ctx, admin.ID, hash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	s.log(domain.NewAuditEvent(domain.SecretResetEvent, admin.ID).WithOrigin(origin))
	return nil
}

// CreateAdmin implements domain.AuthService. First-time setup only; the
// record is never deleted afterwards.
func (s *AuthServiceImpl) CreateAdmin(ctx context.Context, email, password, name string) (*domain.Profile, error) {
	normalized := normalizeEmail(email)

	existing, err := s.adminRepo.FindByEmail(ctx, normalized)
	if err == nil && existing != nil {
		return nil, domain.ErrAdminAlreadyExists
	}
	if err != nil && !errors.Is(err, domain.ErrAdminNotFound) {
		return nil, fmt.Errorf("failed to check admin: %w", err)
	}

	hash, err := s.passwordSvc.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	if name == "" {
		name = "Administrator"
	}

	admin := &domain.Admin{
		ID:           uuid.NewString(),
		Email:        normalized,
		Name:         name,
		PasswordHash: hash,
	}

	if err := s.adminRepo.Create(ctx, admin); err != nil {
		return nil, fmt.Errorf("failed to create admin: %w", err)
	}

	return admin.Profile(), nil
}

// Profile implements domain.AuthService
func (s *AuthServiceImpl) Profile(ctx context.Context, accessToken string) (*domain.Profile, error) {
	admin, err := s.loadByAccess(ctx, accessToken)
	if err != nil {
		return nil, err
	}
	return admin.Profile(), nil
}

// loadByIntermediate verifies an intermediate token and loads its record,
// rejecting tokens superseded by a later BeginLogin.
func (s *AuthServiceImpl) loadByIntermediate(ctx context.Context, token string) (*domain.Admin, error) {
	claims, err := s.tokenSvc.Verify(token, domain.TokenKindIntermediate)
	if err != nil {
		return nil, err
	}

	admin, err := s.adminRepo.FindByID(ctx, claims.SubjectID)
	if err != nil {
		if errors.Is(err, domain.ErrAdminNotFound) {
			return nil, domain.ErrInvalidSession
		}
		return nil, fmt.Errorf("failed to load admin: %w", err)
	}

	if admin.IntermediateFingerprint == "" || admin.IntermediateFingerprint != fingerprint(token) {
		return nil, domain.ErrInvalidSession
	}

	return admin, nil
}

// loadByAccess verifies an access token and loads its record. Every
// failure collapses to ErrUnauthorized: a protected operation reveals
// nothing about why the credential was rejected.
func (s *AuthServiceImpl) loadByAccess(ctx context.Context, token string) (*domain.Admin, error) {
	claims, err := s.tokenSvc.Verify(token, domain.TokenKindAccess)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}

	admin, err := s.adminRepo.FindByID(ctx, claims.SubjectID)
	if err != nil {
		if errors.Is(err, domain.ErrAdminNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to load admin: %w", err)
	}

	return admin, nil
}

// deliver dispatches the code, bounded by the configured timeout so a
// stalled SMTP conversation surfaces as ErrNotificationFailed instead of
// hanging the login step.
func (s *AuthServiceImpl) deliver(ctx context.Context, email, code string, expiry time.Time) error {
	sendCtx, cancel := context.WithTimeout(ctx, s.config.NotifyTimeout)
	defer cancel()

	if err := s.notifier.SendCode(sendCtx, email, code, time.Until(expiry)); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrNotificationFailed, err)
	}
	return nil
}

func (s *AuthServiceImpl) allow(ctx context.Context, origin string, class domain.EndpointClass) error {
	if s.limiter == nil {
		return nil
	}
	if err := s.limiter.Allow(ctx, origin, class); err != nil {
		if errors.Is(err, domain.ErrRateLimited) {
			s.log(domain.NewAuditEvent(domain.RateLimitedEvent, "").WithOrigin(origin).WithError(err))
			return domain.ErrRateLimited
		}
		return fmt.Errorf("rate limiter unavailable: %w", err)
	}
	return nil
}

func (s *AuthServiceImpl) log(event *domain.AuditEvent) {
	if s.audit != nil {
		s.audit.Log(event)
	}
}

// consumeRaceError names the reason a consume compare-and-set hit zero
// rows. The pair stopped matching either because a concurrent
// verification consumed it or because a newer login overwrote it.
func (s *AuthServiceImpl) consumeRaceError(ctx context.Context, adminID, fp string) error {
	current, err := s.adminRepo.FindByID(ctx, adminID)
	if err != nil {
		return domain.ErrCodeAlreadyUsed
	}
	if current.PendingCodeConsumed {
		return domain.ErrCodeAlreadyUsed
	}
	if current.IntermediateFingerprint != fp {
		return domain.ErrInvalidSession
	}
	return domain.ErrCodeAlreadyUsed
}

func codeStatusError(status domain.CodeStatus) error {
	switch status {
	case domain.CodeAlreadyUsed:
		return domain.ErrCodeAlreadyUsed
	case domain.CodeExpired:
		return domain.ErrCodeExpired
	default:
		return domain.ErrCodeMismatch
	}
}

// fingerprint binds an intermediate token to the credential record
// without storing the raw token.
func fingerprint(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// maskEmail hides most of the local part: "admin@x.com" -> "ad***@x.com".
func maskEmail(email string) string {
	at := strings.IndexByte(email, '@')
	if at <= 0 {
		return "***"
	}
	local := email[:at]
	keep := 2
	if len(local) < keep {
		keep = len(local)
	}
	return local[:keep] + "***" + email[at:]
}
