package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/SamuelSChaves/works-to-front-sub002/domain"
)

// AuthConfig carries the credential and session policy knobs.
type AuthConfig struct {
	MaxAttempts          int
	LockWindow           time.Duration
	RefreshThreshold     time.Duration
	RevalidationInterval time.Duration
}

// AuthServiceImpl implements domain.AuthService
type AuthServiceImpl struct {
	userRepo     domain.UserRepository
	credRepo     domain.CredentialRepository
	sessionRepo  domain.SessionRepository
	auditRepo    domain.LoginAuditRepository
	challengeSvc domain.ChallengeService
	passwordSvc  domain.PasswordService
	tokenSvc     domain.TokenService
	cfg          AuthConfig
	now          func() time.Time
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo domain.UserRepository,
	credRepo domain.CredentialRepository,
	sessionRepo domain.SessionRepository,
	auditRepo domain.LoginAuditRepository,
	challengeSvc domain.ChallengeService,
	passwordSvc domain.PasswordService,
	tokenSvc domain.TokenService,
	cfg AuthConfig,
) *AuthServiceImpl {
	return &AuthServiceImpl{
		userRepo:     userRepo,
		credRepo:     credRepo,
		sessionRepo:  sessionRepo,
		auditRepo:    auditRepo,
		challengeSvc: challengeSvc,
		passwordSvc:  passwordSvc,
		tokenSvc:     tokenSvc,
		cfg:          cfg,
		now:          time.Now,
	}
}

// WithClock replaces the time source, for tests.
func (s *AuthServiceImpl) WithClock(now func() time.Time) *AuthServiceImpl {
	s.now = now
	return s
}

// audit is best effort: a failed write must never block a login decision.
func (s *AuthServiceImpl) audit(ctx context.Context, attempt *domain.LoginAttempt) {
	attempt.CreatedAt = s.now()
	if err := s.auditRepo.Record(ctx, attempt); err != nil {
		slog.Error("failed to record login attempt", "reason", attempt.Reason, "error", err)
	}
}

// Login implements domain.AuthService
func (s *AuthServiceImpl) Login(ctx context.Context, employeeCode, password, ip, userAgent string) (*domain.LoginOutcome, error) {
	if !validEmployeeCode(employeeCode) || password == "" {
		s.audit(ctx, domain.NewLoginAttempt(domain.ReasonMissingFields, ip, userAgent).WithEmployeeCode(employeeCode))
		return nil, domain.ErrInvalidInput
	}

	user, err := s.userRepo.FindByEmployeeCode(ctx, employeeCode)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.audit(ctx, domain.NewLoginAttempt(domain.ReasonUserNotFound, ip, userAgent).WithEmployeeCode(employeeCode))
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if user.CompanyStatus != domain.StatusActive {
		s.audit(ctx, domain.NewLoginAttempt(domain.ReasonCompanyInactive, ip, userAgent).ForUser(user))
		return nil, domain.ErrCompanyInactive
	}
	if user.Status != domain.StatusActive {
		s.audit(ctx, domain.NewLoginAttempt(domain.ReasonUserInactive, ip, userAgent).ForUser(user))
		return nil, domain.ErrUserInactive
	}

	cred, err := s.credRepo.FindByUserID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, domain.ErrCredentialMissing) {
			s.audit(ctx, domain.NewLoginAttempt(domain.ReasonCredentialMissing, ip, userAgent).ForUser(user))
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	now := s.now()

	// The lock gate runs before password verification so a locked account
	// does not keep burning bcrypt work or leak hash timing.
	if cred.LockedAt(now) {
		s.audit(ctx, domain.NewLoginAttempt(domain.ReasonAccountLocked, ip, userAgent).ForUser(user))
		return nil, domain.ErrAccountLocked
	}

	if !s.passwordSvc.Verify(cred.PasswordHash, password) {
		attempts := cred.FailedAttempts + 1
		if attempts >= s.cfg.MaxAttempts {
			lockedUntil := now.Add(s.cfg.LockWindow)
			if err := s.credRepo.RecordFailure(ctx, user.ID, attempts, &lockedUntil); err != nil {
				return nil, fmt.Errorf("failed to record login failure: %w", err)
			}
			s.audit(ctx, domain.NewLoginAttempt(domain.ReasonAccountLocked, ip, userAgent).ForUser(user))
			return nil, domain.ErrAccountLocked
		}
		if err := s.credRepo.RecordFailure(ctx, user.ID, attempts, nil); err != nil {
			return nil, fmt.Errorf("failed to record login failure: %w", err)
		}
		s.audit(ctx, domain.NewLoginAttempt(domain.ReasonInvalidPassword, ip, userAgent).ForUser(user))
		return nil, domain.ErrInvalidCredentials
	}

	// A proven password wipes the failure counter right away, before any
	// second factor: stale failures must not count against the next attempt.
	if cred.FailedAttempts > 0 || cred.LockedUntil != nil {
		if err := s.credRepo.ResetLockout(ctx, user.ID); err != nil {
			return nil, fmt.Errorf("failed to reset lockout state: %w", err)
		}
	}

	if s.validationStale(user, now) {
		descriptor, err := s.challengeSvc.Create(ctx, user)
		if err != nil {
			return nil, err
		}
		s.audit(ctx, domain.NewLoginAttempt(domain.ReasonValidationRequired, ip, userAgent).ForUser(user))
		return &domain.LoginOutcome{Challenge: descriptor}, nil
	}

	auth, err := s.finalize(ctx, user, ip, userAgent)
	if err != nil {
		return nil, err
	}
	return &domain.LoginOutcome{Auth: auth}, nil
}

// validationStale reports whether a second factor is required before the
// login can finish.
func (s *AuthServiceImpl) validationStale(user *domain.User, now time.Time) bool {
	if user.SecurityValidatedAt == nil {
		return true
	}
	return now.Sub(*user.SecurityValidatedAt) > s.cfg.RevalidationInterval
}

// finalize turns a fully verified identity into a live session and a signed
// token. Session replacement enforces a single active session per user.
func (s *AuthServiceImpl) finalize(ctx context.Context, user *domain.User, ip, userAgent string) (*domain.AuthResult, error) {
	now := s.now()

	session := &domain.Session{
		ID:        uuid.NewString(),
		CompanyID: user.CompanyID,
		UserID:    user.ID,
		IP:        ip,
		CreatedAt: now,
	}
	if err := s.sessionRepo.Replace(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	token, err := s.tokenSvc.Sign(&domain.TokenClaims{
		UserID:    user.ID,
		CompanyID: user.CompanyID,
		Name:      user.Name,
		JobTitle:  user.JobTitle,
		Team:      user.Team,
		SessionID: session.ID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	if err := s.credRepo.StampLogin(ctx, user.ID, now); err != nil {
		return nil, fmt.Errorf("failed to stamp login: %w", err)
	}

	s.audit(ctx, domain.NewLoginAttempt(domain.ReasonLoginSuccess, ip, userAgent).ForUser(user))

	return &domain.AuthResult{
		User:      user,
		Token:     token,
		SessionID: session.ID,
		ExpiresIn: int64(s.tokenSvc.TTL().Seconds()),
	}, nil
}

// Authenticate implements domain.AuthService
func (s *AuthServiceImpl) Authenticate(ctx context.Context, token, ip string) (*domain.TokenClaims, string, error) {
	claims, err := s.tokenSvc.Verify(token)
	if err != nil {
		return nil, "", err
	}

	session, err := s.sessionRepo.FindByID(ctx, claims.SessionID, claims.CompanyID, claims.UserID)
	if err != nil {
		return nil, "", err
	}
	if session.Revoked() {
		return nil, "", domain.ErrSessionRevoked
	}
	// Exact-match IP pinning, skipped when either side is unknown.
	if session.IP != "" && ip != "" && session.IP != ip {
		return nil, "", domain.ErrSessionIPMismatch
	}

	refreshed := ""
	expiresAt := time.Unix(claims.ExpiresAt, 0)
	if expiresAt.Sub(s.now()) <= s.cfg.RefreshThreshold {
		refreshed, err = s.tokenSvc.Sign(&domain.TokenClaims{
			UserID:    claims.UserID,
			CompanyID: claims.CompanyID,
			Name:      claims.Name,
			JobTitle:  claims.JobTitle,
			Team:      claims.Team,
			SessionID: claims.SessionID,
		})
		if err != nil {
			return nil, "", fmt.Errorf("failed to refresh token: %w", err)
		}
	}

	return claims, refreshed, nil
}

// ConfirmSecurityCode implements domain.AuthService
func (s *AuthServiceImpl) ConfirmSecurityCode(ctx context.Context, challengeID, code, ip, userAgent string) (*domain.AuthResult, error) {
	user, employeeCode, err := s.challengeSvc.Confirm(ctx, challengeID, code)
	if err != nil {
		return nil, err
	}
	if user.EmployeeCode == "" {
		user.EmployeeCode = employeeCode
	}

	if err := s.userRepo.StampSecurityValidated(ctx, user.CompanyID, user.ID, s.now()); err != nil {
		return nil, fmt.Errorf("failed to stamp security validation: %w", err)
	}

	return s.finalize(ctx, user, ip, userAgent)
}

// ResendSecurityCode implements domain.AuthService
func (s *AuthServiceImpl) ResendSecurityCode(ctx context.Context, challengeID string) (*domain.ChallengeDescriptor, error) {
	return s.challengeSvc.Resend(ctx, challengeID)
}

// Logout implements domain.AuthService
func (s *AuthServiceImpl) Logout(ctx context.Context, claims *domain.TokenClaims) error {
	return s.sessionRepo.Revoke(ctx, claims.SessionID, claims.CompanyID, claims.UserID, s.now())
}

// Profile implements domain.AuthService
func (s *AuthServiceImpl) Profile(ctx context.Context, companyID, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindByID(ctx, companyID, userID)
	if err != nil {
		return nil, err
	}
	if user.CompanyStatus != domain.StatusActive {
		return nil, domain.ErrCompanyInactive
	}
	if user.Status != domain.StatusActive {
		return nil, domain.ErrUserInactive
	}
	return user, nil
}

var _ domain.AuthService = (*AuthServiceImpl)(nil)
