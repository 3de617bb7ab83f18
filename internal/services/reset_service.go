package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/SamuelSChaves/works-to-front-sub002/domain"
)

// ResetConfig carries the password-reset policy knobs.
type ResetConfig struct {
	TokenTTL     time.Duration
	FrontendURL  string
	EmailSubject string
}

// PasswordResetServiceImpl implements domain.PasswordResetService
type PasswordResetServiceImpl struct {
	userRepo    domain.UserRepository
	credRepo    domain.CredentialRepository
	resetRepo   domain.ResetTokenRepository
	sessionRepo domain.SessionRepository
	passwordSvc domain.PasswordService
	mailer      domain.Mailer
	cfg         ResetConfig
	now         func() time.Time
}

// NewPasswordResetService creates a new password reset service
func NewPasswordResetService(
	userRepo domain.UserRepository,
	credRepo domain.CredentialRepository,
	resetRepo domain.ResetTokenRepository,
	sessionRepo domain.SessionRepository,
	passwordSvc domain.PasswordService,
	mailer domain.Mailer,
	cfg ResetConfig,
) *PasswordResetServiceImpl {
	return &PasswordResetServiceImpl{
		userRepo:    userRepo,
		credRepo:    credRepo,
		resetRepo:   resetRepo,
		sessionRepo: sessionRepo,
		passwordSvc: passwordSvc,
		mailer:      mailer,
		cfg:         cfg,
		now:         time.Now,
	}
}

// WithClock replaces the time source, for tests.
func (s *PasswordResetServiceImpl) WithClock(now func() time.Time) *PasswordResetServiceImpl {
	s.now = now
	return s
}

// Request implements domain.PasswordResetService. Ineligible employee codes
// return nil without touching the store so the endpoint cannot be used to
// enumerate accounts.
func (s *PasswordResetServiceImpl) Request(ctx context.Context, employeeCode string) error {
	if !validEmployeeCode(employeeCode) {
		return domain.ErrInvalidInput
	}

	user, err := s.userRepo.FindByEmployeeCode(ctx, employeeCode)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil
		}
		return err
	}
	if user.Status != domain.StatusActive || user.CompanyStatus != domain.StatusActive || user.Email == "" {
		return nil
	}

	token, err := randomToken()
	if err != nil {
		return err
	}

	now := s.now()
	record := &domain.PasswordResetToken{
		ID:        uuid.NewString(),
		CompanyID: user.CompanyID,
		UserID:    user.ID,
		TokenHash: hashSecret(token),
		ExpiresAt: now.Add(s.cfg.TokenTTL),
		CreatedAt: now,
	}
	if err := s.resetRepo.Create(ctx, record); err != nil {
		return fmt.Errorf("failed to create reset token: %w", err)
	}

	link := fmt.Sprintf("%s/recuperar-senha?token_id=%s&token=%s",
		strings.TrimRight(s.cfg.FrontendURL, "/"), record.ID, token)
	text := fmt.Sprintf(
		"Olá %s,\n\nPara redefinir sua senha, acesse o link abaixo:\n\n%s\n\nO link expira em %d minutos e pode ser usado uma única vez. Se você não pediu a redefinição, ignore este e-mail.",
		user.Name, link, int(s.cfg.TokenTTL.Minutes()),
	)
	html := fmt.Sprintf(
		`<p>Olá %s,</p><p>Para redefinir sua senha, <a href="%s">clique aqui</a>.</p><p>O link expira em %d minutos e pode ser usado uma única vez.</p>`,
		user.Name, link, int(s.cfg.TokenTTL.Minutes()),
	)
	if err := s.mailer.SendMessage(user.Email, s.cfg.EmailSubject, text, html); err != nil {
		// An undeliverable link is a dead token; remove it so a retry starts
		// clean.
		_ = s.resetRepo.Delete(ctx, record.ID)
		return domain.ErrDeliveryFailure
	}

	return nil
}

// Confirm implements domain.PasswordResetService. Consuming the token also
// clears lockout state and revokes every live session for the user.
func (s *PasswordResetServiceImpl) Confirm(ctx context.Context, tokenID, token, newPassword string) error {
	if !strongPassword(newPassword) {
		return domain.ErrWeakPassword
	}

	record, err := s.resetRepo.FindByID(ctx, tokenID)
	if err != nil {
		return err
	}

	now := s.now()
	if record.UsedAt != nil || record.ExpiredAt(now) {
		return domain.ErrResetLinkInvalid
	}
	if !secretMatches(record.TokenHash, token) {
		return domain.ErrResetLinkInvalid
	}

	// MarkUsed is the single-use gate; a concurrent confirm loses here.
	if err := s.resetRepo.MarkUsed(ctx, record.ID, now); err != nil {
		return err
	}

	hash, err := s.passwordSvc.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.credRepo.ReplacePassword(ctx, record.UserID, hash); err != nil {
		return fmt.Errorf("failed to replace password: %w", err)
	}
	if err := s.sessionRepo.RevokeAllForUser(ctx, record.CompanyID, record.UserID, now); err != nil {
		return fmt.Errorf("failed to revoke sessions: %w", err)
	}

	return nil
}

var _ domain.PasswordResetService = (*PasswordResetServiceImpl)(nil)
