package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/SamuelSChaves/works-to-front-sub002/domain"
	"github.com/SamuelSChaves/works-to-front-sub002/internal/infrastructure/database"
)

const securityCodeLength = 6

// ChallengeConfig carries the security-validation policy knobs.
type ChallengeConfig struct {
	CodeTTL      time.Duration
	ResendWindow time.Duration
	MaxAttempts  int
	EmailSubject string
}

// ChallengeServiceImpl implements domain.ChallengeService
type ChallengeServiceImpl struct {
	challengeRepo domain.ChallengeRepository
	userRepo      domain.UserRepository
	mailer        domain.Mailer
	redis         *database.RedisClient
	cfg           ChallengeConfig
	now           func() time.Time
}

// NewChallengeService creates a new challenge service
func NewChallengeService(
	challengeRepo domain.ChallengeRepository,
	userRepo domain.UserRepository,
	mailer domain.Mailer,
	redis *database.RedisClient,
	cfg ChallengeConfig,
) *ChallengeServiceImpl {
	return &ChallengeServiceImpl{
		challengeRepo: challengeRepo,
		userRepo:      userRepo,
		mailer:        mailer,
		redis:         redis,
		cfg:           cfg,
		now:           time.Now,
	}
}

// WithClock replaces the time source, for tests.
func (s *ChallengeServiceImpl) WithClock(now func() time.Time) *ChallengeServiceImpl {
	s.now = now
	return s
}

// Create implements domain.ChallengeService. Any still-pending challenge for
// the user is revoked first, so at most one can ever be confirmed.
func (s *ChallengeServiceImpl) Create(ctx context.Context, user *domain.User) (*domain.ChallengeDescriptor, error) {
	now := s.now()

	if err := s.challengeRepo.RevokePending(ctx, user.ID, now); err != nil {
		return nil, fmt.Errorf("failed to revoke pending challenges: %w", err)
	}

	code, err := randomDigits(securityCodeLength)
	if err != nil {
		return nil, err
	}

	challenge := &domain.SecurityChallenge{
		ID:           uuid.NewString(),
		CompanyID:    user.CompanyID,
		UserID:       user.ID,
		EmployeeCode: user.EmployeeCode,
		CodeHash:     hashSecret(code),
		ExpiresAt:    now.Add(s.cfg.CodeTTL),
		Status:       domain.ChallengePending,
		CreatedAt:    now,
	}
	if err := s.challengeRepo.Create(ctx, challenge); err != nil {
		return nil, fmt.Errorf("failed to create challenge: %w", err)
	}

	text := fmt.Sprintf(
		"Olá %s,\n\nSeu código de segurança é: %s\n\nEle expira em %d minutos. Se você não tentou entrar, ignore este e-mail.",
		user.Name, code, int(s.cfg.CodeTTL.Minutes()),
	)
	if err := s.mailer.SendMessage(user.Email, s.cfg.EmailSubject, text, ""); err != nil {
		// No deliverable code means no usable challenge; remove the row so a
		// retry starts clean.
		_ = s.challengeRepo.Delete(ctx, challenge.ID)
		return nil, domain.ErrDeliveryFailure
	}

	return &domain.ChallengeDescriptor{
		ChallengeID: challenge.ID,
		ExpiresAt:   challenge.ExpiresAt,
		EmailHint:   maskEmail(user.Email),
	}, nil
}

// Confirm implements domain.ChallengeService
func (s *ChallengeServiceImpl) Confirm(ctx context.Context, challengeID, code string) (*domain.User, string, error) {
	challenge, err := s.challengeRepo.FindByID(ctx, challengeID)
	if err != nil {
		return nil, "", err
	}

	now := s.now()
	if challenge.Status != domain.ChallengePending {
		return nil, "", domain.ErrChallengeInvalid
	}
	if challenge.ExpiredAt(now) {
		_ = s.challengeRepo.Revoke(ctx, challengeID, now)
		return nil, "", domain.ErrChallengeInvalid
	}

	attempts, err := s.challengeRepo.IncrementAttempts(ctx, challengeID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to count attempt: %w", err)
	}
	if attempts > s.cfg.MaxAttempts {
		_ = s.challengeRepo.Revoke(ctx, challengeID, now)
		return nil, "", domain.ErrChallengeInvalid
	}

	if !secretMatches(challenge.CodeHash, code) {
		if attempts >= s.cfg.MaxAttempts {
			_ = s.challengeRepo.Revoke(ctx, challengeID, now)
		}
		return nil, "", domain.ErrChallengeInvalid
	}

	// The status guard inside MarkUsed decides the winner when two confirms
	// race with the right code.
	if err := s.challengeRepo.MarkUsed(ctx, challengeID, now); err != nil {
		return nil, "", err
	}

	user, err := s.userRepo.FindByID(ctx, challenge.CompanyID, challenge.UserID)
	if err != nil {
		return nil, "", err
	}
	if user.CompanyStatus != domain.StatusActive {
		return nil, "", domain.ErrCompanyInactive
	}
	if user.Status != domain.StatusActive {
		return nil, "", domain.ErrUserInactive
	}

	return user, challenge.EmployeeCode, nil
}

// Resend implements domain.ChallengeService. A challenge that is no longer
// pending yields (nil, nil): the caller answers the same way whether or not
// anything was sent.
func (s *ChallengeServiceImpl) Resend(ctx context.Context, challengeID string) (*domain.ChallengeDescriptor, error) {
	challenge, err := s.challengeRepo.FindByID(ctx, challengeID)
	if err != nil {
		if errors.Is(err, domain.ErrChallengeInvalid) {
			return nil, nil
		}
		return nil, err
	}
	if challenge.Status != domain.ChallengePending || challenge.ExpiredAt(s.now()) {
		return nil, nil
	}

	ok, err := s.redis.SetNX(ctx, "security_resend:"+challenge.UserID, 1, s.cfg.ResendWindow).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to check resend window: %w", err)
	}
	if !ok {
		return nil, domain.ErrChallengeThrottled
	}

	user, err := s.userRepo.FindByID(ctx, challenge.CompanyID, challenge.UserID)
	if err != nil {
		return nil, err
	}
	if user.CompanyStatus != domain.StatusActive || user.Status != domain.StatusActive {
		return nil, nil
	}

	return s.Create(ctx, user)
}

var _ domain.ChallengeService = (*ChallengeServiceImpl)(nil)
