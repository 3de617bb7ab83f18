package mocks

import (
	"context"
	"time"

	"github.com/SamuelSChaves/works-to-front-sub002/domain"
)

// Function-field mocks: set the field to steer a call, leave it nil for a
// harmless default.

// MockUserRepository implements domain.UserRepository for testing
type MockUserRepository struct {
	FindByEmployeeCodeFunc     func(ctx context.Context, code string) (*domain.User, error)
	FindByIDFunc               func(ctx context.Context, companyID, userID string) (*domain.User, error)
	StampSecurityValidatedFunc func(ctx context.Context, companyID, userID string, at time.Time) error
}

func NewMockUserRepository() *MockUserRepository { return &MockUserRepository{} }

func (m *MockUserRepository) FindByEmployeeCode(ctx context.Context, code string) (*domain.User, error) {
	if m.FindByEmployeeCodeFunc != nil {
		return m.FindByEmployeeCodeFunc(ctx, code)
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepository) FindByID(ctx context.Context, companyID, userID string) (*domain.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, companyID, userID)
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepository) StampSecurityValidated(ctx context.Context, companyID, userID string, at time.Time) error {
	if m.StampSecurityValidatedFunc != nil {
		return m.StampSecurityValidatedFunc(ctx, companyID, userID, at)
	}
	return nil
}

// MockCredentialRepository implements domain.CredentialRepository for testing
type MockCredentialRepository struct {
	FindByUserIDFunc    func(ctx context.Context, userID string) (*domain.Credential, error)
	RecordFailureFunc   func(ctx context.Context, userID string, attempts int, lockedUntil *time.Time) error
	ResetLockoutFunc    func(ctx context.Context, userID string) error
	StampLoginFunc      func(ctx context.Context, userID string, at time.Time) error
	ReplacePasswordFunc func(ctx context.Context, userID, passwordHash string) error
}

func NewMockCredentialRepository() *MockCredentialRepository { return &MockCredentialRepository{} }

func (m *MockCredentialRepository) FindByUserID(ctx context.Context, userID string) (*domain.Credential, error) {
	if m.FindByUserIDFunc != nil {
		return m.FindByUserIDFunc(ctx, userID)
	}
	return nil, domain.ErrCredentialMissing
}

func (m *MockCredentialRepository) RecordFailure(ctx context.Context, userID string, attempts int, lockedUntil *time.Time) error {
	if m.RecordFailureFunc != nil {
		return m.RecordFailureFunc(ctx, userID, attempts, lockedUntil)
	}
	return nil
}

func (m *MockCredentialRepository) ResetLockout(ctx context.Context, userID string) error {
	if m.ResetLockoutFunc != nil {
		return m.ResetLockoutFunc(ctx, userID)
	}
	return nil
}

func (m *MockCredentialRepository) StampLogin(ctx context.Context, userID string, at time.Time) error {
	if m.StampLoginFunc != nil {
		return m.StampLoginFunc(ctx, userID, at)
	}
	return nil
}

func (m *MockCredentialRepository) ReplacePassword(ctx context.Context, userID, passwordHash string) error {
	if m.ReplacePasswordFunc != nil {
		return m.ReplacePasswordFunc(ctx, userID, passwordHash)
	}
	return nil
}

// MockSessionRepository implements domain.SessionRepository for testing
type MockSessionRepository struct {
	ReplaceFunc          func(ctx context.Context, session *domain.Session) error
	FindByIDFunc         func(ctx context.Context, sessionID, companyID, userID string) (*domain.Session, error)
	RevokeFunc           func(ctx context.Context, sessionID, companyID, userID string, at time.Time) error
	RevokeAllForUserFunc func(ctx context.Context, companyID, userID string, at time.Time) error
}

func NewMockSessionRepository() *MockSessionRepository { return &MockSessionRepository{} }

func (m *MockSessionRepository) Replace(ctx context.Context, session *domain.Session) error {
	if m.ReplaceFunc != nil {
		return m.ReplaceFunc(ctx, session)
	}
	return nil
}

func (m *MockSessionRepository) FindByID(ctx context.Context, sessionID, companyID, userID string) (*domain.Session, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, sessionID, companyID, userID)
	}
	return nil, domain.ErrSessionNotFound
}

func (m *MockSessionRepository) Revoke(ctx context.Context, sessionID, companyID, userID string, at time.Time) error {
	if m.RevokeFunc != nil {
		return m.RevokeFunc(ctx, sessionID, companyID, userID, at)
	}
	return nil
}

func (m *MockSessionRepository) RevokeAllForUser(ctx context.Context, companyID, userID string, at time.Time) error {
	if m.RevokeAllForUserFunc != nil {
		return m.RevokeAllForUserFunc(ctx, companyID, userID, at)
	}
	return nil
}

// MockChallengeRepository implements domain.ChallengeRepository for testing
type MockChallengeRepository struct {
	CreateFunc            func(ctx context.Context, challenge *domain.SecurityChallenge) error
	FindByIDFunc          func(ctx context.Context, challengeID string) (*domain.SecurityChallenge, error)
	RevokePendingFunc     func(ctx context.Context, userID string, at time.Time) error
	MarkUsedFunc          func(ctx context.Context, challengeID string, at time.Time) error
	IncrementAttemptsFunc func(ctx context.Context, challengeID string) (int, error)
	RevokeFunc            func(ctx context.Context, challengeID string, at time.Time) error
	DeleteFunc            func(ctx context.Context, challengeID string) error
}

func NewMockChallengeRepository() *MockChallengeRepository { return &MockChallengeRepository{} }

func (m *MockChallengeRepository) Create(ctx context.Context, challenge *domain.SecurityChallenge) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, challenge)
	}
	return nil
}

func (m *MockChallengeRepository) FindByID(ctx context.Context, challengeID string) (*domain.SecurityChallenge, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, challengeID)
	}
	return nil, domain.ErrChallengeInvalid
}

func (m *MockChallengeRepository) RevokePending(ctx context.Context, userID string, at time.Time) error {
	if m.RevokePendingFunc != nil {
		return m.RevokePendingFunc(ctx, userID, at)
	}
	return nil
}

func (m *MockChallengeRepository) MarkUsed(ctx context.Context, challengeID string, at time.Time) error {
	if m.MarkUsedFunc != nil {
		return m.MarkUsedFunc(ctx, challengeID, at)
	}
	return nil
}

func (m *MockChallengeRepository) IncrementAttempts(ctx context.Context, challengeID string) (int, error) {
	if m.IncrementAttemptsFunc != nil {
		return m.IncrementAttemptsFunc(ctx, challengeID)
	}
	return 1, nil
}

func (m *MockChallengeRepository) Revoke(ctx context.Context, challengeID string, at time.Time) error {
	if m.RevokeFunc != nil {
		return m.RevokeFunc(ctx, challengeID, at)
	}
	return nil
}

func (m *MockChallengeRepository) Delete(ctx context.Context, challengeID string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, challengeID)
	}
	return nil
}

// MockResetTokenRepository implements domain.ResetTokenRepository for testing
type MockResetTokenRepository struct {
	CreateFunc   func(ctx context.Context, token *domain.PasswordResetToken) error
	FindByIDFunc func(ctx context.Context, tokenID string) (*domain.PasswordResetToken, error)
	MarkUsedFunc func(ctx context.Context, tokenID string, at time.Time) error
	DeleteFunc   func(ctx context.Context, tokenID string) error
}

func NewMockResetTokenRepository() *MockResetTokenRepository { return &MockResetTokenRepository{} }

func (m *MockResetTokenRepository) Create(ctx context.Context, token *domain.PasswordResetToken) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, token)
	}
	return nil
}

func (m *MockResetTokenRepository) FindByID(ctx context.Context, tokenID string) (*domain.PasswordResetToken, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, tokenID)
	}
	return nil, domain.ErrResetLinkInvalid
}

func (m *MockResetTokenRepository) MarkUsed(ctx context.Context, tokenID string, at time.Time) error {
	if m.MarkUsedFunc != nil {
		return m.MarkUsedFunc(ctx, tokenID, at)
	}
	return nil
}

func (m *MockResetTokenRepository) Delete(ctx context.Context, tokenID string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, tokenID)
	}
	return nil
}

// MockPermissionRepository implements domain.PermissionRepository for testing
type MockPermissionRepository struct {
	CheckFunc       func(ctx context.Context, companyID, userID, screenID string) (*domain.PermissionCheck, error)
	ListForUserFunc func(ctx context.Context, companyID, userID string) (map[string]*domain.Permission, error)
}

func NewMockPermissionRepository() *MockPermissionRepository { return &MockPermissionRepository{} }

func (m *MockPermissionRepository) Check(ctx context.Context, companyID, userID, screenID string) (*domain.PermissionCheck, error) {
	if m.CheckFunc != nil {
		return m.CheckFunc(ctx, companyID, userID, screenID)
	}
	return &domain.PermissionCheck{ProfileStatus: domain.StatusActive}, nil
}

func (m *MockPermissionRepository) ListForUser(ctx context.Context, companyID, userID string) (map[string]*domain.Permission, error) {
	if m.ListForUserFunc != nil {
		return m.ListForUserFunc(ctx, companyID, userID)
	}
	return map[string]*domain.Permission{}, nil
}

// MockLoginAuditRepository implements domain.LoginAuditRepository for testing
type MockLoginAuditRepository struct {
	RecordFunc func(ctx context.Context, attempt *domain.LoginAttempt) error

	// Recorded collects every attempt when RecordFunc is nil.
	Recorded []*domain.LoginAttempt
}

func NewMockLoginAuditRepository() *MockLoginAuditRepository { return &MockLoginAuditRepository{} }

func (m *MockLoginAuditRepository) Record(ctx context.Context, attempt *domain.LoginAttempt) error {
	if m.RecordFunc != nil {
		return m.RecordFunc(ctx, attempt)
	}
	m.Recorded = append(m.Recorded, attempt)
	return nil
}

// Compile-time interface checks
var (
	_ domain.UserRepository       = (*MockUserRepository)(nil)
	_ domain.CredentialRepository = (*MockCredentialRepository)(nil)
	_ domain.SessionRepository    = (*MockSessionRepository)(nil)
	_ domain.ChallengeRepository  = (*MockChallengeRepository)(nil)
	_ domain.ResetTokenRepository = (*MockResetTokenRepository)(nil)
	_ domain.PermissionRepository = (*MockPermissionRepository)(nil)
	_ domain.LoginAuditRepository = (*MockLoginAuditRepository)(nil)
)
