package mocks

import (
	"context"

	"github.com/SamuelSChaves/works-to-front-sub002/domain"
)

// MockAuthService implements domain.AuthService for testing
type MockAuthService struct {
	LoginFunc               func(ctx context.Context, employeeCode, password, ip, userAgent string) (*domain.LoginOutcome, error)
	AuthenticateFunc        func(ctx context.Context, token, ip string) (*domain.TokenClaims, string, error)
	ConfirmSecurityCodeFunc func(ctx context.Context, challengeID, code, ip, userAgent string) (*domain.AuthResult, error)
	ResendSecurityCodeFunc  func(ctx context.Context, challengeID string) (*domain.ChallengeDescriptor, error)
	LogoutFunc              func(ctx context.Context, claims *domain.TokenClaims) error
	ProfileFunc             func(ctx context.Context, companyID, userID string) (*domain.User, error)
}

func NewMockAuthService() *MockAuthService { return &MockAuthService{} }

func (m *MockAuthService) Login(ctx context.Context, employeeCode, password, ip, userAgent string) (*domain.LoginOutcome, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, employeeCode, password, ip, userAgent)
	}
	return nil, domain.ErrInvalidCredentials
}

func (m *MockAuthService) Authenticate(ctx context.Context, token, ip string) (*domain.TokenClaims, string, error) {
	if m.AuthenticateFunc != nil {
		return m.AuthenticateFunc(ctx, token, ip)
	}
	return nil, "", domain.ErrTokenInvalid
}

func (m *MockAuthService) ConfirmSecurityCode(ctx context.Context, challengeID, code, ip, userAgent string) (*domain.AuthResult, error) {
	if m.ConfirmSecurityCodeFunc != nil {
		return m.ConfirmSecurityCodeFunc(ctx, challengeID, code, ip, userAgent)
	}
	return nil, domain.ErrChallengeInvalid
}

func (m *MockAuthService) ResendSecurityCode(ctx context.Context, challengeID string) (*domain.ChallengeDescriptor, error) {
	if m.ResendSecurityCodeFunc != nil {
		return m.ResendSecurityCodeFunc(ctx, challengeID)
	}
	return nil, nil
}

func (m *MockAuthService) Logout(ctx context.Context, claims *domain.TokenClaims) error {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx, claims)
	}
	return nil
}

func (m *MockAuthService) Profile(ctx context.Context, companyID, userID string) (*domain.User, error) {
	if m.ProfileFunc != nil {
		return m.ProfileFunc(ctx, companyID, userID)
	}
	return nil, domain.ErrUserNotFound
}

var _ domain.AuthService = (*MockAuthService)(nil)
