package mocks

import (
	"context"
	"time"

	"github.com/SamuelSChaves/works-to-front-sub002/domain"
)

// MockPasswordService implements domain.PasswordService for testing
type MockPasswordService struct {
	HashFunc   func(password string) (string, error)
	VerifyFunc func(hashedPassword, password string) bool
}

func NewMockPasswordService() *MockPasswordService { return &MockPasswordService{} }

func (m *MockPasswordService) Hash(password string) (string, error) {
	if m.HashFunc != nil {
		return m.HashFunc(password)
	}
	return "hashed_" + password, nil
}

func (m *MockPasswordService) Verify(hashedPassword, password string) bool {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(hashedPassword, password)
	}
	return hashedPassword == "hashed_"+password
}

// MockTokenService implements domain.TokenService for testing
type MockTokenService struct {
	SignFunc   func(claims *domain.TokenClaims) (string, error)
	VerifyFunc func(token string) (*domain.TokenClaims, error)
	TTLFunc    func() time.Duration
}

func NewMockTokenService() *MockTokenService { return &MockTokenService{} }

func (m *MockTokenService) Sign(claims *domain.TokenClaims) (string, error) {
	if m.SignFunc != nil {
		return m.SignFunc(claims)
	}
	return "mock_token", nil
}

func (m *MockTokenService) Verify(token string) (*domain.TokenClaims, error) {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(token)
	}
	return nil, domain.ErrTokenInvalid
}

func (m *MockTokenService) TTL() time.Duration {
	if m.TTLFunc != nil {
		return m.TTLFunc()
	}
	return 30 * time.Minute
}

// MockMailer implements domain.Mailer for testing
type MockMailer struct {
	SendMessageFunc func(to, subject, text, html string) error

	// Sent collects every message when SendMessageFunc is nil.
	Sent []MockMessage
}

// MockMessage is one captured outbound email.
type MockMessage struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

func NewMockMailer() *MockMailer { return &MockMailer{} }

func (m *MockMailer) SendMessage(to, subject, text, html string) error {
	if m.SendMessageFunc != nil {
		return m.SendMessageFunc(to, subject, text, html)
	}
	m.Sent = append(m.Sent, MockMessage{To: to, Subject: subject, Text: text, HTML: html})
	return nil
}

// MockChallengeService implements domain.ChallengeService for testing
type MockChallengeService struct {
	CreateFunc  func(ctx context.Context, user *domain.User) (*domain.ChallengeDescriptor, error)
	ConfirmFunc func(ctx context.Context, challengeID, code string) (*domain.User, string, error)
	ResendFunc  func(ctx context.Context, challengeID string) (*domain.ChallengeDescriptor, error)
}

func NewMockChallengeService() *MockChallengeService { return &MockChallengeService{} }

func (m *MockChallengeService) Create(ctx context.Context, user *domain.User) (*domain.ChallengeDescriptor, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	return &domain.ChallengeDescriptor{ChallengeID: "mock_challenge", ExpiresAt: time.Now().Add(15 * time.Minute)}, nil
}

func (m *MockChallengeService) Confirm(ctx context.Context, challengeID, code string) (*domain.User, string, error) {
	if m.ConfirmFunc != nil {
		return m.ConfirmFunc(ctx, challengeID, code)
	}
	return nil, "", domain.ErrChallengeInvalid
}

func (m *MockChallengeService) Resend(ctx context.Context, challengeID string) (*domain.ChallengeDescriptor, error) {
	if m.ResendFunc != nil {
		return m.ResendFunc(ctx, challengeID)
	}
	return nil, nil
}

// Compile-time interface checks
var (
	_ domain.PasswordService  = (*MockPasswordService)(nil)
	_ domain.TokenService     = (*MockTokenService)(nil)
	_ domain.Mailer           = (*MockMailer)(nil)
	_ domain.ChallengeService = (*MockChallengeService)(nil)
)
