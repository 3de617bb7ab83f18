package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/SamuelSChaves/works-to-front-sub002/domain"
	"github.com/SamuelSChaves/works-to-front-sub002/internal/mocks"
)

type resetFixture struct {
	userRepo  *mocks.MockUserRepository
	credRepo  *mocks.MockCredentialRepository
	resetRepo *mocks.MockResetTokenRepository
	sessRepo  *mocks.MockSessionRepository
	mailer    *mocks.MockMailer
	svc       *PasswordResetServiceImpl
}

func newResetFixture(t *testing.T) *resetFixture {
	t.Helper()
	f := &resetFixture{
		userRepo:  mocks.NewMockUserRepository(),
		credRepo:  mocks.NewMockCredentialRepository(),
		resetRepo: mocks.NewMockResetTokenRepository(),
		sessRepo:  mocks.NewMockSessionRepository(),
		mailer:    mocks.NewMockMailer(),
	}
	f.svc = NewPasswordResetService(
		f.userRepo, f.credRepo, f.resetRepo, f.sessRepo,
		mocks.NewMockPasswordService(), f.mailer,
		ResetConfig{
			TokenTTL:     30 * time.Minute,
			FrontendURL:  "https://works.example.com",
			EmailSubject: "Redefinição de senha",
		},
	).WithClock(func() time.Time { return testBase })
	return f
}

func validResetToken(tokenHash string) *domain.PasswordResetToken {
	return &domain.PasswordResetToken{
		ID:        "reset-1",
		CompanyID: "company-1",
		UserID:    "user-1",
		TokenHash: tokenHash,
		ExpiresAt: testBase.Add(20 * time.Minute),
		CreatedAt: testBase.Add(-10 * time.Minute),
	}
}

func TestPasswordResetServiceImpl_Request(t *testing.T) {
	t.Run("malformed employee code is a client error", func(t *testing.T) {
		f := newResetFixture(t)
		if err := f.svc.Request(context.Background(), "12x456"); !errors.Is(err, domain.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("unknown employee code answers success without touching the store", func(t *testing.T) {
		f := newResetFixture(t)
		f.resetRepo.CreateFunc = func(ctx context.Context, token *domain.PasswordResetToken) error {
			t.Error("no token must be created for an unknown account")
			return nil
		}

		if err := f.svc.Request(context.Background(), "999999"); err != nil {
			t.Fatalf("Request: %v", err)
		}
		if len(f.mailer.Sent) != 0 {
			t.Error("no email must be sent for an unknown account")
		}
	})

	t.Run("inactive account answers success without a token", func(t *testing.T) {
		f := newResetFixture(t)
		f.userRepo.FindByEmployeeCodeFunc = func(ctx context.Context, code string) (*domain.User, error) {
			u := validatedUser(t)
			u.Status = domain.StatusInactive
			return u, nil
		}
		f.resetRepo.CreateFunc = func(ctx context.Context, token *domain.PasswordResetToken) error {
			t.Error("no token must be created for an inactive account")
			return nil
		}

		if err := f.svc.Request(context.Background(), "123456"); err != nil {
			t.Fatalf("Request: %v", err)
		}
	})

	t.Run("eligible account gets a hashed single-use token by email", func(t *testing.T) {
		f := newResetFixture(t)
		f.userRepo.FindByEmployeeCodeFunc = func(ctx context.Context, code string) (*domain.User, error) {
			return validatedUser(t), nil
		}
		var created *domain.PasswordResetToken
		f.resetRepo.CreateFunc = func(ctx context.Context, token *domain.PasswordResetToken) error {
			created = token
			return nil
		}

		if err := f.svc.Request(context.Background(), "123456"); err != nil {
			t.Fatalf("Request: %v", err)
		}
		if created == nil {
			t.Fatal("expected a stored token")
		}
		if !created.ExpiresAt.Equal(testBase.Add(30 * time.Minute)) {
			t.Errorf("unexpected expiry %v", created.ExpiresAt)
		}

		if len(f.mailer.Sent) != 1 {
			t.Fatalf("expected one email, got %d", len(f.mailer.Sent))
		}
		msg := f.mailer.Sent[0]
		if !strings.Contains(msg.Text, "https://works.example.com/recuperar-senha?token_id="+created.ID+"&token=") {
			t.Errorf("reset link missing or malformed:\n%s", msg.Text)
		}
		if strings.Contains(msg.Text, created.TokenHash) {
			t.Error("the stored hash must not appear in the email")
		}

		// The emailed token must hash to what was stored.
		idx := strings.Index(msg.Text, "&token=")
		raw := msg.Text[idx+len("&token="):]
		if end := strings.IndexAny(raw, " \n"); end >= 0 {
			raw = raw[:end]
		}
		if !secretMatches(created.TokenHash, raw) {
			t.Error("stored hash must match the emailed token")
		}
	})

	t.Run("delivery failure removes the dead token", func(t *testing.T) {
		f := newResetFixture(t)
		f.userRepo.FindByEmployeeCodeFunc = func(ctx context.Context, code string) (*domain.User, error) {
			return validatedUser(t), nil
		}
		f.mailer.SendMessageFunc = func(to, subject, text, html string) error {
			return errors.New("smtp down")
		}
		deleted := false
		f.resetRepo.DeleteFunc = func(ctx context.Context, tokenID string) error {
			deleted = true
			return nil
		}

		if err := f.svc.Request(context.Background(), "123456"); !errors.Is(err, domain.ErrDeliveryFailure) {
			t.Fatalf("expected ErrDeliveryFailure, got %v", err)
		}
		if !deleted {
			t.Error("expected the undeliverable token to be removed")
		}
	})
}

func TestPasswordResetServiceImpl_Confirm(t *testing.T) {
	tests := []struct {
		name          string
		token         string
		password      string
		setup         func(t *testing.T, f *resetFixture)
		expectedError error
	}{
		{
			name:          "weak password is rejected before any lookup",
			token:         "whatever",
			password:      "short",
			setup:         func(t *testing.T, f *resetFixture) {},
			expectedError: domain.ErrWeakPassword,
		},
		{
			name:          "password without symbol is rejected",
			token:         "whatever",
			password:      "Senha123",
			setup:         func(t *testing.T, f *resetFixture) {},
			expectedError: domain.ErrWeakPassword,
		},
		{
			name:     "unknown token",
			token:    "whatever",
			password: "Senha@123",
			setup: func(t *testing.T, f *resetFixture) {
				f.resetRepo.FindByIDFunc = func(ctx context.Context, tokenID string) (*domain.PasswordResetToken, error) {
					return nil, domain.ErrResetLinkInvalid
				}
			},
			expectedError: domain.ErrResetLinkInvalid,
		},
		{
			name:     "expired token",
			token:    "raw-token",
			password: "Senha@123",
			setup: func(t *testing.T, f *resetFixture) {
				f.resetRepo.FindByIDFunc = func(ctx context.Context, tokenID string) (*domain.PasswordResetToken, error) {
					rec := validResetToken(hashSecret("raw-token"))
					rec.ExpiresAt = testBase.Add(-time.Second)
					return rec, nil
				}
			},
			expectedError: domain.ErrResetLinkInvalid,
		},
		{
			name:     "already used token",
			token:    "raw-token",
			password: "Senha@123",
			setup: func(t *testing.T, f *resetFixture) {
				f.resetRepo.FindByIDFunc = func(ctx context.Context, tokenID string) (*domain.PasswordResetToken, error) {
					rec := validResetToken(hashSecret("raw-token"))
					usedAt := testBase.Add(-time.Minute)
					rec.UsedAt = &usedAt
					return rec, nil
				}
			},
			expectedError: domain.ErrResetLinkInvalid,
		},
		{
			name:     "wrong secret",
			token:    "forged-token",
			password: "Senha@123",
			setup: func(t *testing.T, f *resetFixture) {
				f.resetRepo.FindByIDFunc = func(ctx context.Context, tokenID string) (*domain.PasswordResetToken, error) {
					return validResetToken(hashSecret("raw-token")), nil
				}
			},
			expectedError: domain.ErrResetLinkInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newResetFixture(t)
			f.credRepo.ReplacePasswordFunc = func(ctx context.Context, userID, passwordHash string) error {
				t.Error("password must not change on a failed confirm")
				return nil
			}
			tt.setup(t, f)

			if err := f.svc.Confirm(context.Background(), "reset-1", tt.token, tt.password); !errors.Is(err, tt.expectedError) {
				t.Fatalf("expected %v, got %v", tt.expectedError, err)
			}
		})
	}

	t.Run("valid confirm replaces the password and revokes all sessions", func(t *testing.T) {
		f := newResetFixture(t)
		f.resetRepo.FindByIDFunc = func(ctx context.Context, tokenID string) (*domain.PasswordResetToken, error) {
			return validResetToken(hashSecret("raw-token")), nil
		}
		var consumed, replaced, revoked bool
		f.resetRepo.MarkUsedFunc = func(ctx context.Context, tokenID string, at time.Time) error {
			consumed = true
			return nil
		}
		f.credRepo.ReplacePasswordFunc = func(ctx context.Context, userID, passwordHash string) error {
			replaced = true
			if userID != "user-1" {
				t.Errorf("password replaced for %q", userID)
			}
			if passwordHash != "hashed_Senha@123" {
				t.Errorf("unexpected hash %q", passwordHash)
			}
			return nil
		}
		f.sessRepo.RevokeAllForUserFunc = func(ctx context.Context, companyID, userID string, at time.Time) error {
			revoked = true
			if companyID != "company-1" || userID != "user-1" {
				t.Errorf("revocation scoped wrong: %s/%s", companyID, userID)
			}
			return nil
		}

		if err := f.svc.Confirm(context.Background(), "reset-1", "raw-token", "Senha@123"); err != nil {
			t.Fatalf("Confirm: %v", err)
		}
		if !consumed || !replaced || !revoked {
			t.Errorf("consumed=%v replaced=%v revoked=%v, want all true", consumed, replaced, revoked)
		}
	})

	t.Run("a concurrent loser of the single-use race gets the invalid-link error", func(t *testing.T) {
		f := newResetFixture(t)
		f.resetRepo.FindByIDFunc = func(ctx context.Context, tokenID string) (*domain.PasswordResetToken, error) {
			return validResetToken(hashSecret("raw-token")), nil
		}
		f.resetRepo.MarkUsedFunc = func(ctx context.Context, tokenID string, at time.Time) error {
			return domain.ErrResetLinkInvalid
		}
		f.credRepo.ReplacePasswordFunc = func(ctx context.Context, userID, passwordHash string) error {
			t.Error("password must not change when the token was already consumed")
			return nil
		}

		if err := f.svc.Confirm(context.Background(), "reset-1", "raw-token", "Senha@123"); !errors.Is(err, domain.ErrResetLinkInvalid) {
			t.Fatalf("expected ErrResetLinkInvalid, got %v", err)
		}
	})
}
