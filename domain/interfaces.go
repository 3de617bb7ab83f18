package domain

import (
	"context"
	"time"
)

// UserRepository defines identity data access. Reads join company and
// profile so callers can gate on tenant status without a second query.
type UserRepository interface {
	FindByEmployeeCode(ctx context.Context, code string) (*User, error)
	FindByID(ctx context.Context, companyID, userID string) (*User, error)
	StampSecurityValidated(ctx context.Context, companyID, userID string, at time.Time) error
}

// CredentialRepository defines password and lockout state access.
type CredentialRepository interface {
	FindByUserID(ctx context.Context, userID string) (*Credential, error)
	// RecordFailure persists an incremented attempt counter and, when the
	// policy threshold was reached, the lock expiry.
	RecordFailure(ctx context.Context, userID string, attempts int, lockedUntil *time.Time) error
	ResetLockout(ctx context.Context, userID string) error
	StampLogin(ctx context.Context, userID string, at time.Time) error
	// ReplacePassword swaps the hash and clears lockout state in one update.
	ReplacePassword(ctx context.Context, userID, passwordHash string) error
}

// SessionRepository defines session lifecycle operations. Sessions are never
// deleted; revocation stamps RevokedAt exactly once.
type SessionRepository interface {
	// Replace revokes every live session for the user and inserts the new
	// one as a single transactional unit (single active session per user).
	Replace(ctx context.Context, session *Session) error
	FindByID(ctx context.Context, sessionID, companyID, userID string) (*Session, error)
	Revoke(ctx context.Context, sessionID, companyID, userID string, at time.Time) error
	RevokeAllForUser(ctx context.Context, companyID, userID string, at time.Time) error
}

// ChallengeRepository defines security-validation challenge persistence.
type ChallengeRepository interface {
	Create(ctx context.Context, challenge *SecurityChallenge) error
	FindByID(ctx context.Context, challengeID string) (*SecurityChallenge, error)
	// RevokePending revokes every pending challenge for the user, keeping
	// the at-most-one-pending invariant before a new challenge is created.
	RevokePending(ctx context.Context, userID string, at time.Time) error
	// MarkUsed transitions pending -> used; it fails if the challenge is no
	// longer pending so two concurrent confirmations cannot both win.
	MarkUsed(ctx context.Context, challengeID string, at time.Time) error
	IncrementAttempts(ctx context.Context, challengeID string) (int, error)
	Revoke(ctx context.Context, challengeID string, at time.Time) error
	// Delete removes a just-created row whose delivery failed.
	Delete(ctx context.Context, challengeID string) error
}

// ResetTokenRepository defines password-reset token persistence.
type ResetTokenRepository interface {
	Create(ctx context.Context, token *PasswordResetToken) error
	FindByID(ctx context.Context, tokenID string) (*PasswordResetToken, error)
	// MarkUsed consumes the token; it fails if the token was already used.
	MarkUsed(ctx context.Context, tokenID string, at time.Time) error
	Delete(ctx context.Context, tokenID string) error
}

// PermissionRepository resolves a user's profile to screen capabilities.
type PermissionRepository interface {
	// Check returns the profile status and the permission row for one
	// screen; Permission is nil when no row exists (default deny).
	Check(ctx context.Context, companyID, userID, screenID string) (*PermissionCheck, error)
	// ListForUser returns the full per-screen matrix for an active profile.
	ListForUser(ctx context.Context, companyID, userID string) (map[string]*Permission, error)
}

// LoginAuditRepository is the append-only login-attempt log.
type LoginAuditRepository interface {
	Record(ctx context.Context, attempt *LoginAttempt) error
}

// PasswordService defines password hashing operations.
type PasswordService interface {
	Hash(password string) (string, error)
	Verify(hashedPassword, password string) bool
}

// TokenService signs and verifies compact bearer tokens.
type TokenService interface {
	Sign(claims *TokenClaims) (string, error)
	Verify(token string) (*TokenClaims, error)
	TTL() time.Duration
}

// Mailer is the outbound message channel used for security codes and
// password-reset links.
type Mailer interface {
	SendMessage(to, subject, text, html string) error
}

// AuthService defines the login, authentication and logout business logic —
// the Authenticate half of the boundary contract handlers consume.
type AuthService interface {
	// Login verifies credentials for an employee code. The outcome is
	// either a finished AuthResult or a ChallengeDescriptor when security
	// validation is stale.
	Login(ctx context.Context, employeeCode, password, ip, userAgent string) (*LoginOutcome, error)
	// Authenticate verifies a bearer token, checks session liveness and IP
	// pinning, and returns a replacement token when inside the sliding
	// refresh window (empty string otherwise).
	Authenticate(ctx context.Context, token, ip string) (*TokenClaims, string, error)
	// ConfirmSecurityCode completes the second factor and finalizes login
	// for the identity resolved from the challenge.
	ConfirmSecurityCode(ctx context.Context, challengeID, code, ip, userAgent string) (*AuthResult, error)
	// ResendSecurityCode supersedes a still-pending challenge with a fresh
	// one. A nil descriptor with nil error means there was nothing to
	// resend (deliberately indistinguishable from success at the boundary).
	ResendSecurityCode(ctx context.Context, challengeID string) (*ChallengeDescriptor, error)
	Logout(ctx context.Context, claims *TokenClaims) error
	Profile(ctx context.Context, companyID, userID string) (*User, error)
}

// ChallengeService owns the security-validation challenge state machine.
type ChallengeService interface {
	// Create revokes any pending challenge for the user, issues a new
	// hashed code and delivers it by email; the row is removed again when
	// delivery fails.
	Create(ctx context.Context, user *User) (*ChallengeDescriptor, error)
	// Confirm validates the submitted code and returns the resolved,
	// still-active identity together with the employee code captured at
	// challenge creation.
	Confirm(ctx context.Context, challengeID, code string) (*User, string, error)
	// Resend issues a superseding challenge when the given one is still
	// pending; (nil, nil) when it is not.
	Resend(ctx context.Context, challengeID string) (*ChallengeDescriptor, error)
}

// PasswordResetService defines the one-time reset flow.
type PasswordResetService interface {
	// Request never discloses account existence: ineligible employee codes
	// return nil without any store mutation.
	Request(ctx context.Context, employeeCode string) error
	Confirm(ctx context.Context, tokenID, token, newPassword string) error
}

// PermissionService is the Authorize half of the boundary contract.
type PermissionService interface {
	Authorize(ctx context.Context, companyID, userID, screenID string, action PermissionAction) error
	Matrix(ctx context.Context, companyID, userID string) (map[string]*Permission, error)
}
