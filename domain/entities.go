package domain

import "time"

// Entity status values as stored (the backing schema predates this service).
const (
	StatusActive   = "ativo"
	StatusInactive = "inativo"
	StatusDeleted  = "excluido"
)

// Company is the tenant boundary. Every other entity is scoped by CompanyID.
type Company struct {
	ID     string
	Name   string
	Status string
}

// User is an authenticated subject belonging to exactly one tenant.
// ProfileName and CompanyStatus are populated by joined reads; the core
// mutates only Status and SecurityValidatedAt.
type User struct {
	ID                  string
	CompanyID           string
	Name                string
	EmployeeCode        string // six-digit "cs" used as the login identifier
	Email               string
	ProfileID           string
	ProfileName         string
	JobTitle            string
	Coordination        string
	Team                string
	Status              string
	SecurityValidatedAt *time.Time
	CompanyStatus       string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// Credential holds the per-user password hash and brute-force lockout state.
// One-to-one with User, never deleted independently.
type Credential struct {
	UserID         string
	PasswordHash   string
	LastLoginAt    *time.Time
	FailedAttempts int
	LockedUntil    *time.Time
}

// LockedAt reports whether authentication is blocked at the given instant.
func (c *Credential) LockedAt(now time.Time) bool {
	return c.LockedUntil != nil && c.LockedUntil.After(now)
}

// Session is the server-side record proving a login is still live. Revocation
// is monotonic: RevokedAt is stamped once and never cleared. Rows are kept
// forever as an audit trail.
type Session struct {
	ID        string
	CompanyID string
	UserID    string
	IP        string
	CreatedAt time.Time
	RevokedAt *time.Time
}

// Revoked reports whether the session has been invalidated.
func (s *Session) Revoked() bool {
	return s.RevokedAt != nil
}

// ChallengeStatus is the lifecycle state of a SecurityChallenge.
type ChallengeStatus string

const (
	ChallengePending ChallengeStatus = "pending"
	ChallengeUsed    ChallengeStatus = "used"
	ChallengeRevoked ChallengeStatus = "revoked"
)

// SecurityChallenge is the second-factor one-time code issued when a login
// has a stale (or absent) security validation. Only the code hash is stored.
// At most one pending challenge exists per user.
type SecurityChallenge struct {
	ID           string
	CompanyID    string
	UserID       string
	EmployeeCode string
	CodeHash     string
	ExpiresAt    time.Time
	Status       ChallengeStatus
	Attempts     int
	CreatedAt    time.Time
	UsedAt       *time.Time
	RevokedAt    *time.Time
}

// ExpiredAt reports whether the challenge can no longer be confirmed.
func (c *SecurityChallenge) ExpiredAt(now time.Time) bool {
	return !c.ExpiresAt.After(now)
}

// PasswordResetToken is a single-use, hashed, expiring token delivered by
// email. Consuming it clears lockout state and revokes all user sessions.
type PasswordResetToken struct {
	ID        string
	CompanyID string
	UserID    string
	TokenHash string
	ExpiresAt time.Time
	UsedAt    *time.Time
	CreatedAt time.Time
}

// ExpiredAt reports whether the token can no longer be consumed.
func (t *PasswordResetToken) ExpiredAt(now time.Time) bool {
	return !t.ExpiresAt.After(now)
}

// Profile is the role a user resolves to for permission checks.
type Profile struct {
	ID        string
	CompanyID string
	Name      string
	Status    string
}

// PermissionAction is one of the four independent capabilities a permission
// row grants per screen.
type PermissionAction string

const (
	ActionRead   PermissionAction = "read"
	ActionCreate PermissionAction = "create"
	ActionEdit   PermissionAction = "edit"
	ActionDelete PermissionAction = "delete"
)

// Permission is the (profile, screen) capability row. Granting one action
// does not imply another; a missing row means deny.
type Permission struct {
	ProfileID string
	ScreenID  string
	Read      bool
	Create    bool
	Edit      bool
	Delete    bool
}

// Allows resolves a single action against the row.
func (p *Permission) Allows(action PermissionAction) bool {
	switch action {
	case ActionRead:
		return p.Read
	case ActionCreate:
		return p.Create
	case ActionEdit:
		return p.Edit
	case ActionDelete:
		return p.Delete
	}
	return false
}

// PermissionCheck is the joined read used by Authorize: the profile status
// gate plus the permission row for the requested screen, if any.
type PermissionCheck struct {
	ProfileStatus string
	Permission    *Permission
}

// TokenClaims is the payload carried by a signed bearer token. Wire keys
// match the stored schema the frontend already consumes.
type TokenClaims struct {
	UserID    string `json:"user_id"`
	CompanyID string `json:"company_id"`
	Name      string `json:"nome"`
	JobTitle  string `json:"cargo"`
	Team      string `json:"equipe"`
	SessionID string `json:"session_id"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}

// ChallengeDescriptor is what the login endpoint returns when a second
// factor is required; the code itself travels only by email.
type ChallengeDescriptor struct {
	ChallengeID string    `json:"challenge_id"`
	ExpiresAt   time.Time `json:"expires_at"`
	EmailHint   string    `json:"email_hint"`
}

// AuthResult is a finished login: the identity, its signed token and the
// session the token is bound to.
type AuthResult struct {
	User      *User
	Token     string
	SessionID string
	ExpiresIn int64 // seconds
}

// LoginOutcome is the disjoint result of a login attempt that passed
// credential checks: either a finished AuthResult or a pending second-factor
// challenge, never both.
type LoginOutcome struct {
	Auth      *AuthResult
	Challenge *ChallengeDescriptor
}
