package domain

import "time"

// LoginAttemptReason classifies a login outcome in the audit log.
type LoginAttemptReason string

const (
	ReasonMissingFields      LoginAttemptReason = "missing_fields"
	ReasonUserNotFound       LoginAttemptReason = "user_not_found"
	ReasonCompanyInactive    LoginAttemptReason = "company_inactive"
	ReasonUserInactive       LoginAttemptReason = "user_inactive"
	ReasonCredentialMissing  LoginAttemptReason = "auth_missing"
	ReasonAccountLocked      LoginAttemptReason = "account_locked"
	ReasonInvalidPassword    LoginAttemptReason = "invalid_password"
	ReasonValidationRequired LoginAttemptReason = "security_validation_required"
	ReasonLoginSuccess       LoginAttemptReason = "login_success"
)

// LoginAttempt is one append-only audit row. Identity fields are best-effort:
// an unknown employee code still produces a row, just without user linkage.
type LoginAttempt struct {
	ID           string
	CompanyID    string
	UserID       string
	EmployeeCode string
	Email        string
	IP           string
	UserAgent    string
	Success      bool
	Reason       LoginAttemptReason
	CreatedAt    time.Time
}

// NewLoginAttempt builds a failure row; callers fill identity fields as they
// become known along the login pipeline.
func NewLoginAttempt(reason LoginAttemptReason, ip, userAgent string) *LoginAttempt {
	return &LoginAttempt{
		IP:        ip,
		UserAgent: userAgent,
		Success:   reason == ReasonLoginSuccess,
		Reason:    reason,
	}
}

// ForUser attaches the resolved identity to the attempt.
func (a *LoginAttempt) ForUser(user *User) *LoginAttempt {
	if user != nil {
		a.CompanyID = user.CompanyID
		a.UserID = user.ID
		a.EmployeeCode = user.EmployeeCode
		a.Email = user.Email
	}
	return a
}

// WithEmployeeCode records the submitted code when no identity resolved.
func (a *LoginAttempt) WithEmployeeCode(code string) *LoginAttempt {
	a.EmployeeCode = code
	return a
}
