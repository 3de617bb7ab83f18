package domain

import "errors"

// Authentication errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountLocked      = errors.New("account temporarily locked")
	ErrUserInactive       = errors.New("user account is inactive")
	ErrCompanyInactive    = errors.New("company is inactive")
	ErrCredentialMissing  = errors.New("credential record missing")
	ErrInvalidInput       = errors.New("invalid input")
)

// Security-validation challenge errors
var (
	ErrChallengeInvalid   = errors.New("security code invalid or expired")
	ErrChallengeThrottled = errors.New("security code resend throttled")
)

// Token errors
var (
	ErrTokenInvalid   = errors.New("invalid token")
	ErrTokenExpired   = errors.New("token has expired")
	ErrTokenMalformed = errors.New("malformed token")
)

// Session errors
var (
	ErrSessionNotFound   = errors.New("session not found")
	ErrSessionRevoked    = errors.New("session has been revoked")
	ErrSessionIPMismatch = errors.New("session bound to a different client address")
)

// Password-reset errors
var (
	ErrResetLinkInvalid = errors.New("reset link expired or invalid")
	ErrWeakPassword     = errors.New("password does not meet complexity policy")
)

// Authorization and delivery errors
var (
	ErrPermissionDenied = errors.New("access denied")
	ErrDeliveryFailure  = errors.New("outbound message delivery failed")
)
