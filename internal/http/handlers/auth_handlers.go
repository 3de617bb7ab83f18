package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SamuelSChaves/works-to-front-sub002/domain"
	"github.com/SamuelSChaves/works-to-front-sub002/internal/http/cookies"
	"github.com/SamuelSChaves/works-to-front-sub002/internal/http/middleware"
)

// AuthHandlers handles authentication HTTP requests
type AuthHandlers struct {
	authSvc    domain.AuthService
	resetSvc   domain.PasswordResetService
	permSvc    domain.PermissionService
	cookieName string
	tokenTTL   time.Duration
}

// NewAuthHandlers creates new auth handlers
func NewAuthHandlers(
	authSvc domain.AuthService,
	resetSvc domain.PasswordResetService,
	permSvc domain.PermissionService,
	cookieName string,
	tokenTTL time.Duration,
) *AuthHandlers {
	return &AuthHandlers{
		authSvc:    authSvc,
		resetSvc:   resetSvc,
		permSvc:    permSvc,
		cookieName: cookieName,
		tokenTTL:   tokenTTL,
	}
}

// LoginRequest represents login request. Field names match what the frontend
// already sends.
type LoginRequest struct {
	EmployeeCode string `json:"cs" binding:"required"`
	Password     string `json:"senha" binding:"required"`
}

// SecurityCodeConfirmRequest represents second-factor confirmation
type SecurityCodeConfirmRequest struct {
	ChallengeID string `json:"challenge_id" binding:"required"`
	Code        string `json:"code" binding:"required"`
}

// SecurityCodeResendRequest represents a resend request
type SecurityCodeResendRequest struct {
	ChallengeID string `json:"challenge_id" binding:"required"`
}

// PasswordResetRequest starts the reset flow
type PasswordResetRequest struct {
	EmployeeCode string `json:"cs" binding:"required"`
}

// PasswordResetConfirmRequest consumes a reset link
type PasswordResetConfirmRequest struct {
	TokenID     string `json:"token_id" binding:"required"`
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"senha" binding:"required"`
}

// Login handles credential verification. Three shapes come back: a finished
// session, a 428 asking for the emailed security code, or an error.
func (h *AuthHandlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cs and senha are required"})
		return
	}

	outcome, err := h.authSvc.Login(c.Request.Context(), req.EmployeeCode, req.Password, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid credentials format"})
		case errors.Is(err, domain.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		case errors.Is(err, domain.ErrAccountLocked):
			c.JSON(http.StatusLocked, gin.H{"error": "Account temporarily locked"})
		case errors.Is(err, domain.ErrUserInactive), errors.Is(err, domain.ErrCompanyInactive):
			c.JSON(http.StatusForbidden, gin.H{"error": "Account is inactive"})
		case errors.Is(err, domain.ErrDeliveryFailure):
			c.JSON(http.StatusBadGateway, gin.H{"error": "Could not deliver security code"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		}
		return
	}

	if outcome.Challenge != nil {
		c.JSON(http.StatusPreconditionRequired, gin.H{
			"security_validation": gin.H{
				"challenge_id": outcome.Challenge.ChallengeID,
				"expires_at":   outcome.Challenge.ExpiresAt,
				"email_hint":   outcome.Challenge.EmailHint,
			},
		})
		return
	}

	h.respondAuthenticated(c, outcome.Auth)
}

// ConfirmSecurityCode completes the second factor and finishes the login.
func (h *AuthHandlers) ConfirmSecurityCode(c *gin.Context) {
	var req SecurityCodeConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "challenge_id and code are required"})
		return
	}

	auth, err := h.authSvc.ConfirmSecurityCode(c.Request.Context(), req.ChallengeID, req.Code, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrChallengeInvalid):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Security code invalid or expired"})
		case errors.Is(err, domain.ErrUserInactive), errors.Is(err, domain.ErrCompanyInactive):
			c.JSON(http.StatusForbidden, gin.H{"error": "Account is inactive"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Security validation failed"})
		}
		return
	}

	h.respondAuthenticated(c, auth)
}

// ResendSecurityCode supersedes a pending challenge. The response does not
// say whether anything was actually sent.
func (h *AuthHandlers) ResendSecurityCode(c *gin.Context) {
	var req SecurityCodeResendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "challenge_id is required"})
		return
	}

	descriptor, err := h.authSvc.ResendSecurityCode(c.Request.Context(), req.ChallengeID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrChallengeThrottled):
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Wait before requesting a new code"})
		case errors.Is(err, domain.ErrDeliveryFailure):
			c.JSON(http.StatusBadGateway, gin.H{"error": "Could not deliver security code"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Resend failed"})
		}
		return
	}

	if descriptor != nil {
		c.JSON(http.StatusOK, gin.H{
			"security_validation": gin.H{
				"challenge_id": descriptor.ChallengeID,
				"expires_at":   descriptor.ExpiresAt,
				"email_hint":   descriptor.EmailHint,
			},
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "If the challenge is still open, a new code was sent"})
}

// RequestPasswordReset starts the reset flow. The answer is the same whether
// or not the employee code maps to an eligible account.
func (h *AuthHandlers) RequestPasswordReset(c *gin.Context) {
	var req PasswordResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cs is required"})
		return
	}

	err := h.resetSvc.Request(c.Request.Context(), req.EmployeeCode)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid employee code"})
		case errors.Is(err, domain.ErrDeliveryFailure):
			c.JSON(http.StatusBadGateway, gin.H{"error": "Could not deliver reset link"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Reset request failed"})
		}
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"message": "If the account exists, a reset link was sent"})
}

// ConfirmPasswordReset consumes a reset link and replaces the password.
func (h *AuthHandlers) ConfirmPasswordReset(c *gin.Context) {
	var req PasswordResetConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "token_id, token and senha are required"})
		return
	}

	err := h.resetSvc.Confirm(c.Request.Context(), req.TokenID, req.Token, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrWeakPassword):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Password does not meet the complexity policy"})
		case errors.Is(err, domain.ErrResetLinkInvalid):
			c.JSON(http.StatusGone, gin.H{"error": "Reset link expired or already used"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Password reset failed"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password updated"})
}

// Me returns the authenticated user's profile (requires authentication)
func (h *AuthHandlers) Me(c *gin.Context) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	user, err := h.authSvc.Profile(c.Request.Context(), claims.CompanyID, claims.UserID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		case errors.Is(err, domain.ErrUserInactive), errors.Is(err, domain.ErrCompanyInactive):
			c.JSON(http.StatusForbidden, gin.H{"error": "Account is inactive"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load profile"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": userPayload(user)})
}

// Permissions returns the authenticated user's full screen matrix
func (h *AuthHandlers) Permissions(c *gin.Context) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	matrix, err := h.permSvc.Matrix(c.Request.Context(), claims.CompanyID, claims.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load permissions"})
		return
	}

	screens := gin.H{}
	for screenID, perm := range matrix {
		screens[screenID] = gin.H{
			"leitura":  perm.Read,
			"criacao":  perm.Create,
			"edicao":   perm.Edit,
			"exclusao": perm.Delete,
		}
	}
	c.JSON(http.StatusOK, gin.H{"data": screens})
}

// Logout revokes the current session (requires authentication)
func (h *AuthHandlers) Logout(c *gin.Context) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	if err := h.authSvc.Logout(c.Request.Context(), claims); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Logout failed"})
		return
	}

	cookies.Clear(c.Writer, c.Request, h.cookieName)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// respondAuthenticated writes the cookie and the auth payload for a finished
// login.
func (h *AuthHandlers) respondAuthenticated(c *gin.Context, auth *domain.AuthResult) {
	cookies.Write(c.Writer, c.Request, h.cookieName, auth.Token, int(h.tokenTTL.Seconds()))
	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"token":      auth.Token,
			"token_type": "Bearer",
			"expires_in": auth.ExpiresIn,
			"user":       userPayload(auth.User),
		},
	})
}

func userPayload(user *domain.User) gin.H {
	return gin.H{
		"id":          user.ID,
		"company_id":  user.CompanyID,
		"nome":        user.Name,
		"cs":          user.EmployeeCode,
		"email":       user.Email,
		"cargo":       user.JobTitle,
		"coordenacao": user.Coordination,
		"equipe":      user.Team,
		"perfil":      user.ProfileName,
	}
}
