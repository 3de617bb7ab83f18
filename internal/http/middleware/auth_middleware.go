package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SamuelSChaves/works-to-front-sub002/domain"
	"github.com/SamuelSChaves/works-to-front-sub002/internal/http/cookies"
)

// Context keys set by the auth middleware.
const (
	CtxClaims    = "claims"
	CtxUserID    = "user_id"
	CtxCompanyID = "company_id"
	CtxSessionID = "session_id"
)

// AuthMW guards routes behind a verified bearer token and a live session.
type AuthMW struct {
	authSvc    domain.AuthService
	cookieName string
	tokenTTL   time.Duration
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(authSvc domain.AuthService, cookieName string, tokenTTL time.Duration) *AuthMW {
	return &AuthMW{authSvc: authSvc, cookieName: cookieName, tokenTTL: tokenTTL}
}

// WithAuth authenticates the request from the Authorization header or the
// session cookie. When the token is inside the sliding refresh window the
// replacement is written back as a cookie before the handler runs.
func (m *AuthMW) WithAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			if fromCookie, err := c.Cookie(m.cookieName); err == nil {
				token = fromCookie
			}
		}
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		claims, refreshed, err := m.authSvc.Authenticate(c.Request.Context(), token, c.ClientIP())
		if err != nil {
			cookies.Clear(c.Writer, c.Request, m.cookieName)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired session"})
			return
		}

		if refreshed != "" {
			cookies.Write(c.Writer, c.Request, m.cookieName, refreshed, int(m.tokenTTL.Seconds()))
		}

		c.Set(CtxClaims, claims)
		c.Set(CtxUserID, claims.UserID)
		c.Set(CtxCompanyID, claims.CompanyID)
		c.Set(CtxSessionID, claims.SessionID)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// ClaimsFrom retrieves the authenticated claims set by WithAuth.
func ClaimsFrom(c *gin.Context) (*domain.TokenClaims, bool) {
	v, ok := c.Get(CtxClaims)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*domain.TokenClaims)
	return claims, ok
}
