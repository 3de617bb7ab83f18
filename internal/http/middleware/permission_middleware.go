package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SamuelSChaves/works-to-front-sub002/domain"
)

// PermissionMW guards routes behind a per-screen capability check.
type PermissionMW struct {
	permSvc domain.PermissionService
}

// NewPermissionMiddleware creates a new permission middleware
func NewPermissionMiddleware(permSvc domain.PermissionService) *PermissionMW {
	return &PermissionMW{permSvc: permSvc}
}

// RequireScreen authorizes the authenticated user for one action on one
// screen. Must run after AuthMW.WithAuth.
func (m *PermissionMW) RequireScreen(screenID string, action domain.PermissionAction) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := ClaimsFrom(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		err := m.permSvc.Authorize(c.Request.Context(), claims.CompanyID, claims.UserID, screenID, action)
		if err != nil {
			if errors.Is(err, domain.ErrPermissionDenied) || errors.Is(err, domain.ErrUserNotFound) {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied"})
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Authorization check failed"})
			return
		}
		c.Next()
	}
}
