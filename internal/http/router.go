package httpx

import (
	"github.com/gin-gonic/gin"

	"github.com/SamuelSChaves/works-to-front-sub002/domain"
	"github.com/SamuelSChaves/works-to-front-sub002/internal/http/handlers"
	"github.com/SamuelSChaves/works-to-front-sub002/internal/http/middleware"
)

func BuildRouter(ah *handlers.AuthHandlers, authmw *middleware.AuthMW, permw *middleware.PermissionMW) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	auth := r.Group("/auth")
	auth.POST("/login", ah.Login)
	auth.POST("/security-code/confirm", ah.ConfirmSecurityCode)
	auth.POST("/security-code/resend", ah.ResendSecurityCode)
	auth.POST("/password-reset/request", ah.RequestPasswordReset)
	auth.POST("/password-reset/confirm", ah.ConfirmPasswordReset)

	v := r.Group("/auth").Use(authmw.WithAuth())
	v.GET("/me", ah.Me)
	v.GET("/permissions", ah.Permissions)
	v.POST("/logout", ah.Logout)

	// Screen-guarded demo route: proves the full chain (token, session,
	// profile, screen capability) on a plain resource.
	reports := r.Group("/reports").Use(authmw.WithAuth(), permw.RequireScreen("reports", domain.ActionRead))
	reports.GET("", func(c *gin.Context) {
		userID, _ := c.Get(middleware.CtxUserID)
		c.JSON(200, gin.H{"data": gin.H{"user_id": userID, "reports": []string{}}})
	})

	return r
}
