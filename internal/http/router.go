package httpx

import (
	"github.com/gin-gonic/gin"

	"github.com/you/admingate/domain"
	"github.com/you/admingate/internal/http/handlers"
	"github.com/you/admingate/internal/http/middleware"
)

func BuildRouter(ah *handlers.AuthHandlers, tokenSvc domain.TokenService) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	auth := r.Group("/auth")
	auth.POST("/login", ah.Login)
	auth.POST("/verify-otp", ah.VerifyCode)
	auth.POST("/resend-otp", ah.ResendCode)
	auth.POST("/create-admin", ah.CreateAdmin)

	protected := r.Group("/auth").Use(middleware.AccessTokenMiddleware(tokenSvc))
	protected.POST("/reset-email", ah.ResetEmail)
	protected.POST("/reset-password", ah.ResetPassword)
	protected.GET("/me", ah.Me)

	return r
}
