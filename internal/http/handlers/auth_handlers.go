package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/you/admingate/domain"
)

// AuthHandlers handles authentication HTTP requests. Handlers are thin:
// they bind input, extract the caller origin and bearer token, and map
// the state machine's sentinel errors to HTTP statuses.
type AuthHandlers struct {
	authSvc domain.AuthService
}

// NewAuthHandlers creates new auth handlers
func NewAuthHandlers(authSvc domain.AuthService) *AuthHandlers {
	return &AuthHandlers{authSvc: authSvc}
}

// LoginRequest represents the first login step request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// VerifyCodeRequest represents the second login step request
type VerifyCodeRequest struct {
	Code string `json:"code" binding:"required"`
}

// ResetEmailRequest represents an email reset request
type ResetEmailRequest struct {
	NewEmail string `json:"new_email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// ResetPasswordRequest represents a password reset request
type ResetPasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
}

// CreateAdminRequest represents the first-time setup request
type CreateAdminRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Name     string `json:"name,omitempty"`
}

// Login handles the first login step: password verification and code dispatch
func (h *AuthHandlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.authSvc.BeginLogin(c.Request.Context(), c.ClientIP(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRateLimited):
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many login attempts"})
		case errors.Is(err, domain.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		case errors.Is(err, domain.ErrNotificationFailed):
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to send verification code"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"message":            "Password verified. Verification code sent.",
			"intermediate_token": result.IntermediateToken,
			"email":              result.MaskedEmail,
			"expires_in":         result.ExpiresIn,
		},
	})
}

// VerifyCode handles the second login step: code verification and access issuance
func (h *AuthHandlers) VerifyCode(c *gin.Context) {
	var req VerifyCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.authSvc.VerifyCode(c.Request.Context(), c.ClientIP(), bearerToken(c), req.Code)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRateLimited):
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many verification attempts"})
		case errors.Is(err, domain.ErrTokenExpired):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token expired. Please login again"})
		case errors.Is(err, domain.ErrTokenInvalid),
			errors.Is(err, domain.ErrTokenMalformed),
			errors.Is(err, domain.ErrTokenWrongKind):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		case errors.Is(err, domain.ErrInvalidSession):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Session superseded. Please login again"})
		case errors.Is(err, domain.ErrCodeAlreadyUsed):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Code has already been used"})
		case errors.Is(err, domain.ErrCodeExpired):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Code has expired. Please request a new one"})
		case errors.Is(err, domain.ErrCodeMismatch):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid code"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Verification failed"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"message":      "Verification complete",
			"access_token": result.AccessToken,
			"token_type":   "Bearer",
			"expires_in":   result.ExpiresIn,
			"admin":        result.Profile,
		},
	})
}

// ResendCode handles code reissue for a pending login
func (h *AuthHandlers) ResendCode(c *gin.Context) {
	err := h.authSvc.ResendCode(c.Request.Context(), c.ClientIP(), bearerToken(c))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRateLimited):
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many resend requests"})
		case errors.Is(err, domain.ErrTokenExpired):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token expired. Please login again"})
		case errors.Is(err, domain.ErrTokenInvalid),
			errors.Is(err, domain.ErrTokenMalformed),
			errors.Is(err, domain.ErrTokenWrongKind):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		case errors.Is(err, domain.ErrInvalidSession):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Session superseded. Please login again"})
		case errors.Is(err, domain.ErrNotificationFailed):
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to send verification code"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Resend failed"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{"message": "New verification code sent"},
	})
}

// ResetEmail handles admin email changes (access token required)
func (h *AuthHandlers) ResetEmail(c *gin.Context) {
	var req ResetEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, err := h.authSvc.ResetEmail(c.Request.Context(), c.ClientIP(), bearerToken(c), req.NewEmail, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRateLimited):
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many reset requests"})
		case errors.Is(err, domain.ErrUnauthorized):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		case errors.Is(err, domain.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid password"})
		case errors.Is(err, domain.ErrEmailTaken):
			c.JSON(http.StatusConflict, gin.H{"error": "Email already in use"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Email reset failed"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{"message": "Email updated", "admin": profile},
	})
}

// ResetPassword handles admin password changes (access token required)
func (h *AuthHandlers) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.authSvc.ResetSecret(c.Request.Context(), c.ClientIP(), bearerToken(c), req.CurrentPassword, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRateLimited):
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many reset requests"})
		case errors.Is(err, domain.ErrUnauthorized):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		case errors.Is(err, domain.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Current password is incorrect"})
		case errors.Is(err, domain.ErrWeakSecret):
			c.JSON(http.StatusBadRequest, gin.H{"error": "New password does not meet the minimum length"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Password reset failed"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{"message": "Password updated"},
	})
}

// CreateAdmin handles first-time admin setup
func (h *AuthHandlers) CreateAdmin(c *gin.Context) {
	var req CreateAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, err := h.authSvc.CreateAdmin(c.Request.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		if errors.Is(err, domain.ErrAdminAlreadyExists) {
			c.JSON(http.StatusConflict, gin.H{"error": "Admin already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create admin"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"data": gin.H{"message": "Admin created", "admin": profile},
	})
}

// Me returns the authenticated admin's profile
func (h *AuthHandlers) Me(c *gin.Context) {
	profile, err := h.authSvc.Profile(c.Request.Context(), bearerToken(c))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"admin": profile}})
}

// bearerToken extracts the token from the Authorization header; empty
// when absent or not a Bearer scheme.
func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}
