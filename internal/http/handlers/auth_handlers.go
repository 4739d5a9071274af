package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/you/classhub/domain"
)

// AuthHandlers handles registration, login and OTP requests
type AuthHandlers struct {
	authSvc domain.AuthService
}

// NewAuthHandlers creates new auth handlers
func NewAuthHandlers(authSvc domain.AuthService) *AuthHandlers {
	return &AuthHandlers{authSvc: authSvc}
}

// RegisterRequest represents registration request
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	ClassID  string `json:"classId"`
}

// LoginRequest represents login request
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// OTPRequest represents an OTP request
type OTPRequest struct {
	Email string `json:"email"`
}

// OTPVerifyRequest represents OTP verification request
type OTPVerifyRequest struct {
	Email     string `json:"email"`
	OTP       string `json:"otp"`
	SessionID string `json:"sessionId"`
}

// Register handles user registration
func (h *AuthHandlers) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	result, err := h.authSvc.Register(c.Request.Context(), domain.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
		ClassID:  req.ClassID,
	})
	if err != nil {
		respondError(c, "REGISTER_FAILED", err)
		return
	}

	c.JSON(http.StatusCreated, authResponse(result))
}

// Login handles password login
func (h *AuthHandlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, "LOGIN_FAILED", err)
		return
	}

	c.JSON(http.StatusOK, authResponse(result))
}

// RequestOTP issues an OTP session and mails the code
func (h *AuthHandlers) RequestOTP(c *gin.Context) {
	var req OTPRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" {
		badRequest(c, "Email is required")
		return
	}

	issue, err := h.authSvc.RequestOTP(c.Request.Context(), req.Email)
	if err != nil {
		respondError(c, "OTP_REQUEST_FAILED", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "OTP sent",
		"sessionId": issue.Handle,
		"expiresIn": issue.TTLSeconds,
	})
}

// VerifyOTP consumes an OTP session and returns a token
func (h *AuthHandlers) VerifyOTP(c *gin.Context) {
	var req OTPVerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	result, err := h.authSvc.VerifyOTP(c.Request.Context(), req.Email, req.OTP, req.SessionID)
	if err != nil {
		respondError(c, "OTP_VERIFY_FAILED", err)
		return
	}

	c.JSON(http.StatusOK, authResponse(result))
}

// Me returns the profile of the authenticated user
func (h *AuthHandlers) Me(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	user, err := h.authSvc.Profile(c.Request.Context(), actor.UserID)
	if err != nil {
		respondError(c, "PROFILE_FAILED", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": userView(user)})
}

func authResponse(result *domain.AuthResult) gin.H {
	return gin.H{
		"token":      result.AccessToken,
		"token_type": "Bearer",
		"expires_in": result.ExpiresIn,
		"user":       userView(result.User),
	}
}

func userView(u *domain.User) gin.H {
	return gin.H{
		"id":      u.ID,
		"name":    u.Name,
		"email":   u.Email,
		"role":    u.Role,
		"classId": u.ClassID,
	}
}
