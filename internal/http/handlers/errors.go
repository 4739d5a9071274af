package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/you/classhub/domain"
	"github.com/you/classhub/internal/http/middleware"
)

// Messages returned for mail failures on OTP requests
const (
	msgMailNotConfigured = "Email service not configured. Please try later."
	msgMailFailed        = "Unable to send OTP"
)

var validationErrors = []error{
	domain.ErrInvalidRequest,
	domain.ErrInvalidRole,
	domain.ErrWeakPassword,
}

// respondError translates a domain error into a {"message": ...} response.
// Anything unrecognised is logged under tag and answered with a generic 500.
func respondError(c *gin.Context, tag string, err error) {
	status, msg := http.StatusInternalServerError, "Server error"

	for _, v := range validationErrors {
		if errors.Is(err, v) {
			c.JSON(http.StatusBadRequest, gin.H{"message": capitalize(v.Error())})
			return
		}
	}

	switch {
	case errors.Is(err, domain.ErrUserAlreadyExists):
		status, msg = http.StatusBadRequest, "Email already registered"
	case errors.Is(err, domain.ErrInvalidCredentials):
		status, msg = http.StatusBadRequest, "Invalid credentials"
	case errors.Is(err, domain.ErrInvalidSession):
		status, msg = http.StatusBadRequest, "Invalid or expired session"
	case errors.Is(err, domain.ErrOTPExpired):
		status, msg = http.StatusBadRequest, "OTP expired"
	case errors.Is(err, domain.ErrOTPInvalid):
		status, msg = http.StatusBadRequest, "Invalid OTP"
	case errors.Is(err, domain.ErrOTPAttemptsExceeded):
		status, msg = http.StatusBadRequest, "Too many attempts. Please request a new OTP."
	case errors.Is(err, domain.ErrUserNotFound):
		status, msg = http.StatusNotFound, "User not found"
	case errors.Is(err, domain.ErrHomeworkNotFound):
		status, msg = http.StatusNotFound, "Homework not found"
	case errors.Is(err, domain.ErrNotificationNotFound):
		status, msg = http.StatusNotFound, "Notification not found"
	case errors.Is(err, domain.ErrForbidden):
		status, msg = http.StatusForbidden, "Only teachers can manage homework"
	case errors.Is(err, domain.ErrUnauthorized):
		status, msg = http.StatusUnauthorized, "Unauthorized"
	case errors.Is(err, domain.ErrNotificationUnavailable):
		msg = msgMailFailed
		if domain.IsMailConfigurationError(err) {
			msg = msgMailNotConfigured
		}
		log.Printf("%s: %v", tag, err)
	default:
		log.Printf("%s: %v", tag, err)
	}

	c.JSON(status, gin.H{"message": msg})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"message": msg})
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// parseID reads a positive numeric path parameter
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		badRequest(c, "Invalid "+name)
		return 0, false
	}
	return uint(id), true
}

// actorFrom builds the caller identity stored by the auth middleware
func actorFrom(c *gin.Context) (domain.Actor, bool) {
	raw := c.GetString(middleware.CtxUserID)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "User not authenticated"})
		return domain.Actor{}, false
	}
	return domain.Actor{UserID: uint(id), Role: c.GetString(middleware.CtxRole)}, true
}
