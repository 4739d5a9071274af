package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/you/classhub/domain"
)

// Context keys set by AuthMiddleware
const (
	CtxUserID  = "user_id"
	CtxRole    = "user_role"
	CtxClassID = "class_id"
)

// AuthMiddleware creates authentication middleware. Tokens are stateless;
// a valid signature and expiry are all that is checked.
func AuthMiddleware(tokenSvc domain.TokenService) gin.HandlerFunc {
	return gin.HandlerFunc(func(c *gin.Context) {
		// Get Authorization header
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "No token"})
			c.Abort()
			return
		}

		// Check Bearer token format
		tokenParts := strings.SplitN(authHeader, " ", 2)
		if len(tokenParts) != 2 || !strings.EqualFold(tokenParts[0], "Bearer") {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid authorization header format"})
			c.Abort()
			return
		}

		claims, err := tokenSvc.ValidateAccessToken(strings.TrimSpace(tokenParts[1]))
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrTokenExpired):
				c.JSON(http.StatusUnauthorized, gin.H{"message": "Token expired"})
			default:
				c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid token"})
			}
			c.Abort()
			return
		}

		// user_id is kept as a string for Casbin compatibility
		c.Set(CtxUserID, strconv.FormatUint(uint64(claims.UserID), 10))
		c.Set(CtxRole, claims.Role)
		c.Set(CtxClassID, claims.ClassID)

		c.Next()
	})
}
