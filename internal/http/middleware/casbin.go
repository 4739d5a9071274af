package middleware

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/you/classhub/domain"
)

// CasbinMW authorizes requests by role, path and method
type CasbinMW struct {
	enforcer domain.CasbinEnforcer
}

// NewCasbinMW creates new casbin middleware wrapper
func NewCasbinMW(enforcer domain.CasbinEnforcer) *CasbinMW {
	return &CasbinMW{enforcer: enforcer}
}

// Enforce returns the casbin authorization middleware. It must run after
// AuthMiddleware.
func (mw *CasbinMW) Enforce() gin.HandlerFunc {
	return gin.HandlerFunc(func(c *gin.Context) {
		role, ok := c.Get(CtxRole)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "User role not found in token"})
			c.Abort()
			return
		}

		// Policies are stored per role with a "role_" prefix
		casbinRole := "role_" + role.(string)
		allowed, err := mw.enforcer.Enforce(casbinRole, c.Request.URL.Path, c.Request.Method)
		if err != nil {
			log.Printf("AUTHZ_CHECK_FAILED: role=%s path=%s err=%v", casbinRole, c.Request.URL.Path, err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Authorization check failed"})
			c.Abort()
			return
		}

		if !allowed {
			c.JSON(http.StatusForbidden, gin.H{"message": "Access denied"})
			c.Abort()
			return
		}

		c.Next()
	})
}
