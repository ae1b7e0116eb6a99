// middleware/auth.go
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/imdes/console/session"
)

// SessionRequired rejects requests arriving while the console holds no
// active session. Sign-in and sign-up are the only routes outside it.
func SessionRequired(sessionStore *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !sessionStore.IsAuthenticated() {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "authentication required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// CapabilityRequired enforces the role-derived permission for a route.
func CapabilityRequired(sessionStore *session.Store, capability session.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := sessionStore.User()
		if user == nil || !session.Can(user.Role, capability) {
			c.JSON(http.StatusForbidden, gin.H{"success": false, "error": "insufficient permissions"})
			c.Abort()
			return
		}
		c.Next()
	}
}
