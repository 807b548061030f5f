package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireRole aborts the request unless the authenticated caller holds one of
// the allowed roles. Must run after JWTAuthMiddleware.
func RequireRole(allowed ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("role")
		for _, a := range allowed {
			if role == a {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient role"})
	}
}
