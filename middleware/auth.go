package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"telecare/utils"

	"github.com/gin-gonic/gin"
)

// JWTAuthMiddleware validates the bearer token and sets the caller's
// user id and role on the request context.
func JWTAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		userID, role, err := utils.ExtractPrincipal(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		// Reject tokens revoked since issuance (logout, account disable).
		if revoked(c.Request.Context(), tokenString) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token revoked"})
			return
		}

		c.Set("userID", userID)
		c.Set("role", role)
		c.Next()
	}
}

func revoked(ctx context.Context, tokenString string) bool {
	client := utils.AuthCacheClient
	if client == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()
	n, err := client.Exists(ctx, utils.RevokedTokenPrefix+utils.HashToken(tokenString)).Result()
	if err != nil {
		// Cache unreachable; fail open rather than lock everyone out.
		return false
	}
	return n > 0
}
