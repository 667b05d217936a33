package middleware

import (
	"context"
	"net/http"
	"strings"

	"medivault/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

// JWTAuthMiddleware validates the bearer token and checks the session cache
// so revoked tokens stop working immediately. On success the user ID is set
// in the gin context under "userID".
func JWTAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}

		userID, err := utils.VerifyToken(tokenString)
		if err != nil || userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}

		// The cached hash is the source of truth for revocation.
		ctx := context.Background()
		cached, err := utils.GetAuthCacheClient().Get(ctx, "session:"+userID).Result()
		if err == redis.Nil || (err == nil && cached != utils.HashToken(tokenString)) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Session expired or revoked"})
			return
		}
		if err != nil && err != redis.Nil {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "Authorization unavailable"})
			return
		}

		c.Set("userID", userID)
		c.Next()
	}
}
