package middleware

import (
	"context"
	"net/http"
	"strings"

	"wanderly/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

// JWTAuthUserMiddleware verifies the bearer token and puts the user
// ID into the request context. Tokens are issued by the external auth
// service; verified token hashes are cached to skip repeat parsing of
// hot tokens.
func JWTAuthUserMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background()

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
				"code":  "UNAUTHORIZED",
			})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
				"code":  "UNAUTHORIZED",
			})
			return
		}

		computedHash := utils.HashToken(tokenString)
		cacheKey := utils.AuthCachePrefix + computedHash

		authCache := utils.GetAuthCacheClient()
		if authCache != nil {
			cachedUserID, err := authCache.Get(ctx, cacheKey).Result()
			if err == nil && cachedUserID != "" {
				_ = authCache.Expire(ctx, cacheKey, utils.AuthCacheTTL).Err()
				c.Set("userID", cachedUserID)
				c.Next()
				return
			} else if err != nil && err != redis.Nil {
				utils.GetLogger().Sugar().Warnf("auth cache lookup failed: %v", err)
			}
		}

		userID, err := utils.ExtractUserIDFromToken(tokenString)
		if err != nil || userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
				"code":  "UNAUTHORIZED",
			})
			return
		}

		if authCache != nil {
			_ = authCache.Set(ctx, cacheKey, userID, utils.AuthCacheTTL).Err()
		}

		c.Set("userID", userID)
		c.Next()
	}
}

// UserIDFromContext extracts the authenticated user ID set by the
// middleware.
func UserIDFromContext(c *gin.Context) (string, bool) {
	val, ok := c.Get("userID")
	if !ok {
		return "", false
	}
	userID, ok := val.(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}
