package middleware

import (
	"context"
	"net/http"
	"strings"

	"voyago/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// JWTAuthMiddleware validates the bearer token and stores the user ID in the
// request context. Identity issuance is external; this only verifies tokens.
func JWTAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := userIDFromRequest(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
				"code":  0,
			})
			return
		}
		c.Set("userID", userID)
		c.Next()
	}
}

// OptionalAuthMiddleware sets the user ID when a valid token is present but
// never rejects the request. Anonymous sessions stay session-scoped only.
func OptionalAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID, ok := userIDFromRequest(c); ok {
			c.Set("userID", userID)
		}
		c.Next()
	}
}

func userIDFromRequest(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return "", false
	}
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == "" {
		return "", false
	}

	computedHash := utils.HashToken(tokenString)

	// The auth cache short-circuits signature validation for recently seen tokens.
	ctx := context.Background()
	authCache := utils.GetAuthCacheClient()
	cacheKey := utils.AuthCachePrefix + computedHash

	if authCache != nil {
		cachedID, err := authCache.Get(ctx, cacheKey).Result()
		if err == nil && cachedID != "" {
			_ = authCache.Expire(ctx, cacheKey, utils.AuthCacheTTL).Err()
			return cachedID, true
		}
		if err != nil && err != redis.Nil {
			utils.GetLogger().Warn("auth cache lookup failed, validating token directly", zap.Error(err))
		}
	}

	userID, err := utils.ExtractIDFromToken(tokenString)
	if err != nil || userID == "" {
		return "", false
	}

	if authCache != nil {
		_ = authCache.Set(ctx, cacheKey, userID, utils.AuthCacheTTL).Err()
	}
	return userID, true
}

// UserID returns the authenticated user ID from the request context, if any.
func UserID(c *gin.Context) (string, bool) {
	val, exists := c.Get("userID")
	if !exists {
		return "", false
	}
	id, ok := val.(string)
	return id, ok && id != ""
}
