package middleware

import (
	"net/http"

	"voyago/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SessionMiddleware resolves the wizard session from the X-Session-ID header.
// A fresh session ID is minted and echoed back when the client has none yet,
// so the first wizard request bootstraps its own session.
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.GetHeader(utils.SessionHeader)
		if sessionID == "" {
			sessionID = uuid.New().String()
		}
		c.Set("sessionID", sessionID)
		c.Header(utils.SessionHeader, sessionID)
		c.Next()
	}
}

// RequireSessionMiddleware rejects requests that carry no session header.
// Used on routes that read existing wizard state and make no sense without it.
func RequireSessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.GetHeader(utils.SessionHeader)
		if sessionID == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error": "Missing " + utils.SessionHeader + " header",
			})
			return
		}
		c.Set("sessionID", sessionID)
		c.Next()
	}
}

// SessionID returns the session identifier resolved by SessionMiddleware.
func SessionID(c *gin.Context) string {
	val, exists := c.Get("sessionID")
	if !exists {
		return ""
	}
	id, _ := val.(string)
	return id
}
