package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// CORS allows a single configured origin with credentials, matching the
// deployment model of one fixed frontend. An empty origin opens the
// surface for local development.
func CORS(origin string) gin.HandlerFunc {
	allowed := strings.TrimSpace(origin)
	return func(c *gin.Context) {
		if allowed == "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		} else if c.GetHeader("Origin") == allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", allowed)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			c.Writer.Header().Set("Vary", "Origin")
		}
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, HEAD, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Request-Id")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
