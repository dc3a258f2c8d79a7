package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
)

const ClassCodeHeader = "X-Class-Code"

// ClassCodeMiddleware gates onboarding behind a shared class code. An empty
// code leaves onboarding open.
func ClassCodeMiddleware(code string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if code == "" {
			c.Next()
			return
		}
		clientCode := c.GetHeader(ClassCodeHeader)
		if subtle.ConstantTimeCompare([]byte(clientCode), []byte(code)) != 1 {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Invalid class code"})
			return
		}
		c.Next()
	}
}
