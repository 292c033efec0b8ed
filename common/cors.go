package common

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CORSMiddleware allows the SPA frontend to call the API from another
// origin during development. The allowed origin defaults to * because
// every admin endpoint is session-gated anyway.
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
