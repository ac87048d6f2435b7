package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CORS allows the register frontend to call the API from another origin.
// PATCH is in the method list for the ticket update endpoint, and
// Content-Disposition is exposed so the browser keeps the receipt PDF
// filename on download.
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Request-ID")
		c.Header("Access-Control-Expose-Headers", "X-Request-ID, Content-Disposition")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
