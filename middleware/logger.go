package middleware

import (
	"log"
	"time"

	"notesapp/utils"

	"github.com/gin-gonic/gin"
)

// RequestLogger writes one line per request with the parsed client.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		log.Printf("[http] %s %s %d %s request_id=%s client=%q",
			c.Request.Method,
			path,
			c.Writer.Status(),
			time.Since(start).Round(time.Microsecond),
			c.GetString(RequestIDKey),
			utils.DescribeClient(c.Request.UserAgent()),
		)
	}
}
