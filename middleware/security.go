package middleware

import (
	"net/http"

	"notesapp/utils"

	"github.com/gin-gonic/gin"
)

// RequestSizeLimiter caps request bodies at maxSize bytes. Declared oversize
// bodies are refused up front; the rest fail when the handler reads past
// the limit.
func RequestSizeLimiter(maxSize int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxSize {
			utils.Fail(c, http.StatusRequestEntityTooLarge, "Request body too large")
			c.Abort()
			return
		}

		var w http.ResponseWriter = c.Writer
		c.Request.Body = http.MaxBytesReader(w, c.Request.Body, maxSize)

		c.Next()
	}
}
