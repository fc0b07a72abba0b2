package middleware

import (
	"log"
	"net/http"
	"runtime/debug"

	"notesapp/utils"

	"github.com/gin-gonic/gin"
)

// RecoveryMiddleware turns a panic into the 500 error envelope.
func RecoveryMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Printf("[recovery] panic on %s %s: %v\n%s", c.Request.Method, c.Request.URL.Path, err, debug.Stack())
				utils.TrackError("http", "panic")
				if !c.Writer.Written() {
					utils.Fail(c, http.StatusInternalServerError, "Internal server error")
				}
				c.Abort()
			}
		}()
		c.Next()
	}
}
