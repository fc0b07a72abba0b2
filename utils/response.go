package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response is the error envelope every failed request answers with.
type Response struct {
	Status  int    `json:"-"`
	Error   bool   `json:"error"`
	Message string `json:"message,omitempty"`
}

// Success writes fields with "error": false merged in.
func Success(c *gin.Context, fields gin.H) {
	body := gin.H{"error": false}
	for k, v := range fields {
		body[k] = v
	}
	c.JSON(http.StatusOK, body)
}

// Fail writes the error envelope with the given status.
func Fail(c *gin.Context, status int, message string) {
	c.JSON(status, &Response{
		Status:  status,
		Error:   true,
		Message: message,
	})
}

// Error responses

func BadRequest(c *gin.Context, message string) {
	Fail(c, http.StatusBadRequest, message)
}

func Unauthorized(c *gin.Context, message string) {
	Fail(c, http.StatusUnauthorized, message)
}

func NotFound(c *gin.Context, message string) {
	Fail(c, http.StatusNotFound, message)
}

func Conflict(c *gin.Context, message string) {
	Fail(c, http.StatusConflict, message)
}

func InternalError(c *gin.Context, message string) {
	Fail(c, http.StatusInternalServerError, message)
}

func ServiceUnavailable(c *gin.Context, message string) {
	Fail(c, http.StatusServiceUnavailable, message)
}
