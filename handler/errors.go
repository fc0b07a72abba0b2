package handler

import (
	"errors"
	"log"

	"notesapp/middleware"
	"notesapp/usecase"
	"notesapp/utils"

	"github.com/gin-gonic/gin"
)

// respondError maps a usecase error onto the error envelope. Anything not
// recognised is logged and reported as a generic 500.
func respondError(c *gin.Context, op string, err error) {
	var validationErr *usecase.ValidationError
	switch {
	case errors.As(err, &validationErr):
		utils.BadRequest(c, validationErr.Message)
	case errors.Is(err, usecase.ErrNoteNotFound):
		utils.NotFound(c, "Note not found")
	case errors.Is(err, usecase.ErrAccountNotFound):
		utils.NotFound(c, "User not found")
	case errors.Is(err, usecase.ErrDuplicateAccount):
		utils.Conflict(c, "User already exists")
	case errors.Is(err, usecase.ErrInvalidCredentials):
		utils.Unauthorized(c, "Invalid credentials")
	default:
		log.Printf("[%s] request_id=%s error: %v", op, c.GetString(middleware.RequestIDKey), err)
		utils.TrackError("http", op)
		utils.InternalError(c, "Internal server error")
	}
}

// currentUser reads the account id set by the auth middleware.
func currentUser(c *gin.Context) (string, bool) {
	userID := middleware.CurrentUserID(c)
	if userID == "" {
		utils.Unauthorized(c, "Unauthorized")
		return "", false
	}
	return userID, true
}
