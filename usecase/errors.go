package usecase

import (
	"errors"

	"notesapp/repository"
	"notesapp/utils"
)

var (
	ErrNoteNotFound       = repository.ErrNoteNotFound
	ErrAccountNotFound    = repository.ErrAccountNotFound
	ErrDuplicateAccount   = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ValidationError reports a missing or empty required input. Fields names
// the offending request fields when they are known.
type ValidationError struct {
	Message string
	Fields  []string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func validationError(message string) error {
	return &ValidationError{Message: message}
}

func fieldsError(message string, err error) error {
	return &ValidationError{Message: message, Fields: utils.MissingFields(err)}
}
