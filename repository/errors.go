package repository

import "errors"

var (
	ErrNoteNotFound    = errors.New("note not found")
	ErrAccountNotFound = errors.New("account not found")
	ErrDuplicateEmail  = errors.New("email already registered")
)
