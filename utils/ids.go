package utils

import (
	"github.com/google/uuid"
)

// NewID returns a random identifier for accounts and notes.
func NewID() string {
	return uuid.New().String()
}
