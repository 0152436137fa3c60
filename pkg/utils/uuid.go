package utils

import (
	"github.com/google/uuid"
)

// NewID generates a new random identifier in its string form
func NewID() string {
	return uuid.New().String()
}

// IsID reports whether s is a well-formed identifier
func IsID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
