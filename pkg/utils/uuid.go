package utils

import "github.com/google/uuid"

// GenerateID returns a new random record id.
func GenerateID() string {
	return uuid.New().String()
}
