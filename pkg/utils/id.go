package utils

import (
	"log"
	"strings"

	"github.com/google/uuid"
)

// GenerateID generates a new UUID v4 string. Row ids in every table, generated
// specification tables included, are VARCHAR(36) and hold these values.
func GenerateID() string {
	id, err := uuid.NewRandom()
	if err != nil {
		log.Printf("Failed to generate UUID: %v", err)
		return ""
	}
	return id.String()
}

// TrimOrEmpty trims whitespace from an optional string
func TrimOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}
