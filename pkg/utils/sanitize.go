package utils

import (
	"regexp"
	"strings"
)

var (
	htmlTagPattern  = regexp.MustCompile(`<[^>]*>`)
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{3,30}$`)
	emailPattern    = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// StripHTML removes all HTML tags from a string
func StripHTML(input string) string {
	return htmlTagPattern.ReplaceAllString(input, "")
}

// ValidateUsername allows alphanumeric, underscores, hyphens. 3-30 characters
func ValidateUsername(username string) bool {
	return usernamePattern.MatchString(username)
}

// ValidateEmail is a loose shape check; delivery is the real proof.
func ValidateEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// NormalizeEmail lowercases and trims an address for use as a lookup key.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
