package domain

import (
	"strings"
	"time"
)

type User struct {
	ID           string
	Email        string // normalized, see NormalizeEmail
	PasswordHash string // argon2 encoded
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NormalizeEmail trims and lower-cases an address so lookups are
// case-insensitive and uniqueness holds regardless of how it was typed.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
