package domain

import "time"

// RefreshToken models one row of the refresh token ledger. The opaque value
// handed to the caller is never stored, only its fingerprint.
type RefreshToken struct {
	ID          string
	TokenHash   string // deterministic fingerprint (base64url SHA-256)
	UserID      string
	JwtID       string // jti of the access token issued alongside
	ExpiresAt   time.Time
	Used        bool
	Invalidated bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ExpiredAt reports whether the row is past its expiry at now.
func (t RefreshToken) ExpiredAt(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}
