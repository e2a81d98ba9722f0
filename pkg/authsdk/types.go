package authsdk

import "time"

// ============================================================================
// Identity
// ============================================================================

// RegisterRequest is the body of POST /api/v1/identity/register.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,max=128"`
}

// LoginRequest is the body of POST /api/v1/identity/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,max=128"`
}

// RefreshRequest is the body of POST /api/v1/identity/refresh. Token is the
// expired access token the refresh token was issued with.
type RefreshRequest struct {
	Token        string `json:"token" validate:"required"`
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// RevokeRequest is the body of POST /api/v1/identity/revoke.
type RevokeRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// AuthSuccessResponse is returned by register, login and refresh.
type AuthSuccessResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}

// AuthFailedResponse carries the reasons a request was refused.
type AuthFailedResponse struct {
	Errors []string `json:"errors"`
}

// ============================================================================
// Posts
// ============================================================================

type CreatePostRequest struct {
	Name string `json:"name" validate:"required,max=200"`
}

type UpdatePostRequest struct {
	Name string `json:"name" validate:"required,max=200"`
}

type PostResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ============================================================================
// Health
// ============================================================================

// HealthResponse represents the response structure for health check endpoints.
// Used by both /livez and /readyz endpoints (readyz includes additional Checks field).
type HealthResponse struct {
	// Status indicates the overall health status (e.g., "ok")
	Status string `json:"status"`

	// Uptime is the service uptime duration as a string (e.g., "1h23m45s")
	Uptime string `json:"uptime,omitempty"`

	// Version is the service version string
	Version string `json:"version,omitempty"`

	// Checks is only set by /readyz.
	Checks *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks represents the status of critical service dependencies.
type HealthChecks struct {
	// Database indicates the store connection status
	Database string `json:"database"`

	// Ledger indicates the refresh token ledger status
	Ledger string `json:"ledger"`

	// Signer indicates whether a signing key is loaded
	Signer string `json:"signer"`
}
