package domain

// AuthenticationResult is what register, login and refresh hand back to the
// API layer. On success both tokens are set; on failure Errors holds the
// user-facing messages and Reason the matching sentinel for errors.Is.
type AuthenticationResult struct {
	Success      bool
	Token        string
	RefreshToken string
	Errors       []string
	Reason       error
}
