package service

import (
	"errors"
	"fmt"

	"github.com/aussiebroadwan/tweetbook/internal/identity/domain"
)

// Denial reasons. They are carried in domain.AuthenticationResult.Reason and
// never returned as the error value of an operation.
var (
	ErrDuplicateIdentity       = errors.New("duplicate_identity")
	ErrInvalidCredentials      = errors.New("invalid_credentials")
	ErrPasswordPolicy          = errors.New("password_policy")
	ErrInvalidAccessToken      = errors.New("invalid_access_token")
	ErrTokenNotExpired         = errors.New("token_not_expired")
	ErrUnknownRefreshToken     = errors.New("unknown_refresh_token")
	ErrRefreshTokenExpired     = errors.New("refresh_token_expired")
	ErrRefreshTokenInvalidated = errors.New("refresh_token_invalidated")
	ErrRefreshTokenAlreadyUsed = errors.New("refresh_token_already_used")
	ErrRefreshTokenMismatch    = errors.New("refresh_token_mismatch")
)

// ErrUnknownIdentity shares its message with ErrInvalidCredentials so a
// caller cannot tell a missing account from a wrong password.
var ErrUnknownIdentity = ErrInvalidCredentials

// ErrTransientStoreFailure wraps I/O and deadline failures from the stores.
// Callers may retry these; they are never a statement about the credentials.
var ErrTransientStoreFailure = errors.New("transient_store_failure")

// Post errors.
var (
	ErrPostNotFound    = errors.New("post_not_found")
	ErrNotOwner        = errors.New("not_owner")
	ErrInvalidPostName = errors.New("invalid_post_name")
	ErrUnknownUser     = errors.New("unknown_user")
)

var messages = map[error]string{
	ErrDuplicateIdentity:       "User with this email address already exists",
	ErrInvalidCredentials:      "User/password combination is wrong",
	ErrInvalidAccessToken:      "Invalid token",
	ErrTokenNotExpired:         "This token hasn't expired yet",
	ErrUnknownRefreshToken:     "This refresh token does not exist",
	ErrRefreshTokenExpired:     "This refresh token has expired",
	ErrRefreshTokenInvalidated: "This refresh token has been invalidated",
	ErrRefreshTokenAlreadyUsed: "This refresh token has been used",
	ErrRefreshTokenMismatch:    "This refresh token does not match this JWT",

	ErrPostNotFound:    "Post not found",
	ErrNotOwner:        "You do not own this post",
	ErrInvalidPostName: "Post name is required",
	ErrUnknownUser:     "User no longer exists",
}

// Message returns the user-facing message for a known service error, or a
// generic one otherwise.
func Message(err error) string {
	for reason, msg := range messages {
		if errors.Is(err, reason) {
			return msg
		}
	}
	return "Something went wrong"
}

func deny(reason error, msgs ...string) domain.AuthenticationResult {
	if len(msgs) == 0 {
		msgs = []string{Message(reason)}
	}
	return domain.AuthenticationResult{Success: false, Errors: msgs, Reason: reason}
}

func transient(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrTransientStoreFailure, op, err)
}
