package jwtx

import (
	"errors"
	"fmt"
	"time"
)

// Default token TTL constants.
const (
	// DefaultAccessTokenTTL is the default lifetime for access tokens.
	DefaultAccessTokenTTL = 5 * time.Minute

	// DefaultRefreshTokenTTL is the default lifetime for refresh tokens,
	// roughly six months.
	DefaultRefreshTokenTTL = 4380 * time.Hour

	// MinSecretLength is the smallest HS256 secret accepted, in bytes.
	MinSecretLength = 32
)

var ErrWeakSecret = errors.New("jwtx: signing secret too short")

// SigningKey is the symmetric key material and expiry policy used to issue
// and verify tokens. It is loaded once at startup and injected wherever it
// is needed.
type SigningKey struct {
	Secret     []byte
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// NewSigningKey returns a SigningKey with the default TTLs applied where the
// given ones are zero.
func NewSigningKey(secret []byte, accessTTL, refreshTTL time.Duration) (SigningKey, error) {
	if accessTTL <= 0 {
		accessTTL = DefaultAccessTokenTTL
	}
	if refreshTTL <= 0 {
		refreshTTL = DefaultRefreshTokenTTL
	}

	k := SigningKey{
		Secret:     secret,
		AccessTTL:  accessTTL,
		RefreshTTL: refreshTTL,
	}
	if err := k.Validate(); err != nil {
		return SigningKey{}, err
	}
	return k, nil
}

// Validate checks the secret length and that both TTLs are positive.
func (k SigningKey) Validate() error {
	if len(k.Secret) < MinSecretLength {
		return fmt.Errorf("%w: got %d bytes, need at least %d", ErrWeakSecret, len(k.Secret), MinSecretLength)
	}
	if k.AccessTTL <= 0 {
		return errors.New("jwtx: access token ttl must be positive")
	}
	if k.RefreshTTL <= 0 {
		return errors.New("jwtx: refresh token ttl must be positive")
	}
	return nil
}
