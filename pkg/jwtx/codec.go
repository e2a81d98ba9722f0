package jwtx

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Algorithm is the only signing algorithm the codec produces or accepts.
var Algorithm = jwt.SigningMethodHS256.Alg()

// Codec issues and decodes HS256 access tokens with a single shared secret.
//
// Decode checks structure, algorithm and signature only. Expiry is left to
// the caller so that expired tokens can still be read during refresh; use
// Verify when an unexpired token is required.
type Codec struct {
	secret    []byte
	accessTTL time.Duration
	parser    *jwt.Parser
}

// NewCodec creates a codec bound to the given signing key.
func NewCodec(key SigningKey) (*Codec, error) {
	if err := key.Validate(); err != nil {
		return nil, err
	}

	secret := make([]byte, len(key.Secret))
	copy(secret, key.Secret)

	return &Codec{
		secret:    secret,
		accessTTL: key.AccessTTL,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{Algorithm}),
			jwt.WithoutClaimsValidation(),
		),
	}, nil
}

// Issue builds claims for the subject and signs them. The returned claims
// carry the generated jti.
func (c *Codec) Issue(subject, email string, now time.Time) (string, Claims, error) {
	claims := NewAccessClaims(subject, email, c.accessTTL, now)
	token, err := c.Encode(claims)
	if err != nil {
		return "", Claims{}, err
	}
	return token, claims, nil
}

// Encode signs the claims as an HS256 compact JWT.
func (c *Codec) Encode(claims Claims) (string, error) {
	if err := claims.validateShape(); err != nil {
		return "", err
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("jwtx: sign: %w", err)
	}
	return signed, nil
}

// Decode parses the token and verifies its signature, without enforcing
// exp or nbf.
func (c *Codec) Decode(tokenStr string) (Claims, error) {
	// Look at the header before touching the key so that "none" and
	// asymmetric algorithms fail closed with a clear error.
	unverified, _, err := c.parser.ParseUnverified(tokenStr, &Claims{})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenUnverifiable) {
			return Claims{}, ErrAlgMismatch
		}
		return Claims{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if unverified.Method == nil || unverified.Method.Alg() != Algorithm {
		return Claims{}, ErrAlgMismatch
	}

	var claims Claims
	token, err := c.parser.ParseWithClaims(tokenStr, &claims, c.keyFunc)
	if err != nil {
		switch {
		case errors.Is(err, ErrAlgMismatch):
			return Claims{}, ErrAlgMismatch
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return Claims{}, ErrInvalidSig
		case errors.Is(err, jwt.ErrTokenMalformed):
			return Claims{}, fmt.Errorf("%w: %v", ErrMalformed, err)
		default:
			return Claims{}, fmt.Errorf("jwtx: parse or verify: %w", err)
		}
	}
	if !token.Valid {
		return Claims{}, ErrInvalidSig
	}

	if err := claims.validateShape(); err != nil {
		return Claims{}, err
	}

	return claims, nil
}

// Verify decodes the token and also rejects it once expired.
func (c *Codec) Verify(tokenStr string) (Claims, error) {
	claims, err := c.Decode(tokenStr)
	if err != nil {
		return Claims{}, err
	}
	if err := claims.ValidateExpiry(); err != nil {
		return Claims{}, err
	}
	return claims, nil
}

func (c *Codec) keyFunc(t *jwt.Token) (any, error) {
	if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok || t.Method.Alg() != Algorithm {
		return nil, ErrAlgMismatch
	}
	return c.secret, nil
}
