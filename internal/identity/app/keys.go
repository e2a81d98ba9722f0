package app

import (
	"crypto/rand"
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/tweetbook/pkg/cryptox"
	"github.com/aussiebroadwan/tweetbook/pkg/jwtx"
)

// secretSize is the number of random bytes behind a generated HMAC secret.
const secretSize = 64

// LoadSigningKey provisions the HMAC secret and token lifetimes.
//
// Storage modes:
//   - "persistent": AUTH_JWT_SECRET when set, otherwise the secret file,
//     generated on first start. Tokens survive restarts.
//   - "ephemeral": a fresh secret on every start. All outstanding access
//     tokens become unverifiable when the service restarts.
func LoadSigningKey(cfg Config, logger *slog.Logger) (jwtx.SigningKey, error) {
	var secret []byte

	switch cfg.KeyStorageMode {
	case KeyStorageEphemeral:
		secret = make([]byte, secretSize)
		if _, err := rand.Read(secret); err != nil {
			return jwtx.SigningKey{}, fmt.Errorf("generate signing secret: %w", err)
		}
		logger.Warn("ephemeral signing key - tokens will not survive restarts")

	default:
		if cfg.JWTSecret != "" {
			secret = []byte(cfg.JWTSecret)
			logger.Info("signing key loaded from environment")
			break
		}

		var err error
		secret, err = cryptox.LoadOrGenerateSecret(cfg.SecretFile, secretSize)
		if err != nil {
			return jwtx.SigningKey{}, fmt.Errorf("load signing secret: %w", err)
		}
		logger.Info("signing key loaded", "file", cfg.SecretFile)
	}

	key, err := jwtx.NewSigningKey(secret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	if err != nil {
		return jwtx.SigningKey{}, err
	}
	return key, nil
}
