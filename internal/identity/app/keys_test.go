package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/tweetbook/pkg/slogx"
)

func TestLoadSigningKey_FromEnvironment(t *testing.T) {
	secret := strings.Repeat("s", 40)
	cfg := Config{
		KeyStorageMode:  KeyStoragePersistent,
		JWTSecret:       secret,
		SecretFile:      filepath.Join(t.TempDir(), "unused"),
		AccessTokenTTL:  time.Minute,
		RefreshTokenTTL: time.Hour,
	}

	key, err := LoadSigningKey(cfg, slogx.Discard())
	require.NoError(t, err)
	require.Equal(t, []byte(secret), key.Secret)
	require.Equal(t, time.Minute, key.AccessTTL)
	require.Equal(t, time.Hour, key.RefreshTTL)

	_, err = os.Stat(cfg.SecretFile)
	require.True(t, os.IsNotExist(err), "environment secret must not touch the file")
}

func TestLoadSigningKey_PersistentFileSurvivesRestart(t *testing.T) {
	cfg := Config{
		KeyStorageMode: KeyStoragePersistent,
		SecretFile:     filepath.Join(t.TempDir(), "keys", "jwt.secret"),
	}

	first, err := LoadSigningKey(cfg, slogx.Discard())
	require.NoError(t, err)
	require.FileExists(t, cfg.SecretFile)

	second, err := LoadSigningKey(cfg, slogx.Discard())
	require.NoError(t, err)
	require.Equal(t, first.Secret, second.Secret)
}

func TestLoadSigningKey_EphemeralIsFreshEachTime(t *testing.T) {
	cfg := Config{KeyStorageMode: KeyStorageEphemeral}

	a, err := LoadSigningKey(cfg, slogx.Discard())
	require.NoError(t, err)
	b, err := LoadSigningKey(cfg, slogx.Discard())
	require.NoError(t, err)

	require.Len(t, a.Secret, secretSize)
	require.NotEqual(t, a.Secret, b.Secret)
}
