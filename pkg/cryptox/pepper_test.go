package cryptox

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadOrGeneratePepper(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "pepper")

	first, err := LoadOrGeneratePepper(path)
	require.NoError(t, err)
	require.NotEmpty(t, first)

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0600), info.Mode().Perm())

	second, err := LoadOrGeneratePepper(path)
	require.NoError(t, err)
	require.Equal(t, first, second, "pepper should be stable across loads")
}

func TestLoadOrGenerateSecret(t *testing.T) {
	dir := t.TempDir()

	t.Run("generates requested entropy", func(t *testing.T) {
		secret, err := LoadOrGenerateSecret(filepath.Join(dir, "jwt"), 64)
		require.NoError(t, err)
		require.Len(t, secret, 86)
	})

	t.Run("reads existing file trimmed", func(t *testing.T) {
		path := filepath.Join(dir, "existing")
		require.NoError(t, os.WriteFile(path, []byte("  my-secret-value\n"), 0600))

		secret, err := LoadOrGenerateSecret(path, 64)
		require.NoError(t, err)
		require.Equal(t, "my-secret-value", string(secret))
	})

	t.Run("rejects empty file", func(t *testing.T) {
		path := filepath.Join(dir, "empty")
		require.NoError(t, os.WriteFile(path, nil, 0600))

		_, err := LoadOrGenerateSecret(path, 64)
		require.Error(t, err)
	})

	t.Run("rejects empty path", func(t *testing.T) {
		_, err := LoadOrGenerateSecret("", 64)
		require.Error(t, err)
	})
}
