package cryptox

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// LoadOrGeneratePepper loads the pepper from file, generating and saving a
// new random one if the file does not exist yet.
func LoadOrGeneratePepper(file string) (string, error) {
	b, err := LoadOrGenerateSecret(file, keyLength)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// LoadOrGenerateSecret reads a base64url secret from file. When the file is
// missing, size random bytes are generated, written with 0600 permissions and
// returned. The returned value is the encoded text, which is what callers use
// as key material.
func LoadOrGenerateSecret(file string, size int) ([]byte, error) {
	if file == "" {
		return nil, errors.New("cryptox: secret file path is empty")
	}
	if size <= 0 {
		return nil, fmt.Errorf("cryptox: secret size must be positive, got %d", size)
	}

	file = filepath.Clean(file)
	if err := os.MkdirAll(filepath.Dir(file), 0750); err != nil {
		return nil, err
	}

	existing, err := os.ReadFile(file)
	switch {
	case err == nil:
		trimmed := strings.TrimSpace(string(existing))
		if trimmed == "" {
			return nil, fmt.Errorf("cryptox: secret file %s is empty", file)
		}
		return []byte(trimmed), nil
	case !errors.Is(err, fs.ErrNotExist):
		return nil, err
	}

	raw := make([]byte, size)
	if _, err := rand.Read(raw); err != nil {
		return nil, err
	}
	encoded := base64.RawURLEncoding.EncodeToString(raw)

	if err := os.WriteFile(file, []byte(encoded), 0600); err != nil {
		return nil, err
	}
	return []byte(encoded), nil
}
