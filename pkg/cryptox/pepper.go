package cryptox

import (
	"crypto/rand"
	"encoding/base64"
	"os"
	"path/filepath"
)

const pepperBytes = 32

// LoadOrGeneratePepper loads the password pepper from the given file, or
// generates a new one and persists it when the file does not exist yet.
// The value is returned to the caller for injection into the hasher; it
// is deliberately not held in package state.
func LoadOrGeneratePepper(path string) (string, error) {
	path = filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return "", err
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		buf := make([]byte, pepperBytes)
		if _, err := rand.Read(buf); err != nil {
			return "", err
		}
		pepper := base64.RawURLEncoding.EncodeToString(buf)

		if err := os.WriteFile(path, []byte(pepper), 0600); err != nil {
			return "", err
		}
		return pepper, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
