package apiclient

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotLoggedIn is returned when no saved session exists.
var ErrNotLoggedIn = errors.New("not logged in: run `vendora login` first")

const tokenFile = "token"

// TokenPath is where the CLI keeps its session token.
func TokenPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "vendora", tokenFile), nil
}

// SaveToken writes token to path, readable by the owner only.
func SaveToken(path, token string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}
	return os.WriteFile(path, []byte(token+"\n"), 0o600)
}

func LoadToken(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return "", ErrNotLoggedIn
	}
	if err != nil {
		return "", err
	}
	token := strings.TrimSpace(string(raw))
	if token == "" {
		return "", ErrNotLoggedIn
	}
	return token, nil
}
