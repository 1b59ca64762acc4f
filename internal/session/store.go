package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Store persists the bearer token in a single file.
type Store struct {
	path string
}

// NewStore returns a store writing to path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the token file location.
func (s *Store) Path() string {
	return s.path
}

// Load reads the stored token. ErrNoToken is returned when the file is
// missing or empty.
func (s *Store) Load() (string, error) {
	if s.path == "" {
		return "", ErrNoToken
	}
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return "", ErrNoToken
	}
	if err != nil {
		return "", fmt.Errorf("read token file: %w", err)
	}
	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", ErrNoToken
	}
	return token, nil
}

// Save writes token with owner-only permissions.
func (s *Store) Save(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return ErrNoToken
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("create token dir: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(token+"\n"), 0600); err != nil {
		return fmt.Errorf("write token file: %w", err)
	}
	return nil
}

// Clear removes the stored token. Clearing an absent token is not an error.
func (s *Store) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove token file: %w", err)
	}
	return nil
}

// Resolve picks the configured token when set, otherwise the stored one.
// A missing token yields an anonymous session, not an error.
func Resolve(configured string, store *Store) (*Session, error) {
	if strings.TrimSpace(configured) != "" {
		return New(configured), nil
	}
	if store == nil {
		return Anonymous(), nil
	}
	token, err := store.Load()
	if errors.Is(err, ErrNoToken) {
		return Anonymous(), nil
	}
	if err != nil {
		return nil, err
	}
	return New(token), nil
}
