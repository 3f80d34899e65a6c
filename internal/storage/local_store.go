// ABOUTME: Key-value store over a data directory, one JSON document per key.
// ABOUTME: Writes are atomic so a crash never leaves a half-written document behind.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/google/renameio/v2"
)

// Keys persisted by contentai.
const (
	KeySavedContent      = "savedContentItems"
	KeyGenerationHistory = "contentGenerationHistory"
	KeySyncHistory       = "github-sync-history"
	KeyHasVisited        = "hasVisited"
)

// ErrNotFound is returned when a key has no stored document.
var ErrNotFound = errors.New("key not found")

// ErrCorrupt is returned when a stored document is not valid JSON.
var ErrCorrupt = errors.New("corrupt document")

var validKey = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// LocalStore persists values under a single directory.
type LocalStore struct {
	dir string
}

// NewLocalStore creates a store rooted at dir, creating the directory if needed.
func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create data dir: %w", err)
	}
	return &LocalStore{dir: dir}, nil
}

// Dir returns the root directory.
func (s *LocalStore) Dir() string {
	return s.dir
}

func (s *LocalStore) path(key string) (string, error) {
	if !validKey.MatchString(key) {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	return filepath.Join(s.dir, key+".json"), nil
}

// Has reports whether key has a stored document.
func (s *LocalStore) Has(key string) bool {
	path, err := s.path(key)
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

// LoadJSON decodes the document stored under key into v.
// Returns ErrNotFound when nothing is stored.
func (s *LocalStore) LoadJSON(key string, v any) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to read %s: %w", key, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w: %w", key, ErrCorrupt, err)
	}
	return nil
}

// SaveJSON replaces the document stored under key with v.
func (s *LocalStore) SaveJSON(key string, v any) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := renameio.WriteFile(path, append(data, '\n'), 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

// SetString stores a string under key.
func (s *LocalStore) SetString(key, value string) error {
	return s.SaveJSON(key, value)
}

// Remove deletes the document stored under key. Missing keys are not an error.
func (s *LocalStore) Remove(key string) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove %s: %w", key, err)
	}
	return nil
}

// Keys lists every key contentai persists.
var Keys = []string{KeySavedContent, KeyGenerationHistory, KeySyncHistory, KeyHasVisited}

// Reset removes every contentai document and returns the keys that existed.
func (s *LocalStore) Reset() ([]string, error) {
	var removed []string
	for _, key := range Keys {
		if !s.Has(key) {
			continue
		}
		if err := s.Remove(key); err != nil {
			return removed, err
		}
		removed = append(removed, key)
	}
	return removed, nil
}

// MarkVisited records the first-run marker and reports whether this was the first visit.
func (s *LocalStore) MarkVisited() (bool, error) {
	if s.Has(KeyHasVisited) {
		return false, nil
	}
	if err := s.SetString(KeyHasVisited, "true"); err != nil {
		return false, err
	}
	return true, nil
}
