package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// LocalStore keeps blobs as plain files under a single root directory.
type LocalStore struct {
	root string
}

func NewLocalStore(root string) *LocalStore {
	return &LocalStore{root: root}
}

func (s *LocalStore) EnsureReady() error {
	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return fmt.Errorf("failed to create upload directory %s: %w", s.root, err)
	}
	return nil
}

// Save writes to a temporary sibling and renames it into place, so a
// concurrent reader sees either the whole blob or nothing.
func (s *LocalStore) Save(name string, data []byte) (string, error) {
	if err := ValidateStorageName(name); err != nil {
		return "", err
	}

	root, err := filepath.Abs(s.root)
	if err != nil {
		return "", fmt.Errorf("failed to resolve upload directory: %w", err)
	}

	dst := filepath.Join(root, name)
	tmp := dst + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("failed to write blob %s: %w", name, err)
	}
	if err := os.Rename(tmp, dst); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("failed to finalize blob %s: %w", name, err)
	}

	return dst, nil
}

func (s *LocalStore) Read(name string) ([]byte, error) {
	if err := ValidateStorageName(name); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filepath.Join(s.root, name))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read blob %s: %w", name, err)
	}
	return data, nil
}
