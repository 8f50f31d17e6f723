package storage

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// NewStorageName derives a collision-free on-disk name from an untrusted
// original filename. Only the extension of the original survives,
// lower-cased; an original without an extension yields a bare UUID.
func NewStorageName(originalName string) string {
	return uuid.NewString() + strings.ToLower(filepath.Ext(originalName))
}

// ValidateStorageName rejects names that could escape the storage root.
// Storage names double as URL path segments, so separators and dot-dot
// sequences are refused outright.
func ValidateStorageName(name string) error {
	if name == "" {
		return errors.New("storage: empty name")
	}
	if strings.Contains(name, "..") || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("storage: invalid name %q", name)
	}
	return nil
}
