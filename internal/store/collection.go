package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"autovitrine/internal/domain"
)

// ReadCollection loads one JSON array file. A missing file, invalid JSON, or
// a non-array payload reads as an empty collection: corrupted data must never
// take a storefront down, so corruption is deliberately silent here. Only
// real I/O failures (permissions, bad disk) are returned.
func ReadCollection[T any](path string) ([]T, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []T{}, nil
		}
		return nil, fmt.Errorf("read collection %s: %w", path, err)
	}
	var items []T
	if err := json.Unmarshal(b, &items); err != nil || items == nil {
		return []T{}, nil
	}
	return items, nil
}

// WriteCollection serializes and overwrites the whole collection file.
// Concurrent writers to the same file are last-writer-wins; the platform
// accepts that limitation for its single-process deployments.
func WriteCollection[T any](path string, items []T) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("prepare dir for %s: %w", path, err)
	}
	b, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal collection %s: %w", path, err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write collection %s: %w", path, err)
	}
	return nil
}

// ReadSettings loads the per-tenant settings singleton. The stored object is
// unmarshaled over a defaults copy, so absent keys keep their defaults and a
// missing or corrupt file reads as pure defaults.
func ReadSettings(path string) (domain.SiteSettings, error) {
	s := domain.DefaultSettings()
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return s, nil
		}
		return s, fmt.Errorf("read settings %s: %w", path, err)
	}
	if err := json.Unmarshal(b, &s); err != nil {
		return domain.DefaultSettings(), nil
	}
	return s, nil
}

func WriteSettings(path string, s domain.SiteSettings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("prepare dir for %s: %w", path, err)
	}
	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal settings %s: %w", path, err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write settings %s: %w", path, err)
	}
	return nil
}
