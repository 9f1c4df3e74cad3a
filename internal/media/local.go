package media

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"autovitrine/internal/domain"
)

// LocalStore writes uploads to a directory served at a public URL prefix
// (normally /uploads).
type LocalStore struct {
	Dir          string
	PublicPrefix string
}

func NewLocalStore(dir string) *LocalStore {
	return &LocalStore{Dir: dir, PublicPrefix: "/uploads"}
}

func (s *LocalStore) Save(_ context.Context, data []byte, filename, contentType, forceKind string) (domain.MediaRef, error) {
	kind := KindFor(contentType, forceKind)
	name := uniqueName(filename, kind)
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return domain.MediaRef{}, fmt.Errorf("create uploads dir: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.Dir, name), data, 0o644); err != nil {
		return domain.MediaRef{}, fmt.Errorf("write upload %s: %w", name, err)
	}
	return domain.MediaRef{
		URL:     s.PublicPrefix + "/" + name,
		Storage: domain.StorageLocal,
		Kind:    kind,
	}, nil
}

// Remove deletes the backing file when the reference is local and its URL
// points inside the uploads prefix. Other storage kinds are not ours to
// delete and no-op.
func (s *LocalStore) Remove(_ context.Context, ref domain.MediaRef) error {
	if ref.Storage != domain.StorageLocal {
		return nil
	}
	name, ok := strings.CutPrefix(ref.URL, s.PublicPrefix+"/")
	if !ok {
		return nil
	}
	clean := filepath.Clean(name)
	if clean == "." || strings.Contains(clean, "..") || filepath.IsAbs(clean) {
		return nil
	}
	if err := os.Remove(filepath.Join(s.Dir, clean)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove upload %s: %w", clean, err)
	}
	return nil
}
