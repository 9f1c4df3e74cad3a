package store

import (
	"fmt"
	"os"
	"path/filepath"

	"autovitrine/internal/domain"
)

// Scope names the dataset a request operates on: the legacy single-tenant
// files at the root of the data directory, or one store's files under
// stores/<slug>/. Threading the scope explicitly keeps tenant isolation out
// of handler branching.
type Scope struct {
	slug string
}

// Legacy is the original single-tenant dataset.
func Legacy() Scope { return Scope{} }

// ForStore scopes access to one tenant's files.
func ForStore(slug string) Scope { return Scope{slug: slug} }

func (s Scope) IsTenant() bool { return s.slug != "" }
func (s Scope) Slug() string   { return s.slug }

// Paths are the four collection files of one scope.
type Paths struct {
	Vehicles string
	Sellers  string
	Banners  string
	Settings string
}

// Layout resolves scopes to files under the data directory.
type Layout struct {
	Root string
}

func NewLayout(root string) Layout { return Layout{Root: root} }

func (l Layout) Dir(scope Scope) string {
	if scope.IsTenant() {
		return filepath.Join(l.Root, "stores", scope.Slug())
	}
	return l.Root
}

func (l Layout) Paths(scope Scope) Paths {
	dir := l.Dir(scope)
	return Paths{
		Vehicles: filepath.Join(dir, "vehicles.json"),
		Sellers:  filepath.Join(dir, "sellers.json"),
		Banners:  filepath.Join(dir, "banners.json"),
		Settings: filepath.Join(dir, "site-settings.json"),
	}
}

// RegistryPath is the master-scoped store registry file.
func (l Layout) RegistryPath() string {
	return filepath.Join(l.Root, "stores.json")
}

// Ensure creates the scope's directory and seeds its four files on first
// access: empty collections and default settings. Existing files are left
// untouched.
func (l Layout) Ensure(scope Scope) (Paths, error) {
	dir := l.Dir(scope)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Paths{}, fmt.Errorf("create data dir %s: %w", dir, err)
	}
	p := l.Paths(scope)
	for _, path := range []string{p.Vehicles, p.Sellers, p.Banners} {
		if _, err := os.Stat(path); err == nil {
			continue
		}
		if err := os.WriteFile(path, []byte("[]"), 0o644); err != nil {
			return Paths{}, fmt.Errorf("seed collection %s: %w", path, err)
		}
	}
	if _, err := os.Stat(p.Settings); err != nil {
		if err := WriteSettings(p.Settings, domain.DefaultSettings()); err != nil {
			return Paths{}, err
		}
	}
	return p, nil
}

// Exists reports whether a tenant has ever been provisioned.
func (l Layout) Exists(scope Scope) bool {
	_, err := os.Stat(l.Dir(scope))
	return err == nil
}
