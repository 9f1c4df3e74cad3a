package store_test

import (
	"os"
	"path/filepath"
	"testing"

	"autovitrine/internal/domain"
	"autovitrine/internal/store"
)

func TestEnsureSeedsScope(t *testing.T) {
	layout := store.NewLayout(t.TempDir())
	paths, err := layout.Ensure(store.ForStore("loja-a"))
	if err != nil {
		t.Fatalf("ensure: %v", err)
	}
	for _, p := range []string{paths.Vehicles, paths.Sellers, paths.Banners} {
		b, err := os.ReadFile(p)
		if err != nil {
			t.Fatalf("seeded collection missing: %v", err)
		}
		if string(b) != "[]" {
			t.Fatalf("expected empty array seed, got %s", b)
		}
	}
	s, err := store.ReadSettings(paths.Settings)
	if err != nil {
		t.Fatalf("seeded settings: %v", err)
	}
	if s.AboutTitle != domain.DefaultSettings().AboutTitle {
		t.Fatalf("settings not seeded with defaults: %+v", s)
	}
}

func TestEnsureKeepsExistingData(t *testing.T) {
	layout := store.NewLayout(t.TempDir())
	scope := store.ForStore("loja-a")
	paths, err := layout.Ensure(scope)
	if err != nil {
		t.Fatal(err)
	}
	if err := store.WriteCollection(paths.Vehicles, []domain.Vehicle{{ID: "v1", Model: "Gol"}}); err != nil {
		t.Fatal(err)
	}
	if _, err := layout.Ensure(scope); err != nil {
		t.Fatal(err)
	}
	vehicles, err := store.ReadCollection[domain.Vehicle](paths.Vehicles)
	if err != nil {
		t.Fatal(err)
	}
	if len(vehicles) != 1 || vehicles[0].ID != "v1" {
		t.Fatalf("ensure overwrote existing data: %+v", vehicles)
	}
}

func TestScopePathsAreIsolated(t *testing.T) {
	layout := store.NewLayout("/data")
	legacy := layout.Paths(store.Legacy())
	a := layout.Paths(store.ForStore("loja-a"))
	b := layout.Paths(store.ForStore("loja-b"))

	if legacy.Vehicles != filepath.Join("/data", "vehicles.json") {
		t.Fatalf("legacy path: %s", legacy.Vehicles)
	}
	if a.Vehicles != filepath.Join("/data", "stores", "loja-a", "vehicles.json") {
		t.Fatalf("tenant path: %s", a.Vehicles)
	}
	if a.Vehicles == b.Vehicles || a.Vehicles == legacy.Vehicles {
		t.Fatal("scopes must resolve to distinct files")
	}
}
