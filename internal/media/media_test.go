package media_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"autovitrine/internal/domain"
	"autovitrine/internal/media"
)

func TestLocalSaveWritesFileAndRef(t *testing.T) {
	dir := t.TempDir()
	s := media.NewLocalStore(dir)
	ref, err := s.Save(context.Background(), []byte("jpegdata"), "foto.JPG", "image/jpeg", "")
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if ref.Storage != domain.StorageLocal || ref.Kind != domain.MediaImage {
		t.Fatalf("wrong ref: %+v", ref)
	}
	name, ok := strings.CutPrefix(ref.URL, "/uploads/")
	if !ok {
		t.Fatalf("url outside public prefix: %q", ref.URL)
	}
	if !strings.HasSuffix(name, ".jpg") {
		t.Fatalf("extension not normalized: %q", name)
	}
	b, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("backing file missing: %v", err)
	}
	if string(b) != "jpegdata" {
		t.Fatalf("corrupted payload: %q", b)
	}
}

func TestLocalSaveSanitizesHostileExtension(t *testing.T) {
	s := media.NewLocalStore(t.TempDir())
	ref, err := s.Save(context.Background(), []byte("x"), "shell.php", "image/png", "")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(ref.URL, ".jpg") {
		t.Fatalf("disallowed extension must fall back to the default: %q", ref.URL)
	}
}

func TestLocalSaveUniqueNames(t *testing.T) {
	s := media.NewLocalStore(t.TempDir())
	seen := map[string]bool{}
	for i := 0; i < 10; i++ {
		ref, err := s.Save(context.Background(), []byte("x"), "a.png", "image/png", "")
		if err != nil {
			t.Fatal(err)
		}
		if seen[ref.URL] {
			t.Fatalf("duplicate stored name: %q", ref.URL)
		}
		seen[ref.URL] = true
	}
}

func TestKindInference(t *testing.T) {
	if media.KindFor("video/mp4", "") != domain.MediaVideo {
		t.Error("video MIME must infer video")
	}
	if media.KindFor("image/png", "") != domain.MediaImage {
		t.Error("image MIME must infer image")
	}
	if media.KindFor("application/octet-stream", "") != domain.MediaImage {
		t.Error("unknown MIME must default to image")
	}
	if media.KindFor("video/mp4", domain.MediaImage) != domain.MediaImage {
		t.Error("explicit force must win over the MIME type")
	}
}

func TestLocalSaveVideoKeepsVideoExtension(t *testing.T) {
	s := media.NewLocalStore(t.TempDir())
	ref, err := s.Save(context.Background(), []byte("x"), "clip.mp4", "video/mp4", "")
	if err != nil {
		t.Fatal(err)
	}
	if ref.Kind != domain.MediaVideo || !strings.HasSuffix(ref.URL, ".mp4") {
		t.Fatalf("video upload mishandled: %+v", ref)
	}
}

func TestLocalRemove(t *testing.T) {
	dir := t.TempDir()
	s := media.NewLocalStore(dir)
	ref, err := s.Save(context.Background(), []byte("x"), "a.png", "image/png", "")
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Remove(context.Background(), ref); err != nil {
		t.Fatalf("remove: %v", err)
	}
	name := strings.TrimPrefix(ref.URL, "/uploads/")
	if _, err := os.Stat(filepath.Join(dir, name)); !os.IsNotExist(err) {
		t.Fatal("backing file survived remove")
	}
	// Removing twice must stay silent.
	if err := s.Remove(context.Background(), ref); err != nil {
		t.Fatalf("second remove: %v", err)
	}
}

func TestLocalRemoveIgnoresForeignAndHostileRefs(t *testing.T) {
	dir := t.TempDir()
	outside := filepath.Join(dir, "secret.txt")
	if err := os.WriteFile(outside, []byte("keep"), 0o644); err != nil {
		t.Fatal(err)
	}
	s := media.NewLocalStore(filepath.Join(dir, "uploads"))

	refs := []domain.MediaRef{
		{URL: "https://cdn.example.com/x.jpg", Storage: domain.StorageExternal},
		{URL: "/uploads/../secret.txt", Storage: domain.StorageLocal},
		{URL: "/elsewhere/x.jpg", Storage: domain.StorageLocal},
	}
	for _, ref := range refs {
		if err := s.Remove(context.Background(), ref); err != nil {
			t.Fatalf("remove %+v: %v", ref, err)
		}
	}
	if _, err := os.Stat(outside); err != nil {
		t.Fatal("file outside the uploads dir was deleted")
	}
}
