package domain_test

import (
	"testing"

	"autovitrine/internal/domain"
)

func TestMigrateLegacyMediaLiftsSingleImage(t *testing.T) {
	v := domain.MigrateLegacyMedia(domain.Vehicle{
		ID:    "v1",
		Image: "/uploads/old.jpg",
	})
	if len(v.Media) != 1 {
		t.Fatalf("legacy image not lifted: %+v", v.Media)
	}
	m := v.Media[0]
	if m.URL != "/uploads/old.jpg" || m.Storage != domain.StorageLocal || m.Kind != domain.MediaImage {
		t.Fatalf("wrong lifted ref: %+v", m)
	}
	if v.Image != "/uploads/old.jpg" || v.ImageStorage != domain.StorageLocal {
		t.Fatalf("legacy mirror fields out of sync: %+v", v)
	}
}

func TestMigrateLegacyMediaKeepsExplicitStorage(t *testing.T) {
	v := domain.MigrateLegacyMedia(domain.Vehicle{
		Image:           "https://cdn.example.com/x.jpg",
		ImageStorage:    domain.StorageS3,
		ImageProviderID: "uploads/x.jpg",
	})
	if v.Media[0].Storage != domain.StorageS3 || v.Media[0].ProviderID != "uploads/x.jpg" {
		t.Fatalf("explicit storage lost: %+v", v.Media[0])
	}
}

func TestMigrateLegacyMediaPreservesExistingList(t *testing.T) {
	in := domain.Vehicle{
		Media: []domain.MediaRef{
			{URL: "/uploads/a.mp4", Storage: domain.StorageLocal, Kind: domain.MediaVideo},
			{URL: "/uploads/b.jpg", Storage: domain.StorageLocal, Kind: domain.MediaImage},
		},
		Image: "/uploads/stale.jpg",
	}
	v := domain.MigrateLegacyMedia(in)
	if len(v.Media) != 2 {
		t.Fatalf("media list mutated: %+v", v.Media)
	}
	// The mirror must track the first image, not the stale legacy field.
	if v.Image != "/uploads/b.jpg" {
		t.Fatalf("mirror should point at first image: %q", v.Image)
	}
}

func TestNormalizeClearsMirrorWhenNoImages(t *testing.T) {
	v := domain.Vehicle{
		Media: []domain.MediaRef{{URL: "/uploads/a.mp4", Kind: domain.MediaVideo}},
		Image: "/uploads/gone.jpg",
	}
	v.Normalize()
	if v.Image != "" || v.ImageStorage != "" || v.ImageProviderID != "" {
		t.Fatalf("mirror fields not cleared: %+v", v)
	}
	if _, ok := v.FirstImage(); ok {
		t.Fatal("video-only vehicle must not report a first image")
	}
}
