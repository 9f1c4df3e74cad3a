// Package media persists uploaded images and videos either on local disk or
// on an S3-compatible object store, and resolves each upload to a stable
// media reference (url, storage kind, provider id, media kind).
package media

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"autovitrine/internal/domain"
)

// Store persists one uploaded file and removes previously stored ones.
// Removal is best-effort at every call site: failures are logged by the
// caller and never abort the surrounding operation.
type Store interface {
	Save(ctx context.Context, data []byte, filename, contentType, forceKind string) (domain.MediaRef, error)
	Remove(ctx context.Context, ref domain.MediaRef) error
}

var allowedExts = map[string][]string{
	domain.MediaImage: {"jpg", "jpeg", "png", "webp", "gif"},
	domain.MediaVideo: {"mp4", "webm", "mov", "m4v", "ogv"},
}

// KindFor picks the media kind: an explicit force wins, otherwise the MIME
// type prefix decides, defaulting to image.
func KindFor(contentType, forceKind string) string {
	if forceKind != "" {
		return forceKind
	}
	if strings.HasPrefix(contentType, "video/") {
		return domain.MediaVideo
	}
	return domain.MediaImage
}

// safeExt sanitizes the uploaded extension against the per-kind allow-list,
// falling back to the first allowed extension.
func safeExt(filename, kind string) string {
	allowed, ok := allowedExts[kind]
	if !ok {
		allowed = allowedExts[domain.MediaImage]
	}
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	for _, a := range allowed {
		if ext == a {
			return ext
		}
	}
	return allowed[0]
}

// uniqueName builds a collision-safe stored name from the clock and a random
// suffix.
func uniqueName(filename, kind string) string {
	suffix := make([]byte, 4)
	_, _ = rand.Read(suffix)
	return fmt.Sprintf("%d-%s.%s", time.Now().UnixNano(), hex.EncodeToString(suffix), safeExt(filename, kind))
}
