package media

import (
	"context"

	appconfig "autovitrine/internal/config"
	"autovitrine/internal/domain"
)

// Manager routes saves to the configured backend and removals to whichever
// backend a reference was stored on, so records created before a provider
// switch still get cleaned up.
type Manager struct {
	local  *LocalStore
	remote *S3Store // nil when no provider is configured
}

// New picks the remote provider when its credentials are present, local disk
// otherwise.
func New(ctx context.Context, cfg appconfig.Config) (*Manager, error) {
	m := &Manager{local: NewLocalStore(cfg.UploadDir)}
	if cfg.S3Enabled() {
		remote, err := NewS3Store(ctx, cfg)
		if err != nil {
			return nil, err
		}
		m.remote = remote
	}
	return m, nil
}

func (m *Manager) Save(ctx context.Context, data []byte, filename, contentType, forceKind string) (domain.MediaRef, error) {
	if m.remote != nil {
		return m.remote.Save(ctx, data, filename, contentType, forceKind)
	}
	return m.local.Save(ctx, data, filename, contentType, forceKind)
}

func (m *Manager) Remove(ctx context.Context, ref domain.MediaRef) error {
	switch ref.Storage {
	case domain.StorageS3:
		if m.remote == nil {
			return nil
		}
		return m.remote.Remove(ctx, ref)
	case domain.StorageLocal:
		return m.local.Remove(ctx, ref)
	default:
		// external and none are not ours to delete
		return nil
	}
}
