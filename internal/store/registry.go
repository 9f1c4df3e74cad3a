package store

import (
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"autovitrine/internal/domain"
)

var (
	ErrSlugTaken     = errors.New("slug already in use")
	ErrInvalidSlug   = errors.New("invalid slug")
	ErrStoreNotFound = errors.New("store not found")
)

// Registry manages the master-scoped store list in stores.json and the
// provisioning of each store's data directory.
type Registry struct {
	layout Layout
	now    func() time.Time
}

func NewRegistry(layout Layout) *Registry {
	return &Registry{layout: layout, now: time.Now}
}

func (r *Registry) List() ([]domain.Store, error) {
	return ReadCollection[domain.Store](r.layout.RegistryPath())
}

func (r *Registry) BySlug(slug string) (domain.Store, error) {
	stores, err := r.List()
	if err != nil {
		return domain.Store{}, err
	}
	for _, s := range stores {
		if s.Slug == slug {
			return s, nil
		}
	}
	return domain.Store{}, ErrStoreNotFound
}

type CreateStoreInput struct {
	Name          string
	Slug          string
	AdminUsername string
	AdminPassword string
	MonthlyFee    float64
	BillingNotes  string
	PublicBaseURL string
}

// Create registers a new store and seeds its data directory. The slug is
// derived from the name when not supplied; collisions fail before anything
// is written.
func (r *Registry) Create(in CreateStoreInput) (domain.Store, error) {
	slug := Slugify(in.Slug)
	if slug == "" {
		slug = Slugify(in.Name)
	}
	if slug == "" {
		return domain.Store{}, ErrInvalidSlug
	}

	stores, err := r.List()
	if err != nil {
		return domain.Store{}, err
	}
	for _, s := range stores {
		if s.Slug == slug {
			return domain.Store{}, ErrSlugTaken
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return domain.Store{}, err
	}

	st := domain.Store{
		ID:                uuid.NewString(),
		Name:              strings.TrimSpace(in.Name),
		Slug:              slug,
		AdminUsername:     strings.TrimSpace(in.AdminUsername),
		AdminPasswordHash: string(hash),
		MonthlyFee:        in.MonthlyFee,
		BillingNotes:      in.BillingNotes,
		PublicBaseURL:     NormalizeBaseURL(in.PublicBaseURL),
		CreatedAt:         r.now().UTC().Format(time.RFC3339),
	}

	if err := WriteCollection(r.layout.RegistryPath(), append([]domain.Store{st}, stores...)); err != nil {
		return domain.Store{}, err
	}
	if _, err := r.layout.Ensure(ForStore(slug)); err != nil {
		return domain.Store{}, err
	}
	return st, nil
}

func (r *Registry) update(slug string, mutate func(*domain.Store)) (domain.Store, error) {
	stores, err := r.List()
	if err != nil {
		return domain.Store{}, err
	}
	for i := range stores {
		if stores[i].Slug != slug {
			continue
		}
		mutate(&stores[i])
		if err := WriteCollection(r.layout.RegistryPath(), stores); err != nil {
			return domain.Store{}, err
		}
		return stores[i], nil
	}
	return domain.Store{}, ErrStoreNotFound
}

// UpdateBilling overlays the billing fields that were supplied.
func (r *Registry) UpdateBilling(slug string, monthlyFee *float64, billingNotes *string) (domain.Store, error) {
	return r.update(slug, func(s *domain.Store) {
		if monthlyFee != nil {
			s.MonthlyFee = *monthlyFee
		}
		if billingNotes != nil {
			s.BillingNotes = *billingNotes
		}
	})
}

func (r *Registry) UpdatePublicBaseURL(slug, baseURL string) (domain.Store, error) {
	return r.update(slug, func(s *domain.Store) {
		s.PublicBaseURL = baseURL
	})
}

// SetAdminPassword stores a new bcrypt hash for the store admin.
func (r *Registry) SetAdminPassword(slug, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	_, err = r.update(slug, func(s *domain.Store) {
		s.AdminPasswordHash = string(hash)
	})
	return err
}

// VerifyAdmin checks a store admin credential pair.
func (r *Registry) VerifyAdmin(slug, username, password string) (domain.Store, bool) {
	st, err := r.BySlug(slug)
	if err != nil {
		return domain.Store{}, false
	}
	if st.AdminUsername != username {
		return domain.Store{}, false
	}
	if bcrypt.CompareHashAndPassword([]byte(st.AdminPasswordHash), []byte(password)) != nil {
		return domain.Store{}, false
	}
	return st, true
}

// NormalizeBaseURL reduces a custom public base URL to scheme://host,
// assuming https when no scheme is given. Anything unparseable normalizes
// to empty.
func NormalizeBaseURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return ""
	}
	return u.Scheme + "://" + u.Host
}
