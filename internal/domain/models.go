package domain

// Media storage kinds.
const (
	StorageLocal    = "local"
	StorageS3       = "s3"
	StorageExternal = "external"
	StorageNone     = "none"
)

// Media kinds.
const (
	MediaImage = "image"
	MediaVideo = "video"
)

// MediaRef describes one stored image or video.
type MediaRef struct {
	URL        string `json:"url"`
	Storage    string `json:"storage"` // local | s3 | external | none
	ProviderID string `json:"providerId,omitempty"`
	Kind       string `json:"kind"` // image | video
}

type Vehicle struct {
	ID           string     `json:"id"`
	Model        string     `json:"model"`
	Year         int        `json:"year"`
	KM           string     `json:"km"`
	Fuel         string     `json:"fuel"`
	Transmission string     `json:"transmission"`
	Price        float64    `json:"price"`
	Status       string     `json:"status"`
	Sold         bool       `json:"sold"`
	Media        []MediaRef `json:"media"`
	// Legacy single-image fields, kept in sync with the first image entry
	// of Media so old front-end builds keep rendering.
	Image           string `json:"image,omitempty"`
	ImageStorage    string `json:"imageStorage,omitempty"`
	ImageProviderID string `json:"imageProviderId,omitempty"`
	CreatedAt       string `json:"createdAt"`
	UpdatedAt       string `json:"updatedAt,omitempty"`
}

// FirstImage returns the first image-kind media entry, if any.
func (v *Vehicle) FirstImage() (MediaRef, bool) {
	for _, m := range v.Media {
		if m.Kind == MediaImage {
			return m, true
		}
	}
	return MediaRef{}, false
}

// Normalize derives the legacy single-image fields from the media list.
func (v *Vehicle) Normalize() {
	if img, ok := v.FirstImage(); ok {
		v.Image = img.URL
		v.ImageStorage = img.Storage
		v.ImageProviderID = img.ProviderID
		return
	}
	v.Image = ""
	v.ImageStorage = ""
	v.ImageProviderID = ""
}

// MigrateLegacyMedia lifts records written by older builds, which carried a
// single image and no media list, into the canonical media list. Pure:
// returns the migrated copy.
func MigrateLegacyMedia(v Vehicle) Vehicle {
	if len(v.Media) == 0 && v.Image != "" {
		storage := v.ImageStorage
		if storage == "" {
			storage = StorageLocal
		}
		v.Media = []MediaRef{{
			URL:        v.Image,
			Storage:    storage,
			ProviderID: v.ImageProviderID,
			Kind:       MediaImage,
		}}
	}
	v.Normalize()
	return v
}

type Seller struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Phone     string    `json:"phone"`
	WhatsApp  string    `json:"whatsapp"`
	Status    string    `json:"status"`
	Bio       string    `json:"bio"`
	Photo     *MediaRef `json:"photo,omitempty"`
	CreatedAt string    `json:"createdAt"`
	UpdatedAt string    `json:"updatedAt,omitempty"`
}

type Banner struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Subtitle  string    `json:"subtitle"`
	CTAText   string    `json:"ctaText"`
	CTALink   string    `json:"ctaLink"`
	Order     int       `json:"order"`
	Active    bool      `json:"active"`
	Image     *MediaRef `json:"image,omitempty"`
	CreatedAt string    `json:"createdAt"`
	UpdatedAt string    `json:"updatedAt,omitempty"`
}

// SiteSettings is a per-tenant singleton; defaults are merged under any
// stored override.
type SiteSettings struct {
	AboutTitle string    `json:"aboutTitle"`
	AboutText  string    `json:"aboutText"`
	Highlights []string  `json:"highlights"`
	Address    string    `json:"address"`
	Phone      string    `json:"phone"`
	WhatsApp   string    `json:"whatsapp"`
	Email      string    `json:"email"`
	BrandColor string    `json:"brandColor,omitempty"`
	HeroImage  *MediaRef `json:"heroImage,omitempty"`
}

// DefaultSettings is the payload seeded for new tenants and the base every
// stored settings object is unmarshaled over.
func DefaultSettings() SiteSettings {
	return SiteSettings{
		AboutTitle: "Sobre a loja",
		AboutText:  "Veículos selecionados com procedência e garantia.",
		Highlights: []string{
			"Carros revisados",
			"Financiamento facilitado",
			"Aceitamos seu usado na troca",
		},
	}
}

type ContactMessage struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}
