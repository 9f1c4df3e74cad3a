package domain

// Store is one dealership tenant in the master registry. Its collections
// live under the data directory in stores/<slug>/, separate from this record.
type Store struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	Slug              string  `json:"slug"`
	AdminUsername     string  `json:"adminUsername"`
	AdminPasswordHash string  `json:"adminPasswordHash"`
	MonthlyFee        float64 `json:"monthlyFee"`
	BillingNotes      string  `json:"billingNotes,omitempty"`
	PublicBaseURL     string  `json:"publicBaseUrl,omitempty"`
	CreatedAt         string  `json:"createdAt"`
}

// PublicStore is the master-API view of a store, without the credential hash.
type PublicStore struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Slug          string  `json:"slug"`
	AdminUsername string  `json:"adminUsername"`
	MonthlyFee    float64 `json:"monthlyFee"`
	BillingNotes  string  `json:"billingNotes,omitempty"`
	PublicBaseURL string  `json:"publicBaseUrl,omitempty"`
	CreatedAt     string  `json:"createdAt"`
}

func (s Store) Public() PublicStore {
	return PublicStore{
		ID:            s.ID,
		Name:          s.Name,
		Slug:          s.Slug,
		AdminUsername: s.AdminUsername,
		MonthlyFee:    s.MonthlyFee,
		BillingNotes:  s.BillingNotes,
		PublicBaseURL: s.PublicBaseURL,
		CreatedAt:     s.CreatedAt,
	}
}
