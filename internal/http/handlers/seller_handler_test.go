package handlers_test

import (
	"net/http"
	"testing"

	"autovitrine/internal/domain"
)

func (e *testEnv) createSeller(t *testing.T, token string, fields map[string]string, files map[string]map[string][]byte) domain.Seller {
	t.Helper()
	resp := e.doForm(t, http.MethodPost, "/api/admin/sellers", token, fields, files)
	wantStatus(t, resp, http.StatusCreated)
	var body struct {
		Seller domain.Seller `json:"seller"`
	}
	decode(t, resp, &body)
	return body.Seller
}

func TestSellerCreateRequiresName(t *testing.T) {
	env := newTestApp(t)
	token := env.loginAdmin(t)
	resp := env.doForm(t, http.MethodPost, "/api/admin/sellers", token,
		map[string]string{"role": "Vendedor"}, nil)
	wantStatus(t, resp, http.StatusBadRequest)
}

func TestSellerCRUD(t *testing.T) {
	env := newTestApp(t)
	token := env.loginAdmin(t)

	s := env.createSeller(t, token, map[string]string{
		"name": "Maria", "role": "Gerente", "whatsapp": "11999990000",
	}, map[string]map[string][]byte{
		"photo": {"maria.jpg": []byte("img")},
	})
	if s.ID == "" || s.Photo == nil || s.Photo.Kind != domain.MediaImage {
		t.Fatalf("created seller wrong: %+v", s)
	}

	// Partial update keeps fields the request does not carry.
	resp := env.doForm(t, http.MethodPut, "/api/admin/sellers/"+s.ID, token,
		map[string]string{"role": "Diretora"}, nil)
	wantStatus(t, resp, http.StatusOK)
	var body struct {
		Seller domain.Seller `json:"seller"`
	}
	decode(t, resp, &body)
	if body.Seller.Role != "Diretora" || body.Seller.Name != "Maria" || body.Seller.Photo == nil {
		t.Fatalf("partial update wrong: %+v", body.Seller)
	}

	// A new photo replaces the stored one.
	resp = env.doForm(t, http.MethodPut, "/api/admin/sellers/"+s.ID, token, nil,
		map[string]map[string][]byte{
			"photo": {"nova.jpg": []byte("img2")},
		})
	wantStatus(t, resp, http.StatusOK)
	decode(t, resp, &body)
	if body.Seller.Photo == nil || body.Seller.Photo.URL == s.Photo.URL {
		t.Fatalf("photo not replaced: %+v", body.Seller.Photo)
	}

	resp = env.doJSON(t, http.MethodDelete, "/api/admin/sellers/"+s.ID, token, nil)
	wantStatus(t, resp, http.StatusOK)
	resp = env.doJSON(t, http.MethodGet, "/api/admin/sellers", token, nil)
	wantStatus(t, resp, http.StatusOK)
	var list struct {
		Sellers []domain.Seller `json:"sellers"`
	}
	decode(t, resp, &list)
	if len(list.Sellers) != 0 {
		t.Fatalf("seller survived delete: %+v", list.Sellers)
	}

	resp = env.doJSON(t, http.MethodDelete, "/api/admin/sellers/"+s.ID, token, nil)
	wantStatus(t, resp, http.StatusNotFound)
}
