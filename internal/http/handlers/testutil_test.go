package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"autovitrine/internal/config"
	"autovitrine/internal/http/handlers"
	"autovitrine/internal/mail"
	"autovitrine/internal/media"
	"autovitrine/internal/store"
)

// testEnv wires the whole API against temp directories and the default
// fixed credentials.
type testEnv struct {
	App  *fiber.App
	Deps *handlers.Deps
	Cfg  config.Config
}

func newTestApp(t *testing.T) *testEnv {
	t.Helper()
	cfg := config.Config{
		DataDir:    t.TempDir(),
		UploadDir:  t.TempDir(),
		AdminUser:  "admin",
		AdminPass:  "admin123",
		MasterUser: "master",
		MasterPass: "master123",
	}
	layout := store.NewLayout(cfg.DataDir)
	if _, err := layout.Ensure(store.Legacy()); err != nil {
		t.Fatalf("ensure legacy scope: %v", err)
	}
	deps := handlers.NewDeps(cfg, layout, media.NewLocalStore(cfg.UploadDir), mail.New(cfg))
	app := fiber.New()
	handlers.Register(app, deps)
	return &testEnv{App: app, Deps: deps, Cfg: cfg}
}

func (e *testEnv) doJSON(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := e.App.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

// doForm sends a multipart request with the given text fields and files
// (field name -> filename -> content).
func (e *testEnv) doForm(t *testing.T, method, path, token string, fields map[string]string, files map[string]map[string][]byte) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatal(err)
		}
	}
	for field, byName := range files {
		for name, data := range byName {
			fw, err := w.CreateFormFile(field, name)
			if err != nil {
				t.Fatal(err)
			}
			if _, err := fw.Write(data); err != nil {
				t.Fatal(err)
			}
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := e.App.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

func decode(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func wantStatus(t *testing.T, resp *http.Response, want int) {
	t.Helper()
	if resp.StatusCode != want {
		b, _ := io.ReadAll(resp.Body)
		t.Fatalf("status = %d, want %d; body: %s", resp.StatusCode, want, b)
	}
}

func (e *testEnv) loginAdmin(t *testing.T) string {
	t.Helper()
	return e.login(t, "/api/admin/login", "admin", "admin123", "")
}

func (e *testEnv) loginMaster(t *testing.T) string {
	t.Helper()
	return e.login(t, "/api/master/login", "master", "master123", "")
}

func (e *testEnv) login(t *testing.T, path, user, pass, slug string) string {
	t.Helper()
	resp := e.doJSON(t, http.MethodPost, path, "", fiber.Map{
		"username": user, "password": pass, "storeSlug": slug,
	})
	wantStatus(t, resp, http.StatusOK)
	var body struct {
		Token string `json:"token"`
	}
	decode(t, resp, &body)
	if body.Token == "" {
		t.Fatal("login returned an empty token")
	}
	return body.Token
}

// seedStore provisions a tenant through the registry, bypassing the master
// API.
func (e *testEnv) seedStore(t *testing.T, name, user, pass string) {
	t.Helper()
	if _, err := e.Deps.Registry.Create(store.CreateStoreInput{
		Name: name, AdminUsername: user, AdminPassword: pass,
	}); err != nil {
		t.Fatal(err)
	}
}
