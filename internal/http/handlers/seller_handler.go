package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"autovitrine/internal/domain"
	applog "autovitrine/internal/log"
	"autovitrine/internal/media"
	"autovitrine/internal/store"
	"autovitrine/internal/validate"
)

type SellerHandler struct {
	Layout store.Layout
	Media  media.Store
}

func (h *SellerHandler) load(c *fiber.Ctx) (store.Paths, []domain.Seller, error) {
	paths, err := h.Layout.Ensure(scopeOf(c))
	if err != nil {
		return store.Paths{}, nil, err
	}
	sellers, err := store.ReadCollection[domain.Seller](paths.Sellers)
	return paths, sellers, err
}

func (h *SellerHandler) removePhoto(ctx context.Context, c *fiber.Ctx, ref *domain.MediaRef) {
	if ref == nil {
		return
	}
	if err := h.Media.Remove(ctx, *ref); err != nil {
		applog.Error(c, "seller.media.cleanup.fail", err, map[string]any{"url": ref.URL})
	}
}

// GET /api/admin/sellers
func (h *SellerHandler) List(c *fiber.Ctx) error {
	_, sellers, err := h.load(c)
	if err != nil {
		applog.Error(c, "seller.list.fail", err, nil)
		return jsonError(c, fiber.StatusInternalServerError, "Não foi possível carregar os vendedores")
	}
	return c.JSON(fiber.Map{"sellers": sellers})
}

// POST /api/admin/sellers
func (h *SellerHandler) Create(c *fiber.Ctx) error {
	f := parseForm(c)
	name := f.value("name")
	if name == "" {
		return jsonError(c, fiber.StatusBadRequest, "Nome é obrigatório")
	}

	s := domain.Seller{
		ID:        uuid.NewString(),
		Name:      name,
		Role:      f.value("role"),
		Phone:     f.value("phone"),
		WhatsApp:  f.value("whatsapp"),
		Status:    f.value("status"),
		Bio:       f.value("bio"),
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if files := f.files("photo"); len(files) > 0 {
		ref, err := saveUpload(c.Context(), h.Media, files[0], "")
		if err != nil {
			applog.Error(c, "seller.media.save.fail", err, nil)
			return jsonError(c, fiber.StatusInternalServerError, "Falha ao salvar a foto")
		}
		s.Photo = &ref
	}

	paths, sellers, err := h.load(c)
	if err != nil {
		applog.Error(c, "seller.create.load.fail", err, nil)
		return jsonError(c, fiber.StatusInternalServerError, "Não foi possível salvar o vendedor")
	}
	if err := store.WriteCollection(paths.Sellers, append([]domain.Seller{s}, sellers...)); err != nil {
		applog.Error(c, "seller.create.write.fail", err, nil)
		return jsonError(c, fiber.StatusInternalServerError, "Não foi possível salvar o vendedor")
	}
	applog.Audit(c, "seller.create", map[string]any{"id": s.ID, "store": adminSession(c).StoreSlug})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"seller": s})
}

// PUT /api/admin/sellers/:id
func (h *SellerHandler) Update(c *fiber.Ctx) error {
	id, okID := validate.ID(c.Params("id"))
	if !okID {
		return jsonError(c, fiber.StatusNotFound, "Vendedor não encontrado")
	}
	paths, sellers, err := h.load(c)
	if err != nil {
		applog.Error(c, "seller.update.load.fail", err, nil)
		return jsonError(c, fiber.StatusInternalServerError, "Não foi possível carregar os vendedores")
	}
	idx := -1
	for i := range sellers {
		if sellers[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return jsonError(c, fiber.StatusNotFound, "Vendedor não encontrado")
	}

	f := parseForm(c)
	s := sellers[idx]
	if f.has("name") {
		s.Name = f.value("name")
	}
	if f.has("role") {
		s.Role = f.value("role")
	}
	if f.has("phone") {
		s.Phone = f.value("phone")
	}
	if f.has("whatsapp") {
		s.WhatsApp = f.value("whatsapp")
	}
	if f.has("status") {
		s.Status = f.value("status")
	}
	if f.has("bio") {
		s.Bio = f.value("bio")
	}
	if files := f.files("photo"); len(files) > 0 {
		ref, err := saveUpload(c.Context(), h.Media, files[0], "")
		if err != nil {
			applog.Error(c, "seller.media.save.fail", err, map[string]any{"id": id})
			return jsonError(c, fiber.StatusInternalServerError, "Falha ao salvar a foto")
		}
		h.removePhoto(c.Context(), c, s.Photo)
		s.Photo = &ref
	}
	s.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	sellers[idx] = s

	if err := store.WriteCollection(paths.Sellers, sellers); err != nil {
		applog.Error(c, "seller.update.write.fail", err, map[string]any{"id": id})
		return jsonError(c, fiber.StatusInternalServerError, "Não foi possível salvar o vendedor")
	}
	applog.Audit(c, "seller.update", map[string]any{"id": id, "store": adminSession(c).StoreSlug})
	return c.JSON(fiber.Map{"seller": s})
}

// DELETE /api/admin/sellers/:id
func (h *SellerHandler) Delete(c *fiber.Ctx) error {
	id, okID := validate.ID(c.Params("id"))
	if !okID {
		return jsonError(c, fiber.StatusNotFound, "Vendedor não encontrado")
	}
	paths, sellers, err := h.load(c)
	if err != nil {
		applog.Error(c, "seller.delete.load.fail", err, nil)
		return jsonError(c, fiber.StatusInternalServerError, "Não foi possível carregar os vendedores")
	}
	idx := -1
	for i := range sellers {
		if sellers[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return jsonError(c, fiber.StatusNotFound, "Vendedor não encontrado")
	}
	removed := sellers[idx]
	sellers = append(sellers[:idx], sellers[idx+1:]...)
	if err := store.WriteCollection(paths.Sellers, sellers); err != nil {
		applog.Error(c, "seller.delete.write.fail", err, map[string]any{"id": id})
		return jsonError(c, fiber.StatusInternalServerError, "Não foi possível excluir o vendedor")
	}
	go h.removePhoto(context.Background(), nil, removed.Photo)
	applog.Audit(c, "seller.delete", map[string]any{"id": id, "store": adminSession(c).StoreSlug})
	return ok(c)
}
