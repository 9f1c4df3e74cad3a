package handlers

import (
	"context"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"autovitrine/internal/domain"
	applog "autovitrine/internal/log"
	"autovitrine/internal/media"
	"autovitrine/internal/store"
	"autovitrine/internal/validate"
)

type BannerHandler struct {
	Layout store.Layout
	Media  media.Store
}

func (h *BannerHandler) load(c *fiber.Ctx) (store.Paths, []domain.Banner, error) {
	paths, err := h.Layout.Ensure(scopeOf(c))
	if err != nil {
		return store.Paths{}, nil, err
	}
	banners, err := store.ReadCollection[domain.Banner](paths.Banners)
	return paths, banners, err
}

func (h *BannerHandler) removeImage(ctx context.Context, c *fiber.Ctx, ref *domain.MediaRef) {
	if ref == nil {
		return
	}
	if err := h.Media.Remove(ctx, *ref); err != nil {
		applog.Error(c, "banner.media.cleanup.fail", err, map[string]any{"url": ref.URL})
	}
}

// GET /api/admin/banners
func (h *BannerHandler) List(c *fiber.Ctx) error {
	_, banners, err := h.load(c)
	if err != nil {
		applog.Error(c, "banner.list.fail", err, nil)
		return jsonError(c, fiber.StatusInternalServerError, "Não foi possível carregar os banners")
	}
	return c.JSON(fiber.Map{"banners": banners})
}

// POST /api/admin/banners
func (h *BannerHandler) Create(c *fiber.Ctx) error {
	f := parseForm(c)
	title := f.value("title")
	if title == "" {
		return jsonError(c, fiber.StatusBadRequest, "Título é obrigatório")
	}
	order := 0
	if f.has("order") {
		n, err := strconv.Atoi(f.value("order"))
		if err != nil {
			return jsonError(c, fiber.StatusBadRequest, "Ordem inválida")
		}
		order = n
	}

	b := domain.Banner{
		ID:        uuid.NewString(),
		Title:     title,
		Subtitle:  f.value("subtitle"),
		CTAText:   f.value("ctaText"),
		CTALink:   f.value("ctaLink"),
		Order:     order,
		Active:    !f.has("active") || validate.Bool(f.value("active")),
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if files := f.files("image"); len(files) > 0 {
		ref, err := saveUpload(c.Context(), h.Media, files[0], domain.MediaImage)
		if err != nil {
			applog.Error(c, "banner.media.save.fail", err, nil)
			return jsonError(c, fiber.StatusInternalServerError, "Falha ao salvar a imagem")
		}
		b.Image = &ref
	}

	paths, banners, err := h.load(c)
	if err != nil {
		applog.Error(c, "banner.create.load.fail", err, nil)
		return jsonError(c, fiber.StatusInternalServerError, "Não foi possível salvar o banner")
	}
	if err := store.WriteCollection(paths.Banners, append([]domain.Banner{b}, banners...)); err != nil {
		applog.Error(c, "banner.create.write.fail", err, nil)
		return jsonError(c, fiber.StatusInternalServerError, "Não foi possível salvar o banner")
	}
	applog.Audit(c, "banner.create", map[string]any{"id": b.ID, "store": adminSession(c).StoreSlug})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"banner": b})
}

// PUT /api/admin/banners/:id
func (h *BannerHandler) Update(c *fiber.Ctx) error {
	id, okID := validate.ID(c.Params("id"))
	if !okID {
		return jsonError(c, fiber.StatusNotFound, "Banner não encontrado")
	}
	paths, banners, err := h.load(c)
	if err != nil {
		applog.Error(c, "banner.update.load.fail", err, nil)
		return jsonError(c, fiber.StatusInternalServerError, "Não foi possível carregar os banners")
	}
	idx := -1
	for i := range banners {
		if banners[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return jsonError(c, fiber.StatusNotFound, "Banner não encontrado")
	}

	f := parseForm(c)
	b := banners[idx]
	if f.has("title") {
		b.Title = f.value("title")
	}
	if f.has("subtitle") {
		b.Subtitle = f.value("subtitle")
	}
	if f.has("ctaText") {
		b.CTAText = f.value("ctaText")
	}
	if f.has("ctaLink") {
		b.CTALink = f.value("ctaLink")
	}
	if f.has("order") {
		n, err := strconv.Atoi(f.value("order"))
		if err != nil {
			return jsonError(c, fiber.StatusBadRequest, "Ordem inválida")
		}
		b.Order = n
	}
	if f.has("active") {
		b.Active = validate.Bool(f.value("active"))
	}
	if files := f.files("image"); len(files) > 0 {
		ref, err := saveUpload(c.Context(), h.Media, files[0], domain.MediaImage)
		if err != nil {
			applog.Error(c, "banner.media.save.fail", err, map[string]any{"id": id})
			return jsonError(c, fiber.StatusInternalServerError, "Falha ao salvar a imagem")
		}
		h.removeImage(c.Context(), c, b.Image)
		b.Image = &ref
	}
	b.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	banners[idx] = b

	if err := store.WriteCollection(paths.Banners, banners); err != nil {
		applog.Error(c, "banner.update.write.fail", err, map[string]any{"id": id})
		return jsonError(c, fiber.StatusInternalServerError, "Não foi possível salvar o banner")
	}
	applog.Audit(c, "banner.update", map[string]any{"id": id, "store": adminSession(c).StoreSlug})
	return c.JSON(fiber.Map{"banner": b})
}

// DELETE /api/admin/banners/:id
func (h *BannerHandler) Delete(c *fiber.Ctx) error {
	id, okID := validate.ID(c.Params("id"))
	if !okID {
		return jsonError(c, fiber.StatusNotFound, "Banner não encontrado")
	}
	paths, banners, err := h.load(c)
	if err != nil {
		applog.Error(c, "banner.delete.load.fail", err, nil)
		return jsonError(c, fiber.StatusInternalServerError, "Não foi possível carregar os banners")
	}
	idx := -1
	for i := range banners {
		if banners[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return jsonError(c, fiber.StatusNotFound, "Banner não encontrado")
	}
	removed := banners[idx]
	banners = append(banners[:idx], banners[idx+1:]...)
	if err := store.WriteCollection(paths.Banners, banners); err != nil {
		applog.Error(c, "banner.delete.write.fail", err, map[string]any{"id": id})
		return jsonError(c, fiber.StatusInternalServerError, "Não foi possível excluir o banner")
	}
	go h.removeImage(context.Background(), nil, removed.Image)
	applog.Audit(c, "banner.delete", map[string]any{"id": id, "store": adminSession(c).StoreSlug})
	return ok(c)
}
