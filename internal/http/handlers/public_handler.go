package handlers

import (
	"github.com/gofiber/fiber/v2"

	"autovitrine/internal/domain"
	applog "autovitrine/internal/log"
	"autovitrine/internal/store"
	"autovitrine/internal/validate"
)

// PublicHandler serves the unauthenticated read-only mirrors: the legacy
// single-tenant endpoints under /api and the slug-scoped ones under
// /api/public/:slug.
type PublicHandler struct {
	Layout   store.Layout
	Registry *store.Registry
}

// scope resolves the request's dataset. A missing slug param means the
// legacy dataset; an unknown slug is a 404.
func (h *PublicHandler) scope(c *fiber.Ctx) (store.Scope, bool) {
	raw := c.Params("slug")
	if raw == "" {
		return store.Legacy(), true
	}
	slug, okSlug := validate.Slug(raw)
	if !okSlug {
		return store.Scope{}, false
	}
	if _, err := h.Registry.BySlug(slug); err != nil {
		return store.Scope{}, false
	}
	return store.ForStore(slug), true
}

// GET /api/vehicles and /api/public/:slug/vehicles
func (h *PublicHandler) Vehicles(c *fiber.Ctx) error {
	scope, okScope := h.scope(c)
	if !okScope {
		return jsonError(c, fiber.StatusNotFound, "Loja não encontrada")
	}
	paths, err := h.Layout.Ensure(scope)
	if err != nil {
		applog.Error(c, "public.vehicles.fail", err, nil)
		return jsonError(c, fiber.StatusInternalServerError, "Não foi possível carregar os veículos")
	}
	raw, err := store.ReadCollection[domain.Vehicle](paths.Vehicles)
	if err != nil {
		applog.Error(c, "public.vehicles.fail", err, nil)
		return jsonError(c, fiber.StatusInternalServerError, "Não foi possível carregar os veículos")
	}
	vehicles := make([]domain.Vehicle, 0, len(raw))
	for _, v := range raw {
		vehicles = append(vehicles, domain.MigrateLegacyMedia(v))
	}
	// Listings change from the admin panel; never let browsers cache them.
	c.Set(fiber.HeaderCacheControl, "no-store")
	return c.JSON(fiber.Map{"vehicles": vehicles})
}

// GET /api/sellers and /api/public/:slug/sellers
func (h *PublicHandler) Sellers(c *fiber.Ctx) error {
	scope, okScope := h.scope(c)
	if !okScope {
		return jsonError(c, fiber.StatusNotFound, "Loja não encontrada")
	}
	paths, err := h.Layout.Ensure(scope)
	if err != nil {
		applog.Error(c, "public.sellers.fail", err, nil)
		return jsonError(c, fiber.StatusInternalServerError, "Não foi possível carregar os vendedores")
	}
	sellers, err := store.ReadCollection[domain.Seller](paths.Sellers)
	if err != nil {
		applog.Error(c, "public.sellers.fail", err, nil)
		return jsonError(c, fiber.StatusInternalServerError, "Não foi possível carregar os vendedores")
	}
	return c.JSON(fiber.Map{"sellers": sellers})
}

// GET /api/banners and /api/public/:slug/banners
func (h *PublicHandler) Banners(c *fiber.Ctx) error {
	scope, okScope := h.scope(c)
	if !okScope {
		return jsonError(c, fiber.StatusNotFound, "Loja não encontrada")
	}
	paths, err := h.Layout.Ensure(scope)
	if err != nil {
		applog.Error(c, "public.banners.fail", err, nil)
		return jsonError(c, fiber.StatusInternalServerError, "Não foi possível carregar os banners")
	}
	banners, err := store.ReadCollection[domain.Banner](paths.Banners)
	if err != nil {
		applog.Error(c, "public.banners.fail", err, nil)
		return jsonError(c, fiber.StatusInternalServerError, "Não foi possível carregar os banners")
	}
	return c.JSON(fiber.Map{"banners": banners})
}

// GET /api/site-settings and /api/public/:slug/site-settings
func (h *PublicHandler) Settings(c *fiber.Ctx) error {
	scope, okScope := h.scope(c)
	if !okScope {
		return jsonError(c, fiber.StatusNotFound, "Loja não encontrada")
	}
	paths, err := h.Layout.Ensure(scope)
	if err != nil {
		applog.Error(c, "public.settings.fail", err, nil)
		return jsonError(c, fiber.StatusInternalServerError, "Não foi possível carregar as configurações")
	}
	settings, err := store.ReadSettings(paths.Settings)
	if err != nil {
		applog.Error(c, "public.settings.fail", err, nil)
		return jsonError(c, fiber.StatusInternalServerError, "Não foi possível carregar as configurações")
	}
	return c.JSON(fiber.Map{"settings": settings})
}
