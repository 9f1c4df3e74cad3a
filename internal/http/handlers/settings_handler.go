package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"autovitrine/internal/domain"
	applog "autovitrine/internal/log"
	"autovitrine/internal/media"
	"autovitrine/internal/store"
)

type SettingsHandler struct {
	Layout store.Layout
	Media  media.Store
}

// GET /api/admin/site-settings
func (h *SettingsHandler) Get(c *fiber.Ctx) error {
	paths, err := h.Layout.Ensure(scopeOf(c))
	if err != nil {
		applog.Error(c, "settings.load.fail", err, nil)
		return jsonError(c, fiber.StatusInternalServerError, "Não foi possível carregar as configurações")
	}
	settings, err := store.ReadSettings(paths.Settings)
	if err != nil {
		applog.Error(c, "settings.load.fail", err, nil)
		return jsonError(c, fiber.StatusInternalServerError, "Não foi possível carregar as configurações")
	}
	return c.JSON(fiber.Map{"settings": settings})
}

type settingsPatch struct {
	AboutTitle *string   `json:"aboutTitle"`
	AboutText  *string   `json:"aboutText"`
	Highlights *[]string `json:"highlights"`
	Address    *string   `json:"address"`
	Phone      *string   `json:"phone"`
	WhatsApp   *string   `json:"whatsapp"`
	Email      *string   `json:"email"`
	BrandColor *string   `json:"brandColor"`
}

// parseHighlights accepts repeated form values or one newline-separated
// block from a textarea.
func parseHighlights(values []string) []string {
	var out []string
	for _, v := range values {
		for _, line := range strings.Split(v, "\n") {
			if line = strings.TrimSpace(line); line != "" {
				out = append(out, line)
			}
		}
	}
	return out
}

// PUT /api/admin/site-settings — partial overlay; accepts JSON or multipart
// (the latter may carry a heroImage file that replaces the stored hero).
func (h *SettingsHandler) Update(c *fiber.Ctx) error {
	paths, err := h.Layout.Ensure(scopeOf(c))
	if err != nil {
		applog.Error(c, "settings.load.fail", err, nil)
		return jsonError(c, fiber.StatusInternalServerError, "Não foi possível carregar as configurações")
	}
	settings, err := store.ReadSettings(paths.Settings)
	if err != nil {
		applog.Error(c, "settings.load.fail", err, nil)
		return jsonError(c, fiber.StatusInternalServerError, "Não foi possível carregar as configurações")
	}

	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		f := parseForm(c)
		if f.has("aboutTitle") {
			settings.AboutTitle = f.value("aboutTitle")
		}
		if f.has("aboutText") {
			settings.AboutText = f.value("aboutText")
		}
		if f.has("highlights") {
			settings.Highlights = parseHighlights(f.values("highlights"))
		}
		if f.has("address") {
			settings.Address = f.value("address")
		}
		if f.has("phone") {
			settings.Phone = f.value("phone")
		}
		if f.has("whatsapp") {
			settings.WhatsApp = f.value("whatsapp")
		}
		if f.has("email") {
			settings.Email = f.value("email")
		}
		if f.has("brandColor") {
			settings.BrandColor = f.value("brandColor")
		}
		if files := f.files("heroImage"); len(files) > 0 {
			ref, err := saveUpload(c.Context(), h.Media, files[0], domain.MediaImage)
			if err != nil {
				applog.Error(c, "settings.media.save.fail", err, nil)
				return jsonError(c, fiber.StatusInternalServerError, "Falha ao salvar a imagem de capa")
			}
			if settings.HeroImage != nil {
				if rmErr := h.Media.Remove(c.Context(), *settings.HeroImage); rmErr != nil {
					applog.Error(c, "settings.media.cleanup.fail", rmErr, map[string]any{"url": settings.HeroImage.URL})
				}
			}
			settings.HeroImage = &ref
		}
	} else {
		var patch settingsPatch
		if err := c.BodyParser(&patch); err != nil {
			return jsonError(c, fiber.StatusBadRequest, "Corpo da requisição inválido")
		}
		if patch.AboutTitle != nil {
			settings.AboutTitle = *patch.AboutTitle
		}
		if patch.AboutText != nil {
			settings.AboutText = *patch.AboutText
		}
		if patch.Highlights != nil {
			settings.Highlights = *patch.Highlights
		}
		if patch.Address != nil {
			settings.Address = *patch.Address
		}
		if patch.Phone != nil {
			settings.Phone = *patch.Phone
		}
		if patch.WhatsApp != nil {
			settings.WhatsApp = *patch.WhatsApp
		}
		if patch.Email != nil {
			settings.Email = *patch.Email
		}
		if patch.BrandColor != nil {
			settings.BrandColor = *patch.BrandColor
		}
	}

	if err := store.WriteSettings(paths.Settings, settings); err != nil {
		applog.Error(c, "settings.write.fail", err, nil)
		return jsonError(c, fiber.StatusInternalServerError, "Não foi possível salvar as configurações")
	}
	applog.Audit(c, "settings.update", map[string]any{"store": adminSession(c).StoreSlug})
	return c.JSON(fiber.Map{"settings": settings})
}
