package handlers

import (
	"github.com/gofiber/fiber/v2"

	"autovitrine/internal/domain"
	applog "autovitrine/internal/log"
	"autovitrine/internal/mail"
)

const serviceName = "autovitrine"

type ContactHandler struct {
	Mailer *mail.Mailer
}

// POST /contact
func (h *ContactHandler) Contact(c *fiber.Ctx) error {
	var msg domain.ContactMessage
	if err := c.BodyParser(&msg); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "Corpo da requisição inválido")
	}
	if msg.Name == "" || msg.Email == "" || msg.Message == "" {
		return jsonError(c, fiber.StatusBadRequest, "Campos obrigatórios ausentes")
	}

	provider, err := h.Mailer.SendContact(c.Context(), msg)
	if err != nil {
		applog.Error(c, "contact.send.fail", err, map[string]any{"provider": provider})
		return jsonError(c, fiber.StatusInternalServerError, "Falha ao enviar email")
	}
	if provider == mail.ProviderNone {
		applog.Info(c, "contact.received.unsent", map[string]any{"from": msg.Email})
		return c.JSON(fiber.Map{"ok": true, "info": "Email não configurado; mensagem recebida no backend apenas."})
	}
	applog.Info(c, "contact.sent", map[string]any{"provider": provider})
	return c.JSON(fiber.Map{"ok": true, "provider": provider})
}

// GET /health
func (h *ContactHandler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"ok": true, "service": serviceName})
}
