package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	applog "autovitrine/internal/log"
	"autovitrine/internal/services"
	"autovitrine/internal/session"
	"autovitrine/internal/store"
)

const (
	localAdminSession  = "adminSession"
	localMasterSession = "masterSession"
)

func bearerToken(c *fiber.Ctx) string {
	h := c.Get(fiber.HeaderAuthorization)
	if tok, ok := strings.CutPrefix(h, "Bearer "); ok {
		return strings.TrimSpace(tok)
	}
	return ""
}

// RequireAdmin resolves the bearer token against the admin session registry
// and stashes the session for scoped handlers.
func RequireAdmin(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tok := bearerToken(c)
		if tok == "" {
			return jsonError(c, fiber.StatusUnauthorized, "Não autenticado")
		}
		sess, ok := auth.Admin.Authenticate(tok)
		if !ok {
			applog.Security(c, "access.denied.admin", nil)
			return jsonError(c, fiber.StatusUnauthorized, "Sessão inválida ou expirada")
		}
		c.Locals(localAdminSession, sess)
		return c.Next()
	}
}

// RequireMaster is RequireAdmin for the operator panel's registry.
func RequireMaster(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tok := bearerToken(c)
		if tok == "" {
			return jsonError(c, fiber.StatusUnauthorized, "Não autenticado")
		}
		sess, ok := auth.Master.Authenticate(tok)
		if !ok {
			applog.Security(c, "access.denied.master", nil)
			return jsonError(c, fiber.StatusUnauthorized, "Sessão inválida ou expirada")
		}
		c.Locals(localMasterSession, sess)
		return c.Next()
	}
}

func adminSession(c *fiber.Ctx) session.Session {
	sess, _ := c.Locals(localAdminSession).(session.Session)
	return sess
}

// scopeOf maps the authenticated admin session to the dataset it may touch:
// the bound store's files, or the legacy single-tenant files when unbound.
func scopeOf(c *fiber.Ctx) store.Scope {
	sess := adminSession(c)
	if sess.StoreSlug != "" {
		return store.ForStore(sess.StoreSlug)
	}
	return store.Legacy()
}
