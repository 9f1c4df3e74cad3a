package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	applog "autovitrine/internal/log"
	"autovitrine/internal/services"
)

type AuthHandler struct {
	Auth *services.AuthService
}

type loginRequest struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	StoreSlug string `json:"storeSlug"`
}

// POST /api/admin/login
func (h *AuthHandler) AdminLogin(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "Corpo da requisição inválido")
	}
	sess, isStoreAdmin, err := h.Auth.AdminLogin(req.Username, req.Password, req.StoreSlug)
	if err != nil {
		applog.Security(c, "auth.admin.login.fail", map[string]any{"username": req.Username, "store": req.StoreSlug})
		return jsonError(c, fiber.StatusUnauthorized, "Usuário ou senha inválidos")
	}
	applog.Audit(c, "auth.admin.login", map[string]any{"username": req.Username, "store": sess.StoreSlug})
	return c.JSON(fiber.Map{
		"token":        sess.Token,
		"expiresAt":    sess.ExpiresAt.UTC().Format(time.RFC3339),
		"storeSlug":    sess.StoreSlug,
		"isStoreAdmin": isStoreAdmin,
	})
}

// POST /api/admin/logout
func (h *AuthHandler) AdminLogout(c *fiber.Ctx) error {
	h.Auth.Admin.Revoke(adminSession(c).Token)
	applog.Audit(c, "auth.admin.logout", nil)
	return ok(c)
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// PUT /api/admin/change-password
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	var req changePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "Corpo da requisição inválido")
	}
	sess := adminSession(c)
	err := h.Auth.ChangeStorePassword(sess, req.CurrentPassword, req.NewPassword)
	switch {
	case errors.Is(err, services.ErrNotStoreAdmin):
		return jsonError(c, fiber.StatusForbidden, "Apenas administradores de loja podem trocar a senha")
	case errors.Is(err, services.ErrWeakPassword):
		return jsonError(c, fiber.StatusBadRequest, "A nova senha deve ter pelo menos 6 caracteres")
	case errors.Is(err, services.ErrBadCreds):
		return jsonError(c, fiber.StatusUnauthorized, "Senha atual incorreta")
	case err != nil:
		applog.Error(c, "auth.password.change.fail", err, map[string]any{"store": sess.StoreSlug})
		return jsonError(c, fiber.StatusInternalServerError, "Não foi possível trocar a senha")
	}
	applog.Audit(c, "auth.password.change", map[string]any{"store": sess.StoreSlug})
	return ok(c)
}

// POST /api/master/login
func (h *AuthHandler) MasterLogin(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "Corpo da requisição inválido")
	}
	sess, err := h.Auth.MasterLogin(req.Username, req.Password)
	if err != nil {
		applog.Security(c, "auth.master.login.fail", map[string]any{"username": req.Username})
		return jsonError(c, fiber.StatusUnauthorized, "Usuário ou senha inválidos")
	}
	applog.Audit(c, "auth.master.login", map[string]any{"username": req.Username})
	return c.JSON(fiber.Map{
		"token":     sess.Token,
		"expiresAt": sess.ExpiresAt.UTC().Format(time.RFC3339),
	})
}

// POST /api/master/logout
func (h *AuthHandler) MasterLogout(c *fiber.Ctx) error {
	h.Auth.Master.Revoke(bearerToken(c))
	applog.Audit(c, "auth.master.logout", nil)
	return ok(c)
}
