package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	applog "autovitrine/internal/log"
	"autovitrine/internal/store"
	"autovitrine/internal/validate"
)

// MasterHandler is the operator surface: store provisioning and billing.
type MasterHandler struct {
	Registry *store.Registry
}

// feeValue tolerates both JSON numbers and pt-BR formatted strings for
// monetary fields.
func feeValue(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		if n <= 0 {
			return 0, false
		}
		return n, true
	case string:
		return validate.Price(n)
	default:
		return 0, false
	}
}

// GET /api/master/stores
func (h *MasterHandler) List(c *fiber.Ctx) error {
	stores, err := h.Registry.List()
	if err != nil {
		applog.Error(c, "master.stores.list.fail", err, nil)
		return jsonError(c, fiber.StatusInternalServerError, "Não foi possível carregar as lojas")
	}
	out := make([]any, 0, len(stores))
	for _, s := range stores {
		out = append(out, s.Public())
	}
	return c.JSON(fiber.Map{"stores": out})
}

type createStoreRequest struct {
	Name          string `json:"name"`
	Slug          string `json:"slug"`
	AdminUsername string `json:"adminUsername"`
	AdminPassword string `json:"adminPassword"`
	MonthlyFee    any    `json:"monthlyFee"`
	BillingNotes  string `json:"billingNotes"`
	PublicBaseURL string `json:"publicBaseUrl"`
}

// POST /api/master/stores
func (h *MasterHandler) Create(c *fiber.Ctx) error {
	var req createStoreRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "Corpo da requisição inválido")
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.AdminUsername) == "" {
		return jsonError(c, fiber.StatusBadRequest, "Nome e usuário admin são obrigatórios")
	}
	if !validate.Password(req.AdminPassword) {
		return jsonError(c, fiber.StatusBadRequest, "A senha do admin deve ter pelo menos 6 caracteres")
	}
	fee, okFee := feeValue(req.MonthlyFee)
	if !okFee {
		return jsonError(c, fiber.StatusBadRequest, "Mensalidade deve ser um valor positivo")
	}

	st, err := h.Registry.Create(store.CreateStoreInput{
		Name:          req.Name,
		Slug:          req.Slug,
		AdminUsername: req.AdminUsername,
		AdminPassword: req.AdminPassword,
		MonthlyFee:    fee,
		BillingNotes:  req.BillingNotes,
		PublicBaseURL: req.PublicBaseURL,
	})
	switch {
	case errors.Is(err, store.ErrSlugTaken):
		return jsonError(c, fiber.StatusConflict, "Já existe uma loja com esse slug")
	case errors.Is(err, store.ErrInvalidSlug):
		return jsonError(c, fiber.StatusBadRequest, "Slug inválido")
	case err != nil:
		applog.Error(c, "master.stores.create.fail", err, map[string]any{"name": req.Name})
		return jsonError(c, fiber.StatusInternalServerError, "Não foi possível criar a loja")
	}
	applog.Audit(c, "master.stores.create", map[string]any{"slug": st.Slug})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"store": st.Public()})
}

type billingRequest struct {
	MonthlyFee   any     `json:"monthlyFee"`
	BillingNotes *string `json:"billingNotes"`
}

// PUT /api/master/stores/:slug/billing
func (h *MasterHandler) UpdateBilling(c *fiber.Ctx) error {
	slug, okSlug := validate.Slug(c.Params("slug"))
	if !okSlug {
		return jsonError(c, fiber.StatusNotFound, "Loja não encontrada")
	}
	var req billingRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "Corpo da requisição inválido")
	}
	var fee *float64
	if req.MonthlyFee != nil {
		v, okFee := feeValue(req.MonthlyFee)
		if !okFee {
			return jsonError(c, fiber.StatusBadRequest, "Mensalidade deve ser um valor positivo")
		}
		fee = &v
	}
	st, err := h.Registry.UpdateBilling(slug, fee, req.BillingNotes)
	if errors.Is(err, store.ErrStoreNotFound) {
		return jsonError(c, fiber.StatusNotFound, "Loja não encontrada")
	}
	if err != nil {
		applog.Error(c, "master.stores.billing.fail", err, map[string]any{"slug": slug})
		return jsonError(c, fiber.StatusInternalServerError, "Não foi possível atualizar a cobrança")
	}
	applog.Audit(c, "master.stores.billing", map[string]any{"slug": slug})
	return c.JSON(fiber.Map{"store": st.Public()})
}

type baseURLRequest struct {
	PublicBaseURL string `json:"publicBaseUrl"`
}

// PUT /api/master/stores/:slug/public-base-url
func (h *MasterHandler) UpdatePublicBaseURL(c *fiber.Ctx) error {
	slug, okSlug := validate.Slug(c.Params("slug"))
	if !okSlug {
		return jsonError(c, fiber.StatusNotFound, "Loja não encontrada")
	}
	var req baseURLRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "Corpo da requisição inválido")
	}
	normalized := store.NormalizeBaseURL(req.PublicBaseURL)
	if strings.TrimSpace(req.PublicBaseURL) != "" && normalized == "" {
		return jsonError(c, fiber.StatusBadRequest, fmt.Sprintf("URL inválida: %s", req.PublicBaseURL))
	}
	st, err := h.Registry.UpdatePublicBaseURL(slug, normalized)
	if errors.Is(err, store.ErrStoreNotFound) {
		return jsonError(c, fiber.StatusNotFound, "Loja não encontrada")
	}
	if err != nil {
		applog.Error(c, "master.stores.baseurl.fail", err, map[string]any{"slug": slug})
		return jsonError(c, fiber.StatusInternalServerError, "Não foi possível atualizar a URL pública")
	}
	applog.Audit(c, "master.stores.baseurl", map[string]any{"slug": slug, "url": normalized})
	return c.JSON(fiber.Map{"store": st.Public()})
}
