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

type VehicleHandler struct {
	Layout store.Layout
	Media  media.Store
}

func (h *VehicleHandler) load(c *fiber.Ctx) (store.Paths, []domain.Vehicle, error) {
	paths, err := h.Layout.Ensure(scopeOf(c))
	if err != nil {
		return store.Paths{}, nil, err
	}
	raw, err := store.ReadCollection[domain.Vehicle](paths.Vehicles)
	if err != nil {
		return store.Paths{}, nil, err
	}
	vehicles := make([]domain.Vehicle, 0, len(raw))
	for _, v := range raw {
		vehicles = append(vehicles, domain.MigrateLegacyMedia(v))
	}
	return paths, vehicles, nil
}

// saveVehicleMedia persists every attached file: photos force the image
// kind, videos force video, and the legacy single photo field infers from
// its MIME type.
func (h *VehicleHandler) saveVehicleMedia(c *fiber.Ctx, f *form) ([]domain.MediaRef, error) {
	var refs []domain.MediaRef
	for _, fh := range f.files("photos") {
		ref, err := saveUpload(c.Context(), h.Media, fh, domain.MediaImage)
		if err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	for _, fh := range f.files("videos") {
		ref, err := saveUpload(c.Context(), h.Media, fh, domain.MediaVideo)
		if err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	for _, fh := range f.files("photo") {
		ref, err := saveUpload(c.Context(), h.Media, fh, "")
		if err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, nil
}

// removeMedia is best-effort cleanup: failures are logged, never surfaced.
func (h *VehicleHandler) removeMedia(ctx context.Context, c *fiber.Ctx, refs []domain.MediaRef) {
	for _, ref := range refs {
		if err := h.Media.Remove(ctx, ref); err != nil {
			applog.Error(c, "vehicle.media.cleanup.fail", err, map[string]any{"url": ref.URL})
		}
	}
}

// GET /api/admin/vehicles
func (h *VehicleHandler) List(c *fiber.Ctx) error {
	_, vehicles, err := h.load(c)
	if err != nil {
		applog.Error(c, "vehicle.list.fail", err, nil)
		return jsonError(c, fiber.StatusInternalServerError, "Não foi possível carregar os veículos")
	}
	return c.JSON(fiber.Map{"vehicles": vehicles})
}

// POST /api/admin/vehicles
func (h *VehicleHandler) Create(c *fiber.Ctx) error {
	f := parseForm(c)

	model := f.value("model")
	if model == "" {
		return jsonError(c, fiber.StatusBadRequest, "Modelo é obrigatório")
	}
	year, okYear := validate.Year(f.value("year"))
	if !okYear {
		return jsonError(c, fiber.StatusBadRequest, "Ano inválido (1900–2100)")
	}
	price, okPrice := validate.Price(f.value("price"))
	if !okPrice {
		return jsonError(c, fiber.StatusBadRequest, "Preço inválido")
	}

	refs, err := h.saveVehicleMedia(c, f)
	if err != nil {
		applog.Error(c, "vehicle.media.save.fail", err, nil)
		return jsonError(c, fiber.StatusInternalServerError, "Falha ao salvar as mídias")
	}

	v := domain.Vehicle{
		ID:           uuid.NewString(),
		Model:        model,
		Year:         year,
		KM:           f.value("km"),
		Fuel:         f.value("fuel"),
		Transmission: f.value("transmission"),
		Price:        price,
		Status:       f.value("status"),
		Sold:         validate.Bool(f.value("sold")),
		Media:        refs,
		CreatedAt:    time.Now().UTC().Format(time.RFC3339),
	}
	v.Normalize()

	paths, vehicles, err := h.load(c)
	if err != nil {
		applog.Error(c, "vehicle.create.load.fail", err, nil)
		return jsonError(c, fiber.StatusInternalServerError, "Não foi possível salvar o veículo")
	}
	if err := store.WriteCollection(paths.Vehicles, append([]domain.Vehicle{v}, vehicles...)); err != nil {
		applog.Error(c, "vehicle.create.write.fail", err, nil)
		return jsonError(c, fiber.StatusInternalServerError, "Não foi possível salvar o veículo")
	}
	applog.Audit(c, "vehicle.create", map[string]any{"id": v.ID, "store": adminSession(c).StoreSlug})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"vehicle": v})
}

// PUT /api/admin/vehicles/:id
func (h *VehicleHandler) Update(c *fiber.Ctx) error {
	id, okID := validate.ID(c.Params("id"))
	if !okID {
		return jsonError(c, fiber.StatusNotFound, "Veículo não encontrado")
	}
	paths, vehicles, err := h.load(c)
	if err != nil {
		applog.Error(c, "vehicle.update.load.fail", err, nil)
		return jsonError(c, fiber.StatusInternalServerError, "Não foi possível carregar os veículos")
	}
	idx := -1
	for i := range vehicles {
		if vehicles[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return jsonError(c, fiber.StatusNotFound, "Veículo não encontrado")
	}

	f := parseForm(c)
	v := vehicles[idx]

	// Overlay only fields the request carries; an empty string is a valid
	// value, so presence is checked explicitly.
	if f.has("model") {
		v.Model = f.value("model")
	}
	if f.has("year") {
		year, okYear := validate.Year(f.value("year"))
		if !okYear {
			return jsonError(c, fiber.StatusBadRequest, "Ano inválido (1900–2100)")
		}
		v.Year = year
	}
	if f.has("price") {
		price, okPrice := validate.Price(f.value("price"))
		if !okPrice {
			return jsonError(c, fiber.StatusBadRequest, "Preço inválido")
		}
		v.Price = price
	}
	if f.has("km") {
		v.KM = f.value("km")
	}
	if f.has("fuel") {
		v.Fuel = f.value("fuel")
	}
	if f.has("transmission") {
		v.Transmission = f.value("transmission")
	}
	if f.has("status") {
		v.Status = f.value("status")
	}
	if f.has("sold") {
		v.Sold = validate.Bool(f.value("sold"))
	}

	// New files replace the media list wholesale.
	if f.hasFiles("photos", "videos", "photo") {
		old := v.Media
		refs, err := h.saveVehicleMedia(c, f)
		if err != nil {
			applog.Error(c, "vehicle.media.save.fail", err, map[string]any{"id": id})
			return jsonError(c, fiber.StatusInternalServerError, "Falha ao salvar as mídias")
		}
		h.removeMedia(c.Context(), c, old)
		v.Media = refs
	}

	v.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	v.Normalize()
	vehicles[idx] = v

	if err := store.WriteCollection(paths.Vehicles, vehicles); err != nil {
		applog.Error(c, "vehicle.update.write.fail", err, map[string]any{"id": id})
		return jsonError(c, fiber.StatusInternalServerError, "Não foi possível salvar o veículo")
	}
	applog.Audit(c, "vehicle.update", map[string]any{"id": id, "store": adminSession(c).StoreSlug})
	return c.JSON(fiber.Map{"vehicle": v})
}

// DELETE /api/admin/vehicles/:id
func (h *VehicleHandler) Delete(c *fiber.Ctx) error {
	id, okID := validate.ID(c.Params("id"))
	if !okID {
		return jsonError(c, fiber.StatusNotFound, "Veículo não encontrado")
	}
	paths, vehicles, err := h.load(c)
	if err != nil {
		applog.Error(c, "vehicle.delete.load.fail", err, nil)
		return jsonError(c, fiber.StatusInternalServerError, "Não foi possível carregar os veículos")
	}
	idx := -1
	for i := range vehicles {
		if vehicles[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return jsonError(c, fiber.StatusNotFound, "Veículo não encontrado")
	}
	removed := vehicles[idx]
	vehicles = append(vehicles[:idx], vehicles[idx+1:]...)

	if err := store.WriteCollection(paths.Vehicles, vehicles); err != nil {
		applog.Error(c, "vehicle.delete.write.fail", err, map[string]any{"id": id})
		return jsonError(c, fiber.StatusInternalServerError, "Não foi possível excluir o veículo")
	}

	// Asynchronous, best-effort media cleanup after the record is gone.
	// The fiber ctx is recycled once the handler returns, so the goroutine
	// logs without it.
	go h.removeMedia(context.Background(), nil, removed.Media)

	applog.Audit(c, "vehicle.delete", map[string]any{"id": id, "store": adminSession(c).StoreSlug})
	return ok(c)
}
