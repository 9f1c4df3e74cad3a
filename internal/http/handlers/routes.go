package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	applog "autovitrine/internal/log"
)

// Register mounts the API surface: public mirrors, the store-admin panel,
// the master panel, and the contact bridge. Static serving stays in main.
func Register(app *fiber.App, deps *Deps) {
	loginLimiter := func() fiber.Handler {
		return limiter.New(limiter.Config{
			Max:        20,
			Expiration: 10 * time.Minute,
			LimitReached: func(c *fiber.Ctx) error {
				applog.Security(c, "rate.login.hit", nil)
				return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "Muitas tentativas. Tente novamente mais tarde."})
			},
		})
	}

	app.Get("/health", deps.ContactHandler.Health)
	app.Post("/contact", deps.ContactHandler.Contact)

	api := app.Group("/api")

	// Public read-only mirrors: legacy single-tenant and slug-scoped.
	api.Get("/vehicles", deps.PublicHandler.Vehicles)
	api.Get("/sellers", deps.PublicHandler.Sellers)
	api.Get("/banners", deps.PublicHandler.Banners)
	api.Get("/site-settings", deps.PublicHandler.Settings)
	pub := api.Group("/public/:slug")
	pub.Get("/vehicles", deps.PublicHandler.Vehicles)
	pub.Get("/sellers", deps.PublicHandler.Sellers)
	pub.Get("/banners", deps.PublicHandler.Banners)
	pub.Get("/site-settings", deps.PublicHandler.Settings)

	// Store admin (login throttled; everything after Use requires a token).
	admin := api.Group("/admin")
	admin.Post("/login", loginLimiter(), deps.AuthHandler.AdminLogin)
	admin.Use(RequireAdmin(deps.Auth))
	admin.Post("/logout", deps.AuthHandler.AdminLogout)
	admin.Put("/change-password", deps.AuthHandler.ChangePassword)
	admin.Get("/vehicles", deps.VehicleHandler.List)
	admin.Post("/vehicles", deps.VehicleHandler.Create)
	admin.Put("/vehicles/:id", deps.VehicleHandler.Update)
	admin.Delete("/vehicles/:id", deps.VehicleHandler.Delete)
	admin.Get("/sellers", deps.SellerHandler.List)
	admin.Post("/sellers", deps.SellerHandler.Create)
	admin.Put("/sellers/:id", deps.SellerHandler.Update)
	admin.Delete("/sellers/:id", deps.SellerHandler.Delete)
	admin.Get("/banners", deps.BannerHandler.List)
	admin.Post("/banners", deps.BannerHandler.Create)
	admin.Put("/banners/:id", deps.BannerHandler.Update)
	admin.Delete("/banners/:id", deps.BannerHandler.Delete)
	admin.Get("/site-settings", deps.SettingsHandler.Get)
	admin.Put("/site-settings", deps.SettingsHandler.Update)

	// Master operator
	master := api.Group("/master")
	master.Post("/login", loginLimiter(), deps.AuthHandler.MasterLogin)
	master.Use(RequireMaster(deps.Auth))
	master.Post("/logout", deps.AuthHandler.MasterLogout)
	master.Get("/stores", deps.MasterHandler.List)
	master.Post("/stores", deps.MasterHandler.Create)
	master.Put("/stores/:slug/billing", deps.MasterHandler.UpdateBilling)
	master.Put("/stores/:slug/public-base-url", deps.MasterHandler.UpdatePublicBaseURL)
}
