package handlers

import (
	"time"

	"autovitrine/internal/config"
	"autovitrine/internal/mail"
	"autovitrine/internal/media"
	"autovitrine/internal/services"
	"autovitrine/internal/session"
	"autovitrine/internal/store"
)

// Admin and master tokens live this long.
const sessionTTL = 12 * time.Hour

type Deps struct {
	Auth     *services.AuthService
	Layout   store.Layout
	Registry *store.Registry

	AuthHandler     *AuthHandler
	VehicleHandler  *VehicleHandler
	SellerHandler   *SellerHandler
	BannerHandler   *BannerHandler
	SettingsHandler *SettingsHandler
	PublicHandler   *PublicHandler
	MasterHandler   *MasterHandler
	ContactHandler  *ContactHandler
}

func NewDeps(cfg config.Config, layout store.Layout, mediaStore media.Store, mailer *mail.Mailer) *Deps {
	registry := store.NewRegistry(layout)
	auth := services.NewAuthService(cfg, registry,
		session.New(sessionTTL), session.New(sessionTTL))

	return &Deps{
		Auth:     auth,
		Layout:   layout,
		Registry: registry,

		AuthHandler:     &AuthHandler{Auth: auth},
		VehicleHandler:  &VehicleHandler{Layout: layout, Media: mediaStore},
		SellerHandler:   &SellerHandler{Layout: layout, Media: mediaStore},
		BannerHandler:   &BannerHandler{Layout: layout, Media: mediaStore},
		SettingsHandler: &SettingsHandler{Layout: layout, Media: mediaStore},
		PublicHandler:   &PublicHandler{Layout: layout, Registry: registry},
		MasterHandler:   &MasterHandler{Registry: registry},
		ContactHandler:  &ContactHandler{Mailer: mailer},
	}
}
