package main

import (
	"context"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"autovitrine/internal/config"
	"autovitrine/internal/http/handlers"
	applog "autovitrine/internal/log"
	"autovitrine/internal/mail"
	"autovitrine/internal/media"
	"autovitrine/internal/store"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			log.SetOutput(io.MultiWriter(os.Stdout, f))
		}
	}

	layout := store.NewLayout(cfg.DataDir)
	if _, err := layout.Ensure(store.Legacy()); err != nil {
		log.Fatal(err)
	}

	mediaStore, err := media.New(context.Background(), cfg)
	if err != nil {
		log.Fatal(err)
	}
	mailer := mail.New(cfg)

	deps := handlers.NewDeps(cfg, layout, mediaStore, mailer)

	app := fiber.New(fiber.Config{
		BodyLimit: 25 << 20, // multipart vehicle uploads
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Error(c, "server.error", err, nil)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Erro interno"})
		},
	})

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(cors.New())

	// ---------- API ----------
	handlers.Register(app, deps)

	// ---------- Static assets ----------
	uploadDir := cfg.UploadDir
	if !filepath.IsAbs(uploadDir) {
		if abs, err := filepath.Abs(uploadDir); err == nil {
			uploadDir = abs
		}
	}
	log.Printf("[static] /uploads -> %s", uploadDir)
	log.Printf("[static] /        -> %s", cfg.PublicDir)

	// Guarded uploads to avoid traversal
	app.Get("/uploads/*", func(c *fiber.Ctx) error {
		path := c.Params("*")
		rawLower := strings.ToLower(path)
		if strings.Contains(rawLower, "..") || strings.Contains(rawLower, "%2e") || strings.Contains(rawLower, "\x00") {
			applog.Security(c, "uploads.traversal.block", map[string]any{"path": path})
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Arquivo não encontrado"})
		}
		clean := filepath.Clean(path)
		if clean == "." || strings.Contains(clean, "..") || filepath.IsAbs(clean) {
			applog.Security(c, "uploads.traversal.block", map[string]any{"path": path})
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Arquivo não encontrado"})
		}
		return c.SendFile(filepath.Join(uploadDir, clean), true)
	})

	app.Static("/", cfg.PublicDir)

	// Front-end entry documents for the SPA routes
	index := filepath.Join(cfg.PublicDir, "index.html")
	adminPage := filepath.Join(cfg.PublicDir, "admin.html")
	masterPage := filepath.Join(cfg.PublicDir, "master.html")
	app.Get("/loja/:slug", func(c *fiber.Ctx) error { return c.SendFile(index) })
	app.Get("/admin", func(c *fiber.Ctx) error { return c.SendFile(adminPage) })
	app.Get("/admin/:slug", func(c *fiber.Ctx) error { return c.SendFile(adminPage) })
	app.Get("/master", func(c *fiber.Ctx) error { return c.SendFile(masterPage) })

	// Catch-all: JSON 404 for API-side prefixes, the storefront entry
	// document for everything else.
	app.Use(func(c *fiber.Ctx) error {
		p := c.Path()
		for _, prefix := range []string{"/api", "/contact", "/health", "/uploads", "/loja"} {
			if strings.HasPrefix(p, prefix) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Rota não encontrada"})
			}
		}
		return c.SendFile(index)
	})

	log.Fatal(app.Listen(":" + cfg.Port))
}
