package server

import (
	"log"
	"path/filepath"
	"strings"
	"time"

	"eventchat-be/internal/bootstrap"
	"eventchat-be/internal/config"
	"eventchat-be/internal/pkg/serverutils"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

type Server struct {
	app *fiber.App
	cfg *config.Config
}

func New(cfg *config.Config, container *bootstrap.Container) *Server {
	app := fiber.New(fiber.Config{
		AppName:   cfg.App.Name,
		BodyLimit: 10 * 1024 * 1024,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.App.CorsAllowedOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, DELETE, OPTIONS",
		AllowCredentials: true,
	}))

	app.Use(otelfiber.Middleware())
	app.Use(serverutils.ErrorHandlerMiddleware(container.Logger))

	app.Static("/uploads", cfg.App.UploadDir)

	registerRoutes(app, cfg, container)

	return &Server{app: app, cfg: cfg}
}

func registerRoutes(app *fiber.App, cfg *config.Config, container *bootstrap.Container) {
	api := app.Group("/api")

	api.Get("/health", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{"status": "ok", "timestamp": time.Now()})
	})

	container.AuthController.RegisterRoutes(api)
	container.ChatbotController.RegisterRoutes(api)
	container.AdminController.RegisterRoutes(api)
	container.UserController.RegisterRoutes(api)

	// Serve the SPA bundle for anything that is not an API route.
	app.Get("/*", func(ctx *fiber.Ctx) error {
		if strings.HasPrefix(ctx.Path(), "/api") {
			return fiber.ErrNotFound
		}
		return ctx.SendFile(filepath.Join(cfg.App.StaticDir, "index.html"))
	})
}

func (s *Server) GetApp() *fiber.App {
	return s.app
}

func (s *Server) Run() error {
	addr := ":" + s.cfg.App.Port
	log.Printf("Starting %s on %s", s.cfg.App.Name, addr)
	return s.app.Listen(addr)
}
