package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/taxfolio/backend/internal/config"
	"github.com/taxfolio/backend/internal/handlers"
	"github.com/taxfolio/backend/internal/middleware"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	healthHandler *handlers.HealthHandler,
	authHandler *handlers.AuthHandler,
	taxHandler *handlers.TaxHandler,
	documentHandler *handlers.DocumentHandler,
) {
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.Check)

	app.Post("/register", authHandler.Register)
	app.Post("/login", authHandler.Login)
	app.Get("/protected-route", middleware.JWTProtected(cfg.JWTSecret), authHandler.Protected)

	app.Post("/calculate-tax", taxHandler.Calculate)
	app.Post("/upload-document", documentHandler.Upload)
}
