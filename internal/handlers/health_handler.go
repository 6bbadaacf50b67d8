package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/taxfolio/backend/internal/database"
	"github.com/taxfolio/backend/internal/dto"
)

type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// Root is the liveness probe used by the frontend.
func (h *HealthHandler) Root(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"message": "Backend is running"})
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	dbStatus := "ok"
	if err := database.Ping(); err != nil {
		dbStatus = "unhealthy: " + err.Error()
	}

	return c.JSON(dto.HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		DB:        dbStatus,
	})
}
