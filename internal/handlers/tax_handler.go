package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/taxfolio/backend/internal/dto"
	"github.com/taxfolio/backend/internal/tax"
)

type TaxHandler struct{}

func NewTaxHandler() *TaxHandler {
	return &TaxHandler{}
}

func (h *TaxHandler) Calculate(c *fiber.Ctx) error {
	var req dto.TaxRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	owed, err := tax.Calculate(req.Income)
	if err != nil {
		if errors.Is(err, tax.ErrInvalidIncome) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	return c.JSON(dto.TaxResponse{Income: req.Income, Tax: owed})
}
