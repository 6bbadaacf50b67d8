package handlers

import (
	"log/slog"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/taxfolio/backend/internal/dto"
	"github.com/taxfolio/backend/internal/services"
)

type DocumentHandler struct {
	documentService *services.DocumentService
}

func NewDocumentHandler(documentService *services.DocumentService) *DocumentHandler {
	return &DocumentHandler{documentService: documentService}
}

// Upload handles POST /upload-document: user_id and document_type arrive as
// query or form fields, the file as multipart form data.
func (h *DocumentHandler) Upload(c *fiber.Ctx) error {
	userID := c.QueryInt("user_id")
	if userID == 0 {
		userID, _ = strconv.Atoi(c.FormValue("user_id"))
	}
	if userID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "user_id is required",
		})
	}

	documentType := c.Query("document_type")
	if documentType == "" {
		documentType = c.FormValue("document_type")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "File is required",
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to read uploaded file",
		})
	}
	defer file.Close()

	doc, err := h.documentService.Store(uint(userID), documentType, fileHeader.Filename, file)
	if err != nil {
		slog.Error("document upload failed", "user_id", userID, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to store document",
		})
	}

	return c.JSON(dto.DocumentResponse{
		ID:           doc.ID,
		FilePath:     doc.FilePath,
		DocumentType: doc.DocumentType,
	})
}
