package server

import (
	"playreel/internal/models"
	"playreel/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateUploadURL issues a presigned PUT for a new clip object (protected)
func (s *Server) CreateUploadURL(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(string)

	var req struct {
		FileName    string `json:"fileName"`
		ContentType string `json:"contentType"`
		FileSize    int64  `json:"fileSize"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewInvalidBodyError("Invalid request body", nil))
	}

	details := map[string]any{}
	if req.FileName == "" {
		details["fileName"] = "is required"
	}
	if req.ContentType == "" {
		details["contentType"] = "is required"
	}
	if req.FileSize <= 0 {
		details["fileSize"] = "must be a positive integer"
	}
	if len(details) > 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewInvalidBodyError("Invalid upload request", details))
	}

	upload, err := s.uploadService.CreateUploadURL(ctx, service.CreateUploadURLInput{
		UserID:      userID,
		FileName:    req.FileName,
		ContentType: req.ContentType,
		FileSize:    req.FileSize,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return models.RespondWithData(c, fiber.StatusOK, upload)
}
