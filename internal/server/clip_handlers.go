package server

import (
	"playreel/internal/models"
	"playreel/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// CreateClip registers an uploaded clip (protected)
func (s *Server) CreateClip(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(string)

	var req struct {
		SportSlug       string `json:"sportSlug"`
		StoragePath     string `json:"storagePath"`
		Caption         string `json:"caption"`
		Visibility      string `json:"visibility"`
		ThumbnailURL    string `json:"thumbnailUrl"`
		DurationSeconds *int   `json:"durationSeconds"`
		Width           *int   `json:"width"`
		Height          *int   `json:"height"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewInvalidBodyError("Invalid request body", nil))
	}

	clip, err := s.clipService.CreateClip(ctx, service.CreateClipInput{
		UserID:          userID,
		SportSlug:       req.SportSlug,
		StoragePath:     req.StoragePath,
		Caption:         req.Caption,
		Visibility:      req.Visibility,
		ThumbnailURL:    req.ThumbnailURL,
		DurationSeconds: req.DurationSeconds,
		Width:           req.Width,
		Height:          req.Height,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return models.RespondWithData(c, fiber.StatusCreated, clip)
}

// GetClips lists recent clips (public, optional auth)
func (s *Server) GetClips(c *fiber.Ctx) error {
	ctx := c.UserContext()
	viewerID := s.optionalUserID(c)

	userFilter := c.Query("user")
	switch {
	case userFilter == "me":
		if viewerID == "" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Authorization required for user=me"))
		}
		userFilter = viewerID
	case userFilter != "":
		if _, err := uuid.Parse(userFilter); err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewInvalidParamsError("Invalid user filter"))
		}
	}

	page := parsePagination(c, 20)
	clips, err := s.clipService.ListClips(ctx, service.ListClipsInput{
		SportSlug: c.Query("sportSlug"),
		UserID:    userFilter,
		ViewerID:  viewerID,
		Limit:     page.Limit,
		Offset:    page.Offset,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return models.RespondWithData(c, fiber.StatusOK, fiber.Map{"clips": clips})
}
