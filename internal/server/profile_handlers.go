package server

import (
	"playreel/internal/models"
	"playreel/internal/service"

	"github.com/gofiber/fiber/v2"
)

// AuthCallback upserts the caller's profile after identity-provider login (protected)
func (s *Server) AuthCallback(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(string)

	var req struct {
		DisplayName string `json:"displayName"`
		AvatarURL   string `json:"avatarUrl"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewInvalidBodyError("Invalid request body", nil))
	}

	profile, err := s.profileService.Sync(ctx, service.SyncProfileInput{
		UserID:      userID,
		DisplayName: req.DisplayName,
		AvatarURL:   req.AvatarURL,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return models.RespondWithData(c, fiber.StatusOK, profile)
}

// GetMyProfile returns the caller's profile (protected)
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(string)

	profile, err := s.profileService.Get(ctx, userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return models.RespondWithData(c, fiber.StatusOK, profile)
}

// UpdateMyProfile applies the settings form (protected)
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(string)

	var req struct {
		DisplayName *string `json:"displayName"`
		Username    *string `json:"username"`
		AvatarURL   *string `json:"avatarUrl"`
		Location    *string `json:"location"`
		Bio         *string `json:"bio"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewInvalidBodyError("Invalid request body", nil))
	}

	profile, err := s.profileService.Update(ctx, service.UpdateProfileInput{
		UserID:      userID,
		DisplayName: req.DisplayName,
		Username:    req.Username,
		AvatarURL:   req.AvatarURL,
		Location:    req.Location,
		Bio:         req.Bio,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return models.RespondWithData(c, fiber.StatusOK, profile)
}

// GetSports returns the sports reference list (public)
func (s *Server) GetSports(c *fiber.Ctx) error {
	ctx := c.UserContext()

	sports, err := s.profileService.Sports(ctx)
	if err != nil {
		return respondServiceError(c, err)
	}

	return models.RespondWithData(c, fiber.StatusOK, fiber.Map{"sports": sports})
}
