package server

import (
	"playreel/internal/models"

	"github.com/gofiber/fiber/v2"
)

// IncrementStreak records activity for today (protected)
func (s *Server) IncrementStreak(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(string)

	streak, err := s.streakService.Increment(ctx, userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return models.RespondWithData(c, fiber.StatusOK, streak)
}

// GetStreak returns the caller's streak (protected)
func (s *Server) GetStreak(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(string)

	streak, err := s.streakService.Get(ctx, userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return models.RespondWithData(c, fiber.StatusOK, streak)
}
