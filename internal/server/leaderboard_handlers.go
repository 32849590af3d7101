package server

import (
	"playreel/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetLeaderboard returns the precomputed leaderboard (public)
func (s *Server) GetLeaderboard(c *fiber.Ctx) error {
	ctx := c.UserContext()

	board, err := s.leaderboardService.Top(ctx, c.Query("sportSlug"))
	if err != nil {
		return respondServiceError(c, err)
	}

	return models.RespondWithData(c, fiber.StatusOK, fiber.Map{"leaderboard": board})
}
