package server

import (
	"playreel/internal/models"
	"playreel/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ToggleLike flips the caller's like on a clip (protected, rate limited)
func (s *Server) ToggleLike(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(string)

	clipID, err := parseClipID(c)
	if err != nil {
		return nil
	}

	result, err := s.engagementService.ToggleLike(ctx, clipID, userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return models.RespondWithData(c, fiber.StatusOK, result)
}

// CreateComment adds a comment to a clip (protected, rate limited)
func (s *Server) CreateComment(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(string)

	clipID, err := parseClipID(c)
	if err != nil {
		return nil
	}

	var req struct {
		Body string `json:"body"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewInvalidBodyError("Invalid request body", nil))
	}

	comment, err := s.engagementService.CreateComment(ctx, service.CreateCommentInput{
		UserID: userID,
		ClipID: clipID,
		Body:   req.Body,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return models.RespondWithData(c, fiber.StatusCreated, comment)
}

// GetComments lists a clip's comments oldest first (public)
func (s *Server) GetComments(c *fiber.Ctx) error {
	ctx := c.UserContext()

	clipID, err := parseClipID(c)
	if err != nil {
		return nil
	}

	page := parsePagination(c, 50)
	comments, err := s.engagementService.ListComments(ctx, clipID, page.Limit, page.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}

	return models.RespondWithData(c, fiber.StatusOK, fiber.Map{"comments": comments})
}
