package server

import (
	"errors"

	"playreel/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper. Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// parseClipID validates the :id route parameter as a UUID.
// On failure it writes a 400 response and returns errResponseWritten.
func parseClipID(c *fiber.Ctx) (string, error) {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewInvalidParamsError("Invalid clip ID"))
		return "", errResponseWritten
	}
	return id, nil
}

// respondServiceError maps a service error onto the envelope, using the
// AppError code for the HTTP status.
func respondServiceError(c *fiber.Ctx, err error) error {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		return models.RespondWithError(c, models.StatusForCode(appErr.Code), appErr)
	}
	return models.RespondWithError(c, fiber.StatusInternalServerError, err)
}

// Pagination holds parsed limit/offset query parameters.
type Pagination struct {
	Limit  int
	Offset int
}

const maxPaginationLimit = 100

// parsePagination extracts limit and offset query parameters with the given default limit.
func parsePagination(c *fiber.Ctx, defaultLimit int) Pagination {
	limit := c.QueryInt("limit", defaultLimit)
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxPaginationLimit {
		limit = maxPaginationLimit
	}

	offset := c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}

	return Pagination{Limit: limit, Offset: offset}
}
