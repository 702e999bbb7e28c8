package handlers

import (
	"errors"

	"lapak/internal/models"

	"github.com/gofiber/fiber/v2"
)

// statusForError maps a domain error to the HTTP status the caller sees.
// Unknown errors fall through to 500.
func statusForError(err error) int {
	var (
		validationErr *models.ValidationError
		notFoundErr   *models.NotFoundError
		stockErr      *models.InsufficientStockError
		downstreamErr *models.DownstreamError
	)
	switch {
	case errors.As(err, &validationErr):
		return fiber.StatusBadRequest
	case errors.As(err, &notFoundErr):
		return fiber.StatusNotFound
	case errors.As(err, &stockErr):
		return fiber.StatusConflict
	case errors.As(err, &downstreamErr):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

func errorResponse(c *fiber.Ctx, message string, err error) error {
	return c.Status(statusForError(err)).JSON(fiber.Map{
		"message": message,
		"error":   err.Error(),
	})
}
