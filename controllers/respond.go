package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/bookwell/bookwell-api/apperr"
	"github.com/bookwell/bookwell-api/utils"
)

// respondError maps a business-rule failure to its HTTP status. Errors
// outside the taxonomy get the fallback message with a 500 so internal
// details never leak to clients.
func respondError(c *fiber.Ctx, err error, fallback string) error {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		return c.Status(apperr.Status(appErr)).JSON(utils.ErrorResponse{
			Message: appErr.Message,
			Error:   appErr.Message,
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
		Message: fallback,
	})
}
