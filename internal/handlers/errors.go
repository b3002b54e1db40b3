package handlers

import (
	"errors"
	"log"

	domainErrors "qrmint/internal/errors"
	"qrmint/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

// respondError maps a service error to an HTTP response. Expected
// conditions carry their user-facing message through; anything else is
// a 500 with the detail kept server-side.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domainErrors.ErrNotAuthenticated):
		return response.Error(c, fiber.StatusUnauthorized, err.Error())
	case errors.Is(err, domainErrors.ErrQRNotFound):
		return response.Error(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, domainErrors.ErrQRLimitReached),
		errors.Is(err, domainErrors.ErrDynamicQRLimitReached),
		errors.Is(err, domainErrors.ErrAILimitReached):
		return response.Error(c, fiber.StatusForbidden, err.Error())
	case errors.Is(err, domainErrors.ErrInvalidURL),
		errors.Is(err, domainErrors.ErrURLTooLong),
		errors.Is(err, domainErrors.ErrEmptyName):
		return response.Error(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, domainErrors.ErrTypeImmutable),
		errors.Is(err, domainErrors.ErrContentImmutable):
		return response.Error(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, domainErrors.ErrAccountCreation):
		return response.Error(c, fiber.StatusInternalServerError, err.Error())
	default:
		log.Printf("unexpected error: %v", err)
		return response.Error(c, fiber.StatusInternalServerError, "internal server error")
	}
}
