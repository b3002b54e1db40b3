package handlers

import (
	"errors"

	domainErrors "qrmint/internal/errors"
	"qrmint/internal/services/redirect"
	"qrmint/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

// ScanHandler serves the public, unauthenticated scan endpoints for
// dynamic QR codes.
type ScanHandler struct {
	redirects redirect.Service
}

func NewScanHandler(redirects redirect.Service) *ScanHandler {
	return &ScanHandler{redirects: redirects}
}

// Resolve answers the JSON scan API: 200 with the destination, 404 for
// unknown or soft-deleted ids, 410 once the code has lapsed.
func (h *ScanHandler) Resolve(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return response.Error(c, fiber.StatusBadRequest, "Invalid QR code identifier")
	}

	dest, err := h.redirects.Resolve(c.Context(), id)
	if err != nil {
		return h.scanError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"destination_url": dest})
}

// Redirect is the scan URL itself: a 302 to the destination with the
// same not-found/expired mapping as the JSON API.
func (h *ScanHandler) Redirect(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return response.Error(c, fiber.StatusBadRequest, "Invalid QR code identifier")
	}

	dest, err := h.redirects.Resolve(c.Context(), id)
	if err != nil {
		return h.scanError(c, err)
	}

	return c.Redirect(dest, fiber.StatusFound)
}

func (h *ScanHandler) scanError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domainErrors.ErrScanNotFound):
		return response.Error(c, fiber.StatusNotFound, "QR code not found or expired")
	case errors.Is(err, domainErrors.ErrScanExpired):
		return response.Error(c, fiber.StatusGone, domainErrors.ErrScanExpired.Error())
	default:
		return response.Error(c, fiber.StatusInternalServerError, "internal server error")
	}
}
