package handlers

import (
	"qrmint/internal/services/branding"
	"qrmint/internal/services/identity"
	"qrmint/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type BrandingHandler struct {
	identity identity.Service
	branding branding.Service
}

func NewBrandingHandler(identitySvc identity.Service, brandingSvc branding.Service) *BrandingHandler {
	return &BrandingHandler{
		identity: identitySvc,
		branding: brandingSvc,
	}
}

// Suggest runs the AI palette advisor for a URL. Quota gated.
func (h *BrandingHandler) Suggest(c *fiber.Ctx) error {
	var req struct {
		URL string `json:"url"`
	}
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	externalID, email, err := authIdentity(c)
	if err != nil {
		return respondError(c, err)
	}

	user, err := h.identity.EnsureUser(c.Context(), externalID, email)
	if err != nil {
		return respondError(c, err)
	}

	suggestion, err := h.branding.Suggest(c.Context(), user, req.URL)
	if err != nil {
		return respondError(c, err)
	}

	return response.Success(c, "branding suggestion generated", suggestion)
}

// FetchLogo proxies an image into a data URI for the client preview.
// A failed fetch answers null rather than an error.
func (h *BrandingHandler) FetchLogo(c *fiber.Ctx) error {
	var req struct {
		URL string `json:"url"`
	}
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	dataURI := h.branding.FetchLogo(c.Context(), req.URL)
	return response.Success(c, "logo fetched", fiber.Map{"logo": nullable(dataURI)})
}
