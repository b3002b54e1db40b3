package handlers

import (
	"qrmint/internal/services/identity"
	"qrmint/internal/services/quota"
	"qrmint/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	identity identity.Service
	quotas   quota.Service
}

func NewUserHandler(identitySvc identity.Service, quotas quota.Service) *UserHandler {
	return &UserHandler{
		identity: identitySvc,
		quotas:   quotas,
	}
}

// GetMe returns the caller's usage counters. qr_count is the historical
// total; the quota endpoints report current active capacity.
func (h *UserHandler) GetMe(c *fiber.Ctx) error {
	externalID, email, err := authIdentity(c)
	if err != nil {
		return respondError(c, err)
	}

	user, err := h.identity.EnsureUser(c.Context(), externalID, email)
	if err != nil {
		return respondError(c, err)
	}

	return response.Success(c, "user data retrieved", fiber.Map{
		"qr_count":                 user.QRCount,
		"ai_suggestions_used":      user.AISuggestionsUsed,
		"ai_suggestions_remaining": h.quotas.AIRemaining(user),
	})
}
