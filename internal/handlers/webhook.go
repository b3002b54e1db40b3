package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"qrmint/internal/services/identity"
	"qrmint/internal/utils/response"

	"github.com/gofiber/fiber/v2"
	svix "github.com/svix/svix-webhooks/go"
)

// WebhookHandler ingests the identity provider's user events and keeps
// the local users table in sync. This is the push counterpart of the
// lazy EnsureUser path; both write the same rows.
type WebhookHandler struct {
	identity identity.Service
	secret   string
}

func NewWebhookHandler(identitySvc identity.Service, secret string) *WebhookHandler {
	return &WebhookHandler{
		identity: identitySvc,
		secret:   secret,
	}
}

type userEvent struct {
	Type string `json:"type"`
	Data struct {
		ID             string `json:"id"`
		EmailAddresses []struct {
			ID           string `json:"id"`
			EmailAddress string `json:"email_address"`
		} `json:"email_addresses"`
		PrimaryEmailAddressID string `json:"primary_email_address_id"`
	} `json:"data"`
}

// primaryEmail picks the primary address, falling back to the first
// one, then to empty.
func (e *userEvent) primaryEmail() string {
	for _, addr := range e.Data.EmailAddresses {
		if addr.ID == e.Data.PrimaryEmailAddressID {
			return addr.EmailAddress
		}
	}
	if len(e.Data.EmailAddresses) > 0 {
		return e.Data.EmailAddresses[0].EmailAddress
	}
	return ""
}

// HandleUserEvents verifies the webhook signature and upserts the user
// on create/update events. Other event types are acknowledged and
// ignored.
func (h *WebhookHandler) HandleUserEvents(c *fiber.Ctx) error {
	if h.secret == "" {
		log.Println("webhook secret is not configured")
		return response.Error(c, fiber.StatusInternalServerError, "webhook not configured")
	}

	wh, err := svix.NewWebhook(h.secret)
	if err != nil {
		log.Printf("invalid webhook secret: %v", err)
		return response.Error(c, fiber.StatusInternalServerError, "webhook not configured")
	}

	headers := http.Header{}
	for key, values := range c.GetReqHeaders() {
		for _, v := range values {
			headers.Add(key, v)
		}
	}

	payload := c.Body()
	if err := wh.Verify(payload, headers); err != nil {
		log.Printf("webhook signature verification failed: %v", err)
		return response.Error(c, fiber.StatusBadRequest, "invalid webhook signature")
	}

	var event userEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return response.Error(c, fiber.StatusBadRequest, "invalid webhook payload")
	}

	if event.Type == "user.created" || event.Type == "user.updated" {
		if err := h.identity.SyncFromEvent(c.Context(), event.Data.ID, event.primaryEmail()); err != nil {
			log.Printf("failed to sync user %s: %v", event.Data.ID, err)
			return response.Error(c, fiber.StatusInternalServerError, "error syncing user")
		}
	}

	return c.SendStatus(fiber.StatusOK)
}
