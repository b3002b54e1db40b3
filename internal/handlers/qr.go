package handlers

import (
	domainErrors "qrmint/internal/errors"
	"qrmint/internal/models"
	"qrmint/internal/services/identity"
	"qrmint/internal/services/preview"
	"qrmint/internal/services/qr"
	"qrmint/internal/services/quota"
	"qrmint/internal/services/redirect"
	"qrmint/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type QRHandler struct {
	identity  identity.Service
	qrService qr.Service
	quotas    quota.Service
	redirects redirect.Service
}

func NewQRHandler(identitySvc identity.Service, qrService qr.Service,
	quotas quota.Service, redirects redirect.Service) *QRHandler {
	return &QRHandler{
		identity:  identitySvc,
		qrService: qrService,
		quotas:    quotas,
		redirects: redirects,
	}
}

// authIdentity reads the principal the auth middleware stored on the
// request. An empty external id means the route was reached without it.
func authIdentity(c *fiber.Ctx) (externalID, email string, err error) {
	externalID, _ = c.Locals("externalID").(string)
	if externalID == "" {
		return "", "", domainErrors.ErrNotAuthenticated
	}
	email, _ = c.Locals("email").(string)
	return externalID, email, nil
}

// resolveUser lazily creates or restores the caller's local account.
func (h *QRHandler) resolveUser(c *fiber.Ctx) (*models.User, error) {
	externalID, email, err := authIdentity(c)
	if err != nil {
		return nil, err
	}
	return h.identity.EnsureUser(c.Context(), externalID, email)
}

// SaveQRCode creates a QR code, or updates one when qrId is set.
func (h *QRHandler) SaveQRCode(c *fiber.Ctx) error {
	var req qr.SaveRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	user, err := h.resolveUser(c)
	if err != nil {
		return respondError(c, err)
	}

	id, err := h.qrService.Save(c.Context(), user.ID, req)
	if err != nil {
		return respondError(c, err)
	}

	return response.Success(c, "QR code saved", fiber.Map{"id": id})
}

// GetUserQRCodes lists the caller's active QR codes, newest first.
func (h *QRHandler) GetUserQRCodes(c *fiber.Ctx) error {
	user, err := h.resolveUser(c)
	if err != nil {
		return respondError(c, err)
	}

	qrs, err := h.qrService.ListForUser(c.Context(), user.ID)
	if err != nil {
		return respondError(c, err)
	}

	return response.Success(c, "QR codes retrieved", qrs)
}

// DeleteQRCode soft-deletes a QR code and its dynamic companion.
func (h *QRHandler) DeleteQRCode(c *fiber.Ctx) error {
	user, err := h.resolveUser(c)
	if err != nil {
		return respondError(c, err)
	}

	if err := h.qrService.Delete(c.Context(), user.ID, c.Params("id")); err != nil {
		return respondError(c, err)
	}

	return response.Success(c, "QR code deleted", nil)
}

// RenameQRCode updates a QR code's display name.
func (h *QRHandler) RenameQRCode(c *fiber.Ctx) error {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	user, err := h.resolveUser(c)
	if err != nil {
		return respondError(c, err)
	}

	if err := h.qrService.Rename(c.Context(), user.ID, c.Params("id"), req.Name); err != nil {
		return respondError(c, err)
	}

	return response.Success(c, "QR code renamed", nil)
}

// CheckQRLimit reports the static QR quota.
func (h *QRHandler) CheckQRLimit(c *fiber.Ctx) error {
	user, err := h.resolveUser(c)
	if err != nil {
		return respondError(c, err)
	}

	status, err := h.quotas.CheckQRLimit(c.Context(), user.ID)
	if err != nil {
		return respondError(c, err)
	}

	return response.Success(c, "QR limit checked", status)
}

// GetDynamicQRQuota reports the active dynamic QR quota.
func (h *QRHandler) GetDynamicQRQuota(c *fiber.Ctx) error {
	user, err := h.resolveUser(c)
	if err != nil {
		return respondError(c, err)
	}

	status, err := h.quotas.CheckDynamicQRLimit(c.Context(), user.ID)
	if err != nil {
		return respondError(c, err)
	}

	return response.Success(c, "dynamic QR quota checked", status)
}

// GetDynamicQRDestination returns the owned dynamic QR's destination,
// or null when it is absent or expired.
func (h *QRHandler) GetDynamicQRDestination(c *fiber.Ctx) error {
	user, err := h.resolveUser(c)
	if err != nil {
		return respondError(c, err)
	}

	dest, err := h.redirects.Destination(c.Context(), user.ID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}

	return response.Success(c, "destination retrieved", fiber.Map{"destination_url": nullable(dest)})
}

// GetDynamicQRScanURL returns the owned dynamic QR's public scan URL,
// or null when it is absent or expired.
func (h *QRHandler) GetDynamicQRScanURL(c *fiber.Ctx) error {
	user, err := h.resolveUser(c)
	if err != nil {
		return respondError(c, err)
	}

	scanURL, err := h.redirects.ScanURL(c.Context(), user.ID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}

	return response.Success(c, "scan URL retrieved", fiber.Map{"scan_url": nullable(scanURL)})
}

// Preview renders a plain PNG of the QR code's encoded URL. With
// ?format=data-uri the image is answered as a base64 data URI instead.
func (h *QRHandler) Preview(c *fiber.Ctx) error {
	user, err := h.resolveUser(c)
	if err != nil {
		return respondError(c, err)
	}

	record, err := h.qrService.Get(c.Context(), user.ID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}

	size := c.QueryInt("size", preview.DefaultSize)

	if c.Query("format") == "data-uri" {
		uri, err := preview.DataURI(record.URL, size)
		if err != nil {
			return respondError(c, err)
		}
		return response.Success(c, "preview rendered", fiber.Map{"data_uri": uri})
	}

	png, err := preview.PNG(record.URL, size)
	if err != nil {
		return respondError(c, err)
	}

	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(png)
}

func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
