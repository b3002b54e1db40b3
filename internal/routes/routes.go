// Package routes wires the HTTP surface onto the Fiber app.
package routes

import (
	"qrmint/internal/handlers"
	"qrmint/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// Handlers bundles the constructed handlers for route registration.
type Handlers struct {
	QR       *handlers.QRHandler
	Scan     *handlers.ScanHandler
	User     *handlers.UserHandler
	Branding *handlers.BrandingHandler
	Webhook  *handlers.WebhookHandler
}

// SetupRoutes registers all routes.
func SetupRoutes(app *fiber.App, h Handlers) {
	app.Get("/health", handlers.HealthCheck)

	// Public scan endpoints, no auth required.
	app.Get("/dynamic/scan/:id", h.Scan.Redirect)
	app.Get("/api/dynamic/scan/:id", h.Scan.Resolve)

	// Identity provider webhook, signature-verified.
	app.Post("/api/webhooks/identity/user-events", h.Webhook.HandleUserEvents)

	// Authenticated API.
	api := app.Group("/api", middleware.Auth)

	api.Get("/me", h.User.GetMe)

	api.Post("/qr", h.QR.SaveQRCode)
	api.Get("/qr", h.QR.GetUserQRCodes)
	api.Get("/qr/limits", h.QR.CheckQRLimit)
	api.Get("/qr/dynamic/quota", h.QR.GetDynamicQRQuota)
	api.Delete("/qr/:id", h.QR.DeleteQRCode)
	api.Patch("/qr/:id/name", h.QR.RenameQRCode)
	api.Get("/qr/:id/preview", h.QR.Preview)
	api.Get("/qr/:id/destination", h.QR.GetDynamicQRDestination)
	api.Get("/qr/:id/scan-url", h.QR.GetDynamicQRScanURL)

	api.Post("/branding/suggest", h.Branding.Suggest)
	api.Post("/branding/logo", h.Branding.FetchLogo)
}
