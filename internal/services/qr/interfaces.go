package qr

import (
	"context"

	"qrmint/internal/models"
	"qrmint/internal/services/quota"
)

// QuotaChecker gates creation against the free tier limits.
type QuotaChecker interface {
	CheckQRLimit(ctx context.Context, userID string) (quota.Status, error)
	CheckDynamicQRLimit(ctx context.Context, userID string) (quota.Status, error)
}

// ScanInvalidator drops cached scan destinations when they change.
type ScanInvalidator interface {
	InvalidateScan(ctx context.Context, uniqueID string) error
}

// Service defines the QR code lifecycle operations.
type Service interface {
	// Save creates a QR code, or updates it when QRID is set, and
	// returns the record id. Creation is quota gated; update never
	// consumes a new slot.
	Save(ctx context.Context, userID string, req SaveRequest) (string, error)

	// Delete soft-deletes an owned QR code and its dynamic companion.
	// The historical qr_count counter is not decremented.
	Delete(ctx context.Context, userID, qrID string) error

	// Rename updates the display name only.
	Rename(ctx context.Context, userID, qrID, name string) error

	// Get fetches one owned QR code.
	Get(ctx context.Context, userID, qrID string) (*models.QRCode, error)

	// ListForUser returns the user's active QR codes, newest first.
	ListForUser(ctx context.Context, userID string) ([]models.QRCode, error)
}
