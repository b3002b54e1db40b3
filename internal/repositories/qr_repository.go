package repositories

import (
	"context"
	"errors"

	"qrmint/internal/models"
)

var ErrQRCodeNotFound = errors.New("qr code not found")

// QRCodeRepository defines database operations on QR code rows. All
// lookups are scoped to the owning user; absent and not-owned are
// indistinguishable to callers.
type QRCodeRepository interface {
	Create(ctx context.Context, qr *models.QRCode) error

	// GetByID fetches an active (non-deleted) row owned by userID.
	GetByID(ctx context.Context, id, userID string) (*models.QRCode, error)

	// ListByUser returns the user's active rows, newest first.
	ListByUser(ctx context.Context, userID string) ([]models.QRCode, error)

	Update(ctx context.Context, qr *models.QRCode) error

	// Rename updates the name of an owned row only.
	Rename(ctx context.Context, id, userID, name string) error

	// SoftDelete marks an owned row deleted. The row is kept for
	// display and audit; quota checks recount active rows instead.
	SoftDelete(ctx context.Context, id, userID string) error

	// HardDelete permanently removes a row. Only used as the
	// compensating rollback when a companion insert fails.
	HardDelete(ctx context.Context, id string) error

	// CountActive counts the user's non-deleted rows.
	CountActive(ctx context.Context, userID string) (int64, error)
}
