package repositories

import (
	"context"
	"errors"
	"time"

	"qrmint/internal/models"
)

var ErrDynamicQRNotFound = errors.New("dynamic qr code not found")

// DynamicQRCodeRepository defines database operations on the companion
// rows backing dynamic QR codes.
type DynamicQRCodeRepository interface {
	Create(ctx context.Context, d *models.DynamicQRCode) error

	// GetByUniqueID fetches an active row by its public identifier.
	// Used by the unauthenticated scan path; expiry is the caller's
	// concern so expired and live rows are both returned.
	GetByUniqueID(ctx context.Context, uniqueID string) (*models.DynamicQRCode, error)

	// GetByQRCodeID fetches the companion of a QR code owned by userID.
	GetByQRCodeID(ctx context.Context, qrCodeID, userID string) (*models.DynamicQRCode, error)

	// UpdateDestination changes the destination URL only. UniqueID and
	// ExpiresAt are invariant across edits.
	UpdateDestination(ctx context.Context, id, destination string) error

	// SoftDeleteByQRCodeID marks the companion of a QR code deleted.
	SoftDeleteByQRCodeID(ctx context.Context, qrCodeID string) error

	// CountActive counts the user's non-deleted, non-expired rows.
	CountActive(ctx context.Context, userID string, now time.Time) (int64, error)
}
