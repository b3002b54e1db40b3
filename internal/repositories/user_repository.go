package repositories

import (
	"context"
	"errors"

	"qrmint/internal/models"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrDatabaseOperation = errors.New("database operation failed")
)

// UserRepository defines user-related database operations.
type UserRepository interface {
	// Create inserts a new user row.
	Create(ctx context.Context, user *models.User) error

	// GetByExternalID retrieves a user by the identity provider's id,
	// including soft-deleted rows so they can be restored.
	GetByExternalID(ctx context.Context, externalID string) (*models.User, error)

	// Restore clears the soft-delete marker on a user row.
	Restore(ctx context.Context, id string) error

	// UpdateEmail updates a user's email by external id.
	UpdateEmail(ctx context.Context, externalID, email string) error

	// IncrementQRCount bumps the historical qr_count counter. The
	// counter only increases; deletes never decrement it.
	IncrementQRCount(ctx context.Context, id string) error

	// IncrementAISuggestions bumps ai_suggestions_used with a
	// conditional write that refuses to cross the limit. It reports
	// whether a row was updated.
	IncrementAISuggestions(ctx context.Context, id string, limit int) (bool, error)
}
