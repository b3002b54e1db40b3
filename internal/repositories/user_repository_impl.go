package repositories

import (
	"context"
	"errors"
	"log"

	"qrmint/internal/models"

	"gorm.io/gorm"
)

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new instance of UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		log.Printf("failed to create user: %v", err)
		return ErrDatabaseOperation
	}
	return nil
}

func (r *userRepository) GetByExternalID(ctx context.Context, externalID string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Unscoped().
		Where("external_id = ?", externalID).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Restore(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Unscoped().
		Model(&models.User{}).
		Where("id = ?", id).
		Update("deleted_at", nil).Error
}

func (r *userRepository) UpdateEmail(ctx context.Context, externalID, email string) error {
	// Unscoped: the row may be soft-deleted, and a scoped UPDATE would
	// silently match zero rows.
	res := r.db.WithContext(ctx).Unscoped().
		Model(&models.User{}).
		Where("external_id = ?", externalID).
		Update("email", email)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *userRepository) IncrementQRCount(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		UpdateColumn("qr_count", gorm.Expr("qr_count + 1")).Error
}

func (r *userRepository) IncrementAISuggestions(ctx context.Context, id string, limit int) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ? AND ai_suggestions_used < ?", id, limit).
		UpdateColumn("ai_suggestions_used", gorm.Expr("ai_suggestions_used + 1"))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
