package repositories

import (
	"context"
	"errors"
	"time"

	"qrmint/internal/models"

	"gorm.io/gorm"
)

type dynamicQRCodeRepository struct {
	db *gorm.DB
}

// NewDynamicQRCodeRepository creates a new instance of DynamicQRCodeRepository
func NewDynamicQRCodeRepository(db *gorm.DB) DynamicQRCodeRepository {
	return &dynamicQRCodeRepository{db: db}
}

func (r *dynamicQRCodeRepository) Create(ctx context.Context, d *models.DynamicQRCode) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *dynamicQRCodeRepository) GetByUniqueID(ctx context.Context, uniqueID string) (*models.DynamicQRCode, error) {
	var d models.DynamicQRCode
	err := r.db.WithContext(ctx).
		Where("unique_id = ?", uniqueID).
		First(&d).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDynamicQRNotFound
		}
		return nil, err
	}
	return &d, nil
}

func (r *dynamicQRCodeRepository) GetByQRCodeID(ctx context.Context, qrCodeID, userID string) (*models.DynamicQRCode, error) {
	var d models.DynamicQRCode
	err := r.db.WithContext(ctx).
		Where("qr_code_id = ? AND user_id = ?", qrCodeID, userID).
		First(&d).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDynamicQRNotFound
		}
		return nil, err
	}
	return &d, nil
}

func (r *dynamicQRCodeRepository) UpdateDestination(ctx context.Context, id, destination string) error {
	return r.db.WithContext(ctx).
		Model(&models.DynamicQRCode{}).
		Where("id = ?", id).
		Update("destination_url", destination).Error
}

func (r *dynamicQRCodeRepository) SoftDeleteByQRCodeID(ctx context.Context, qrCodeID string) error {
	return r.db.WithContext(ctx).
		Where("qr_code_id = ?", qrCodeID).
		Delete(&models.DynamicQRCode{}).Error
}

func (r *dynamicQRCodeRepository) CountActive(ctx context.Context, userID string, now time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.DynamicQRCode{}).
		Where("user_id = ? AND expires_at > ?", userID, now).
		Count(&count).Error
	return count, err
}
