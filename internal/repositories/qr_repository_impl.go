package repositories

import (
	"context"
	"errors"

	"qrmint/internal/models"

	"gorm.io/gorm"
)

type qrCodeRepository struct {
	db *gorm.DB
}

// NewQRCodeRepository creates a new instance of QRCodeRepository
func NewQRCodeRepository(db *gorm.DB) QRCodeRepository {
	return &qrCodeRepository{db: db}
}

func (r *qrCodeRepository) Create(ctx context.Context, qr *models.QRCode) error {
	return r.db.WithContext(ctx).Create(qr).Error
}

func (r *qrCodeRepository) GetByID(ctx context.Context, id, userID string) (*models.QRCode, error) {
	var qr models.QRCode
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&qr).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQRCodeNotFound
		}
		return nil, err
	}
	return &qr, nil
}

func (r *qrCodeRepository) ListByUser(ctx context.Context, userID string) ([]models.QRCode, error) {
	var qrs []models.QRCode
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&qrs).Error
	return qrs, err
}

func (r *qrCodeRepository) Update(ctx context.Context, qr *models.QRCode) error {
	return r.db.WithContext(ctx).Save(qr).Error
}

func (r *qrCodeRepository) Rename(ctx context.Context, id, userID, name string) error {
	res := r.db.WithContext(ctx).
		Model(&models.QRCode{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("name", name)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrQRCodeNotFound
	}
	return nil
}

func (r *qrCodeRepository) SoftDelete(ctx context.Context, id, userID string) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.QRCode{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrQRCodeNotFound
	}
	return nil
}

func (r *qrCodeRepository) HardDelete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Unscoped().
		Where("id = ?", id).
		Delete(&models.QRCode{}).Error
}

func (r *qrCodeRepository) CountActive(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.QRCode{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}
