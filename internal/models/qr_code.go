package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// QRCode is a saved QR code. For static codes URL is the literal
// destination; for dynamic codes it is the generated scan URL. The
// IsDynamic column is authoritative; the copy inside Settings is an
// echo for the presentation layer only.
type QRCode struct {
	ID        string   `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    string   `gorm:"column:user_id;type:uuid;not null;index" json:"user_id"`
	Name      string   `gorm:"not null" json:"name"`
	URL       string   `gorm:"column:url;not null" json:"url"`
	IsDynamic bool     `gorm:"column:is_dynamic;not null;default:false" json:"is_dynamic"`
	Settings  Settings `gorm:"type:jsonb" json:"settings"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (q *QRCode) BeforeCreate(tx *gorm.DB) error {
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	return nil
}

// DynamicQRCode is the one-to-one companion of a dynamic QRCode. The
// public UniqueID never changes after creation; only DestinationURL
// is mutable. ExpiresAt is fixed at creation and not renewed by edits.
type DynamicQRCode struct {
	ID             string    `gorm:"type:uuid;primaryKey" json:"id"`
	QRCodeID       string    `gorm:"column:qr_code_id;type:uuid;uniqueIndex;not null" json:"qr_code_id"`
	UserID         string    `gorm:"column:user_id;type:uuid;not null;index" json:"user_id"`
	UniqueID       string    `gorm:"column:unique_id;uniqueIndex;not null" json:"unique_id"`
	DestinationURL string    `gorm:"column:destination_url;not null" json:"destination_url"`
	ExpiresAt      time.Time `gorm:"column:expires_at;not null" json:"expires_at"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (d *DynamicQRCode) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}
