package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is the local account record for an externally authenticated
// principal. It is created lazily on the first authenticated action
// and never hard-deleted by the application.
type User struct {
	ID                string `gorm:"type:uuid;primaryKey" json:"id"`
	ExternalID        string `gorm:"column:external_id;uniqueIndex;not null" json:"-"`
	Email             string `gorm:"not null;default:''" json:"email"`
	QRCount           int    `gorm:"column:qr_count;not null;default:0" json:"qr_count"`
	AISuggestionsUsed int    `gorm:"column:ai_suggestions_used;not null;default:0" json:"ai_suggestions_used"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
