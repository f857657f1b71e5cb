package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuthAccount is the provider-side credential record the identity bridge
// signs against. Email is the synthetic phone-<digits>@shiptrack.local
// address; the password hash holds the bcrypted PIN.
type AuthAccount struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Email        string `gorm:"uniqueIndex" json:"email"`
	PasswordHash string `json:"-"`

	// Metadata mirrored onto the account at create/repair time.
	Phone        string `json:"phone"`
	LegacyUserID string `gorm:"index" json:"legacy_user_id"`
	Role         Role   `json:"role"`
}

func (a *AuthAccount) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
