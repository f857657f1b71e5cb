package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is the application profile row. Profiles are never hard-deleted;
// deactivation flips Active off and hides the row from auth lookups.
type User struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	FullName string `json:"full_name"`
	Phone    string `gorm:"uniqueIndex" json:"phone"`
	Role     Role   `json:"role"`
	Address  string `json:"address"`
	Active   bool   `gorm:"default:true" json:"active"`

	// Lowercase hex SHA-256 of the PIN, compared during repair only.
	PinHash string `json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
