package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RelayPoint is a drop-off/pickup location operated by a relay user.
// Location is a Point stored as WKB; the API speaks GeoJSON.
type RelayPoint struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	RelayUserID string `gorm:"type:uuid;uniqueIndex" json:"relay_user_id"`
	Label       string `json:"label"`
	Address     string `json:"address"`
	Location    []byte `gorm:"type:bytea" json:"-"`
}

func (p *RelayPoint) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
