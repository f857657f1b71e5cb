package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Shipment struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	TrackingCode string `gorm:"uniqueIndex" json:"tracking_code"`

	SenderName     string `json:"sender_name"`
	SenderPhone    string `json:"sender_phone"`
	SenderAddress  string `json:"sender_address"`
	SenderIDNumber string `json:"sender_id_number"`

	ReceiverName    string `json:"receiver_name"`
	ReceiverPhone   string `json:"receiver_phone"`
	ReceiverAddress string `json:"receiver_address"`

	DestinationCountry string `json:"destination_country"`

	WeightKg       float64      `json:"weight_kg"`
	PricingTier    PricingTier  `json:"pricing_tier"`
	ServiceLevel   ServiceLevel `json:"service_level"`
	HomeDelivery   bool         `json:"home_delivery"`
	NegotiatedRate float64      `json:"negotiated_rate"`
	BasePrice      float64      `json:"base_price"`
	FinalPrice     float64      `json:"final_price"`

	Status ShipmentStatus `gorm:"index" json:"status"`

	ReceivedAt          *time.Time `json:"received_at"`
	ExpectedDeliveryAt  *time.Time `json:"expected_delivery_at"`
	WorstCaseDeliveryAt *time.Time `json:"worst_case_delivery_at"`

	CreatedBy        string `gorm:"type:uuid;index" json:"created_by"`
	AssignedDriverID string `gorm:"type:uuid;index" json:"assigned_driver_id"`
	AssignedRelayID  string `gorm:"type:uuid;index" json:"assigned_relay_id"`

	CurrentHandlerID       string `gorm:"type:uuid" json:"current_handler_id"`
	CurrentHandlerLocation string `json:"current_handler_location"`

	IDPhotoURL             string `json:"id_photo_url"`
	ParcelPhotoURL         string `json:"parcel_photo_url"`
	ReceiverIDPhotoURL     string `json:"receiver_id_photo_url"`
	ReceiverParcelPhotoURL string `json:"receiver_parcel_photo_url"`

	PaymentTerms string     `json:"payment_terms"`
	AmountPaid   float64    `json:"amount_paid"`
	PaidAt       *time.Time `json:"paid_at"`
	Notes        string     `json:"notes"`
}

func (s *Shipment) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

// ShipmentEvent is the handler/location breadcrumb appended on every
// status write.
type ShipmentEvent struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	ShipmentID string         `gorm:"type:uuid;index" json:"shipment_id"`
	Status     ShipmentStatus `json:"status"`
	HandlerID  string         `gorm:"type:uuid" json:"handler_id"`
	Location   string         `json:"location"`
}
