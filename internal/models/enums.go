package models

import "strings"

// Role is the closed set of application roles. Legacy rows carry role as
// free text, so parsing always lower-cases first.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleStaff  Role = "staff"
	RoleDriver Role = "driver"
	RoleRelay  Role = "relay"
)

func ParseRole(value string) (Role, bool) {
	role := Role(strings.ToLower(strings.TrimSpace(value)))
	return role, role.Valid()
}

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleStaff, RoleDriver, RoleRelay:
		return true
	}
	return false
}

// ShipmentStatus values a shipment can hold. There is no enforced
// transition graph; any writer role may set any valid status.
type ShipmentStatus string

const (
	StatusCreated          ShipmentStatus = "CREATED"
	StatusReceived         ShipmentStatus = "RECEIVED"
	StatusInTransit        ShipmentStatus = "IN_TRANSIT"
	StatusAtRelayAvailable ShipmentStatus = "AT_RELAY_AVAILABLE"
	StatusDelivered        ShipmentStatus = "DELIVERED"
	StatusCancelled        ShipmentStatus = "CANCELLED"
	StatusVoided           ShipmentStatus = "VOIDED"
)

func ParseShipmentStatus(value string) (ShipmentStatus, bool) {
	status := ShipmentStatus(strings.ToUpper(strings.TrimSpace(value)))
	return status, status.Valid()
}

func (s ShipmentStatus) Valid() bool {
	switch s {
	case StatusCreated, StatusReceived, StatusInTransit, StatusAtRelayAvailable,
		StatusDelivered, StatusCancelled, StatusVoided:
		return true
	}
	return false
}

type ServiceLevel string

const (
	ServiceStandard ServiceLevel = "STANDARD"
	ServiceExpress  ServiceLevel = "EXPRESS"
)

func (l ServiceLevel) Valid() bool {
	return l == ServiceStandard || l == ServiceExpress
}

type PricingTier string

const (
	TierB2C  PricingTier = "B2C"
	TierB2B1 PricingTier = "B2B_TIER_1"
	TierB2B2 PricingTier = "B2B_TIER_2"
	TierB2B3 PricingTier = "B2B_TIER_3"
)

func (t PricingTier) Valid() bool {
	switch t {
	case TierB2C, TierB2B1, TierB2B2, TierB2B3:
		return true
	}
	return false
}
