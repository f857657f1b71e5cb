package pricing

import (
	"time"

	"shiptrack/internal/models"
)

// Flat-rate price book. Weight below the floor still bills at the floor.
const (
	MinimumWeightKg = 20.0
	MinRatePerKg    = 15.0
	HomeDeliveryFee = 5.0

	ExpressMultiplier = 1.7

	ExpressMaxDays        = 6
	StandardMaxDays       = 7
	StandardWorstCaseDays = 9
)

var tierRates = map[models.PricingTier]float64{
	models.TierB2C:  20,
	models.TierB2B1: 15,
	models.TierB2B2: 17,
	models.TierB2B3: 18.5,
}

type Quote struct {
	BillingWeightKg float64 `json:"billing_weight_kg"`
	RatePerKg       float64 `json:"rate_per_kg"`
	BasePrice       float64 `json:"base_price"`
	FinalPrice      float64 `json:"final_price"`
}

// CalculatePrice applies the flat-rate formula: billing weight is floored
// at MinimumWeightKg, a negotiated rate wins only when it is at or above
// MinRatePerKg, EXPRESS multiplies the service price, and the home-delivery
// fee is a flat add-on. No rounding is applied.
func CalculatePrice(weightKg float64, tier models.PricingTier, homeDelivery bool, negotiatedRate float64, level models.ServiceLevel) Quote {
	billingWeight := weightKg
	if billingWeight < MinimumWeightKg {
		billingWeight = MinimumWeightKg
	}

	rate, ok := tierRates[tier]
	if !ok {
		rate = MinRatePerKg
	}
	if negotiatedRate >= MinRatePerKg {
		rate = negotiatedRate
	}

	basePrice := billingWeight * rate
	servicePrice := basePrice
	if level == models.ServiceExpress {
		servicePrice = basePrice * ExpressMultiplier
	}

	finalPrice := servicePrice
	if homeDelivery {
		finalPrice = servicePrice + HomeDeliveryFee
	}

	return Quote{
		BillingWeightKg: billingWeight,
		RatePerKg:       rate,
		BasePrice:       basePrice,
		FinalPrice:      finalPrice,
	}
}

type Eta struct {
	Expected  *time.Time `json:"expected"`
	WorstCase *time.Time `json:"worst_case"`
}

// ComputeEta derives delivery estimates from the received timestamp.
// A shipment not yet received has no estimate. EXPRESS commits to a single
// date and carries no worst case.
func ComputeEta(receivedAt *time.Time, level models.ServiceLevel) Eta {
	if receivedAt == nil {
		return Eta{}
	}

	days := StandardMaxDays
	if level == models.ServiceExpress {
		days = ExpressMaxDays
	}
	expected := receivedAt.AddDate(0, 0, days)

	eta := Eta{Expected: &expected}
	if level == models.ServiceStandard {
		worst := receivedAt.AddDate(0, 0, StandardWorstCaseDays)
		eta.WorstCase = &worst
	}
	return eta
}
