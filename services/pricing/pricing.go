package pricing

import (
	"math"

	"courier-admin/apperrors"
	bookingModel "courier-admin/models/booking"
)

// Tariff constants for weight based pricing.
const (
	PerKgPrice    = 100.0
	PackagingRate = 0.08
	GSTRate       = 0.18
)

// Round2 rounds a monetary value to 2 decimal places, half away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Compute maps package attributes to a price breakdown.
//
// Declared goods value takes priority: when present and positive the breakdown
// is MANUAL with the value passed through untouched. Otherwise a positive
// weight yields the AUTO_WEIGHT formula. Neither present is a validation
// failure. The function is pure; identical input always yields identical
// output.
func Compute(weight *float64, weightUnit string, declaredValue *float64) (bookingModel.Pricing, error) {
	if declaredValue != nil && *declaredValue > 0 {
		return bookingModel.Pricing{
			BasePrice:       *declaredValue,
			PackagingCharge: 0,
			Tax:             0,
			TotalAmount:     *declaredValue,
			Mode:            bookingModel.PricingModeManual,
		}, nil
	}

	if weight != nil && *weight > 0 {
		basePrice := *weight * PerKgPrice
		packagingCharge := Round2(basePrice * PackagingRate)
		subtotal := basePrice + packagingCharge
		tax := Round2(subtotal * GSTRate)
		totalAmount := Round2(subtotal + tax)

		return bookingModel.Pricing{
			BasePrice:       Round2(basePrice),
			PackagingCharge: packagingCharge,
			Tax:             tax,
			TotalAmount:     totalAmount,
			Mode:            bookingModel.PricingModeAutoWeight,
		}, nil
	}

	return bookingModel.Pricing{}, apperrors.NewValidation("either weight or goods value must be provided")
}
