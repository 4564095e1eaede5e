package booking

// BookingStatus is the top-level lifecycle status of a booking.
type BookingStatus string

const (
	StatusPending        BookingStatus = "pending"
	StatusConfirmed      BookingStatus = "confirmed"
	StatusPicked         BookingStatus = "picked"
	StatusInTransit      BookingStatus = "in-transit"
	StatusOutForDelivery BookingStatus = "out-for-delivery"
	StatusDelivered      BookingStatus = "delivered"
	StatusCancelled      BookingStatus = "cancelled"
)

func (bs BookingStatus) String() string {
	return string(bs)
}

func (bs BookingStatus) IsValid() bool {
	switch bs {
	case StatusPending, StatusConfirmed, StatusPicked, StatusInTransit,
		StatusOutForDelivery, StatusDelivered, StatusCancelled:
		return true
	default:
		return false
	}
}

// IsCompleted returns true if the booking is in a terminal state.
func (bs BookingStatus) IsCompleted() bool {
	return bs == StatusDelivered || bs == StatusCancelled
}

// GetAllBookingStatuses returns all valid booking statuses
func GetAllBookingStatuses() []BookingStatus {
	return []BookingStatus{
		StatusPending,
		StatusConfirmed,
		StatusPicked,
		StatusInTransit,
		StatusOutForDelivery,
		StatusDelivered,
		StatusCancelled,
	}
}

// PricingMode records how the pricing breakdown was produced.
type PricingMode string

const (
	PricingModeManual     PricingMode = "MANUAL"
	PricingModeAutoWeight PricingMode = "AUTO_WEIGHT"
)

// PaymentStatus of a booking.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

// PaymentMethod of a booking.
type PaymentMethod string

const (
	PaymentCOD    PaymentMethod = "COD"
	PaymentOnline PaymentMethod = "Online"
)

// ServiceType enumerates the shipping services offered.
type ServiceType string

const (
	ServiceCourier       ServiceType = "courier"
	ServiceShifting      ServiceType = "shifting"
	ServiceLocal         ServiceType = "local"
	ServiceInternational ServiceType = "international"
	ServiceSurface       ServiceType = "surface"
	ServiceAir           ServiceType = "air"
	ServiceExpress       ServiceType = "express"
	ServicePremium       ServiceType = "premium"
)

func (st ServiceType) IsValid() bool {
	switch st {
	case ServiceCourier, ServiceShifting, ServiceLocal, ServiceInternational,
		ServiceSurface, ServiceAir, ServiceExpress, ServicePremium:
		return true
	default:
		return false
	}
}

// WeightUnit for package weights.
const (
	WeightUnitGram     = "gram"
	WeightUnitKilogram = "kilogram"
)
