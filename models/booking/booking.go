package booking

import (
	"time"

	"gorm.io/datatypes"
)

// Party holds the sender or receiver contact block of a booking.
type Party struct {
	Name     string  `gorm:"type:varchar(255);not null" json:"name"`
	Phone    string  `gorm:"type:varchar(20);not null" json:"phone"`
	Email    *string `gorm:"type:varchar(255)" json:"email,omitempty"`
	Address  string  `gorm:"type:text;not null" json:"address"`
	Pincode  string  `gorm:"type:varchar(10);not null" json:"pincode"`
	City     *string `gorm:"type:varchar(100)" json:"city,omitempty"`
	State    *string `gorm:"type:varchar(100)" json:"state,omitempty"`
	Landmark *string `gorm:"type:varchar(255)" json:"landmark,omitempty"`
}

// Pricing is the computed price breakdown persisted with the booking.
// TotalAmount always equals the mode-specific formula output; it is never
// edited independently of a recomputation.
type Pricing struct {
	BasePrice       float64     `gorm:"not null;default:0" json:"basePrice"`
	PackagingCharge float64     `gorm:"not null;default:0" json:"packagingCharge"`
	Tax             float64     `gorm:"not null;default:0" json:"tax"`
	TotalAmount     float64     `gorm:"not null;default:0" json:"totalAmount"`
	Mode            PricingMode `gorm:"type:varchar(20)" json:"pricingMode"`
}

// Booking is the central parcel booking aggregate.
type Booking struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	// Human readable identifier, assigned once and immutable thereafter.
	BookingID string `gorm:"type:varchar(64);not null;uniqueIndex" json:"booking_id"`

	ServiceType ServiceType `gorm:"type:varchar(30);not null" json:"service_type"`

	Sender   Party `gorm:"embedded;embeddedPrefix:sender_" json:"sender_details"`
	Receiver Party `gorm:"embedded;embeddedPrefix:receiver_" json:"receiver_details"`

	// Package attributes
	Weight        *float64       `json:"weight,omitempty"`
	WeightUnit    string         `gorm:"type:varchar(10);default:gram" json:"weight_unit"`
	Dimensions    datatypes.JSON `gorm:"type:jsonb" json:"dimensions,omitempty"`
	DeclaredValue *float64       `json:"declared_value,omitempty"`
	Fragile       bool           `gorm:"default:false" json:"fragile"`
	BoxQuantity   int            `gorm:"default:1" json:"box_quantity"`
	Description   *string        `gorm:"type:text" json:"description,omitempty"`

	Pricing Pricing `gorm:"embedded;embeddedPrefix:pricing_" json:"pricing"`

	Status          BookingStatus `gorm:"type:varchar(30);not null;default:pending" json:"status"`
	CurrentLocation *string       `gorm:"type:varchar(255)" json:"current_location,omitempty"`

	PickupPincode   *string    `gorm:"type:varchar(10)" json:"pickup_pincode,omitempty"`
	DeliveryPincode *string    `gorm:"type:varchar(10)" json:"delivery_pincode,omitempty"`
	PickupDate      *time.Time `json:"pickup_date,omitempty"`
	PickupSlot      *string    `gorm:"type:varchar(50)" json:"pickup_slot,omitempty"`
	DeliveryDate    *time.Time `json:"delivery_date,omitempty"`

	EstimatedDelivery *time.Time `json:"estimated_delivery,omitempty"`

	CouponCode        *string `gorm:"type:varchar(50)" json:"coupon_code,omitempty"`
	CouponDiscount    float64 `gorm:"default:0" json:"coupon_discount"`
	InsuranceRequired bool    `gorm:"default:false" json:"insurance_required"`

	PaymentStatus PaymentStatus `gorm:"type:varchar(20);not null;default:pending" json:"payment_status"`
	PaymentMethod PaymentMethod `gorm:"type:varchar(20);not null;default:COD" json:"payment_method"`

	BookingSource string  `gorm:"type:varchar(20);default:admin" json:"booking_source"`
	Notes         *string `gorm:"type:text" json:"notes,omitempty"`

	// Invoice artifact produced by the document renderer, if any.
	InvoiceRef  *string `gorm:"type:varchar(64)" json:"invoice_ref,omitempty"`
	InvoicePath *string `gorm:"type:varchar(255)" json:"invoice_path,omitempty"`

	TrackingHistory []TrackingEvent `gorm:"foreignKey:BookingRef;references:ID" json:"tracking_history,omitempty"`

	CreatedBy string    `gorm:"type:varchar(255)" json:"created_by"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedBy string    `gorm:"type:varchar(255)" json:"updated_by,omitempty"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName sets the table name for the Booking model
func (Booking) TableName() string {
	return "bookings"
}
