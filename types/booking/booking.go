package booking

// PartyInput is the sender or receiver block of a booking request.
type PartyInput struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Address  string `json:"address"`
	Pincode  string `json:"pincode"`
	City     string `json:"city"`
	State    string `json:"state"`
	Landmark string `json:"landmark"`
}

// DimensionsInput is the optional parcel dimensions block.
type DimensionsInput struct {
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// PackageInput is the parcel attributes block of a booking request.
type PackageInput struct {
	Weight      *float64         `json:"weight"`
	WeightUnit  string           `json:"weight_unit"`
	Dimensions  *DimensionsInput `json:"dimensions"`
	Value       *float64         `json:"value"`
	Fragile     bool             `json:"fragile"`
	BoxQuantity int              `json:"box_quantity"`
	Description string           `json:"description"`
}

// PricingInput is an explicitly supplied price breakdown. It is only honored
// on the manual booking path and is logged for audit.
type PricingInput struct {
	BasePrice       float64 `json:"basePrice"`
	PackagingCharge float64 `json:"packagingCharge"`
	Tax             float64 `json:"tax"`
	TotalAmount     float64 `json:"totalAmount"`
	Mode            string  `json:"pricingMode"`
}

// BookingCreateRequest is the canonical booking creation payload.
type BookingCreateRequest struct {
	BookingID       string        `json:"booking_id"` // optional, allocated when empty
	ServiceType     string        `json:"service_type"`
	SenderDetails   *PartyInput   `json:"sender_details"`
	ReceiverDetails *PartyInput   `json:"receiver_details"`
	PackageDetails  *PackageInput `json:"package_details"`

	PickupPincode     string `json:"pickup_pincode"`
	DeliveryPincode   string `json:"delivery_pincode"`
	PickupDate        string `json:"pickup_date"`
	PickupSlot        string `json:"pickup_slot"`
	DeliveryDate      string `json:"delivery_date"`
	EstimatedDelivery string `json:"estimated_delivery"`

	Status          string `json:"status"`
	CurrentLocation string `json:"current_location"`

	CouponCode        string  `json:"coupon_code"`
	CouponDiscount    float64 `json:"coupon_discount"`
	InsuranceRequired bool    `json:"insurance_required"`

	Pricing *PricingInput `json:"pricing"`

	PaymentStatus string `json:"payment_status"`
	PaymentMethod string `json:"payment_method"`
	Notes         string `json:"notes"`
	BookingSource string `json:"booking_source"`

	SendEmail       bool `json:"send_email"`
	GenerateInvoice bool `json:"generate_invoice"`
}

// BookingUpdateRequest carries partial field edits. Nil pointers are untouched.
type BookingUpdateRequest struct {
	ServiceType     *string       `json:"service_type"`
	SenderDetails   *PartyInput   `json:"sender_details"`
	ReceiverDetails *PartyInput   `json:"receiver_details"`
	PackageDetails  *PackageInput `json:"package_details"`

	PickupPincode     *string `json:"pickup_pincode"`
	DeliveryPincode   *string `json:"delivery_pincode"`
	PickupDate        *string `json:"pickup_date"`
	PickupSlot        *string `json:"pickup_slot"`
	DeliveryDate      *string `json:"delivery_date"`
	EstimatedDelivery *string `json:"estimated_delivery"`

	Status          *string `json:"status"`
	CurrentLocation *string `json:"current_location"`

	CouponCode        *string  `json:"coupon_code"`
	CouponDiscount    *float64 `json:"coupon_discount"`
	InsuranceRequired *bool    `json:"insurance_required"`

	PaymentStatus *string `json:"payment_status"`
	PaymentMethod *string `json:"payment_method"`
	Notes         *string `json:"notes"`
}

// TrackingUpdateRequest appends one tracking entry to a booking.
type TrackingUpdateRequest struct {
	Status      string `json:"status"`
	Location    string `json:"location"`
	Description string `json:"description"`
	Timestamp   string `json:"timestamp"`
}

// ComputePricingRequest is the standalone pricing computation payload.
type ComputePricingRequest struct {
	Weight     *float64 `json:"weight"`
	WeightUnit string   `json:"weight_unit"`
	Value      *float64 `json:"value"`
}

// ListResult is the paginated booking listing envelope.
type ListResult struct {
	Bookings    interface{} `json:"bookings"`
	TotalPages  int64       `json:"totalPages"`
	CurrentPage int         `json:"currentPage"`
	Total       int64       `json:"total"`
}

// DashboardStats aggregates booking counters for the admin dashboard.
type DashboardStats struct {
	TotalBookings     int64   `json:"totalBookings"`
	PendingBookings   int64   `json:"pendingBookings"`
	DeliveredBookings int64   `json:"deliveredBookings"`
	InTransitBookings int64   `json:"inTransitBookings"`
	TodayBookings     int64   `json:"todayBookings"`
	TotalRevenue      float64 `json:"totalRevenue"`
}
