package coupon

// CouponCreateRequest creates or updates a coupon. The code is normalized to
// uppercase before storage.
type CouponCreateRequest struct {
	Code              string  `json:"code"`
	DiscountType      string  `json:"discount_type"`
	DiscountValue     float64 `json:"discount_value"`
	MinOrderValue     float64 `json:"min_order_value"`
	MaxDiscountAmount float64 `json:"max_discount_amount"`
	ValidFrom         string  `json:"valid_from"`
	ValidUntil        string  `json:"valid_until"`
	UsageLimit        int     `json:"usage_limit"`
	IsActive          *bool   `json:"is_active"`
}

// ValidateRequest checks a coupon against an order value.
type ValidateRequest struct {
	Code       string  `json:"code"`
	OrderValue float64 `json:"order_value"`
}

// ValidateResult is the outcome of a coupon validation.
type ValidateResult struct {
	Code           string  `json:"code"`
	Valid          bool    `json:"valid"`
	DiscountAmount float64 `json:"discount_amount"`
	FinalAmount    float64 `json:"final_amount"`
}
