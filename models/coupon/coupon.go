package coupon

import (
	"time"
)

// DiscountType is how a coupon's discount value is interpreted.
type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

func (dt DiscountType) IsValid() bool {
	return dt == DiscountPercentage || dt == DiscountFixed
}

// Coupon is a discount descriptor redeemable against a booking order value.
type Coupon struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	// Codes are normalized to uppercase before storage.
	Code string `gorm:"type:varchar(50);not null;uniqueIndex" json:"code"`

	DiscountType      DiscountType `gorm:"type:varchar(20);not null" json:"discount_type"`
	DiscountValue     float64      `gorm:"not null" json:"discount_value"`
	MinOrderValue     float64      `gorm:"default:0" json:"min_order_value"`
	MaxDiscountAmount float64      `gorm:"default:0" json:"max_discount_amount"`

	ValidFrom  time.Time `json:"valid_from"`
	ValidUntil time.Time `json:"valid_until"`

	UsageLimit int  `gorm:"default:0" json:"usage_limit"`
	UsedCount  int  `gorm:"default:0" json:"used_count"`
	IsActive   bool `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName sets the table name for the Coupon model
func (Coupon) TableName() string {
	return "coupons"
}
