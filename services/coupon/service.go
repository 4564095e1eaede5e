package coupon

import (
	"errors"
	"strings"
	"time"

	"courier-admin/apperrors"
	couponModel "courier-admin/models/coupon"
	"courier-admin/services/pricing"
	couponTypes "courier-admin/types/coupon"

	"github.com/jinzhu/now"
	"gorm.io/gorm"
)

// Service owns coupon CRUD, validation and redemption.
type Service struct {
	DB *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{DB: db}
}

// List returns all coupons, newest first.
func (s *Service) List() ([]couponModel.Coupon, error) {
	var coupons []couponModel.Coupon
	if err := s.DB.Order("created_at DESC").Find(&coupons).Error; err != nil {
		return nil, err
	}
	return coupons, nil
}

// Create stores a new coupon. The code is uppercased before the uniqueness
// check so "save10" and "SAVE10" are the same coupon.
func (s *Service) Create(req *couponTypes.CouponCreateRequest) (*couponModel.Coupon, error) {
	c, err := fromRequest(req)
	if err != nil {
		return nil, err
	}

	var count int64
	if err := s.DB.Model(&couponModel.Coupon{}).Where("code = ?", c.Code).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, apperrors.NewConflict("coupon code %s already exists", c.Code)
	}

	if err := s.DB.Create(c).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.NewConflict("coupon code %s already exists", c.Code)
		}
		return nil, err
	}
	return c, nil
}

// Update replaces a coupon's descriptor fields. UsedCount is untouched.
func (s *Service) Update(id uint, req *couponTypes.CouponCreateRequest) (*couponModel.Coupon, error) {
	var existing couponModel.Coupon
	if err := s.DB.First(&existing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("coupon %d not found", id)
		}
		return nil, err
	}

	updated, err := fromRequest(req)
	if err != nil {
		return nil, err
	}
	updated.ID = existing.ID
	updated.UsedCount = existing.UsedCount
	updated.CreatedAt = existing.CreatedAt

	if err := s.DB.Save(updated).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.NewConflict("coupon code %s already exists", updated.Code)
		}
		return nil, err
	}
	return updated, nil
}

// Delete removes a coupon permanently.
func (s *Service) Delete(id uint) error {
	res := s.DB.Delete(&couponModel.Coupon{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.NewNotFound("coupon %d not found", id)
	}
	return nil
}

// Toggle flips a coupon's active flag.
func (s *Service) Toggle(id uint) (*couponModel.Coupon, error) {
	var c couponModel.Coupon
	if err := s.DB.First(&c, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("coupon %d not found", id)
		}
		return nil, err
	}
	c.IsActive = !c.IsActive
	if err := s.DB.Save(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks a coupon against an order value at the given instant and
// returns the discount it would grant. The coupon is not consumed.
func (s *Service) Validate(code string, orderValue float64, at time.Time) (*couponTypes.ValidateResult, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))

	var c couponModel.Coupon
	if err := s.DB.Where("code = ?", normalized).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("coupon %s not found", normalized)
		}
		return nil, err
	}

	if !c.IsActive {
		return nil, apperrors.NewValidation("coupon %s is not active", normalized)
	}
	if at.Before(c.ValidFrom) {
		return nil, apperrors.NewValidation("coupon %s is not valid yet", normalized)
	}
	// The expiry date is inclusive through the end of that day.
	if at.After(now.With(c.ValidUntil).EndOfDay()) {
		return nil, apperrors.NewValidation("coupon %s has expired", normalized)
	}
	if c.UsageLimit > 0 && c.UsedCount >= c.UsageLimit {
		return nil, apperrors.NewValidation("coupon %s usage limit reached", normalized)
	}
	if orderValue < c.MinOrderValue {
		return nil, apperrors.NewValidation("order value below minimum %.2f for coupon %s", c.MinOrderValue, normalized)
	}

	var discount float64
	switch c.DiscountType {
	case couponModel.DiscountPercentage:
		discount = pricing.Round2(orderValue * c.DiscountValue / 100)
		if c.MaxDiscountAmount > 0 && discount > c.MaxDiscountAmount {
			discount = c.MaxDiscountAmount
		}
	case couponModel.DiscountFixed:
		discount = c.DiscountValue
	default:
		return nil, apperrors.NewValidation("coupon %s has unknown discount type", normalized)
	}
	if discount > orderValue {
		discount = orderValue
	}

	return &couponTypes.ValidateResult{
		Code:           c.Code,
		Valid:          true,
		DiscountAmount: discount,
		FinalAmount:    pricing.Round2(orderValue - discount),
	}, nil
}

// Redeem increments a coupon's usage counter after a successful validation.
// The increment is a single SQL update so concurrent redemptions never lose
// a count.
func (s *Service) Redeem(code string) (*couponModel.Coupon, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))

	res := s.DB.Model(&couponModel.Coupon{}).
		Where("code = ?", normalized).
		UpdateColumn("used_count", gorm.Expr("used_count + 1"))
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, apperrors.NewNotFound("coupon %s not found", normalized)
	}

	var c couponModel.Coupon
	if err := s.DB.Where("code = ?", normalized).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func fromRequest(req *couponTypes.CouponCreateRequest) (*couponModel.Coupon, error) {
	if req.Code == "" {
		return nil, apperrors.NewValidation("coupon code is required")
	}
	dt := couponModel.DiscountType(req.DiscountType)
	if !dt.IsValid() {
		return nil, apperrors.NewValidation("discount type must be percentage or fixed")
	}
	if req.DiscountValue <= 0 {
		return nil, apperrors.NewValidation("discount value must be positive")
	}

	validFrom, err := time.Parse("2006-01-02", req.ValidFrom)
	if err != nil {
		if validFrom, err = time.Parse(time.RFC3339, req.ValidFrom); err != nil {
			return nil, apperrors.NewValidation("valid_from must be a date")
		}
	}
	validUntil, err := time.Parse("2006-01-02", req.ValidUntil)
	if err != nil {
		if validUntil, err = time.Parse(time.RFC3339, req.ValidUntil); err != nil {
			return nil, apperrors.NewValidation("valid_until must be a date")
		}
	}
	if validUntil.Before(validFrom) {
		return nil, apperrors.NewValidation("valid_until must not precede valid_from")
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	return &couponModel.Coupon{
		Code:              strings.ToUpper(strings.TrimSpace(req.Code)),
		DiscountType:      dt,
		DiscountValue:     req.DiscountValue,
		MinOrderValue:     req.MinOrderValue,
		MaxDiscountAmount: req.MaxDiscountAmount,
		ValidFrom:         validFrom,
		ValidUntil:        validUntil,
		UsageLimit:        req.UsageLimit,
		IsActive:          active,
	}, nil
}
