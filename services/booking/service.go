package booking

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"courier-admin/apperrors"
	"courier-admin/logger"
	bookingModel "courier-admin/models/booking"
	"courier-admin/services/bookingid"
	"courier-admin/services/pricing"
	bookingTypes "courier-admin/types/booking"

	"github.com/jinzhu/now"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Notifier delivers booking related email on a best effort basis.
type Notifier interface {
	SendBookingConfirmation(b *bookingModel.Booking, attachmentPath string) error
}

// InvoiceRenderer produces a binary invoice artifact for a booking snapshot.
type InvoiceRenderer interface {
	Render(b *bookingModel.Booking) (ref string, path string, err error)
}

// Service owns booking creation, edits, tracking appends and stats.
type Service struct {
	DB        *gorm.DB
	Allocator *bookingid.Allocator
	Notifier  Notifier        // optional
	Invoices  InvoiceRenderer // optional
}

func NewService(db *gorm.DB, allocator *bookingid.Allocator, notifier Notifier, invoices InvoiceRenderer) *Service {
	return &Service{DB: db, Allocator: allocator, Notifier: notifier, Invoices: invoices}
}

// CreateOptions are the canonical-flow feature flags.
type CreateOptions struct {
	// AcceptClientPricing honors a caller supplied pricing breakdown instead
	// of recomputing. Only the manual booking path sets it; the override is
	// logged for audit.
	AcceptClientPricing bool
	SendEmail           bool
	GenerateInvoice     bool
	CreatedBy           string
}

// CreateResult carries the persisted booking plus notes about best-effort
// secondary actions that failed after the authoritative write.
type CreateResult struct {
	Booking  *bookingModel.Booking `json:"booking"`
	Warnings []string              `json:"warnings,omitempty"`
}

// Create validates raw submitted fields and persists a Booking.
//
// Validation and identifier conflicts abort before any write. Email and
// invoice rendering run after the commit and their failure never rolls the
// booking back.
func (s *Service) Create(req *bookingTypes.BookingCreateRequest, opts CreateOptions) (*CreateResult, error) {
	if err := validateCreate(req); err != nil {
		return nil, err
	}

	b, err := s.buildBooking(req, opts)
	if err != nil {
		return nil, err
	}

	// Pre-insert probe for caller supplied identifiers gives a friendly error
	// without burning an insert; the unique index is the authoritative check.
	if req.BookingID != "" {
		var count int64
		if err := s.DB.Model(&bookingModel.Booking{}).Where("booking_id = ?", b.BookingID).Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, apperrors.NewConflict("booking with id %s already exists", b.BookingID)
		}
	}

	if err := s.DB.Create(b).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.NewConflict("booking with id %s already exists", b.BookingID)
		}
		return nil, err
	}
	logger.Success(fmt.Sprintf("Booking created successfully with ID: %s", b.BookingID))

	result := &CreateResult{Booking: b}
	s.runSecondaryActions(b, opts, result)
	return result, nil
}

// runSecondaryActions renders the invoice and sends the confirmation email.
// Failures become warnings, never errors.
func (s *Service) runSecondaryActions(b *bookingModel.Booking, opts CreateOptions, result *CreateResult) {
	attachmentPath := ""

	if opts.GenerateInvoice && s.Invoices != nil {
		ref, path, err := s.Invoices.Render(b)
		if err != nil {
			depErr := apperrors.NewDependency("invoice renderer", err)
			logger.Error("Invoice generation failed for booking "+b.BookingID, depErr)
			result.Warnings = append(result.Warnings, "invoice generation failed and will be retried later")
		} else {
			b.InvoiceRef = &ref
			b.InvoicePath = &path
			attachmentPath = path
			if err := s.DB.Model(b).Updates(map[string]interface{}{
				"invoice_ref":  ref,
				"invoice_path": path,
			}).Error; err != nil {
				logger.Error("Failed to store invoice reference for booking "+b.BookingID, err)
			}
		}
	}

	if opts.SendEmail && s.Notifier != nil {
		if b.Sender.Email == nil || *b.Sender.Email == "" {
			logger.Warning("No sender email found for booking " + b.BookingID)
		} else if err := s.Notifier.SendBookingConfirmation(b, attachmentPath); err != nil {
			depErr := apperrors.NewDependency("notification dispatcher", err)
			logger.Error("Confirmation email failed for booking "+b.BookingID, depErr)
			result.Warnings = append(result.Warnings, "confirmation email could not be sent")
		} else {
			logger.Success("Confirmation email sent for booking " + b.BookingID)
		}
	}
}

func validateCreate(req *bookingTypes.BookingCreateRequest) error {
	if req.ServiceType == "" || req.SenderDetails == nil || req.ReceiverDetails == nil || req.PackageDetails == nil {
		return apperrors.NewValidation("missing required booking fields")
	}
	if !bookingModel.ServiceType(req.ServiceType).IsValid() {
		return apperrors.NewValidation("invalid service type: %s", req.ServiceType)
	}
	if err := validateParty("sender", req.SenderDetails); err != nil {
		return err
	}
	if err := validateParty("receiver", req.ReceiverDetails); err != nil {
		return err
	}
	if req.Status != "" && !bookingModel.BookingStatus(req.Status).IsValid() {
		return apperrors.NewValidation("invalid status: %s", req.Status)
	}
	return nil
}

func validateParty(role string, p *bookingTypes.PartyInput) error {
	if p.Name == "" {
		return apperrors.NewValidation("%s name is required", role)
	}
	if p.Phone == "" {
		return apperrors.NewValidation("%s phone is required", role)
	}
	if p.Address == "" {
		return apperrors.NewValidation("%s address is required", role)
	}
	if p.Pincode == "" {
		return apperrors.NewValidation("%s pincode is required", role)
	}
	return nil
}

func (s *Service) buildBooking(req *bookingTypes.BookingCreateRequest, opts CreateOptions) (*bookingModel.Booking, error) {
	pkg := req.PackageDetails

	var priced bookingModel.Pricing
	if opts.AcceptClientPricing && req.Pricing != nil {
		priced = bookingModel.Pricing{
			BasePrice:       req.Pricing.BasePrice,
			PackagingCharge: req.Pricing.PackagingCharge,
			Tax:             req.Pricing.Tax,
			TotalAmount:     req.Pricing.TotalAmount,
			Mode:            bookingModel.PricingMode(req.Pricing.Mode),
		}
		logger.Warning(fmt.Sprintf("Accepting client supplied pricing for booking (total=%.2f, mode=%s)",
			priced.TotalAmount, priced.Mode))
	} else {
		var err error
		priced, err = pricing.Compute(pkg.Weight, pkg.WeightUnit, pkg.Value)
		if err != nil {
			return nil, err
		}
	}

	id := bookingid.Normalize(req.BookingID)
	if id == "" {
		id = s.Allocator.Next()
	}

	status := bookingModel.StatusPending
	if req.Status != "" {
		status = bookingModel.BookingStatus(req.Status)
	}
	paymentStatus := bookingModel.PaymentPending
	if req.PaymentStatus != "" {
		paymentStatus = bookingModel.PaymentStatus(req.PaymentStatus)
	}
	paymentMethod := bookingModel.PaymentCOD
	if req.PaymentMethod != "" {
		paymentMethod = bookingModel.PaymentMethod(req.PaymentMethod)
	}
	source := "admin"
	if req.BookingSource != "" {
		source = req.BookingSource
	}
	unit := bookingModel.WeightUnitGram
	if pkg.WeightUnit != "" {
		unit = pkg.WeightUnit
	}
	boxes := 1
	if pkg.BoxQuantity > 0 {
		boxes = pkg.BoxQuantity
	}

	var dims datatypes.JSON
	if pkg.Dimensions != nil {
		raw, err := json.Marshal(pkg.Dimensions)
		if err != nil {
			return nil, apperrors.NewValidation("invalid package dimensions")
		}
		dims = raw
	}

	b := &bookingModel.Booking{
		BookingID:         id,
		ServiceType:       bookingModel.ServiceType(req.ServiceType),
		Sender:            partyFromInput(req.SenderDetails),
		Receiver:          partyFromInput(req.ReceiverDetails),
		Weight:            pkg.Weight,
		WeightUnit:        unit,
		Dimensions:        dims,
		DeclaredValue:     pkg.Value,
		Fragile:           pkg.Fragile,
		BoxQuantity:       boxes,
		Description:       optString(pkg.Description),
		Pricing:           priced,
		Status:            status,
		CurrentLocation:   optString(req.CurrentLocation),
		PickupPincode:     optString(req.PickupPincode),
		DeliveryPincode:   optString(req.DeliveryPincode),
		PickupDate:        parseTime(req.PickupDate),
		PickupSlot:        optString(req.PickupSlot),
		DeliveryDate:      parseTime(req.DeliveryDate),
		EstimatedDelivery: parseTime(req.EstimatedDelivery),
		CouponCode:        optString(req.CouponCode),
		CouponDiscount:    req.CouponDiscount,
		InsuranceRequired: req.InsuranceRequired,
		PaymentStatus:     paymentStatus,
		PaymentMethod:     paymentMethod,
		BookingSource:     source,
		Notes:             optString(req.Notes),
		CreatedBy:         opts.CreatedBy,
	}
	return b, nil
}

// AppendTracking appends one tracking entry and updates the booking's status
// atomically. Omitted entry fields receive their documented defaults.
func (s *Service) AppendTracking(ref string, req *bookingTypes.TrackingUpdateRequest, updatedBy string) (*bookingModel.Booking, error) {
	entry := bookingModel.TrackingEvent{
		Status:      "No Status",
		Location:    "No Location",
		Description: "N/A",
		RecordedAt:  time.Now(),
		CreatedBy:   updatedBy,
	}
	if req.Status != "" {
		entry.Status = req.Status
	}
	if req.Location != "" {
		entry.Location = req.Location
	}
	if req.Description != "" {
		entry.Description = req.Description
	}
	if ts := parseTime(req.Timestamp); ts != nil {
		entry.RecordedAt = *ts
	}

	var b bookingModel.Booking
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.findByRef(tx, ref, &b); err != nil {
			return err
		}

		entry.BookingRef = b.ID
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}

		updates := map[string]interface{}{"updated_by": updatedBy}
		if req.Status != "" {
			updates["status"] = req.Status
		}
		if req.Location != "" {
			updates["current_location"] = req.Location
		}
		return tx.Model(&b).Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}

	return s.Get(ref)
}

// Get loads one booking with its full tracking history, oldest entry first.
func (s *Service) Get(ref string) (*bookingModel.Booking, error) {
	var b bookingModel.Booking
	q := s.DB.Preload("TrackingHistory", func(db *gorm.DB) *gorm.DB {
		return db.Order("tracking_events.id ASC")
	})
	if err := s.findByRef(q, ref, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

// findByRef resolves a booking by its string identifier, falling back to the
// numeric primary key for admin UI links.
func (s *Service) findByRef(tx *gorm.DB, ref string, out *bookingModel.Booking) error {
	normalized := bookingid.Normalize(ref)
	err := tx.Where("booking_id = ?", normalized).First(out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if id, convErr := strconv.ParseUint(ref, 10, 64); convErr == nil {
			err = tx.First(out, uint(id)).Error
		}
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.NewNotFound("booking %s not found", ref)
	}
	return err
}

// ListParams filter and paginate the booking listing.
type ListParams struct {
	Page   int
	Limit  int
	Status string
	Search string
}

// List returns bookings newest first with the original admin panel filters.
func (s *Service) List(params ListParams) (*bookingTypes.ListResult, error) {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.Limit < 1 {
		params.Limit = 10
	}

	q := s.DB.Model(&bookingModel.Booking{})
	if params.Status != "" && params.Status != "all" {
		q = q.Where("status = ?", params.Status)
	}
	if params.Search != "" {
		needle := "%" + strings.ToLower(params.Search) + "%"
		q = q.Where(
			"LOWER(booking_id) LIKE ? OR LOWER(sender_name) LIKE ? OR LOWER(receiver_name) LIKE ? OR sender_phone LIKE ? OR receiver_phone LIKE ?",
			needle, needle, needle, "%"+params.Search+"%", "%"+params.Search+"%",
		)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, err
	}

	var bookings []bookingModel.Booking
	err := q.Order("created_at DESC").
		Limit(params.Limit).
		Offset((params.Page - 1) * params.Limit).
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}

	totalPages := total / int64(params.Limit)
	if total%int64(params.Limit) != 0 {
		totalPages++
	}

	return &bookingTypes.ListResult{
		Bookings:    bookings,
		TotalPages:  totalPages,
		CurrentPage: params.Page,
		Total:       total,
	}, nil
}

// Update applies partial field edits. When package attributes change the
// pricing breakdown is recomputed; it is never edited directly.
func (s *Service) Update(ref string, req *bookingTypes.BookingUpdateRequest, updatedBy string) (*bookingModel.Booking, error) {
	var b bookingModel.Booking
	if err := s.findByRef(s.DB, ref, &b); err != nil {
		return nil, err
	}

	if req.ServiceType != nil {
		if !bookingModel.ServiceType(*req.ServiceType).IsValid() {
			return nil, apperrors.NewValidation("invalid service type: %s", *req.ServiceType)
		}
		b.ServiceType = bookingModel.ServiceType(*req.ServiceType)
	}
	if req.SenderDetails != nil {
		if err := validateParty("sender", req.SenderDetails); err != nil {
			return nil, err
		}
		b.Sender = partyFromInput(req.SenderDetails)
	}
	if req.ReceiverDetails != nil {
		if err := validateParty("receiver", req.ReceiverDetails); err != nil {
			return nil, err
		}
		b.Receiver = partyFromInput(req.ReceiverDetails)
	}

	repriced := false
	if req.PackageDetails != nil {
		pkg := req.PackageDetails
		b.Weight = pkg.Weight
		if pkg.WeightUnit != "" {
			b.WeightUnit = pkg.WeightUnit
		}
		b.DeclaredValue = pkg.Value
		b.Fragile = pkg.Fragile
		if pkg.BoxQuantity > 0 {
			b.BoxQuantity = pkg.BoxQuantity
		}
		b.Description = optString(pkg.Description)
		if pkg.Dimensions != nil {
			raw, err := json.Marshal(pkg.Dimensions)
			if err != nil {
				return nil, apperrors.NewValidation("invalid package dimensions")
			}
			b.Dimensions = raw
		}
		repriced = true
	}

	if repriced {
		priced, err := pricing.Compute(b.Weight, b.WeightUnit, b.DeclaredValue)
		if err != nil {
			return nil, err
		}
		b.Pricing = priced
	}

	if req.Status != nil {
		if !bookingModel.BookingStatus(*req.Status).IsValid() {
			return nil, apperrors.NewValidation("invalid status: %s", *req.Status)
		}
		b.Status = bookingModel.BookingStatus(*req.Status)
	}
	if req.CurrentLocation != nil {
		b.CurrentLocation = optString(*req.CurrentLocation)
	}
	if req.PickupPincode != nil {
		b.PickupPincode = optString(*req.PickupPincode)
	}
	if req.DeliveryPincode != nil {
		b.DeliveryPincode = optString(*req.DeliveryPincode)
	}
	if req.PickupDate != nil {
		b.PickupDate = parseTime(*req.PickupDate)
	}
	if req.PickupSlot != nil {
		b.PickupSlot = optString(*req.PickupSlot)
	}
	if req.DeliveryDate != nil {
		b.DeliveryDate = parseTime(*req.DeliveryDate)
	}
	if req.EstimatedDelivery != nil {
		b.EstimatedDelivery = parseTime(*req.EstimatedDelivery)
	}
	if req.CouponCode != nil {
		b.CouponCode = optString(*req.CouponCode)
	}
	if req.CouponDiscount != nil {
		b.CouponDiscount = *req.CouponDiscount
	}
	if req.InsuranceRequired != nil {
		b.InsuranceRequired = *req.InsuranceRequired
	}
	if req.PaymentStatus != nil {
		b.PaymentStatus = bookingModel.PaymentStatus(*req.PaymentStatus)
	}
	if req.PaymentMethod != nil {
		b.PaymentMethod = bookingModel.PaymentMethod(*req.PaymentMethod)
	}
	if req.Notes != nil {
		b.Notes = optString(*req.Notes)
	}
	b.UpdatedBy = updatedBy

	if err := s.DB.Save(&b).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

// Delete removes a booking and its tracking history. Terminal.
func (s *Service) Delete(ref string) error {
	var b bookingModel.Booking
	if err := s.findByRef(s.DB, ref, &b); err != nil {
		return err
	}
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("booking_ref = ?", b.ID).Delete(&bookingModel.TrackingEvent{}).Error; err != nil {
			return err
		}
		return tx.Delete(&b).Error
	})
}

// Stats aggregates the admin dashboard counters.
func (s *Service) Stats() (*bookingTypes.DashboardStats, error) {
	stats := &bookingTypes.DashboardStats{}
	model := s.DB.Model(&bookingModel.Booking{})

	if err := model.Session(&gorm.Session{}).Count(&stats.TotalBookings).Error; err != nil {
		return nil, err
	}
	if err := model.Session(&gorm.Session{}).Where("status = ?", bookingModel.StatusPending).Count(&stats.PendingBookings).Error; err != nil {
		return nil, err
	}
	if err := model.Session(&gorm.Session{}).Where("status = ?", bookingModel.StatusDelivered).Count(&stats.DeliveredBookings).Error; err != nil {
		return nil, err
	}
	if err := model.Session(&gorm.Session{}).Where("status = ?", bookingModel.StatusInTransit).Count(&stats.InTransitBookings).Error; err != nil {
		return nil, err
	}
	if err := model.Session(&gorm.Session{}).Where("created_at >= ?", now.BeginningOfDay()).Count(&stats.TodayBookings).Error; err != nil {
		return nil, err
	}

	var revenue float64
	err := s.DB.Model(&bookingModel.Booking{}).
		Where("payment_status = ?", bookingModel.PaymentPaid).
		Select("COALESCE(SUM(pricing_total_amount), 0)").
		Scan(&revenue).Error
	if err != nil {
		return nil, err
	}
	stats.TotalRevenue = revenue

	return stats, nil
}

func partyFromInput(p *bookingTypes.PartyInput) bookingModel.Party {
	return bookingModel.Party{
		Name:     p.Name,
		Phone:    p.Phone,
		Email:    optString(p.Email),
		Address:  p.Address,
		Pincode:  p.Pincode,
		City:     optString(p.City),
		State:    optString(p.State),
		Landmark: optString(p.Landmark),
	}
}

func optString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// parseTime accepts the timestamp formats the admin UI submits. Unparsable
// input yields nil so callers fall back to their defaults.
func parseTime(s string) *time.Time {
	if s == "" {
		return nil
	}
	layouts := []string{
		time.RFC3339,
		"2006-01-02 15:04:05",
		"2006-01-02",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}
