package booking

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"courier-admin/apperrors"
	bookingModel "courier-admin/models/booking"
	"courier-admin/services/bookingid"
	bookingTypes "courier-admin/types/booking"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&bookingModel.Booking{}, &bookingModel.TrackingEvent{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func newTestService(t *testing.T) *Service {
	t.Helper()
	return NewService(newTestDB(t), bookingid.NewAllocator(), nil, nil)
}

func floatPtr(f float64) *float64 { return &f }

func validCreateRequest() *bookingTypes.BookingCreateRequest {
	return &bookingTypes.BookingCreateRequest{
		ServiceType: "courier",
		SenderDetails: &bookingTypes.PartyInput{
			Name:    "Asha Verma",
			Phone:   "9876543210",
			Email:   "asha@example.com",
			Address: "12 MG Road",
			Pincode: "110001",
		},
		ReceiverDetails: &bookingTypes.PartyInput{
			Name:    "Ravi Kumar",
			Phone:   "9123456780",
			Address: "4 Park Street",
			Pincode: "700016",
		},
		PackageDetails: &bookingTypes.PackageInput{
			Weight:     floatPtr(5),
			WeightUnit: "kilogram",
		},
	}
}

func TestCreateComputesPricingServerSide(t *testing.T) {
	svc := newTestService(t)

	res, err := svc.Create(validCreateRequest(), CreateOptions{CreatedBy: "ops"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	b := res.Booking

	if !strings.HasPrefix(b.BookingID, bookingid.Prefix) {
		t.Errorf("expected allocated booking id with %q prefix, got %q", bookingid.Prefix, b.BookingID)
	}
	if b.Status != bookingModel.StatusPending {
		t.Errorf("expected default status %q, got %q", bookingModel.StatusPending, b.Status)
	}
	if b.Pricing.Mode != bookingModel.PricingModeAutoWeight {
		t.Errorf("expected pricing mode %q, got %q", bookingModel.PricingModeAutoWeight, b.Pricing.Mode)
	}
	if b.Pricing.BasePrice != 500 || b.Pricing.PackagingCharge != 40 || b.Pricing.Tax != 97.2 || b.Pricing.TotalAmount != 637.2 {
		t.Errorf("unexpected pricing breakdown: %+v", b.Pricing)
	}
	if b.CreatedBy != "ops" {
		t.Errorf("expected created_by ops, got %q", b.CreatedBy)
	}
}

func TestCreateIgnoresClientPricingOnCanonicalPath(t *testing.T) {
	svc := newTestService(t)

	req := validCreateRequest()
	req.Pricing = &bookingTypes.PricingInput{
		BasePrice: 1, PackagingCharge: 1, Tax: 1, TotalAmount: 3, Mode: "MANUAL",
	}

	res, err := svc.Create(req, CreateOptions{})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if res.Booking.Pricing.TotalAmount != 637.2 {
		t.Errorf("client pricing leaked into canonical path: %+v", res.Booking.Pricing)
	}
}

func TestCreateManualPathHonorsSuppliedPricing(t *testing.T) {
	svc := newTestService(t)

	req := validCreateRequest()
	req.Pricing = &bookingTypes.PricingInput{
		BasePrice:       200,
		PackagingCharge: 16,
		Tax:             38.88,
		TotalAmount:     254.88,
		Mode:            "MANUAL",
	}

	res, err := svc.Create(req, CreateOptions{AcceptClientPricing: true, CreatedBy: "ops"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	p := res.Booking.Pricing
	if p.TotalAmount != 254.88 || p.Mode != bookingModel.PricingModeManual {
		t.Errorf("expected supplied pricing to be stored verbatim, got %+v", p)
	}
}

func TestCreateSuppliedIdentifier(t *testing.T) {
	svc := newTestService(t)

	req := validCreateRequest()
	req.BookingID = "  ep-manual-42 "

	res, err := svc.Create(req, CreateOptions{})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if res.Booking.BookingID != "EP-MANUAL-42" {
		t.Errorf("expected normalized identifier EP-MANUAL-42, got %q", res.Booking.BookingID)
	}

	// Same identifier again must be rejected without a second row.
	dup := validCreateRequest()
	dup.BookingID = "ep-manual-42"
	if _, err := svc.Create(dup, CreateOptions{}); err == nil {
		t.Fatal("expected conflict error for duplicate booking id, got nil")
	} else {
		var conflict *apperrors.ConflictError
		if !errors.As(err, &conflict) {
			t.Fatalf("expected ConflictError, got %T: %v", err, err)
		}
	}

	var count int64
	svc.DB.Model(&bookingModel.Booking{}).Where("booking_id = ?", "EP-MANUAL-42").Count(&count)
	if count != 1 {
		t.Errorf("expected exactly one row for EP-MANUAL-42, got %d", count)
	}
}

func TestCreateValidation(t *testing.T) {
	svc := newTestService(t)

	cases := []struct {
		name   string
		mutate func(*bookingTypes.BookingCreateRequest)
	}{
		{"missing sender", func(r *bookingTypes.BookingCreateRequest) { r.SenderDetails = nil }},
		{"missing receiver phone", func(r *bookingTypes.BookingCreateRequest) { r.ReceiverDetails.Phone = "" }},
		{"missing sender pincode", func(r *bookingTypes.BookingCreateRequest) { r.SenderDetails.Pincode = "" }},
		{"invalid service type", func(r *bookingTypes.BookingCreateRequest) { r.ServiceType = "teleport" }},
		{"invalid status", func(r *bookingTypes.BookingCreateRequest) { r.Status = "lost" }},
		{"no pricing input", func(r *bookingTypes.BookingCreateRequest) { r.PackageDetails.Weight = nil }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validCreateRequest()
			tc.mutate(req)
			_, err := svc.Create(req, CreateOptions{})
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			var verr *apperrors.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %T: %v", err, err)
			}
		})
	}
}

type stubNotifier struct {
	err   error
	calls int
}

func (s *stubNotifier) SendBookingConfirmation(b *bookingModel.Booking, attachmentPath string) error {
	s.calls++
	return s.err
}

type stubRenderer struct {
	err error
}

func (s *stubRenderer) Render(b *bookingModel.Booking) (string, string, error) {
	if s.err != nil {
		return "", "", s.err
	}
	return "INV-1", "/tmp/Invoice-" + b.BookingID + ".pdf", nil
}

func TestCreateSecondaryFailuresBecomeWarnings(t *testing.T) {
	svc := newTestService(t)
	svc.Notifier = &stubNotifier{err: errors.New("smtp unreachable")}
	svc.Invoices = &stubRenderer{err: errors.New("disk full")}

	res, err := svc.Create(validCreateRequest(), CreateOptions{SendEmail: true, GenerateInvoice: true})
	if err != nil {
		t.Fatalf("secondary failures must not fail the create: %v", err)
	}
	if len(res.Warnings) != 2 {
		t.Fatalf("expected 2 warnings, got %d: %v", len(res.Warnings), res.Warnings)
	}

	// The booking itself must have been persisted.
	if _, err := svc.Get(res.Booking.BookingID); err != nil {
		t.Errorf("booking should survive secondary failures: %v", err)
	}
}

func TestCreateStoresInvoiceReference(t *testing.T) {
	svc := newTestService(t)
	notifier := &stubNotifier{}
	svc.Notifier = notifier
	svc.Invoices = &stubRenderer{}

	res, err := svc.Create(validCreateRequest(), CreateOptions{SendEmail: true, GenerateInvoice: true})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if len(res.Warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", res.Warnings)
	}
	if notifier.calls != 1 {
		t.Errorf("expected one confirmation email, got %d", notifier.calls)
	}

	stored, err := svc.Get(res.Booking.BookingID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if stored.InvoiceRef == nil || *stored.InvoiceRef != "INV-1" {
		t.Errorf("invoice reference not persisted: %+v", stored.InvoiceRef)
	}
	if stored.InvoicePath == nil || *stored.InvoicePath == "" {
		t.Error("invoice path not persisted")
	}
}

func TestAppendTrackingDefaultsAndOrder(t *testing.T) {
	svc := newTestService(t)

	res, err := svc.Create(validCreateRequest(), CreateOptions{})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	ref := res.Booking.BookingID

	updates := []*bookingTypes.TrackingUpdateRequest{
		{Status: "confirmed", Location: "Delhi Hub", Description: "Booking confirmed"},
		{}, // everything omitted, defaults apply
		{Status: "in-transit", Location: "Kolkata Hub"},
	}
	for _, u := range updates {
		if _, err := svc.AppendTracking(ref, u, "ops"); err != nil {
			t.Fatalf("AppendTracking failed: %v", err)
		}
	}

	b, err := svc.Get(ref)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(b.TrackingHistory) != 3 {
		t.Fatalf("expected 3 tracking entries, got %d", len(b.TrackingHistory))
	}

	first, second, third := b.TrackingHistory[0], b.TrackingHistory[1], b.TrackingHistory[2]
	if first.Status != "confirmed" || first.Location != "Delhi Hub" {
		t.Errorf("entries out of order: first=%+v", first)
	}
	if second.Status != "No Status" || second.Location != "No Location" || second.Description != "N/A" {
		t.Errorf("defaults not applied: %+v", second)
	}
	if second.RecordedAt.IsZero() {
		t.Error("default timestamp not applied")
	}
	if third.Status != "in-transit" {
		t.Errorf("entries out of order: third=%+v", third)
	}

	// The booking status mirrors the latest non-empty entry.
	if b.Status != bookingModel.StatusInTransit {
		t.Errorf("expected status in-transit, got %q", b.Status)
	}
	if b.CurrentLocation == nil || *b.CurrentLocation != "Kolkata Hub" {
		t.Errorf("expected current location Kolkata Hub, got %v", b.CurrentLocation)
	}
	if b.UpdatedBy != "ops" {
		t.Errorf("expected updated_by ops, got %q", b.UpdatedBy)
	}
}

func TestAppendTrackingUnknownBooking(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.AppendTracking("EP0000000000000000", &bookingTypes.TrackingUpdateRequest{Status: "confirmed"}, "ops")
	if err == nil {
		t.Fatal("expected not found error, got nil")
	}
	var nf *apperrors.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %T: %v", err, err)
	}
}

func TestGetResolvesNumericPrimaryKey(t *testing.T) {
	svc := newTestService(t)

	res, err := svc.Create(validCreateRequest(), CreateOptions{})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	b, err := svc.Get(fmt.Sprintf("%d", res.Booking.ID))
	if err != nil {
		t.Fatalf("Get by numeric id failed: %v", err)
	}
	if b.BookingID != res.Booking.BookingID {
		t.Errorf("resolved wrong booking: %q vs %q", b.BookingID, res.Booking.BookingID)
	}
}

func TestUpdateReprices(t *testing.T) {
	svc := newTestService(t)

	res, err := svc.Create(validCreateRequest(), CreateOptions{})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	updated, err := svc.Update(res.Booking.BookingID, &bookingTypes.BookingUpdateRequest{
		PackageDetails: &bookingTypes.PackageInput{Weight: floatPtr(10), WeightUnit: "kilogram"},
	}, "ops")
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Pricing.BasePrice != 1000 || updated.Pricing.TotalAmount != 1274.4 {
		t.Errorf("pricing not recomputed after package change: %+v", updated.Pricing)
	}
}

func TestDeleteRemovesTrackingHistory(t *testing.T) {
	svc := newTestService(t)

	res, err := svc.Create(validCreateRequest(), CreateOptions{})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	ref := res.Booking.BookingID
	if _, err := svc.AppendTracking(ref, &bookingTypes.TrackingUpdateRequest{Status: "confirmed"}, "ops"); err != nil {
		t.Fatalf("AppendTracking failed: %v", err)
	}

	if err := svc.Delete(ref); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	if _, err := svc.Get(ref); err == nil {
		t.Error("expected booking to be gone after delete")
	}
	var orphans int64
	svc.DB.Model(&bookingModel.TrackingEvent{}).Count(&orphans)
	if orphans != 0 {
		t.Errorf("expected tracking events to be removed with the booking, found %d", orphans)
	}
}

func TestListFiltersAndPaginates(t *testing.T) {
	svc := newTestService(t)

	for i := 0; i < 3; i++ {
		req := validCreateRequest()
		req.BookingID = fmt.Sprintf("EPLIST%d", i)
		if i == 0 {
			req.Status = "delivered"
		}
		if _, err := svc.Create(req, CreateOptions{}); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	all, err := svc.List(ListParams{Page: 1, Limit: 2})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if all.Total != 3 || all.TotalPages != 2 {
		t.Errorf("expected total=3 totalPages=2, got total=%d totalPages=%d", all.Total, all.TotalPages)
	}

	delivered, err := svc.List(ListParams{Status: "delivered"})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if delivered.Total != 1 {
		t.Errorf("expected 1 delivered booking, got %d", delivered.Total)
	}

	search, err := svc.List(ListParams{Search: "eplist1"})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if search.Total != 1 {
		t.Errorf("expected case-insensitive id search to match 1 booking, got %d", search.Total)
	}

	byName, err := svc.List(ListParams{Search: "asha"})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if byName.Total != 3 {
		t.Errorf("expected sender name search to match all 3 bookings, got %d", byName.Total)
	}
}

func TestStats(t *testing.T) {
	svc := newTestService(t)

	pending := validCreateRequest()
	if _, err := svc.Create(pending, CreateOptions{}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	delivered := validCreateRequest()
	delivered.Status = "delivered"
	delivered.PaymentStatus = "paid"
	if _, err := svc.Create(delivered, CreateOptions{}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	stats, err := svc.Stats()
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.TotalBookings != 2 || stats.PendingBookings != 1 || stats.DeliveredBookings != 1 {
		t.Errorf("unexpected counters: %+v", stats)
	}
	if stats.TodayBookings != 2 {
		t.Errorf("expected 2 bookings today, got %d", stats.TodayBookings)
	}
	if stats.TotalRevenue != 637.2 {
		t.Errorf("expected revenue 637.2 from the paid booking, got %v", stats.TotalRevenue)
	}
}
