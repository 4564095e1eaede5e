package invoice

import (
	"fmt"
	"os"
	"path/filepath"

	bookingModel "courier-admin/models/booking"

	"github.com/go-pdf/fpdf"
	"github.com/google/uuid"
)

// Renderer produces PDF invoices for booking snapshots. Artifacts land in
// OutputDir as Invoice-<bookingID>.pdf and are referenced by a generated uuid.
type Renderer struct {
	OutputDir string
	Company   string
}

func NewRenderer(outputDir, company string) *Renderer {
	if outputDir == "" {
		outputDir = "storage/invoices"
	}
	if company == "" {
		company = "Engineers Parcel"
	}
	return &Renderer{OutputDir: outputDir, Company: company}
}

// Render writes the invoice PDF and returns its artifact reference and path.
func (r *Renderer) Render(b *bookingModel.Booking) (string, string, error) {
	if err := os.MkdirAll(r.OutputDir, os.ModePerm); err != nil {
		return "", "", fmt.Errorf("create invoice dir: %w", err)
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Invoice "+b.BookingID, false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, r.Company)
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 8, "Tax Invoice")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Booking ID: "+b.BookingID)
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, "Service: "+string(b.ServiceType))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", b.CreatedAt.Format("02 Jan 2006")))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(95, 7, "Sender")
	pdf.Cell(95, 7, "Receiver")
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(95, 6, b.Sender.Name)
	pdf.Cell(95, 6, b.Receiver.Name)
	pdf.Ln(6)
	pdf.Cell(95, 6, b.Sender.Phone)
	pdf.Cell(95, 6, b.Receiver.Phone)
	pdf.Ln(6)
	pdf.Cell(95, 6, "PIN: "+b.Sender.Pincode)
	pdf.Cell(95, 6, "PIN: "+b.Receiver.Pincode)
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(130, 8, "Description", "1", 0, "L", false, 0, "")
	pdf.CellFormat(60, 8, "Amount", "1", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)

	row := func(label string, amount float64) {
		pdf.CellFormat(130, 7, label, "1", 0, "L", false, 0, "")
		pdf.CellFormat(60, 7, fmt.Sprintf("%.2f", amount), "1", 1, "R", false, 0, "")
	}
	row("Base price", b.Pricing.BasePrice)
	row("Packaging charge", b.Pricing.PackagingCharge)
	row("GST", b.Pricing.Tax)
	if b.CouponDiscount > 0 {
		row("Coupon discount", -b.CouponDiscount)
	}

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(130, 8, "Total", "1", 0, "L", false, 0, "")
	pdf.CellFormat(60, 8, fmt.Sprintf("%.2f", b.Pricing.TotalAmount), "1", 1, "R", false, 0, "")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 9)
	pdf.Cell(0, 6, fmt.Sprintf("Payment: %s (%s)   Pricing mode: %s", b.PaymentMethod, b.PaymentStatus, b.Pricing.Mode))

	path := filepath.Join(r.OutputDir, fmt.Sprintf("Invoice-%s.pdf", b.BookingID))
	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", "", fmt.Errorf("write invoice pdf: %w", err)
	}

	ref := uuid.NewString()
	return ref, path, nil
}
