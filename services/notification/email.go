package notification

import (
	"encoding/base64"
	"fmt"
	"net/smtp"
	"os"
	"path/filepath"
	"strings"
	"time"

	"courier-admin/logger"
	bookingModel "courier-admin/models/booking"
)

const sendTimeout = 15 * time.Second

// Mailer delivers email over SMTP. When the SMTP env vars are absent it logs
// the message instead of sending, so local development works without creds.
type Mailer struct {
	Host     string
	Port     string
	Username string
	Password string
	FromName string
}

func NewMailerFromEnv() *Mailer {
	return &Mailer{
		Host:     os.Getenv("SMTP_HOST"),
		Port:     os.Getenv("SMTP_PORT"),
		Username: os.Getenv("SMTP_USERNAME"),
		Password: os.Getenv("SMTP_PASSWORD"),
		FromName: os.Getenv("SMTP_FROM_NAME"),
	}
}

func (m *Mailer) configured() bool {
	return m.Host != "" && m.Port != "" && m.Username != "" && m.Password != ""
}

// Send delivers one message. attachmentPath may be empty. The SMTP exchange
// is bounded by a timeout; the caller treats any error as non-fatal.
func (m *Mailer) Send(to, subject, text, html, attachmentPath string) error {
	if !m.configured() {
		logger.Printf("[MOCK EMAIL] to:%s subject:%s attachment:%s", to, subject, attachmentPath)
		return nil
	}

	msg, err := m.buildMessage(to, subject, text, html, attachmentPath)
	if err != nil {
		return err
	}

	from := m.Username
	addr := fmt.Sprintf("%s:%s", m.Host, m.Port)
	auth := smtp.PlainAuth("", m.Username, m.Password, m.Host)

	done := make(chan error, 1)
	go func() {
		done <- smtp.SendMail(addr, auth, from, []string{to}, msg)
	}()

	select {
	case err := <-done:
		return err
	case <-time.After(sendTimeout):
		return fmt.Errorf("smtp send to %s timed out after %s", to, sendTimeout)
	}
}

// SendBookingConfirmation emails the sender a confirmation, attaching the
// invoice PDF when one was rendered.
func (m *Mailer) SendBookingConfirmation(b *bookingModel.Booking, attachmentPath string) error {
	if b.Sender.Email == nil || *b.Sender.Email == "" {
		return fmt.Errorf("booking %s has no sender email", b.BookingID)
	}

	subject := "Booking Confirmation - " + b.BookingID
	text := fmt.Sprintf(
		"Hi %s,\n\n"+
			"Your booking %s has been confirmed.\n"+
			"Service: %s\n"+
			"Receiver: %s, %s\n"+
			"Total amount: %.2f\n\n"+
			"You can track your parcel with the booking id above.\n",
		b.Sender.Name, b.BookingID, b.ServiceType, b.Receiver.Name, b.Receiver.Pincode, b.Pricing.TotalAmount,
	)
	html := bookingConfirmationHTML(b)

	return m.Send(*b.Sender.Email, subject, text, html, attachmentPath)
}

func bookingConfirmationHTML(b *bookingModel.Booking) string {
	return fmt.Sprintf(`<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>Booking Confirmation</title>
<style>
body { background:#f5f7fb; font-family:Arial, Helvetica, sans-serif; color:#222; }
.container { max-width:640px; margin:20px auto; }
.card { background:#fff; border:1px solid #e6eef6; padding:24px; border-radius:8px; }
.row { margin:6px 0; }
.label { color:#667; }
.total { font-size:18px; font-weight:bold; margin-top:12px; }
</style>
</head>
<body>
<div class="container">
  <div class="card">
    <h2>Booking Confirmed</h2>
    <p>Hi %s, your parcel booking has been confirmed.</p>
    <div class="row"><span class="label">Booking ID:</span> <strong>%s</strong></div>
    <div class="row"><span class="label">Service:</span> %s</div>
    <div class="row"><span class="label">From:</span> %s (%s)</div>
    <div class="row"><span class="label">To:</span> %s (%s)</div>
    <div class="row"><span class="label">Payment:</span> %s / %s</div>
    <div class="total">Total: %.2f</div>
    <p>Track your parcel anytime using the booking id above.</p>
  </div>
</div>
</body>
</html>`,
		b.Sender.Name, b.BookingID, b.ServiceType,
		b.Sender.Name, b.Sender.Pincode,
		b.Receiver.Name, b.Receiver.Pincode,
		b.PaymentMethod, b.PaymentStatus,
		b.Pricing.TotalAmount,
	)
}

// buildMessage assembles a MIME message: multipart/alternative for the text
// and html bodies, wrapped in multipart/mixed when an attachment is present.
func (m *Mailer) buildMessage(to, subject, text, html, attachmentPath string) ([]byte, error) {
	from := fmt.Sprintf("%s <%s>", m.FromName, m.Username)
	altBoundary := "----=_ALT_BOUNDARY"
	mixedBoundary := "----=_MIXED_BOUNDARY"

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("From: %s\r\n", from))
	sb.WriteString(fmt.Sprintf("To: %s\r\n", to))
	sb.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	sb.WriteString("MIME-Version: 1.0\r\n")

	writeBodies := func(w *strings.Builder) {
		w.WriteString(fmt.Sprintf("Content-Type: multipart/alternative; boundary=\"%s\"\r\n\r\n", altBoundary))
		if text != "" {
			w.WriteString(fmt.Sprintf("--%s\r\n", altBoundary))
			w.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
			w.WriteString(text + "\r\n")
		}
		if html != "" {
			w.WriteString(fmt.Sprintf("--%s\r\n", altBoundary))
			w.WriteString("Content-Type: text/html; charset=utf-8\r\n\r\n")
			w.WriteString(html + "\r\n")
		}
		w.WriteString(fmt.Sprintf("--%s--\r\n", altBoundary))
	}

	if attachmentPath == "" {
		writeBodies(&sb)
		return []byte(sb.String()), nil
	}

	data, err := os.ReadFile(attachmentPath)
	if err != nil {
		return nil, fmt.Errorf("read attachment: %w", err)
	}
	filename := filepath.Base(attachmentPath)

	sb.WriteString(fmt.Sprintf("Content-Type: multipart/mixed; boundary=\"%s\"\r\n\r\n", mixedBoundary))
	sb.WriteString(fmt.Sprintf("--%s\r\n", mixedBoundary))
	writeBodies(&sb)
	sb.WriteString("\r\n")

	sb.WriteString(fmt.Sprintf("--%s\r\n", mixedBoundary))
	sb.WriteString("Content-Type: application/pdf\r\n")
	sb.WriteString("Content-Transfer-Encoding: base64\r\n")
	sb.WriteString(fmt.Sprintf("Content-Disposition: attachment; filename=\"%s\"\r\n\r\n", filename))

	encoded := base64.StdEncoding.EncodeToString(data)
	// Wrap base64 at 76 characters per RFC 2045.
	for len(encoded) > 76 {
		sb.WriteString(encoded[:76] + "\r\n")
		encoded = encoded[76:]
	}
	sb.WriteString(encoded + "\r\n")
	sb.WriteString(fmt.Sprintf("--%s--\r\n", mixedBoundary))

	return []byte(sb.String()), nil
}
