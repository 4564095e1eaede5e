package email

import (
	"courier-admin/logger"
	"courier-admin/services/notification"
	"courier-admin/types"
	emailTypes "courier-admin/types/email"

	"github.com/gofiber/fiber/v2"
)

// EmailController exposes the ad-hoc email relay used by the admin panel.
type EmailController struct {
	Mailer *notification.Mailer
}

func NewEmailController(mailer *notification.Mailer) *EmailController {
	return &EmailController{Mailer: mailer}
}

// Send delivers an arbitrary email on behalf of an admin.
func (ec *EmailController) Send(c *fiber.Ctx) error {
	var req emailTypes.SendRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if msg := req.Validate(); msg != "" {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: msg,
		})
	}

	if err := ec.Mailer.Send(req.To, req.Subject, req.Text, req.HTML, ""); err != nil {
		logger.Error("Failed to send email to "+req.To, err)
		return c.Status(fiber.StatusBadGateway).JSON(types.ApiResponse{
			Status:  fiber.StatusBadGateway,
			Message: "Failed to send email",
		})
	}

	logger.Success("Email sent to " + req.To)
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Email sent successfully",
	})
}
