package booking

import (
	"courier-admin/apperrors"
	"courier-admin/logger"
	bookingService "courier-admin/services/booking"
	"courier-admin/services/pricing"
	"courier-admin/types"
	bookingTypes "courier-admin/types/booking"
	"courier-admin/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// BookingController handles booking-related HTTP requests
type BookingController struct {
	Service *bookingService.Service
	Logger  *logger.AsyncLogger
}

// NewBookingController creates a new booking controller
func NewBookingController(service *bookingService.Service, asyncLogger *logger.AsyncLogger) *BookingController {
	return &BookingController{Service: service, Logger: asyncLogger}
}

func actorUsername(c *fiber.Ctx) string {
	claims, ok := c.Locals("user").(jwt.MapClaims)
	if !ok {
		return ""
	}
	if username, ok := claims["username"].(string); ok {
		return username
	}
	return ""
}

func (bc *BookingController) fail(c *fiber.Ctx, context string, err error) error {
	status := apperrors.HTTPStatus(err)
	if status == fiber.StatusInternalServerError {
		logger.Error(context, err)
	}
	return c.Status(status).JSON(types.ApiResponse{
		Status:  status,
		Message: apperrors.Message(err),
	})
}

// Store creates a booking with server-side pricing.
func (bc *BookingController) Store(c *fiber.Ctx) error {
	return bc.store(c, false)
}

// StoreManual creates a booking accepting a precomputed pricing override.
func (bc *BookingController) StoreManual(c *fiber.Ctx) error {
	return bc.store(c, true)
}

func (bc *BookingController) store(c *fiber.Ctx, acceptClientPricing bool) error {
	var req bookingTypes.BookingCreateRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	result, err := bc.Service.Create(&req, bookingService.CreateOptions{
		AcceptClientPricing: acceptClientPricing,
		SendEmail:           req.SendEmail,
		GenerateInvoice:     req.GenerateInvoice,
		CreatedBy:           actorUsername(c),
	})
	if err != nil {
		return bc.fail(c, "Failed to create booking", err)
	}

	bc.Logger.Log(utils.CreateSanitizedLogEntry(c))

	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Booking created successfully",
		Data:    result,
	})
}

// Index lists bookings with pagination, status filter and search.
func (bc *BookingController) Index(c *fiber.Ctx) error {
	params := bookingService.ListParams{
		Page:   c.QueryInt("page", 1),
		Limit:  c.QueryInt("limit", 10),
		Status: c.Query("status"),
		Search: c.Query("search"),
	}

	result, err := bc.Service.List(params)
	if err != nil {
		return bc.fail(c, "Failed to list bookings", err)
	}
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Bookings retrieved",
		Data:    result,
	})
}

// Show returns one booking with its tracking history.
func (bc *BookingController) Show(c *fiber.Ctx) error {
	b, err := bc.Service.Get(c.Params("id"))
	if err != nil {
		return bc.fail(c, "Failed to load booking", err)
	}
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Booking retrieved",
		Data:    b,
	})
}

// Update applies partial field edits to a booking.
func (bc *BookingController) Update(c *fiber.Ctx) error {
	var req bookingTypes.BookingUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	b, err := bc.Service.Update(c.Params("id"), &req, actorUsername(c))
	if err != nil {
		return bc.fail(c, "Failed to update booking", err)
	}

	bc.Logger.Log(utils.CreateSanitizedLogEntry(c))

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Booking updated successfully",
		Data:    b,
	})
}

// Destroy permanently removes a booking.
func (bc *BookingController) Destroy(c *fiber.Ctx) error {
	if err := bc.Service.Delete(c.Params("id")); err != nil {
		return bc.fail(c, "Failed to delete booking", err)
	}
	logger.Success("Booking deleted: " + c.Params("id"))
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Booking deleted successfully",
	})
}

// AppendTracking appends a tracking entry and updates the current status.
func (bc *BookingController) AppendTracking(c *fiber.Ctx) error {
	var req bookingTypes.TrackingUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	b, err := bc.Service.AppendTracking(c.Params("id"), &req, actorUsername(c))
	if err != nil {
		return bc.fail(c, "Failed to append tracking entry", err)
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Tracking updated successfully",
		Data:    b,
	})
}

// Stats returns the admin dashboard counters.
func (bc *BookingController) Stats(c *fiber.Ctx) error {
	stats, err := bc.Service.Stats()
	if err != nil {
		return bc.fail(c, "Failed to compute stats", err)
	}
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Stats retrieved",
		Data:    stats,
	})
}

// ComputePricing exposes the pricing calculator without creating a booking.
func (bc *BookingController) ComputePricing(c *fiber.Ctx) error {
	var req bookingTypes.ComputePricingRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	breakdown, err := pricing.Compute(req.Weight, req.WeightUnit, req.Value)
	if err != nil {
		return bc.fail(c, "Failed to compute pricing", err)
	}
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Pricing computed",
		Data:    breakdown,
	})
}

// Track is the public tracking lookup for the customer site. It exposes only
// the delivery progress, not the admin fields.
func (bc *BookingController) Track(c *fiber.Ctx) error {
	b, err := bc.Service.Get(c.Params("bookingId"))
	if err != nil {
		return bc.fail(c, "Failed to load tracking", err)
	}
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Tracking retrieved",
		Data: fiber.Map{
			"booking_id":         b.BookingID,
			"status":             b.Status,
			"current_location":   b.CurrentLocation,
			"estimated_delivery": b.EstimatedDelivery,
			"tracking_history":   b.TrackingHistory,
		},
	})
}
