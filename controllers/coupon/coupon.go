package coupon

import (
	"time"

	"courier-admin/apperrors"
	"courier-admin/logger"
	couponService "courier-admin/services/coupon"
	"courier-admin/types"
	couponTypes "courier-admin/types/coupon"
	"courier-admin/utils"

	"github.com/gofiber/fiber/v2"
)

// CouponController handles coupon management and validation.
type CouponController struct {
	Service *couponService.Service
}

func NewCouponController(service *couponService.Service) *CouponController {
	return &CouponController{Service: service}
}

func (cc *CouponController) fail(c *fiber.Ctx, context string, err error) error {
	status := apperrors.HTTPStatus(err)
	if status == fiber.StatusInternalServerError {
		logger.Error(context, err)
	}
	return c.Status(status).JSON(types.ApiResponse{
		Status:  status,
		Message: apperrors.Message(err),
	})
}

// Index lists all coupons, newest first.
func (cc *CouponController) Index(c *fiber.Ctx) error {
	coupons, err := cc.Service.List()
	if err != nil {
		return cc.fail(c, "Failed to list coupons", err)
	}
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Coupons retrieved",
		Data:    coupons,
	})
}

// Store creates a new coupon.
func (cc *CouponController) Store(c *fiber.Ctx) error {
	var req couponTypes.CouponCreateRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	coupon, err := cc.Service.Create(&req)
	if err != nil {
		return cc.fail(c, "Failed to create coupon", err)
	}
	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Coupon created successfully",
		Data:    coupon,
	})
}

// Update replaces a coupon's descriptor fields.
func (cc *CouponController) Update(c *fiber.Ctx) error {
	id, err := utils.ParseIDParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid coupon id",
		})
	}

	var req couponTypes.CouponCreateRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	coupon, err := cc.Service.Update(id, &req)
	if err != nil {
		return cc.fail(c, "Failed to update coupon", err)
	}
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Coupon updated successfully",
		Data:    coupon,
	})
}

// Destroy removes a coupon.
func (cc *CouponController) Destroy(c *fiber.Ctx) error {
	id, err := utils.ParseIDParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid coupon id",
		})
	}
	if err := cc.Service.Delete(id); err != nil {
		return cc.fail(c, "Failed to delete coupon", err)
	}
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Coupon deleted successfully",
	})
}

// Toggle flips a coupon's active flag.
func (cc *CouponController) Toggle(c *fiber.Ctx) error {
	id, err := utils.ParseIDParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid coupon id",
		})
	}
	coupon, err := cc.Service.Toggle(id)
	if err != nil {
		return cc.fail(c, "Failed to toggle coupon", err)
	}
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Coupon toggled successfully",
		Data:    coupon,
	})
}

// Validate checks a coupon against an order value without consuming it.
func (cc *CouponController) Validate(c *fiber.Ctx) error {
	var req couponTypes.ValidateRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	result, err := cc.Service.Validate(req.Code, req.OrderValue, time.Now())
	if err != nil {
		return cc.fail(c, "Failed to validate coupon", err)
	}
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Coupon validated",
		Data:    result,
	})
}

// Redeem increments a coupon's usage counter.
func (cc *CouponController) Redeem(c *fiber.Ctx) error {
	coupon, err := cc.Service.Redeem(c.Params("code"))
	if err != nil {
		return cc.fail(c, "Failed to redeem coupon", err)
	}
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Coupon redeemed",
		Data:    coupon,
	})
}
