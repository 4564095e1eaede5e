package pincode

import (
	"courier-admin/apperrors"
	"courier-admin/logger"
	pincodeService "courier-admin/services/pincode"
	"courier-admin/types"
	pincodeTypes "courier-admin/types/pincode"
	"courier-admin/utils"

	"github.com/gofiber/fiber/v2"
)

// PincodeController handles serviceable pincode management.
type PincodeController struct {
	Service *pincodeService.Service
}

func NewPincodeController(service *pincodeService.Service) *PincodeController {
	return &PincodeController{Service: service}
}

func (pc *PincodeController) fail(c *fiber.Ctx, context string, err error) error {
	status := apperrors.HTTPStatus(err)
	if status == fiber.StatusInternalServerError {
		logger.Error(context, err)
	}
	return c.Status(status).JSON(types.ApiResponse{
		Status:  status,
		Message: apperrors.Message(err),
	})
}

// Index lists all pincodes sorted by pincode.
func (pc *PincodeController) Index(c *fiber.Ctx) error {
	pincodes, err := pc.Service.List()
	if err != nil {
		return pc.fail(c, "Failed to list pincodes", err)
	}
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Pincodes retrieved",
		Data:    pincodes,
	})
}

// Store adds a new serviceable pincode.
func (pc *PincodeController) Store(c *fiber.Ctx) error {
	var req pincodeTypes.PincodeRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	p, err := pc.Service.Create(&req)
	if err != nil {
		return pc.fail(c, "Failed to create pincode", err)
	}
	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Pincode created successfully",
		Data:    p,
	})
}

// Update edits a pincode's city/state.
func (pc *PincodeController) Update(c *fiber.Ctx) error {
	id, err := utils.ParseIDParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid pincode id",
		})
	}

	var req pincodeTypes.PincodeRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	p, err := pc.Service.Update(id, &req)
	if err != nil {
		return pc.fail(c, "Failed to update pincode", err)
	}
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Pincode updated successfully",
		Data:    p,
	})
}

// Destroy removes a pincode.
func (pc *PincodeController) Destroy(c *fiber.Ctx) error {
	id, err := utils.ParseIDParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid pincode id",
		})
	}
	if err := pc.Service.Delete(id); err != nil {
		return pc.fail(c, "Failed to delete pincode", err)
	}
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Pincode deleted successfully",
	})
}

// Toggle flips a pincode's serviceability.
func (pc *PincodeController) Toggle(c *fiber.Ctx) error {
	id, err := utils.ParseIDParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid pincode id",
		})
	}
	p, err := pc.Service.Toggle(id)
	if err != nil {
		return pc.fail(c, "Failed to toggle pincode", err)
	}
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Pincode toggled successfully",
		Data:    p,
	})
}

// Check is the public serviceability lookup.
func (pc *PincodeController) Check(c *fiber.Ctx) error {
	result, err := pc.Service.Check(c.Context(), c.Params("pincode"))
	if err != nil {
		return pc.fail(c, "Failed to check pincode", err)
	}
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Pincode checked",
		Data:    result,
	})
}
