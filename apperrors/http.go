package apperrors

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// HTTPStatus maps a service error to the status code the admin API returns.
// Unknown errors are internal.
func HTTPStatus(err error) int {
	var (
		validation *ValidationError
		conflict   *ConflictError
		notFound   *NotFoundError
		dependency *DependencyError
	)
	switch {
	case errors.As(err, &validation):
		return fiber.StatusBadRequest
	case errors.As(err, &conflict):
		return fiber.StatusConflict
	case errors.As(err, &notFound):
		return fiber.StatusNotFound
	case errors.As(err, &dependency):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

// Message returns the client-safe message for an error: taxonomy errors speak
// for themselves, anything else is masked.
func Message(err error) string {
	status := HTTPStatus(err)
	if status == fiber.StatusInternalServerError {
		return "Server error"
	}
	return err.Error()
}
