package utils

import (
	"errors"
	"log"

	"Backend-GnaasCMS/src/models"

	"github.com/gofiber/fiber/v2"
)

// HTTPStatus maps a service error to the response status and message the
// client sees. Unknown errors are logged and masked as a generic 500 so
// store internals never leak.
func HTTPStatus(err error) (int, string) {
	switch {
	case models.IsValidation(err):
		return fiber.StatusBadRequest, err.Error()
	case errors.Is(err, models.ErrDuplicateMark):
		return fiber.StatusConflict, err.Error()
	case errors.Is(err, models.ErrAttendanceClosed):
		return fiber.StatusBadRequest, err.Error()
	case errors.Is(err, models.ErrNoEligibleStudents):
		return fiber.StatusBadRequest, err.Error()
	case errors.Is(err, models.ErrActionNotFound):
		return fiber.StatusNotFound, err.Error()
	case errors.Is(err, models.ErrWrongActionType):
		return fiber.StatusBadRequest, err.Error()
	case errors.Is(err, models.ErrAlreadyUndone):
		return fiber.StatusConflict, err.Error()
	case errors.Is(err, models.ErrNotFound):
		return fiber.StatusNotFound, "record not found"
	default:
		log.Println("❌ Internal error:", err)
		return fiber.StatusInternalServerError, "internal server error"
	}
}

// Fail writes the error response for a service error.
func Fail(c *fiber.Ctx, err error) error {
	status, msg := HTTPStatus(err)
	return c.Status(status).JSON(models.ErrorResponse{Status: status, Message: msg})
}
