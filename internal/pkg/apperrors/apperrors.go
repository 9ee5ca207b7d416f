package apperrors

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// Error kinds. Services wrap these with fmt.Errorf("%w: ...") so handlers can
// classify with errors.Is without matching on message text.
var (
	ErrValidation        = errors.New("validation failed")
	ErrNotFound          = errors.New("not found")
	ErrForbidden         = errors.New("forbidden")
	ErrInvalidTransition = errors.New("invalid transition")
	ErrQuery             = errors.New("invalid query")
	ErrPersistence       = errors.New("persistence failure")
)

// StatusCode maps an error kind to the HTTP status the response envelope uses.
// Unknown errors are treated as persistence failures.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, ErrValidation), errors.Is(err, ErrQuery):
		return fiber.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, ErrInvalidTransition):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// PublicMessage returns the message safe to surface to the caller. Persistence
// and unclassified errors are replaced with a generic retry message so internal
// detail never leaves the boundary.
func PublicMessage(err error) string {
	switch {
	case errors.Is(err, ErrValidation),
		errors.Is(err, ErrQuery),
		errors.Is(err, ErrNotFound),
		errors.Is(err, ErrForbidden),
		errors.Is(err, ErrInvalidTransition):
		return err.Error()
	default:
		return "Something went wrong, please try again"
	}
}
