package presenters

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"wastenot/domain"
)

type Response struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func SuccessResponse(c *fiber.Ctx, data any, statusCode int, message string) error {
	return c.Status(statusCode).JSON(Response{
		Status:  domain.StatusSuccess,
		Message: message,
		Data:    data,
	})
}

func ErrorResponse(c *fiber.Ctx, statusCode int, message string, err error) error {
	return ErrorResponseWithData(c, statusCode, message, err, nil)
}

// ErrorResponseWithData reports a failure that still carries a usable payload,
// such as fallback content.
func ErrorResponseWithData(c *fiber.Ctx, statusCode int, message string, err error, data any) error {
	res := Response{
		Status:  domain.StatusError,
		Message: message,
		Data:    data,
	}
	if err != nil {
		res.Error = err.Error()
	}
	return c.Status(statusCode).JSON(res)
}

// StatusFromError maps service errors to HTTP status codes.
func StatusFromError(err error) int {
	switch {
	case errors.Is(err, domain.ErrItemNotFound), errors.Is(err, domain.ErrUserNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrImportFormat):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrConfiguration):
		return fiber.StatusPreconditionFailed
	case errors.Is(err, domain.ErrProvider):
		return fiber.StatusBadGateway
	case errors.Is(err, domain.ErrTokenExpired), errors.Is(err, domain.ErrTokenInvalid), errors.Is(err, domain.ErrTokenNotFound):
		return fiber.StatusUnauthorized
	default:
		return fiber.StatusInternalServerError
	}
}

// ServiceError responds with the status StatusFromError picks.
func ServiceError(c *fiber.Ctx, message string, err error) error {
	return ErrorResponse(c, StatusFromError(err), message, err)
}
