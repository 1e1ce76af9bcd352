package response

import (
	"errors"

	"certportal/internal/core/domain"

	"github.com/gofiber/fiber/v2"
)

// Response represents a standard API response
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// Success sends a success response
func Success(c *fiber.Ctx, message string, data interface{}) error {
	return c.JSON(Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Created sends a 201 created response
func Created(c *fiber.Ctx, message string, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Error sends an error response
func Error(c *fiber.Ctx, statusCode int, message string) error {
	return c.Status(statusCode).JSON(Response{
		Success: false,
		Error:   message,
	})
}

// BadRequest sends a 400 bad request response
func BadRequest(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadRequest, message)
}

// Unauthorized sends a 401 unauthorized response
func Unauthorized(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusUnauthorized, message)
}

// Forbidden sends a 403 forbidden response
func Forbidden(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusForbidden, message)
}

// NotFound sends a 404 not found response
func NotFound(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusNotFound, message)
}

// Conflict sends a 409 conflict response
func Conflict(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusConflict, message)
}

// BadGateway sends a 502 response (upstream collaborator failed)
func BadGateway(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadGateway, message)
}

// InternalServerError sends a 500 internal server error response
func InternalServerError(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusInternalServerError, message)
}

// FromError maps a domain error to its status code.
// Unknown errors become a 500 with fallback as the message.
func FromError(c *fiber.Ctx, err error, fallback string) error {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		return BadRequest(c, ve.Error())
	case errors.Is(err, domain.ErrValidation):
		return BadRequest(c, err.Error())
	case errors.Is(err, domain.ErrInvalidCredentials):
		return Unauthorized(c, "Invalid credentials")
	case errors.Is(err, domain.ErrTokenExpired):
		return Unauthorized(c, "Token has expired")
	case errors.Is(err, domain.ErrTokenInvalid), errors.Is(err, domain.ErrUnauthorized):
		return Unauthorized(c, "Invalid or expired token")
	case errors.Is(err, domain.ErrForbidden):
		return Forbidden(c, "You don't have permission to access this resource")
	case errors.Is(err, domain.ErrNotFound):
		return NotFound(c, err.Error())
	case errors.Is(err, domain.ErrDuplicateAccount):
		return Conflict(c, "Account already exists")
	case errors.Is(err, domain.ErrInvalidTransition):
		return Conflict(c, err.Error())
	case errors.Is(err, domain.ErrPaymentFailed):
		return BadGateway(c, err.Error())
	default:
		return InternalServerError(c, fallback)
	}
}
