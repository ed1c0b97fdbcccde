package presenters

import (
	"blood-portal/domain"
	"errors"

	"github.com/gofiber/fiber/v2"
)

type Response struct {
	Status  bool        `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Code    string      `json:"code,omitempty"`
}

func SuccessResponse(c *fiber.Ctx, data interface{}, statusCode int, message string) error {
	return c.Status(statusCode).JSON(Response{
		Status:  true,
		Message: message,
		Data:    data,
	})
}

func ErrorResponse(c *fiber.Ctx, statusCode int, message string, err error) error {
	res := Response{
		Status:  false,
		Message: message,
	}
	if err != nil {
		res.Error = err.Error()
		res.Code = string(domain.KindOf(err))
	}
	return c.Status(statusCode).JSON(res)
}

var errInternal = domain.NewError(domain.KindInternal, "internal server error")

// DomainErrorResponse picks the status code from the error kind. Errors that
// did not come from the domain are not echoed to the client.
func DomainErrorResponse(c *fiber.Ctx, message string, err error) error {
	status := StatusFor(err)
	var de *domain.Error
	if status == fiber.StatusInternalServerError && !errors.As(err, &de) {
		return ErrorResponse(c, status, message, errInternal)
	}
	return ErrorResponse(c, status, message, err)
}

func StatusFor(err error) int {
	switch domain.KindOf(err) {
	case domain.KindValidation:
		return fiber.StatusBadRequest
	case domain.KindNotFound:
		return fiber.StatusNotFound
	case domain.KindInvalidTransition, domain.KindAlreadyFulfilled, domain.KindAlreadyCancelled:
		return fiber.StatusConflict
	case domain.KindBloodGroupMismatch, domain.KindInsufficientInventory:
		return fiber.StatusUnprocessableEntity
	case domain.KindUnauthorized:
		return fiber.StatusUnauthorized
	case domain.KindForbidden:
		return fiber.StatusForbidden
	}
	return fiber.StatusInternalServerError
}
