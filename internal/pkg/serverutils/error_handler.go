package serverutils

import (
	"os"

	"hustlee-be/internal/pkg/apperror"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware translates errors bubbling out of controllers into the
// JSON error contract. Domain errors keep their message; unexpected errors are
// hidden in production.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		if appErr, ok := apperror.As(err); ok {
			body := ErrorBody{
				Success: false,
				Message: appErr.Message,
			}
			if len(appErr.Fields) > 0 {
				body.Errors = appErr.Fields
			}
			return ctx.Status(appErr.StatusCode()).JSON(body)
		}

		if fiberErr, ok := err.(*fiber.Error); ok {
			return ctx.Status(fiberErr.Code).JSON(ErrorBody{
				Success: false,
				Message: fiberErr.Message,
			})
		}

		message := "internal server error"
		if os.Getenv("GO_ENV") != "production" {
			message = err.Error()
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorBody{
			Success: false,
			Message: message,
		})
	}
}
