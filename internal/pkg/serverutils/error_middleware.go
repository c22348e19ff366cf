package serverutils

import (
	"errors"

	"cim-memo-be/internal/pkg/apperror"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware converts service-layer errors into the JSON envelope.
// Classified errors map to stable status codes; anything else is a 500.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Message))
		}

		status := fiber.StatusInternalServerError
		switch apperror.KindOf(err) {
		case apperror.KindConfiguration:
			status = fiber.StatusPreconditionFailed
		case apperror.KindGeneration:
			status = fiber.StatusBadGateway
		case apperror.KindUpstreamAuth:
			status = fiber.StatusServiceUnavailable
		case apperror.KindConversion:
			status = fiber.StatusUnprocessableEntity
		case apperror.KindNotFound:
			status = fiber.StatusNotFound
		case apperror.KindUnauthorized:
			status = fiber.StatusUnauthorized
		}

		return ctx.Status(status).JSON(ErrorResponse(err.Error()))
	}
}
