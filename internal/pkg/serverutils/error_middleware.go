package serverutils

import (
	"errors"

	"rag-kb-be/internal/apperror"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware converts errors escaping the controllers into a
// uniform JSON envelope. Sentinel errors map to their HTTP codes, fiber
// errors keep theirs, everything else is a 500.
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

		switch {
		case errors.Is(err, apperror.ErrNotFound):
			return ctx.Status(fiber.StatusNotFound).JSON(ErrorResponse(err.Error()))
		case errors.Is(err, apperror.ErrProvider):
			return ctx.Status(fiber.StatusBadGateway).JSON(ErrorResponse(err.Error()))
		case errors.Is(err, apperror.ErrExtraction):
			return ctx.Status(fiber.StatusBadRequest).JSON(ErrorResponse(err.Error()))
		default:
			return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse("internal server error"))
		}
	}
}
