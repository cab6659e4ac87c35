package serverutils

import (
	"errors"

	"notes-sharing-be/internal/pkg/apperrors"
	"notes-sharing-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// NewErrorHandler renders typed service errors as their HTTP shape and hides
// everything else behind a generic 500. Validation errors render as an
// {"errors": [...]} list, every other typed error as {"message": "..."}.
func NewErrorHandler(log logger.ILogger) fiber.ErrorHandler {
	return func(ctx *fiber.Ctx, err error) error {
		if appErr, ok := apperrors.As(err); ok {
			if len(appErr.Fields) > 0 {
				return ctx.Status(appErr.Status).JSON(fiber.Map{
					"errors": appErr.Fields,
				})
			}
			if appErr.Status == fiber.StatusInternalServerError {
				log.Error("http", "unhandled service error", map[string]interface{}{
					"path":  ctx.Path(),
					"error": appErr.Error(),
				})
				return ctx.Status(appErr.Status).JSON(fiber.Map{
					"error": "Internal Server Error",
				})
			}
			return ctx.Status(appErr.Status).JSON(fiber.Map{
				"message": appErr.Message,
			})
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(fiber.Map{
				"message": fiberErr.Message,
			})
		}

		log.Error("http", "unhandled error", map[string]interface{}{
			"path":  ctx.Path(),
			"error": err.Error(),
		})
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal Server Error",
		})
	}
}
