package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/victorexecutive/ops-service/internal/apperror"
)

type errorBody struct {
	Code    apperror.Code `json:"code"`
	Message string        `json:"message"`
	Details any           `json:"details,omitempty"`
}

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

// NewErrorHandler builds the single error boundary of the API. Typed domain
// errors map to their status and code; everything else is logged in full and
// surfaced as a generic internal error.
func NewErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var appErr *apperror.Error
		if errors.As(err, &appErr) {
			return c.Status(appErr.Status).JSON(errorEnvelope{Error: errorBody{
				Code:    appErr.Code,
				Message: appErr.Message,
				Details: appErr.Details,
			}})
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			code := apperror.CodeInternal
			if fiberErr.Code == fiber.StatusNotFound {
				code = apperror.CodeNotFound
			}
			return c.Status(fiberErr.Code).JSON(errorEnvelope{Error: errorBody{
				Code:    code,
				Message: fiberErr.Message,
			}})
		}

		logger.Error("unhandled error",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Error(err),
		)

		return c.Status(fiber.StatusInternalServerError).JSON(errorEnvelope{Error: errorBody{
			Code:    apperror.CodeInternal,
			Message: "Internal server error",
		}})
	}
}
