package middleware

import (
	"runtime/debug"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/victorexecutive/ops-service/internal/apperror"
)

// Recovery turns panics into 500 responses. The stack trace goes to the log,
// never to the client.
func Recovery(logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered",
					zap.Any("panic", r),
					zap.ByteString("stack", debug.Stack()),
				)
				err = apperror.Internal("")
			}
		}()

		return c.Next()
	}
}
