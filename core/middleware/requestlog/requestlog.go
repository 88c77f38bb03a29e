package requestlog

import (
	"time"

	"chartserve/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// New creates a middleware that writes one log line per request with the
// path and final status. Successful responses are logged at Info, anything
// with a status of 400 or above at Warn.
//
// Errors returned by the rest of the chain are resolved through the
// application's error handler here, so the logged status is the one sent.
func New(log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		if chainErr := c.Next(); chainErr != nil {
			if err := c.App().Config().ErrorHandler(c, chainErr); err != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		l := logger.WithRayID(log, c)
		fields := []zap.Field{
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.Duration("duration", time.Since(start)),
		}

		if status >= fiber.StatusBadRequest {
			l.Warn("Request failed", fields...)
		} else {
			l.Info("Served", fields...)
		}
		return nil
	}
}
