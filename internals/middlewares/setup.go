package middlewares

import (
	"github.com/gofiber/fiber/v2"

	"bitacademy_backend/internals/middlewares/logger"
)

// SetupMiddlewares wires the base middleware chain (order matters:
// recovery first so the logger still sees panicking requests).
func SetupMiddlewares(app *fiber.App) {
	app.Use(RecoveryMiddleware())
	app.Use(logger.LoggerMiddleware())
	app.Use(CorsMiddleware())
	app.Use(GlobalRateLimiter())
}
