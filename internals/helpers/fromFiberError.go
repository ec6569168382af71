package helper

import "github.com/gofiber/fiber/v2"

// FromFiberError converts a Transaction result (usually *fiber.Error)
// into the consistent JSON envelope via helper.JsonError.
// Anything else falls back to 500 with the original message.
func FromFiberError(c *fiber.Ctx, err error) error {
	if fe, ok := err.(*fiber.Error); ok {
		return JsonError(c, fe.Code, fe.Message)
	}
	return JsonError(c, fiber.StatusInternalServerError, err.Error())
}
