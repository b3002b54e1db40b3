// Package response provides JSON response helpers for Fiber handlers.
package response

import "github.com/gofiber/fiber/v2"

// Success sends a 200 response with a message and payload.
func Success(c *fiber.Ctx, message string, data interface{}) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": message,
		"data":    data,
	})
}

// Error sends an error response with the given status code.
func Error(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}
