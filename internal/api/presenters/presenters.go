package presenters

import (
	"log"

	"github.com/gofiber/fiber/v2"
)

// SuccessResponse writes the resource itself as the body, matching the wire
// contract clients consume.
func SuccessResponse(c *fiber.Ctx, data interface{}, status int) error {
	if data == nil {
		return c.SendStatus(status)
	}
	return c.Status(status).JSON(data)
}

func MessageResponse(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"message": message})
}

func ErrorResponse(c *fiber.Ctx, status int, message string, err error) error {
	if err != nil {
		log.Printf("%s: %v", message, err)
	}
	return c.Status(status).JSON(fiber.Map{"message": message})
}
