package controllers

import (
	"github.com/gofiber/fiber/v2"

	"stocksim.com/types"
)

// apology renders a rejection in the standard envelope.
func apology(c *fiber.Ctx, status int, err error) error {
	return c.Status(status).JSON(types.Response{
		Success: false,
		Error:   err.Error(),
	})
}

// flash sets the one-shot notice shown after a successful mutation.
func flash(c *fiber.Ctx, message string) {
	c.Cookie(&fiber.Cookie{
		Name:     "notice",
		Value:    message,
		SameSite: "Lax",
	})
}
