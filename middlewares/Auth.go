package middlewares

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

var ErrNoUser = errors.New("no authenticated user")

func Auth(c *fiber.Ctx) error {
	return JWTMiddleware(c)
}

// UserID extracts the authenticated user's id from the request locals. JWT
// claims decode numbers as float64; tests may set the local directly.
func UserID(c *fiber.Ctx) (uint, error) {
	switch v := c.Locals("user_id").(type) {
	case float64:
		return uint(v), nil
	case uint:
		return v, nil
	case int:
		return uint(v), nil
	case jwt.MapClaims:
		if id, ok := v["user_id"].(float64); ok {
			return uint(id), nil
		}
	}
	return 0, ErrNoUser
}
