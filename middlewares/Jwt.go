package middlewares

import (
	"encoding/base64"
	"fmt"
	"os"
	"time"

	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"stocksim.com/types"
)

// JWTMiddleware validates the session token from the Authorization header or
// the session cookie and copies the claims into the request locals.
func JWTMiddleware(c *fiber.Ctx) error {
	return jwtware.New(jwtware.Config{
		SigningKey:     getSigningKeyOrPanic(),
		TokenLookup:    "header:Authorization,cookie:session",
		AuthScheme:     "Bearer",
		SuccessHandler: jwtSuccessHandler,
		ErrorHandler:   jwtErrorHandler,
	})(c)
}

func jwtSuccessHandler(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)

	c.Locals("claims", claims)
	c.Locals("user_id", claims["user_id"])
	c.Locals("username", claims["username"])

	return c.Next()
}

func jwtErrorHandler(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusForbidden).JSON(types.Response{
		Success: false,
		Error:   "Unauthorized - " + err.Error(),
	})
}

// NewSessionToken mints the HS256 session token issued at login.
func NewSessionToken(user *types.User) (string, error) {
	key, err := getSigningKey()
	if err != nil {
		return "", err
	}

	claims := jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"exp":      time.Now().Add(24 * time.Hour).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
}

func getSigningKeyOrPanic() jwtware.SigningKey {
	key, err := getSigningKey()
	if err != nil {
		panic(err)
	}
	return jwtware.SigningKey{Key: key, JWTAlg: "HS256"}
}

// getSigningKey retrieves the JWT signing key from the environment
func getSigningKey() ([]byte, error) {
	encodedSecret := os.Getenv("JWT_SECRET")
	if encodedSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable not set")
	}

	decodedSecret, err := base64.StdEncoding.DecodeString(encodedSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to decode JWT_SECRET: %w", err)
	}

	return decodedSecret, nil
}
