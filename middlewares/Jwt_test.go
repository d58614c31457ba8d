package middlewares

import (
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stocksim.com/types"
)

func authTestApp(t *testing.T) *fiber.App {
	t.Setenv("JWT_SECRET", base64.StdEncoding.EncodeToString([]byte("test-secret")))

	app := fiber.New()
	app.Get("/whoami", Auth, func(c *fiber.Ctx) error {
		id, err := UserID(c)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"id": id, "username": c.Locals("username")})
	})
	return app
}

func TestSessionTokenViaHeader(t *testing.T) {
	app := authTestApp(t)

	token, err := NewSessionToken(&types.User{ID: 7, Username: "alice"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestSessionTokenViaCookie(t *testing.T) {
	app := authTestApp(t)

	token, err := NewSessionToken(&types.User{ID: 7, Username: "alice"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: token})
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestMissingTokenForbidden(t *testing.T) {
	app := authTestApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/whoami", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestGarbageTokenForbidden(t *testing.T) {
	app := authTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestUserIDLocalsShapes(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		c.Locals("user_id", float64(42))
		id, err := UserID(c)
		require.NoError(t, err)
		assert.Equal(t, uint(42), id)

		c.Locals("user_id", nil)
		_, err = UserID(c)
		assert.ErrorIs(t, err, ErrNoUser)
		return nil
	})
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
