package controllers

import (
	"encoding/base64"
	"net/http"
	"net/url"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authTestApp(t *testing.T) *fiber.App {
	t.Setenv("JWT_SECRET", base64.StdEncoding.EncodeToString([]byte("test-secret")))

	ac := NewAuthController()
	app := fiber.New()
	app.Get("/login", ac.LoginPage)
	app.Post("/login", ac.Login)
	app.Get("/register", ac.RegisterPage)
	app.Post("/register", ac.Register)
	app.Get("/logout", ac.Logout)
	return app
}

func sessionCookie(resp *http.Response) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == "session" {
			return c
		}
	}
	return nil
}

func TestRegisterThenLoginFlow(t *testing.T) {
	setupTestDB(t)
	app := authTestApp(t)

	resp, err := app.Test(formRequest(http.MethodPost, "/register", url.Values{
		"username":         {"bob"},
		"password":         {"hunter2"},
		"confirm_password": {"hunter2"},
	}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))

	resp, err = app.Test(formRequest(http.MethodPost, "/login", url.Values{
		"username": {"bob"},
		"password": {"hunter2"},
	}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))

	cookie := sessionCookie(resp)
	require.NotNil(t, cookie)
	assert.NotEmpty(t, cookie.Value)
	assert.True(t, cookie.HttpOnly)
}

func TestRegisterRejections(t *testing.T) {
	setupTestDB(t)
	app := authTestApp(t)

	resp, err := app.Test(formRequest(http.MethodPost, "/register", url.Values{
		"username":         {"bob"},
		"password":         {"hunter2"},
		"confirm_password": {"hunter3"},
	}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	form := url.Values{
		"username":         {"bob"},
		"password":         {"hunter2"},
		"confirm_password": {"hunter2"},
	}
	resp, err = app.Test(formRequest(http.MethodPost, "/register", form))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)

	resp, err = app.Test(formRequest(http.MethodPost, "/register", form))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "username already exist", decodeResponse(t, resp).Error)
}

func TestLoginRejections(t *testing.T) {
	setupTestDB(t)
	app := authTestApp(t)

	resp, err := app.Test(formRequest(http.MethodPost, "/login", url.Values{
		"username": {"ghost"},
		"password": {"boo"},
	}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "invalid username and/or password", decodeResponse(t, resp).Error)

	resp, err = app.Test(formRequest(http.MethodPost, "/login", url.Values{
		"password": {"boo"},
	}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "must provide username", decodeResponse(t, resp).Error)
}

func TestLogoutExpiresSession(t *testing.T) {
	setupTestDB(t)
	app := authTestApp(t)

	resp, err := app.Test(formRequest(http.MethodGet, "/logout", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))

	cookie := sessionCookie(resp)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.Less(t, cookie.MaxAge, 0)
}
