package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"stocksim.com/dto"
	"stocksim.com/middlewares"
	"stocksim.com/services"
	"stocksim.com/types"
)

type AuthController struct {
	auth *services.AuthService
}

func NewAuthController() *AuthController {
	return &AuthController{auth: services.NewAuthService()}
}

func (ac *AuthController) LoginPage(c *fiber.Ctx) error {
	return c.JSON(types.Response{Success: true})
}

// Login godoc
//
//	@Summary		Log a user in
//	@Description	Verifies credentials, sets the session cookie and redirects to the portfolio.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		dto.LoginRequest	true	"Credentials"
//	@Success		303		{string}	string				"Redirect to /"
//	@Failure		403		{object}	types.Response		"Missing or invalid credentials"
//	@Router			/login [post]
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apology(c, 400, errors.New("invalid request body"))
	}

	user, err := ac.auth.Login(&req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMissingUsername),
			errors.Is(err, services.ErrMissingPassword),
			errors.Is(err, services.ErrBadCredentials):
			return apology(c, 403, err)
		default:
			return apology(c, 500, err)
		}
	}

	token, err := middlewares.NewSessionToken(user)
	if err != nil {
		return apology(c, 500, err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     "session",
		Value:    token,
		HTTPOnly: true,
		SameSite: "Lax",
	})
	return c.Redirect("/", fiber.StatusSeeOther)
}

func (ac *AuthController) RegisterPage(c *fiber.Ctx) error {
	return c.JSON(types.Response{Success: true})
}

// Register godoc
//
//	@Summary		Register a new user
//	@Description	Creates a user with the configured starting cash. Usernames are unique and the password confirmation must match.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		dto.RegisterRequest	true	"Registration form"
//	@Success		303		{string}	string				"Redirect to /login"
//	@Failure		400		{object}	types.Response		"Username already exist"
//	@Failure		403		{object}	types.Response		"Missing field or password mismatch"
//	@Router			/register [post]
func (ac *AuthController) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apology(c, 400, errors.New("invalid request body"))
	}

	if _, err := ac.auth.Register(&req); err != nil {
		switch {
		case errors.Is(err, services.ErrMissingUsername),
			errors.Is(err, services.ErrMissingPassword),
			errors.Is(err, services.ErrPasswordMismatch):
			return apology(c, 403, err)
		case errors.Is(err, services.ErrUsernameTaken):
			return apology(c, 400, err)
		default:
			return apology(c, 500, err)
		}
	}

	return c.Redirect("/login", fiber.StatusSeeOther)
}

func (ac *AuthController) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     "session",
		Value:    "",
		MaxAge:   -1,
		HTTPOnly: true,
		SameSite: "Lax",
	})
	return c.Redirect("/", fiber.StatusSeeOther)
}
