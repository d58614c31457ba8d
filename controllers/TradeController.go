package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"stocksim.com/dto"
	"stocksim.com/ledger"
	"stocksim.com/middlewares"
	"stocksim.com/money"
	"stocksim.com/quotes"
	"stocksim.com/services"
	"stocksim.com/types"
)

type TradeController struct {
	trades *services.TradeService
	store  *ledger.Store
}

func NewTradeController(lookup quotes.Lookuper) *TradeController {
	return &TradeController{
		trades: services.NewTradeService(lookup),
		store:  ledger.NewStore(),
	}
}

// BuyPage serves the buy form data: the current cash balance.
func (tc *TradeController) BuyPage(c *fiber.Ctx) error {
	userID, err := middlewares.UserID(c)
	if err != nil {
		return apology(c, 403, err)
	}

	balance, err := tc.store.Balance(userID)
	if err != nil {
		return apology(c, 500, err)
	}

	return c.JSON(types.Response{
		Success: true,
		Data:    fiber.Map{"balance": money.USD(balance)},
	})
}

// Buy godoc
//
//	@Summary		Buy shares
//	@Description	Validates the request against the current balance, appends a BUY ledger row and debits the cash balance atomically.
//	@Tags			Trade
//	@Accept			json
//	@Produce		json
//	@Param			body	body		dto.BuyRequest	true	"Symbol and share quantity"
//	@Success		303		{string}	string			"Redirect to / with a Bought! notice"
//	@Failure		400		{object}	types.Response	"Missing symbol, missing shares, invalid share amount, invalid symbol or insufficient fund"
//	@Security		BearerAuth
//	@Router			/buy [post]
func (tc *TradeController) Buy(c *fiber.Ctx) error {
	userID, err := middlewares.UserID(c)
	if err != nil {
		return apology(c, 403, err)
	}

	var req dto.BuyRequest
	if err := c.BodyParser(&req); err != nil {
		return apology(c, 400, errors.New("invalid request body"))
	}

	if _, err := tc.trades.Buy(userID, req.Symbol, req.Shares); err != nil {
		return tradeApology(c, err)
	}

	flash(c, "Bought!")
	return c.Redirect("/", fiber.StatusSeeOther)
}

// SellPage serves the sell form data: the user's open positions.
func (tc *TradeController) SellPage(c *fiber.Ctx) error {
	userID, err := middlewares.UserID(c)
	if err != nil {
		return apology(c, 403, err)
	}

	holdings, err := tc.store.OpenHoldings(userID)
	if err != nil {
		return apology(c, 500, err)
	}

	return c.JSON(types.Response{Success: true, Data: holdings})
}

// Sell godoc
//
//	@Summary		Sell shares
//	@Description	Validates the quantity against the net holding, appends a SELL ledger row with a negative quantity and credits the cash balance atomically.
//	@Tags			Trade
//	@Accept			json
//	@Produce		json
//	@Param			body	body		dto.SellRequest	true	"Symbol and share quantity"
//	@Success		303		{string}	string			"Redirect to / with a Sold! notice"
//	@Failure		400		{object}	types.Response	"Must choose share, must type share quantity or insufficient stock"
//	@Security		BearerAuth
//	@Router			/sell [post]
func (tc *TradeController) Sell(c *fiber.Ctx) error {
	userID, err := middlewares.UserID(c)
	if err != nil {
		return apology(c, 403, err)
	}

	var req dto.SellRequest
	if err := c.BodyParser(&req); err != nil {
		return apology(c, 400, errors.New("invalid request body"))
	}

	if _, err := tc.trades.Sell(userID, req.Symbol, req.ShareQty); err != nil {
		return tradeApology(c, err)
	}

	flash(c, "Sold!")
	return c.Redirect("/", fiber.StatusSeeOther)
}

func (tc *TradeController) DirSellPage(c *fiber.Ctx) error {
	return c.Redirect("/", fiber.StatusSeeOther)
}

// DirSell stages a whole-position sell and returns the confirmation data.
func (tc *TradeController) DirSell(c *fiber.Ctx) error {
	userID, err := middlewares.UserID(c)
	if err != nil {
		return apology(c, 403, err)
	}

	var req dto.SymbolRequest
	if err := c.BodyParser(&req); err != nil {
		return apology(c, 400, errors.New("invalid request body"))
	}

	preview, err := tc.trades.PreviewSell(userID, req.Symbol)
	if err != nil {
		if errors.Is(err, ledger.ErrNoHolding) {
			return apology(c, 500, errors.New("Server Error"))
		}
		return tradeApology(c, err)
	}

	return c.JSON(types.Response{Success: true, Data: preview})
}

func (tc *TradeController) ConfSellPage(c *fiber.Ctx) error {
	return c.Redirect("/", fiber.StatusSeeOther)
}

// ConfSell commits a staged whole-position sell. The symbol value "cancel"
// aborts with no side effects.
func (tc *TradeController) ConfSell(c *fiber.Ctx) error {
	userID, err := middlewares.UserID(c)
	if err != nil {
		return apology(c, 403, err)
	}

	var req dto.SymbolRequest
	if err := c.BodyParser(&req); err != nil {
		return apology(c, 400, errors.New("invalid request body"))
	}

	if req.Symbol == "cancel" {
		return c.Redirect("/", fiber.StatusSeeOther)
	}

	if _, err := tc.trades.SellAll(userID, req.Symbol); err != nil {
		if errors.Is(err, ledger.ErrNoHolding) {
			return apology(c, 500, errors.New("Server Error"))
		}
		return tradeApology(c, err)
	}

	flash(c, "Sold!")
	return c.Redirect("/", fiber.StatusSeeOther)
}

// tradeApology maps trade validation failures to 400 rejections; anything
// else is a server fault.
func tradeApology(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrMissingSymbol),
		errors.Is(err, services.ErrMissingShares),
		errors.Is(err, services.ErrInvalidShares),
		errors.Is(err, services.ErrInsufficientFunds),
		errors.Is(err, services.ErrMustChooseShare),
		errors.Is(err, services.ErrMissingQuantity),
		errors.Is(err, services.ErrInsufficientStock):
		return apology(c, 400, err)
	case errors.Is(err, quotes.ErrUnknownSymbol):
		return apology(c, 400, errors.New("invalid symbol"))
	default:
		return apology(c, 500, err)
	}
}
