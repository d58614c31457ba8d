package controllers

import (
	"github.com/gofiber/fiber/v2"

	"stocksim.com/middlewares"
	"stocksim.com/quotes"
	"stocksim.com/services"
	"stocksim.com/types"
)

type PortfolioController struct {
	portfolio *services.PortfolioService
}

func NewPortfolioController(lookup quotes.Lookuper) *PortfolioController {
	return &PortfolioController{portfolio: services.NewPortfolioService(lookup)}
}

// Index godoc
//
//	@Summary		Portfolio valuation
//	@Description	Prices every open position at its live quote and returns line totals, cash balance and the combined grand total.
//	@Tags			Portfolio
//	@Produce		json
//	@Success		200	{object}	types.Response{data=types.PortfolioView}
//	@Failure		500	{object}	types.Response	"Price lookup failed"
//	@Security		BearerAuth
//	@Router			/ [get]
func (pc *PortfolioController) Index(c *fiber.Ctx) error {
	userID, err := middlewares.UserID(c)
	if err != nil {
		return apology(c, 403, err)
	}

	view, err := pc.portfolio.Valuation(userID)
	if err != nil {
		return apology(c, 500, err)
	}

	return c.JSON(types.Response{Success: true, Data: view})
}

// History godoc
//
//	@Summary		Transaction history
//	@Description	Every ledger row for the authenticated user in a stable order.
//	@Tags			Portfolio
//	@Produce		json
//	@Success		200	{object}	types.Response{data=[]types.HistoryEntry}
//	@Security		BearerAuth
//	@Router			/history [get]
func (pc *PortfolioController) History(c *fiber.Ctx) error {
	userID, err := middlewares.UserID(c)
	if err != nil {
		return apology(c, 403, err)
	}

	entries, err := pc.portfolio.History(userID)
	if err != nil {
		return apology(c, 500, err)
	}

	return c.JSON(types.Response{Success: true, Data: entries})
}
