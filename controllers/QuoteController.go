package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"stocksim.com/dto"
	"stocksim.com/money"
	"stocksim.com/quotes"
	"stocksim.com/types"
)

type QuoteController struct {
	quotes quotes.Lookuper
}

func NewQuoteController(lookup quotes.Lookuper) *QuoteController {
	return &QuoteController{quotes: lookup}
}

func (qc *QuoteController) QuotePage(c *fiber.Ctx) error {
	return c.JSON(types.Response{Success: true})
}

// Quote godoc
//
//	@Summary		Resolve a symbol
//	@Description	Looks the symbol up with the quote provider and returns its current name and price.
//	@Tags			Quote
//	@Accept			json
//	@Produce		json
//	@Param			body	body		dto.SymbolRequest	true	"Symbol to resolve"
//	@Success		200		{object}	types.Response{data=types.QuoteView}
//	@Failure		400		{object}	types.Response	"Invalid symbol"
//	@Security		BearerAuth
//	@Router			/quote [post]
func (qc *QuoteController) Quote(c *fiber.Ctx) error {
	var req dto.SymbolRequest
	if err := c.BodyParser(&req); err != nil {
		return apology(c, 400, errors.New("invalid request body"))
	}

	q, err := qc.quotes.Lookup(req.Symbol)
	if err != nil {
		if errors.Is(err, quotes.ErrUnknownSymbol) {
			return apology(c, 400, errors.New("invalid symbol"))
		}
		return apology(c, 500, err)
	}

	return c.JSON(types.Response{
		Success: true,
		Data: types.QuoteView{
			Symbol:    q.Symbol,
			ShareName: q.Name,
			Price:     money.USD(q.Price.Round(2)),
		},
	})
}
