package services

import (
	"fmt"

	"github.com/shopspring/decimal"

	"stocksim.com/ledger"
	"stocksim.com/money"
	"stocksim.com/quotes"
	"stocksim.com/types"
)

type PortfolioService struct {
	quotes quotes.Lookuper
	store  *ledger.Store
}

func NewPortfolioService(lookup quotes.Lookuper) *PortfolioService {
	return &PortfolioService{quotes: lookup, store: ledger.NewStore()}
}

// Valuation prices every open position at its live quote and totals them
// together with the cash balance. A failed lookup fails the whole valuation;
// no stale price is ever substituted.
func (s *PortfolioService) Valuation(userID uint) (*types.PortfolioView, error) {
	holdings, err := s.store.OpenHoldings(userID)
	if err != nil {
		return nil, err
	}

	grand := decimal.Zero
	entries := make([]types.PortfolioEntry, 0, len(holdings))
	for _, h := range holdings {
		q, err := s.quotes.Lookup(h.Symbol)
		if err != nil {
			return nil, fmt.Errorf("price lookup for %s: %w", h.Symbol, err)
		}
		price := q.Price.Round(2)
		line := price.Mul(decimal.NewFromInt(h.Quantity)).Round(2)
		grand = grand.Add(line)

		entries = append(entries, types.PortfolioEntry{
			Symbol:    h.Symbol,
			ShareName: h.ShareName,
			Quantity:  h.Quantity,
			Price:     money.USD(price),
			Total:     money.USD(line),
		})
	}

	cash, err := s.store.Balance(userID)
	if err != nil {
		return nil, err
	}

	return &types.PortfolioView{
		Holdings:   entries,
		Balance:    money.USD(cash),
		GrandTotal: money.USD(grand.Add(cash)),
	}, nil
}

// History projects the user's full ledger, prices formatted for display.
func (s *PortfolioService) History(userID uint) ([]types.HistoryEntry, error) {
	rows, err := s.store.History(userID)
	if err != nil {
		return nil, err
	}

	entries := make([]types.HistoryEntry, 0, len(rows))
	for _, r := range rows {
		entries = append(entries, types.HistoryEntry{
			Symbol:    r.Symbol,
			Quantity:  r.Quantity,
			TxType:    r.TxType,
			Price:     money.USD(r.Price),
			Total:     money.USD(r.Total),
			CreatedAt: r.CreatedAt,
		})
	}
	return entries, nil
}

// OpenHoldings lists the user's sellable positions for the sell form.
func (s *PortfolioService) OpenHoldings(userID uint) ([]ledger.Holding, error) {
	return s.store.OpenHoldings(userID)
}
