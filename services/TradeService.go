package services

import (
	"errors"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"stocksim.com/broker"
	"stocksim.com/db"
	"stocksim.com/dto"
	"stocksim.com/ledger"
	"stocksim.com/money"
	"stocksim.com/quotes"
	"stocksim.com/types"
)

var (
	ErrMissingSymbol     = errors.New("missing symbol")
	ErrMissingShares     = errors.New("missing shares")
	ErrInvalidShares     = errors.New("invalid share amount")
	ErrInsufficientFunds = errors.New("insufficient fund")
	ErrMustChooseShare   = errors.New("must choose share")
	ErrMissingQuantity   = errors.New("must type share quantity")
	ErrInsufficientStock = errors.New("insufficient stock")
)

type TradeService struct {
	quotes quotes.Lookuper
	store  *ledger.Store
}

func NewTradeService(lookup quotes.Lookuper) *TradeService {
	return &TradeService{quotes: lookup, store: ledger.NewStore()}
}

// Buy validates and executes a purchase. Validation order matters: each
// failure is a distinct rejection, and the funds check is repeated against a
// locked balance inside the commit transaction, so concurrent buys for the
// same user cannot overspend.
func (s *TradeService) Buy(userID uint, symbol, shares string) (*types.Transaction, error) {
	symbol = quotes.Normalize(symbol)
	if symbol == "" {
		return nil, ErrMissingSymbol
	}
	if shares == "" {
		return nil, ErrMissingShares
	}
	qty, err := parseShareQty(shares)
	if err != nil {
		return nil, ErrInvalidShares
	}

	q, err := s.quotes.Lookup(symbol)
	if err != nil {
		return nil, err
	}
	price := q.Price.Round(2)
	cost := price.Mul(decimal.NewFromInt(qty)).Round(2)

	var txn *types.Transaction
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		store := s.store.WithTx(tx)

		user, err := store.UserForUpdate(userID)
		if err != nil {
			return err
		}
		if cost.GreaterThan(user.Cash) {
			return ErrInsufficientFunds
		}

		txn = &types.Transaction{
			UserID:    userID,
			Symbol:    symbol,
			ShareName: q.Name,
			Quantity:  qty,
			Price:     price,
			TxType:    types.TxBuy,
			Total:     cost,
		}
		if err := store.Append(txn); err != nil {
			return err
		}
		return store.SetBalance(userID, user.Cash.Sub(cost))
	})
	if err != nil {
		return nil, err
	}

	s.notify(txn)
	return txn, nil
}

// Sell executes a direct sell of an explicit share quantity.
func (s *TradeService) Sell(userID uint, symbol, shares string) (*types.Transaction, error) {
	symbol = quotes.Normalize(symbol)
	if symbol == "" {
		return nil, ErrMustChooseShare
	}
	qty, err := parseShareQty(shares)
	if err != nil {
		return nil, ErrMissingQuantity
	}

	holding, err := s.store.Holding(userID, symbol)
	if errors.Is(err, ledger.ErrNoHolding) {
		return nil, ErrInsufficientStock
	}
	if err != nil {
		return nil, err
	}
	if qty > holding.Quantity {
		return nil, ErrInsufficientStock
	}

	txn, err := s.commitSell(userID, symbol, qty, false)
	if errors.Is(err, ledger.ErrNoHolding) {
		return nil, ErrInsufficientStock
	}
	return txn, err
}

// PreviewSell stages a whole-position sell: the caller sees the derived
// quantity and the live price before confirming.
func (s *TradeService) PreviewSell(userID uint, symbol string) (*types.SellPreview, error) {
	symbol = quotes.Normalize(symbol)
	if symbol == "" {
		return nil, ErrMustChooseShare
	}

	q, err := s.quotes.Lookup(symbol)
	if err != nil {
		return nil, err
	}
	holding, err := s.store.Holding(userID, symbol)
	if err != nil {
		return nil, err
	}

	return &types.SellPreview{
		Symbol:    symbol,
		ShareName: holding.ShareName,
		Quantity:  holding.Quantity,
		Price:     money.USD(q.Price.Round(2)),
	}, nil
}

// SellAll sells the user's entire net holding for the symbol. The quantity is
// derived inside the commit transaction, never taken from the caller.
func (s *TradeService) SellAll(userID uint, symbol string) (*types.Transaction, error) {
	symbol = quotes.Normalize(symbol)
	if symbol == "" {
		return nil, ErrMustChooseShare
	}
	return s.commitSell(userID, symbol, 0, true)
}

func (s *TradeService) commitSell(userID uint, symbol string, qty int64, wholePosition bool) (*types.Transaction, error) {
	q, err := s.quotes.Lookup(symbol)
	if err != nil {
		return nil, err
	}
	price := q.Price.Round(2)

	var txn *types.Transaction
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		store := s.store.WithTx(tx)

		user, err := store.UserForUpdate(userID)
		if err != nil {
			return err
		}
		holding, err := store.Holding(userID, symbol)
		if err != nil {
			return err
		}
		if wholePosition {
			qty = holding.Quantity
		}
		if qty <= 0 || qty > holding.Quantity {
			return ErrInsufficientStock
		}

		total := price.Mul(decimal.NewFromInt(qty)).Round(2)
		txn = &types.Transaction{
			UserID:    userID,
			Symbol:    symbol,
			ShareName: holding.ShareName,
			Quantity:  -qty,
			Price:     price,
			TxType:    types.TxSell,
			Total:     total,
		}
		if err := store.Append(txn); err != nil {
			return err
		}
		return store.SetBalance(userID, user.Cash.Add(total))
	})
	if err != nil {
		return nil, err
	}

	s.notify(txn)
	return txn, nil
}

// notify publishes the executed trade to the broker, best effort.
func (s *TradeService) notify(txn *types.Transaction) {
	qty := txn.Quantity
	if qty < 0 {
		qty = -qty
	}
	event := &dto.TradeEventDTO{
		Uid:      uuid.NewString(),
		UserID:   txn.UserID,
		Symbol:   txn.Symbol,
		Side:     txn.TxType,
		Quantity: qty,
		Price:    txn.Price.StringFixed(2),
		Total:    txn.Total.StringFixed(2),
	}
	if err := broker.SendTradeExecuted(event); err != nil {
		log.Warnf("Failed to publish trade event for user %d: %v", txn.UserID, err)
	}
}

// parseShareQty accepts only unsigned digit strings, matching how the form
// field was always parsed, and requires the result to be positive.
func parseShareQty(s string) (int64, error) {
	if s == "" {
		return 0, ErrInvalidShares
	}
	var n int64
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, ErrInvalidShares
		}
		n = n*10 + int64(c-'0')
		if n > 1<<40 {
			return 0, ErrInvalidShares
		}
	}
	if n <= 0 {
		return 0, ErrInvalidShares
	}
	return n, nil
}
