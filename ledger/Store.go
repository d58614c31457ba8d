package ledger

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"stocksim.com/db"
	"stocksim.com/types"
)

var ErrNoHolding = errors.New("no holding for symbol")

// Holding is the net position for one symbol, derived from the signed sum of
// ledger quantities. Zero quantity means the position is closed.
type Holding struct {
	Symbol    string `json:"symbol"`
	ShareName string `json:"shareName"`
	Quantity  int64  `json:"quantity"`
}

// Store is the typed adapter over the trade ledger. It only ever inserts
// transaction rows; the single mutable piece of state is the user cash balance.
type Store struct {
	db *gorm.DB
}

func NewStore() *Store {
	return &Store{}
}

// WithTx returns a store bound to an open transaction.
func (s *Store) WithTx(tx *gorm.DB) *Store {
	return &Store{db: tx}
}

func (s *Store) conn() *gorm.DB {
	if s.db != nil {
		return s.db
	}
	return db.DB
}

// Append inserts one ledger row. There is deliberately no update or delete
// counterpart anywhere on this type.
func (s *Store) Append(txn *types.Transaction) error {
	return s.conn().Create(txn).Error
}

// Holdings aggregates the user's ledger by symbol, including closed positions.
func (s *Store) Holdings(userID uint) ([]Holding, error) {
	var rows []Holding
	err := s.conn().Raw(`
		SELECT symbol, MAX(share_name) AS share_name, SUM(quantity) AS quantity
		FROM transactions
		WHERE user_id = ?
		GROUP BY symbol
		ORDER BY symbol`, userID).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// OpenHoldings filters Holdings down to positions with a non-zero net quantity.
func (s *Store) OpenHoldings(userID uint) ([]Holding, error) {
	all, err := s.Holdings(userID)
	if err != nil {
		return nil, err
	}
	open := make([]Holding, 0, len(all))
	for _, h := range all {
		if h.Quantity != 0 {
			open = append(open, h)
		}
	}
	return open, nil
}

// Holding returns the net position for one symbol, or ErrNoHolding when the
// aggregate does not yield exactly one row.
func (s *Store) Holding(userID uint, symbol string) (*Holding, error) {
	var rows []Holding
	err := s.conn().Raw(`
		SELECT symbol, MAX(share_name) AS share_name, SUM(quantity) AS quantity
		FROM transactions
		WHERE user_id = ? AND symbol = ?
		GROUP BY symbol`, userID, symbol).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) != 1 {
		return nil, ErrNoHolding
	}
	return &rows[0], nil
}

// History returns every ledger row for the user in a stable order.
func (s *Store) History(userID uint) ([]types.Transaction, error) {
	var txns []types.Transaction
	err := s.conn().Where("user_id = ?", userID).Order("created_at, id").Find(&txns).Error
	if err != nil {
		return nil, err
	}
	return txns, nil
}

func (s *Store) Balance(userID uint) (decimal.Decimal, error) {
	var user types.User
	if err := s.conn().First(&user, userID).Error; err != nil {
		return decimal.Zero, err
	}
	return user.Cash, nil
}

// UserForUpdate reads the user row for a balance mutation. On postgres the row
// is locked for the duration of the enclosing transaction; sqlite has a single
// writer and rejects FOR UPDATE, so the clause is skipped there.
func (s *Store) UserForUpdate(userID uint) (*types.User, error) {
	conn := s.conn()
	if conn.Dialector.Name() == "postgres" {
		conn = conn.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var user types.User
	if err := conn.First(&user, userID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Store) SetBalance(userID uint, cash decimal.Decimal) error {
	return s.conn().Model(&types.User{}).Where("id = ?", userID).Update("cash", cash).Error
}
