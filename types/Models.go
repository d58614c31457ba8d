package types

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	TxBuy  = "BUY"
	TxSell = "SELL"
)

type User struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	Username     string          `gorm:"uniqueIndex;not null" json:"username"`
	PasswordHash string          `gorm:"not null" json:"-"`
	Cash         decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"cash"`
	StartingCash decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"-"`
	CreatedAt    time.Time       `gorm:"autoCreateTime" json:"createdAt"`
}

func (User) TableName() string {
	return "users"
}

// Transaction is one row of the append-only trade ledger. Quantity is signed:
// positive for BUY, negative for SELL. Rows are never updated or deleted.
type Transaction struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	UserID    uint            `gorm:"not null;index" json:"userId"`
	Symbol    string          `gorm:"not null;index" json:"symbol"`
	ShareName string          `gorm:"not null" json:"shareName"`
	Quantity  int64           `gorm:"not null" json:"quantity"`
	Price     decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"price"`
	TxType    string          `gorm:"not null" json:"txType"`
	Total     decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"total"`
	CreatedAt time.Time       `gorm:"autoCreateTime" json:"createdAt"`
}

func (Transaction) TableName() string {
	return "transactions"
}
