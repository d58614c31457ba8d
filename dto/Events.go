package dto

// TradeEventDTO is published to the message broker after a committed trade.
type TradeEventDTO struct {
	Uid      string `json:"uid"`
	UserID   uint   `json:"userId"`
	Symbol   string `json:"symbol"`
	Side     string `json:"side"`
	Quantity int64  `json:"quantity"`
	Price    string `json:"price"`
	Total    string `json:"total"`
}

// BalanceDriftDTO reports a user whose stored cash balance no longer matches
// the ledger replayed against their starting cash.
type BalanceDriftDTO struct {
	UserID   uint   `json:"userId"`
	Expected string `json:"expected"`
	Actual   string `json:"actual"`
	Drift    string `json:"drift"`
}
