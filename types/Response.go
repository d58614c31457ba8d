package types

import "time"

type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// PortfolioEntry is one open position with live pricing, money fields already
// formatted for display.
type PortfolioEntry struct {
	Symbol    string `json:"symbol"`
	ShareName string `json:"shareName"`
	Quantity  int64  `json:"quantity"`
	Price     string `json:"price"`
	Total     string `json:"total"`
}

type PortfolioView struct {
	Holdings   []PortfolioEntry `json:"holdings"`
	Balance    string           `json:"balance"`
	GrandTotal string           `json:"grandTotal"`
}

type HistoryEntry struct {
	Symbol    string    `json:"symbol"`
	Quantity  int64     `json:"quantity"`
	TxType    string    `json:"txType"`
	Price     string    `json:"price"`
	Total     string    `json:"total"`
	CreatedAt time.Time `json:"createdAt"`
}

type QuoteView struct {
	Symbol    string `json:"symbol"`
	ShareName string `json:"shareName"`
	Price     string `json:"price"`
}

// SellPreview is the staged whole-position sale shown before confirmation.
type SellPreview struct {
	Symbol    string `json:"symbol"`
	ShareName string `json:"shareName"`
	Quantity  int64  `json:"quantity"`
	Price     string `json:"price"`
}
