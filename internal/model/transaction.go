package model

import "time"

// TransactionType is either a buy or a sell.
type TransactionType string

const (
	TransactionTypeBuy  TransactionType = "buy"
	TransactionTypeSell TransactionType = "sell"
)

// Transaction represents a buy or sell of a stock.
type Transaction struct {
	ID        string          `json:"id"`
	StockID   string          `json:"stockId"`
	Type      TransactionType `json:"type"`
	Quantity  int64           `json:"quantity"`
	Price     float64         `json:"price"`
	Date      time.Time       `json:"transactionDate"`
	CreatedAt time.Time       `json:"createdAt"`
}
