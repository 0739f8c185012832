package request

// TransactionRequest is the body of both transaction creation and update.
type TransactionRequest struct {
	Type            string  `json:"type"`
	Quantity        int64   `json:"quantity"`
	Price           float64 `json:"price"`
	TransactionDate string  `json:"transactionDate"`
}
