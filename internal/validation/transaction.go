package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/ndewijer/Stock-Portfolio-Tracker-Backend/internal/api/request"
	"github.com/ndewijer/Stock-Portfolio-Tracker-Backend/internal/model"
)

// ValidTransactionType contains the allowed transaction type values.
var ValidTransactionType = map[model.TransactionType]bool{
	model.TransactionTypeBuy:  true,
	model.TransactionTypeSell: true,
}

// ValidateTransaction validates a transaction creation or update request.
//
// Required fields:
//   - type: Must be one of: buy, sell
//   - quantity: Must be a positive whole number
//   - price: Must be positive
//   - transactionDate: Must be in YYYY-MM-DD format
//
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateTransaction(req request.TransactionRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Type) == "" {
		errors["type"] = "type is required"
	} else if !ValidTransactionType[model.TransactionType(req.Type)] {
		errors["type"] = fmt.Sprintf("invalid type: %s", req.Type)
	}

	if req.Quantity <= 0 {
		errors["quantity"] = "quantity must be positive"
	}

	if req.Price <= 0.0 {
		errors["price"] = "price must be positive"
	}

	if strings.TrimSpace(req.TransactionDate) == "" {
		errors["transactionDate"] = "transactionDate is required"
	} else if _, err := time.Parse(DateLayout, req.TransactionDate); err != nil {
		errors["transactionDate"] = "transactionDate must be in YYYY-MM-DD format"
	}

	return result(errors)
}
