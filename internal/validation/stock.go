package validation

import (
	"math"
	"strings"

	"github.com/ndewijer/Stock-Portfolio-Tracker-Backend/internal/api/request"
)

// ValidateStock validates a stock creation or update request.
//
// Required fields:
//   - name: non-empty, at most 100 characters
//
// Optional fields (validated if provided):
//   - symbol: at most 20 characters, no whitespace inside
//   - manualPrice: must be a finite positive number
//   - groupId: must be a valid UUID
//
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateStock(req request.StockRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Name) == "" {
		errors["name"] = "name is required"
	} else if len(req.Name) > maxNameLength {
		errors["name"] = "name must be 100 characters or less"
	}

	if req.Symbol != nil {
		symbol := strings.TrimSpace(*req.Symbol)
		if len(symbol) > 20 {
			errors["symbol"] = "symbol must be 20 characters or less"
		} else if strings.ContainsAny(symbol, " \t,") {
			errors["symbol"] = "symbol cannot contain spaces or commas"
		}
	}

	if req.ManualPrice != nil {
		p := *req.ManualPrice
		if p <= 0 || math.IsInf(p, 0) || math.IsNaN(p) {
			errors["manualPrice"] = "manualPrice must be positive"
		}
	}

	if req.GroupID != nil && *req.GroupID != "" {
		if err := ValidateUUID(*req.GroupID); err != nil {
			errors["groupId"] = "groupId must be a valid UUID"
		}
	}

	return result(errors)
}
