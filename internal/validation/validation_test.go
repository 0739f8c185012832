package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndewijer/Stock-Portfolio-Tracker-Backend/internal/api/request"
)

func strPtr(s string) *string { return &s }
func floatPtr(f float64) *float64 { return &f }

func fieldErrors(t *testing.T, err error) map[string]string {
	t.Helper()
	var vErr *Error
	require.ErrorAs(t, err, &vErr)
	return vErr.Fields
}

func TestValidateUUID(t *testing.T) {
	assert.NoError(t, ValidateUUID("7f0c3a5e-4b7b-4f57-9e44-2b0c4f6f6d11"))
	assert.ErrorIs(t, ValidateUUID("not-a-uuid"), ErrInvalidUUID)
}

func TestValidateDateRange(t *testing.T) {
	today := time.Date(2024, 6, 15, 13, 45, 0, 0, time.UTC)

	t.Run("defaults to the last 30 days", func(t *testing.T) {
		start, end, err := ValidateDateRange("", "", today)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), end)
		assert.Equal(t, time.Date(2024, 5, 16, 0, 0, 0, 0, time.UTC), start)
	})

	t.Run("explicit range", func(t *testing.T) {
		start, end, err := ValidateDateRange("2024-01-01", "2024-01-31", today)
		require.NoError(t, err)
		assert.Equal(t, "2024-01-01", start.Format(DateLayout))
		assert.Equal(t, "2024-01-31", end.Format(DateLayout))
	})

	t.Run("start after end", func(t *testing.T) {
		_, _, err := ValidateDateRange("2024-02-01", "2024-01-01", today)
		assert.ErrorIs(t, err, ErrInvalidDateRange)
	})

	t.Run("bad format", func(t *testing.T) {
		_, _, err := ValidateDateRange("01/02/2024", "tomorrow", today)
		fields := fieldErrors(t, err)
		assert.Contains(t, fields, "start_date")
		assert.Contains(t, fields, "end_date")
	})
}

func TestValidatePortfolio(t *testing.T) {
	assert.NoError(t, ValidateCreatePortfolio(request.CreatePortfolioRequest{Name: "Main"}))

	fields := fieldErrors(t, ValidateCreatePortfolio(request.CreatePortfolioRequest{Name: "  "}))
	assert.Equal(t, "name is required", fields["name"])

	long := make([]byte, 501)
	for i := range long {
		long[i] = 'a'
	}
	fields = fieldErrors(t, ValidateCreatePortfolio(request.CreatePortfolioRequest{Name: "Main", Description: strPtr(string(long))}))
	assert.Contains(t, fields, "description")

	assert.NoError(t, ValidateUpdatePortfolio(request.UpdatePortfolioRequest{}))
	fields = fieldErrors(t, ValidateUpdatePortfolio(request.UpdatePortfolioRequest{Name: strPtr("")}))
	assert.Equal(t, "name cannot be empty", fields["name"])
}

func TestValidateCreateGroup(t *testing.T) {
	assert.NoError(t, ValidateCreateGroup(request.CreateGroupRequest{Name: "Tech"}))
	assert.Error(t, ValidateCreateGroup(request.CreateGroupRequest{}))
}

func TestValidateStock(t *testing.T) {
	valid := request.StockRequest{
		Name:        "Samsung Electronics",
		Symbol:      strPtr("005930.KS"),
		ManualPrice: floatPtr(70000),
		GroupID:     strPtr("7f0c3a5e-4b7b-4f57-9e44-2b0c4f6f6d11"),
	}
	assert.NoError(t, ValidateStock(valid))
	assert.NoError(t, ValidateStock(request.StockRequest{Name: "Cash"}))

	fields := fieldErrors(t, ValidateStock(request.StockRequest{
		Symbol:      strPtr("AA PL"),
		ManualPrice: floatPtr(-1),
		GroupID:     strPtr("nope"),
	}))
	assert.Len(t, fields, 4)
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "symbol")
	assert.Contains(t, fields, "manualPrice")
	assert.Contains(t, fields, "groupId")
}

func TestValidateTransaction(t *testing.T) {
	assert.NoError(t, ValidateTransaction(request.TransactionRequest{
		Type: "buy", Quantity: 10, Price: 100, TransactionDate: "2024-01-15",
	}))

	fields := fieldErrors(t, ValidateTransaction(request.TransactionRequest{
		Type: "dividend", Quantity: 0, Price: -5, TransactionDate: "15-01-2024",
	}))
	assert.Equal(t, "invalid type: dividend", fields["type"])
	assert.Equal(t, "quantity must be positive", fields["quantity"])
	assert.Equal(t, "price must be positive", fields["price"])
	assert.Contains(t, fields, "transactionDate")

	fields = fieldErrors(t, ValidateTransaction(request.TransactionRequest{Quantity: 1, Price: 1}))
	assert.Equal(t, "type is required", fields["type"])
	assert.Equal(t, "transactionDate is required", fields["transactionDate"])
}

func TestErrorMessageIsSorted(t *testing.T) {
	err := &Error{Fields: map[string]string{"b": "two", "a": "one"}}
	assert.Equal(t, "a: one; b: two", err.Error())
}
