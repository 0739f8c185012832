package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndewijer/Stock-Portfolio-Tracker-Backend/internal/model"
	"github.com/ndewijer/Stock-Portfolio-Tracker-Backend/internal/testutil"
)

func TestTransactionHandler(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewTransactionHandler(testutil.NewTestServices(t, db, testutil.NewFakeResolver(nil)).Transaction)

	p := testutil.CreatePortfolio(t, db, "Main")
	stock := testutil.NewStock(p.ID).Build(t, db)
	stockParams := map[string]string{"uuid": stock.ID}

	var created model.Transaction

	t.Run("create", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.CreateTransaction(w, testutil.NewJSONRequestWithURLParams(t, http.MethodPost, "/api/stock/"+stock.ID+"/transactions",
			map[string]any{"type": "buy", "quantity": 10, "price": 150.5, "transactionDate": "2024-02-01"}, stockParams))

		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		created = decode[model.Transaction](t, w)
		assert.Equal(t, model.TransactionTypeBuy, created.Type)
		assert.Equal(t, int64(10), created.Quantity)
		assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), created.Date)
	})

	t.Run("create validates fields", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.CreateTransaction(w, testutil.NewJSONRequestWithURLParams(t, http.MethodPost, "/api/stock/"+stock.ID+"/transactions",
			map[string]any{"type": "dividend", "quantity": 0, "price": 10, "transactionDate": "2024/02/01"}, stockParams))

		require.Equal(t, http.StatusBadRequest, w.Code)
		details, ok := decode[errorBody](t, w).Details.(map[string]any)
		require.True(t, ok)
		assert.Contains(t, details, "type")
		assert.Contains(t, details, "quantity")
		assert.Contains(t, details, "transactionDate")
		assert.NotContains(t, details, "price")
	})

	t.Run("create rejects fractional quantity", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.CreateTransaction(w, testutil.NewJSONRequestWithURLParams(t, http.MethodPost, "/api/stock/"+stock.ID+"/transactions",
			map[string]any{"type": "buy", "quantity": 1.5, "price": 10, "transactionDate": "2024-02-01"}, stockParams))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("create for unknown stock", func(t *testing.T) {
		id := testutil.MakeID()
		w := httptest.NewRecorder()
		handler.CreateTransaction(w, testutil.NewJSONRequestWithURLParams(t, http.MethodPost, "/api/stock/"+id+"/transactions",
			map[string]any{"type": "buy", "quantity": 1, "price": 10, "transactionDate": "2024-02-01"}, map[string]string{"uuid": id}))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("list per stock", func(t *testing.T) {
		testutil.NewTransaction(stock.ID).Sell(2, 170).WithDate(time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)).Build(t, db)

		w := httptest.NewRecorder()
		handler.TransactionsPerStock(w, testutil.NewRequestWithURLParams(http.MethodGet, "/api/stock/"+stock.ID+"/transactions", stockParams))

		require.Equal(t, http.StatusOK, w.Code)
		txs := decode[[]model.Transaction](t, w)
		require.Len(t, txs, 2)
		assert.Equal(t, model.TransactionTypeSell, txs[0].Type)
		assert.Equal(t, created.ID, txs[1].ID)
	})

	t.Run("update", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.UpdateTransaction(w, testutil.NewJSONRequestWithURLParams(t, http.MethodPut, "/api/transaction/"+created.ID,
			map[string]any{"type": "sell", "quantity": 3, "price": 99, "transactionDate": "2024-03-01"},
			map[string]string{"uuid": created.ID}))

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		updated := decode[model.Transaction](t, w)
		assert.Equal(t, model.TransactionTypeSell, updated.Type)
		assert.Equal(t, 99.0, updated.Price)
	})

	t.Run("get and delete", func(t *testing.T) {
		params := map[string]string{"uuid": created.ID}

		w := httptest.NewRecorder()
		handler.GetTransaction(w, testutil.NewRequestWithURLParams(http.MethodGet, "/api/transaction/"+created.ID, params))
		assert.Equal(t, http.StatusOK, w.Code)

		w = httptest.NewRecorder()
		handler.DeleteTransaction(w, testutil.NewRequestWithURLParams(http.MethodDelete, "/api/transaction/"+created.ID, params))
		assert.Equal(t, http.StatusNoContent, w.Code)

		w = httptest.NewRecorder()
		handler.GetTransaction(w, testutil.NewRequestWithURLParams(http.MethodGet, "/api/transaction/"+created.ID, params))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
