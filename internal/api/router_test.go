package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndewijer/Stock-Portfolio-Tracker-Backend/internal/api"
	"github.com/ndewijer/Stock-Portfolio-Tracker-Backend/internal/config"
	"github.com/ndewijer/Stock-Portfolio-Tracker-Backend/internal/model"
	"github.com/ndewijer/Stock-Portfolio-Tracker-Backend/internal/testutil"
)

func newTestRouter(t *testing.T, prices map[string]float64) http.Handler {
	t.Helper()
	db := testutil.SetupTestDB(t)
	svcs := testutil.NewTestServices(t, db, testutil.NewFakeResolver(prices))

	return api.NewRouter(api.Services{
		System:      svcs.System,
		Portfolio:   svcs.Portfolio,
		Group:       svcs.Group,
		Stock:       svcs.Stock,
		Transaction: svcs.Transaction,
		Dashboard:   svcs.Dashboard,
		Snapshot:    svcs.Snapshot,
		Price:       svcs.Price,
	}, config.Default(), zerolog.Nop())
}

func call(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeInto(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(w.Body).Decode(v), w.Body.String())
}

func TestRouter_DashboardFlow(t *testing.T) {
	router := newTestRouter(t, map[string]float64{"AAPL": 160, "005930.KS": 71000})

	w := call(t, router, http.MethodGet, "/api/portfolio/default", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var portfolio model.Portfolio
	decodeInto(t, w, &portfolio)

	w = call(t, router, http.MethodPost, "/api/portfolio/"+portfolio.ID+"/groups", map[string]any{"name": "US"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var group model.Group
	decodeInto(t, w, &group)

	addStock := func(body map[string]any) model.Stock {
		w := call(t, router, http.MethodPost, "/api/portfolio/"+portfolio.ID+"/stocks", body)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		var stock model.Stock
		decodeInto(t, w, &stock)
		return stock
	}
	addTx := func(stockID string, body map[string]any) {
		w := call(t, router, http.MethodPost, "/api/stock/"+stockID+"/transactions", body)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	apple := addStock(map[string]any{"name": "Apple", "symbol": "aapl", "groupId": group.ID})
	addTx(apple.ID, map[string]any{"type": "buy", "quantity": 10, "price": 100, "transactionDate": "2024-01-05"})
	addTx(apple.ID, map[string]any{"type": "buy", "quantity": 10, "price": 200, "transactionDate": "2024-01-10"})
	addTx(apple.ID, map[string]any{"type": "sell", "quantity": 5, "price": 180, "transactionDate": "2024-01-20"})

	samsung := addStock(map[string]any{"name": "Samsung", "symbol": "005930.KS"})
	addTx(samsung.ID, map[string]any{"type": "buy", "quantity": 2, "price": 65000, "transactionDate": "2024-02-01"})

	w = call(t, router, http.MethodGet, "/api/portfolio/"+portfolio.ID+"/dashboard", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var dash model.Dashboard
	decodeInto(t, w, &dash)

	require.Len(t, dash.Stocks, 2)
	assert.InDelta(t, 150, dash.Stocks[0].AvgBuyPrice, 1e-9)
	assert.InDelta(t, 150, dash.Stocks[0].RealizedProfit, 1e-9)
	assert.InDelta(t, 150, dash.Stocks[0].UnrealizedProfit, 1e-9)
	assert.InDelta(t, 12000, dash.Stocks[1].UnrealizedProfit, 1e-9)

	require.Len(t, dash.GroupedStocks, 2)
	assert.Equal(t, "US", dash.GroupedStocks[0].Name)
	assert.Equal(t, "Other", dash.GroupedStocks[1].Name)
	assert.InDelta(t, 150+150+12000, dash.Summary.TotalProfit, 1e-9)
}

func TestRouter_Routing(t *testing.T) {
	router := newTestRouter(t, nil)

	tests := []struct {
		name   string
		method string
		path   string
		want   int
	}{
		{"health", http.MethodGet, "/api/system/health", http.StatusOK},
		{"version", http.MethodGet, "/api/system/version", http.StatusOK},
		{"list portfolios", http.MethodGet, "/api/portfolio", http.StatusOK},
		{"invalid portfolio id", http.MethodGet, "/api/portfolio/not-a-uuid", http.StatusBadRequest},
		{"unknown portfolio", http.MethodGet, "/api/portfolio/550e8400-e29b-41d4-a716-446655440000", http.StatusNotFound},
		{"invalid stock id", http.MethodGet, "/api/stock/42/transactions", http.StatusBadRequest},
		{"unknown transaction", http.MethodDelete, "/api/transaction/550e8400-e29b-41d4-a716-446655440000", http.StatusNotFound},
		{"price without symbols", http.MethodGet, "/api/price", http.StatusBadRequest},
		{"unknown route", http.MethodGet, "/api/unknown", http.StatusNotFound},
		{"wrong method", http.MethodPatch, "/api/system/health", http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := call(t, router, tt.method, tt.path, nil)
			assert.Equal(t, tt.want, w.Code, w.Body.String())
		})
	}
}

func TestRouter_CORSPreflight(t *testing.T) {
	router := newTestRouter(t, nil)

	req := httptest.NewRequest(http.MethodOptions, "/api/portfolio", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}
