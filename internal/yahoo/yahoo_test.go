package yahoo

import (
	"context"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sparkBody = `{
  "spark": {
    "result": [
      {"symbol": "AAPL", "response": [{"meta": {"symbol": "AAPL", "regularMarketPrice": 190.5}}]},
      {"symbol": "MSFT", "response": [{"meta": {"symbol": "MSFT", "regularMarketPrice": 0}}]},
      {"symbol": "EMPTY", "response": []}
    ],
    "error": null
  }
}`

func TestQuoteValid(t *testing.T) {
	assert.True(t, Quote{Symbol: "AAPL", Price: 1}.Valid())
	assert.False(t, Quote{Symbol: "", Price: 1}.Valid())
	assert.False(t, Quote{Symbol: "AAPL", Price: 0}.Valid())
	assert.False(t, Quote{Symbol: "AAPL", Price: -3}.Valid())
	assert.False(t, Quote{Symbol: "AAPL", Price: math.Inf(1)}.Valid())
	assert.False(t, Quote{Symbol: "AAPL", Price: math.NaN()}.Valid())
}

func TestQueryQuotes(t *testing.T) {
	t.Run("returns only valid quotes", func(t *testing.T) {
		var gotPath, gotSymbols, gotAgent string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotSymbols = r.URL.Query().Get("symbols")
			gotAgent = r.Header.Get("User-Agent")
			_, _ = w.Write([]byte(sparkBody))
		}))
		defer server.Close()

		client := NewFinanceClient(WithBaseURL(server.URL))
		quotes, err := client.QueryQuotes(context.Background(), []string{"AAPL", "MSFT", "EMPTY"})
		require.NoError(t, err)

		assert.Equal(t, "/v7/finance/spark", gotPath)
		assert.Equal(t, "AAPL,MSFT,EMPTY", gotSymbols)
		assert.Contains(t, gotAgent, "Mozilla")
		assert.Equal(t, []Quote{{Symbol: "AAPL", Price: 190.5}}, quotes)
	})

	t.Run("no symbols makes no request", func(t *testing.T) {
		called := false
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			called = true
		}))
		defer server.Close()

		quotes, err := NewFinanceClient(WithBaseURL(server.URL)).QueryQuotes(context.Background(), nil)
		require.NoError(t, err)
		assert.Empty(t, quotes)
		assert.False(t, called)
	})

	t.Run("server error fails the request", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}))
		defer server.Close()

		_, err := NewFinanceClient(WithBaseURL(server.URL)).QueryQuotes(context.Background(), []string{"AAPL"})
		assert.Error(t, err)
	})

	t.Run("yahoo error object fails the request", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"spark":{"result":null,"error":{"code":"Bad Request","description":"Missing symbols"}}}`))
		}))
		defer server.Close()

		_, err := NewFinanceClient(WithBaseURL(server.URL)).QueryQuotes(context.Background(), []string{"AAPL"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Missing symbols")
	})
}

func TestQueryQuote(t *testing.T) {
	t.Run("reads regular market price", func(t *testing.T) {
		var gotPath string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			_, _ = w.Write([]byte(`{"chart":{"result":[{"meta":{"symbol":"005930.KS","regularMarketPrice":71200}}],"error":null}}`))
		}))
		defer server.Close()

		quote, err := NewFinanceClient(WithBaseURL(server.URL)).QueryQuote(context.Background(), "005930.KS")
		require.NoError(t, err)
		assert.Equal(t, "/v8/finance/chart/005930.KS", gotPath)
		assert.Equal(t, Quote{Symbol: "005930.KS", Price: 71200}, quote)
	})

	t.Run("unknown symbol", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found, symbol may be delisted"}}}`))
		}))
		defer server.Close()

		_, err := NewFinanceClient(WithBaseURL(server.URL)).QueryQuote(context.Background(), "NOPE")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "delisted")
	})

	t.Run("zero price is rejected", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"chart":{"result":[{"meta":{"regularMarketPrice":0}}],"error":null}}`))
		}))
		defer server.Close()

		_, err := NewFinanceClient(WithBaseURL(server.URL)).QueryQuote(context.Background(), "AAPL")
		assert.Error(t, err)
	})

	t.Run("cancelled context", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{}`))
		}))
		defer server.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := NewFinanceClient(WithBaseURL(server.URL)).QueryQuote(ctx, "AAPL")
		assert.ErrorIs(t, err, context.Canceled)
	})
}
