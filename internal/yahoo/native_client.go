package yahoo

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/wnjoon/go-yfinance/pkg/models"
	"github.com/wnjoon/go-yfinance/pkg/multi"
	"github.com/wnjoon/go-yfinance/pkg/ticker"
)

// NativeClient provides the same quote operations as FinanceClient on top of go-yfinance.
// The library manages its own HTTP session, so the context is only checked
// before each call.
type NativeClient struct {
	log zerolog.Logger
}

// NewNativeClient creates a new go-yfinance backed client
func NewNativeClient(log zerolog.Logger) *NativeClient {
	return &NativeClient{
		log: log.With().Str("client", "yahoo-native").Logger(),
	}
}

// QueryQuotes downloads the last daily bar of every symbol and uses its close as the price.
func (c *NativeClient) QueryQuotes(ctx context.Context, symbols []string) ([]Quote, error) {
	if len(symbols) == 0 {
		return []Quote{}, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	params := models.DefaultDownloadParams()
	params.Symbols = symbols
	params.Period = "5d"
	params.Interval = "1d"

	result, err := multi.Download(symbols, &params)
	if err != nil {
		return nil, fmt.Errorf("failed to download batch quotes: %w", err)
	}

	quotes := make([]Quote, 0, len(symbols))
	for _, symbol := range symbols {
		if bars, ok := result.Data[symbol]; ok && len(bars) > 0 {
			quote := Quote{Symbol: symbol, Price: bars[len(bars)-1].Close}
			if quote.Valid() {
				quotes = append(quotes, quote)
			}
		} else if err, ok := result.Errors[symbol]; ok {
			c.log.Debug().Err(err).Str("symbol", symbol).Msg("No quote for symbol")
		}
	}

	return quotes, nil
}

// QueryQuote fetches the regular market price of one symbol.
func (c *NativeClient) QueryQuote(ctx context.Context, symbol string) (Quote, error) {
	if err := ctx.Err(); err != nil {
		return Quote{}, err
	}

	t, err := ticker.New(symbol)
	if err != nil {
		return Quote{}, fmt.Errorf("failed to create ticker: %w", err)
	}
	defer t.Close()

	q, err := t.Quote()
	if err != nil {
		return Quote{}, fmt.Errorf("failed to get quote for %s: %w", symbol, err)
	}
	if q == nil {
		return Quote{}, fmt.Errorf("no quote returned for symbol %s", symbol)
	}

	quote := Quote{Symbol: symbol, Price: q.RegularMarketPrice}
	if !quote.Valid() {
		return Quote{}, fmt.Errorf("no valid price returned for symbol %s", symbol)
	}
	return quote, nil
}
