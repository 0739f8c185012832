package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	DefaultBaseURL = "https://query1.finance.yahoo.com"
	DefaultTimeout = 10 * time.Second
	userAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
)

// FinanceClient provides methods for fetching current quotes from the Yahoo Finance API.
// It wraps an HTTP client and validates every quote before handing it out.
type FinanceClient struct {
	baseURL    string
	httpClient *http.Client
	log        zerolog.Logger
}

// ClientOption configures the client
type ClientOption func(*FinanceClient)

// WithBaseURL sets the base URL
func WithBaseURL(baseURL string) ClientOption {
	return func(c *FinanceClient) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithTimeout sets the HTTP timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *FinanceClient) {
		c.httpClient.Timeout = timeout
	}
}

// WithLogger sets the logger
func WithLogger(log zerolog.Logger) ClientOption {
	return func(c *FinanceClient) {
		c.log = log.With().Str("client", "yahoo").Logger()
	}
}

// NewFinanceClient creates a new Yahoo Finance client with default HTTP settings.
func NewFinanceClient(opts ...ClientOption) *FinanceClient {
	c := &FinanceClient{
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		log:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// QueryQuotes fetches the current market price of several symbols in one request.
// Symbols Yahoo does not know are simply missing from the result. Entries
// without a symbol or a positive price are dropped.
//
// Returns an error only when the request as a whole fails.
func (c *FinanceClient) QueryQuotes(ctx context.Context, symbols []string) ([]Quote, error) {
	if len(symbols) == 0 {
		return []Quote{}, nil
	}

	params := url.Values{}
	params.Set("symbols", strings.Join(symbols, ","))
	params.Set("range", "1d")
	params.Set("interval", "1d")

	var response SparkResponse
	if err := c.queryYahoo(ctx, c.baseURL+"/v7/finance/spark?"+params.Encode(), &response); err != nil {
		return nil, err
	}
	if response.Spark.Error != nil {
		return nil, fmt.Errorf("yahoo error: %w", response.Spark.Error)
	}

	quotes := make([]Quote, 0, len(response.Spark.Result))
	for _, result := range response.Spark.Result {
		if len(result.Response) == 0 {
			continue
		}
		quote := Quote{Symbol: result.Symbol, Price: result.Response[0].Meta.RegularMarketPrice}
		if quote.Symbol == "" {
			quote.Symbol = result.Response[0].Meta.Symbol
		}
		if !quote.Valid() {
			c.log.Debug().Str("symbol", quote.Symbol).Float64("price", quote.Price).Msg("Dropping malformed quote")
			continue
		}
		quotes = append(quotes, quote)
	}

	return quotes, nil
}

// QueryQuote fetches the current market price of a single symbol from the chart API.
//
// Returns an error if the request fails, Yahoo reports an error, or the
// response carries no usable price.
func (c *FinanceClient) QueryQuote(ctx context.Context, symbol string) (Quote, error) {
	endpoint := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&range=1d", c.baseURL, url.PathEscape(symbol))

	var response ChartResponse
	if err := c.queryYahoo(ctx, endpoint, &response); err != nil {
		return Quote{}, err
	}
	if response.Chart.Error != nil {
		return Quote{}, fmt.Errorf("yahoo error: %w", response.Chart.Error)
	}
	if len(response.Chart.Result) == 0 {
		return Quote{}, fmt.Errorf("no results returned for symbol %s", symbol)
	}

	quote := Quote{Symbol: symbol, Price: response.Chart.Result[0].Meta.RegularMarketPrice}
	if !quote.Valid() {
		return Quote{}, fmt.Errorf("no valid price returned for symbol %s", symbol)
	}
	return quote, nil
}

// queryYahoo executes a GET request against Yahoo Finance and decodes the JSON body into out.
// Yahoo answers unknown symbols with a 404 carrying a JSON error body, so the body is
// decoded before the status code is judged.
func (c *FinanceClient) queryYahoo(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}

	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(data, out); err != nil {
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("yahoo http %d", resp.StatusCode)
		}
		return err
	}

	return nil
}
