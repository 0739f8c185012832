package yahoo

import "math"

// ChartResponse represents the raw JSON response of the Yahoo Finance v8 chart API.
// Only the metadata needed for a current quote is decoded.
type ChartResponse struct {
	Chart struct {
		Result []ChartResult `json:"result"`
		Error  *APIError     `json:"error"`
	} `json:"chart"`
}

// ChartResult is one entry of a chart or spark response.
type ChartResult struct {
	Meta Meta `json:"meta"`
}

// Meta is the instrument metadata returned alongside chart data.
type Meta struct {
	Currency           string  `json:"currency"`
	Symbol             string  `json:"symbol"`
	ExchangeName       string  `json:"exchangeName"`
	RegularMarketPrice float64 `json:"regularMarketPrice"`
	RegularMarketTime  int64   `json:"regularMarketTime"`
}

// SparkResponse represents the raw JSON response of the Yahoo Finance spark API,
// which returns the chart metadata of several symbols in one request.
type SparkResponse struct {
	Spark struct {
		Result []struct {
			Symbol   string        `json:"symbol"`
			Response []ChartResult `json:"response"`
		} `json:"result"`
		Error *APIError `json:"error"`
	} `json:"spark"`
}

// APIError is the error object Yahoo embeds in otherwise successful responses.
type APIError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

func (e *APIError) Error() string {
	return e.Code + ": " + e.Description
}

// Quote is a validated current price for a symbol.
type Quote struct {
	Symbol string  `json:"symbol"`
	Price  float64 `json:"price"`
}

// Valid reports whether the quote carries a symbol and a usable price.
func (q Quote) Valid() bool {
	return q.Symbol != "" && q.Price > 0 && !math.IsInf(q.Price, 0) && !math.IsNaN(q.Price)
}
