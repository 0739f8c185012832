package model

import "time"

// Stock is a holding tracked in a portfolio. Symbol is optional; stocks
// without one can only be valued through ManualPrice.
type Stock struct {
	ID          string    `json:"id"`
	PortfolioID string    `json:"portfolioId"`
	GroupID     *string   `json:"groupId"`
	Name        string    `json:"name"`
	Symbol      *string   `json:"symbol"`
	ManualPrice *float64  `json:"manualPrice"`
	CreatedAt   time.Time `json:"createdAt"`
}

// PriceSource records where the price used for valuation came from.
type PriceSource string

const (
	PriceSourceNone   PriceSource = ""
	PriceSourceManual PriceSource = "manual"
	PriceSourceMarket PriceSource = "market"
)

// StockMetrics holds the derived position figures of a single stock.
// Currency amounts are rounded to whole units, percentages are not.
// AvgBuyPrice, CostOfSold and CostOfRemaining keep full precision.
type StockMetrics struct {
	TotalBuyQuantity           int64       `json:"totalBuyQuantity"`
	TotalBuyAmount             float64     `json:"totalBuyAmount"`
	TotalSellQuantity          int64       `json:"totalSellQuantity"`
	TotalSellAmount            float64     `json:"totalSellAmount"`
	RemainingQuantity          int64       `json:"remainingQuantity"`
	AvgBuyPrice                float64     `json:"avgBuyPrice"`
	CostOfSold                 float64     `json:"costOfSold"`
	CostOfRemaining            float64     `json:"costOfRemaining"`
	RealizedProfit             float64     `json:"realizedProfit"`
	ProfitPercentage           float64     `json:"profitPercentage"`
	CurrentPrice               *float64    `json:"currentPrice"`
	PriceSource                PriceSource `json:"priceSource,omitempty"`
	CurrentValue               float64     `json:"currentValue"`
	UnrealizedProfit           float64     `json:"unrealizedProfit"`
	UnrealizedProfitPercentage float64     `json:"unrealizedProfitPercentage"`
	TotalProfit                float64     `json:"totalProfit"`
	TotalProfitPercentage      float64     `json:"totalProfitPercentage"`
	Oversold                   bool        `json:"oversold"` // more sold than bought
}

// StockWithMetrics is the view model of a stock on the dashboard.
type StockWithMetrics struct {
	Stock
	Transactions []Transaction `json:"transactions"`
	StockMetrics
}

// StockGroupView lists the stocks of one group. GroupID is nil for the
// bucket of stocks without a matching group.
type StockGroupView struct {
	GroupID *string            `json:"groupId"`
	Name    string             `json:"name"`
	Stocks  []StockWithMetrics `json:"stocks"`
}

// Dashboard is everything the overview screen renders for a portfolio.
type Dashboard struct {
	Portfolio     Portfolio          `json:"portfolio"`
	Groups        []Group            `json:"groups"`
	Stocks        []StockWithMetrics `json:"stocks"`
	GroupedStocks []StockGroupView   `json:"groupedStocks"`
	Summary       PortfolioSummary   `json:"summary"`
}
