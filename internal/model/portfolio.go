package model

import "time"

// Portfolio represents a portfolio from the database
type Portfolio struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Group is a user defined bucket of stocks within a portfolio.
type Group struct {
	ID          string    `json:"id"`
	PortfolioID string    `json:"portfolioId"`
	Name        string    `json:"name"`
	CreatedAt   time.Time `json:"createdAt"`
}

// PortfolioSummary aggregates the metrics of every stock in a portfolio.
// Amounts are sums of the per-stock rounded amounts; TotalInvested is the cost
// of sold plus still-held quantities at each stock's average buy price.
type PortfolioSummary struct {
	TotalBuyAmount        float64 `json:"totalBuyAmount"`
	TotalSellAmount       float64 `json:"totalSellAmount"`
	TotalRealizedProfit   float64 `json:"totalRealizedProfit"`
	TotalUnrealizedProfit float64 `json:"totalUnrealizedProfit"`
	TotalProfit           float64 `json:"totalProfit"`
	TotalInvested         float64 `json:"totalInvested"`
	ProfitPercentage      float64 `json:"profitPercentage"`
}

// PortfolioSnapshot is a stored PortfolioSummary for one portfolio and day.
type PortfolioSnapshot struct {
	ID          string    `json:"id"`
	PortfolioID string    `json:"portfolioId"`
	Date        time.Time `json:"date"`
	PortfolioSummary
	CalculatedAt time.Time `json:"calculatedAt"`
}
