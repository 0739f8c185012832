package service

import (
	"github.com/shopspring/decimal"

	"github.com/ndewijer/Stock-Portfolio-Tracker-Backend/internal/model"
)

var (
	hundred = decimal.NewFromInt(100)
	half    = decimal.NewFromFloat(0.5)
)

// ResolveCurrentPrice picks the price used to value a stock.
//
// Priority:
//   - A manual price greater than zero always wins.
//   - Otherwise the resolved market price of the stock's symbol, if any.
//   - Otherwise the stock is unpriced and nil is returned.
//
// Parameters:
//   - stock: The stock to price
//   - prices: Symbol to price mapping returned by the quote resolver
//
// Returns the chosen price (or nil) and where it came from.
func ResolveCurrentPrice(stock model.Stock, prices map[string]float64) (*float64, model.PriceSource) {
	if stock.ManualPrice != nil && *stock.ManualPrice > 0 {
		price := *stock.ManualPrice
		return &price, model.PriceSourceManual
	}
	if stock.Symbol != nil && *stock.Symbol != "" {
		if price, ok := prices[*stock.Symbol]; ok && price > 0 {
			return &price, model.PriceSourceMarket
		}
	}
	return nil, model.PriceSourceNone
}

// CalculateStockMetrics folds a stock's transactions and an optional current price into its position metrics.
// It is a pure function and safe to call on every read.
//
// Weighted-average cost is used: every sell is costed at the average price of all buys,
// regardless of lot order. Sums are order independent.
//
// Calculation:
//   - remaining = bought - sold, may go negative and is then flagged as oversold
//   - avgBuyPrice = buyAmount / bought, 0 when nothing was bought
//   - realized = sellAmount - sold * avgBuyPrice
//   - unrealized is only computed with a price > 0 and remaining > 0
//   - totalProfit = realized + unrealized, relative to the cost of sold plus held quantity
//
// Currency amounts are rounded to whole units (halves toward +inf); percentages are
// computed from unrounded values and left unrounded. Every percentage is 0 when its cost base is not positive.
//
// Parameters:
//   - transactions: All transactions of the stock
//   - currentPrice: Price to value the remaining quantity with, nil when unpriced
//
// Returns the StockMetrics for the stock. PriceSource is left for the caller to set.
func CalculateStockMetrics(transactions []model.Transaction, currentPrice *float64) model.StockMetrics {
	var buyQty, sellQty int64
	buyAmount, sellAmount := decimal.Zero, decimal.Zero

	for _, t := range transactions {
		amount := decimal.NewFromInt(t.Quantity).Mul(decimal.NewFromFloat(t.Price))
		switch t.Type {
		case model.TransactionTypeBuy:
			buyQty += t.Quantity
			buyAmount = buyAmount.Add(amount)
		case model.TransactionTypeSell:
			sellQty += t.Quantity
			sellAmount = sellAmount.Add(amount)
		}
	}

	remaining := buyQty - sellQty

	avgBuyPrice := decimal.Zero
	if buyQty > 0 {
		avgBuyPrice = buyAmount.Div(decimal.NewFromInt(buyQty))
	}

	costOfSold := decimal.NewFromInt(sellQty).Mul(avgBuyPrice)
	costOfRemaining := decimal.NewFromInt(remaining).Mul(avgBuyPrice)
	realized := sellAmount.Sub(costOfSold)

	currentValue, unrealized := decimal.Zero, decimal.Zero
	unrealizedPct := decimal.Zero
	if currentPrice != nil && *currentPrice > 0 && remaining > 0 {
		currentValue = decimal.NewFromInt(remaining).Mul(decimal.NewFromFloat(*currentPrice))
		unrealized = currentValue.Sub(costOfRemaining)
		unrealizedPct = percentage(unrealized, costOfRemaining)
	}

	totalProfit := realized.Add(unrealized)

	return model.StockMetrics{
		TotalBuyQuantity:           buyQty,
		TotalBuyAmount:             wholeUnits(buyAmount),
		TotalSellQuantity:          sellQty,
		TotalSellAmount:            wholeUnits(sellAmount),
		RemainingQuantity:          remaining,
		AvgBuyPrice:                avgBuyPrice.InexactFloat64(),
		CostOfSold:                 costOfSold.InexactFloat64(),
		CostOfRemaining:            costOfRemaining.InexactFloat64(),
		RealizedProfit:             wholeUnits(realized),
		ProfitPercentage:           percentage(realized, costOfSold).InexactFloat64(),
		CurrentPrice:               currentPrice,
		CurrentValue:               wholeUnits(currentValue),
		UnrealizedProfit:           wholeUnits(unrealized),
		UnrealizedProfitPercentage: unrealizedPct.InexactFloat64(),
		TotalProfit:                wholeUnits(totalProfit),
		TotalProfitPercentage:      percentage(totalProfit, costOfSold.Add(costOfRemaining)).InexactFloat64(),
		Oversold:                   remaining < 0,
	}
}

// SummarizePortfolio aggregates per-stock metrics into a portfolio summary.
// Amount totals add up the already rounded per-stock amounts. TotalInvested is the
// cost of every sold and held quantity at its stock's average buy price, rounded
// after summing.
func SummarizePortfolio(metrics []model.StockMetrics) model.PortfolioSummary {
	var summary model.PortfolioSummary
	invested := decimal.Zero
	profit := decimal.Zero

	for _, m := range metrics {
		summary.TotalBuyAmount += m.TotalBuyAmount
		summary.TotalSellAmount += m.TotalSellAmount
		summary.TotalRealizedProfit += m.RealizedProfit
		summary.TotalUnrealizedProfit += m.UnrealizedProfit
		profit = profit.Add(decimal.NewFromFloat(m.TotalProfit))
		invested = invested.
			Add(decimal.NewFromFloat(m.CostOfSold)).
			Add(decimal.NewFromFloat(m.CostOfRemaining))
	}

	summary.TotalProfit = profit.InexactFloat64()
	summary.TotalInvested = wholeUnits(invested)
	summary.ProfitPercentage = percentage(profit, invested).InexactFloat64()
	return summary
}

// percentage returns part / base * 100, or 0 when base is not positive.
func percentage(part, base decimal.Decimal) decimal.Decimal {
	if !base.IsPositive() {
		return decimal.Zero
	}
	return part.Div(base).Mul(hundred)
}

// wholeUnits rounds to the nearest whole unit, with halves going toward positive infinity.
func wholeUnits(d decimal.Decimal) float64 {
	return d.Add(half).Floor().InexactFloat64()
}
