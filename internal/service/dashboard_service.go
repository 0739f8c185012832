package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/ndewijer/Stock-Portfolio-Tracker-Backend/internal/model"
	"github.com/ndewijer/Stock-Portfolio-Tracker-Backend/internal/repository"
)

// OtherGroupName is the name of the bucket holding stocks without a matching group.
const OtherGroupName = "Other"

// PriceResolver returns current prices for the symbols it could resolve.
type PriceResolver interface {
	Resolve(ctx context.Context, symbols []string) map[string]float64
}

// DashboardService builds the valued view of a portfolio.
// Every call reloads the portfolio and resolves prices again.
type DashboardService struct {
	portfolioRepo   *repository.PortfolioRepository
	groupRepo       *repository.GroupRepository
	stockRepo       *repository.StockRepository
	transactionRepo *repository.TransactionRepository
	resolver        PriceResolver
	log             zerolog.Logger
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(
	portfolioRepo *repository.PortfolioRepository,
	groupRepo *repository.GroupRepository,
	stockRepo *repository.StockRepository,
	transactionRepo *repository.TransactionRepository,
	resolver PriceResolver,
	log zerolog.Logger,
) *DashboardService {
	return &DashboardService{
		portfolioRepo:   portfolioRepo,
		groupRepo:       groupRepo,
		stockRepo:       stockRepo,
		transactionRepo: transactionRepo,
		resolver:        resolver,
		log:             log.With().Str("component", "dashboard").Logger(),
	}
}

// GetDashboard loads a portfolio with its groups and valued stocks.
//
// Flow:
//  1. Load portfolio, groups, stocks and all their transactions
//  2. Resolve prices for every stock symbol in one batch
//  3. Calculate metrics per stock and the portfolio summary
//  4. Apply the search filter and group the stocks
//
// The search term matches stock name or symbol case-insensitively. It narrows
// Stocks and GroupedStocks only; the summary always covers the whole portfolio.
//
// Returns apperrors.ErrPortfolioNotFound for an unknown portfolio. Datastore
// errors abort the refresh; unresolved prices never do.
func (s *DashboardService) GetDashboard(ctx context.Context, portfolioID, search string) (model.Dashboard, error) {
	portfolio, err := s.portfolioRepo.GetPortfolioOnID(ctx, portfolioID)
	if err != nil {
		return model.Dashboard{}, err
	}

	groups, err := s.groupRepo.GetGroupsByPortfolio(ctx, portfolioID)
	if err != nil {
		return model.Dashboard{}, err
	}

	stocks, summary, err := s.valueStocks(ctx, portfolioID)
	if err != nil {
		return model.Dashboard{}, err
	}

	stocks = filterStocks(stocks, search)

	return model.Dashboard{
		Portfolio:     portfolio,
		Groups:        groups,
		Stocks:        stocks,
		GroupedStocks: groupStocks(groups, stocks),
		Summary:       summary,
	}, nil
}

// GetSummary values a portfolio and returns only its summary.
func (s *DashboardService) GetSummary(ctx context.Context, portfolioID string) (model.PortfolioSummary, error) {
	if _, err := s.portfolioRepo.GetPortfolioOnID(ctx, portfolioID); err != nil {
		return model.PortfolioSummary{}, err
	}
	_, summary, err := s.valueStocks(ctx, portfolioID)
	return summary, err
}

func (s *DashboardService) valueStocks(ctx context.Context, portfolioID string) ([]model.StockWithMetrics, model.PortfolioSummary, error) {
	stocks, err := s.stockRepo.GetStocksByPortfolio(ctx, portfolioID)
	if err != nil {
		return nil, model.PortfolioSummary{}, err
	}

	stockIDs := make([]string, len(stocks))
	var symbols []string
	for i, stock := range stocks {
		stockIDs[i] = stock.ID
		if stock.Symbol != nil && *stock.Symbol != "" {
			symbols = append(symbols, *stock.Symbol)
		}
	}

	transactions, err := s.transactionRepo.GetTransactionsByStocks(ctx, stockIDs)
	if err != nil {
		return nil, model.PortfolioSummary{}, err
	}

	prices := s.resolver.Resolve(ctx, symbols)

	valued := make([]model.StockWithMetrics, 0, len(stocks))
	metrics := make([]model.StockMetrics, 0, len(stocks))
	for _, stock := range stocks {
		txs := transactions[stock.ID]
		if txs == nil {
			txs = []model.Transaction{}
		}

		price, source := ResolveCurrentPrice(stock, prices)
		m := CalculateStockMetrics(txs, price)
		m.PriceSource = source

		if m.Oversold {
			s.log.Warn().
				Str("stock_id", stock.ID).
				Int64("remaining_quantity", m.RemainingQuantity).
				Msg("Stock has more sold than bought")
		}

		valued = append(valued, model.StockWithMetrics{Stock: stock, Transactions: txs, StockMetrics: m})
		metrics = append(metrics, m)
	}

	return valued, SummarizePortfolio(metrics), nil
}

func filterStocks(stocks []model.StockWithMetrics, search string) []model.StockWithMetrics {
	term := strings.ToLower(strings.TrimSpace(search))
	if term == "" {
		return stocks
	}

	filtered := []model.StockWithMetrics{}
	for _, stock := range stocks {
		if strings.Contains(strings.ToLower(stock.Name), term) ||
			(stock.Symbol != nil && strings.Contains(strings.ToLower(*stock.Symbol), term)) {
			filtered = append(filtered, stock)
		}
	}
	return filtered
}

// groupStocks buckets stocks by group in group creation order. Every group gets a
// bucket, even an empty one. Stocks without a known group go to a trailing
// OtherGroupName bucket, which is left out when empty.
func groupStocks(groups []model.Group, stocks []model.StockWithMetrics) []model.StockGroupView {
	views := make([]model.StockGroupView, len(groups))
	index := make(map[string]int, len(groups))
	for i, g := range groups {
		groupID := g.ID
		views[i] = model.StockGroupView{GroupID: &groupID, Name: g.Name, Stocks: []model.StockWithMetrics{}}
		index[g.ID] = i
	}

	other := model.StockGroupView{Name: OtherGroupName, Stocks: []model.StockWithMetrics{}}
	for _, stock := range stocks {
		if stock.GroupID != nil {
			if i, ok := index[*stock.GroupID]; ok {
				views[i].Stocks = append(views[i].Stocks, stock)
				continue
			}
		}
		other.Stocks = append(other.Stocks, stock)
	}

	if len(other.Stocks) > 0 {
		views = append(views, other)
	}
	return views
}
