package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ndewijer/Stock-Portfolio-Tracker-Backend/internal/api/request"
	"github.com/ndewijer/Stock-Portfolio-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Stock-Portfolio-Tracker-Backend/internal/model"
	"github.com/ndewijer/Stock-Portfolio-Tracker-Backend/internal/repository"
)

// StockService handles stock-related business logic operations.
type StockService struct {
	stockRepo     *repository.StockRepository
	groupRepo     *repository.GroupRepository
	portfolioRepo *repository.PortfolioRepository
}

// NewStockService creates a new StockService with the provided repository dependencies.
func NewStockService(
	stockRepo *repository.StockRepository,
	groupRepo *repository.GroupRepository,
	portfolioRepo *repository.PortfolioRepository,
) *StockService {
	return &StockService{
		stockRepo:     stockRepo,
		groupRepo:     groupRepo,
		portfolioRepo: portfolioRepo,
	}
}

// GetStocks lists the stocks of a portfolio in creation order.
func (s *StockService) GetStocks(ctx context.Context, portfolioID string) ([]model.Stock, error) {
	if _, err := s.portfolioRepo.GetPortfolioOnID(ctx, portfolioID); err != nil {
		return nil, err
	}
	return s.stockRepo.GetStocksByPortfolio(ctx, portfolioID)
}

func (s *StockService) GetStock(ctx context.Context, stockID string) (model.Stock, error) {
	return s.stockRepo.GetStock(ctx, stockID)
}

// CreateStock adds a stock to a portfolio.
// The symbol is stored upper-cased; an empty symbol or group is stored as absent.
// Returns apperrors.ErrGroupPortfolioMismatch when the group belongs to another portfolio.
func (s *StockService) CreateStock(ctx context.Context, portfolioID string, req request.StockRequest) (*model.Stock, error) {
	if _, err := s.portfolioRepo.GetPortfolioOnID(ctx, portfolioID); err != nil {
		return nil, err
	}

	stock := &model.Stock{
		ID:          uuid.New().String(),
		PortfolioID: portfolioID,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.apply(ctx, stock, req); err != nil {
		return nil, err
	}

	if err := s.stockRepo.InsertStock(ctx, stock); err != nil {
		return nil, fmt.Errorf("failed to create stock: %w", err)
	}

	return stock, nil
}

// UpdateStock replaces the editable fields of a stock.
func (s *StockService) UpdateStock(ctx context.Context, stockID string, req request.StockRequest) (*model.Stock, error) {
	stock, err := s.stockRepo.GetStock(ctx, stockID)
	if err != nil {
		return nil, err
	}
	if err := s.apply(ctx, &stock, req); err != nil {
		return nil, err
	}

	if err := s.stockRepo.UpdateStock(ctx, &stock); err != nil {
		return nil, fmt.Errorf("failed to update stock: %w", err)
	}

	return &stock, nil
}

// DeleteStock removes a stock and all of its transactions.
func (s *StockService) DeleteStock(ctx context.Context, stockID string) error {
	return s.stockRepo.DeleteStock(ctx, stockID)
}

func (s *StockService) apply(ctx context.Context, stock *model.Stock, req request.StockRequest) error {
	stock.Name = strings.TrimSpace(req.Name)
	stock.Symbol = NormalizeSymbol(req.Symbol)
	stock.ManualPrice = req.ManualPrice
	stock.GroupID = nil

	if req.GroupID != nil && *req.GroupID != "" {
		group, err := s.groupRepo.GetGroup(ctx, *req.GroupID)
		if err != nil {
			return err
		}
		if group.PortfolioID != stock.PortfolioID {
			return apperrors.ErrGroupPortfolioMismatch
		}
		groupID := group.ID
		stock.GroupID = &groupID
	}
	return nil
}

// NormalizeSymbol trims and upper-cases a symbol, returning nil for an empty one.
func NormalizeSymbol(symbol *string) *string {
	if symbol == nil {
		return nil
	}
	s := strings.ToUpper(strings.TrimSpace(*symbol))
	if s == "" {
		return nil
	}
	return &s
}
