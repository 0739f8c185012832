package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ndewijer/Stock-Portfolio-Tracker-Backend/internal/api/request"
	"github.com/ndewijer/Stock-Portfolio-Tracker-Backend/internal/model"
	"github.com/ndewijer/Stock-Portfolio-Tracker-Backend/internal/repository"
)

// Defaults of the portfolio created when none exists yet.
const (
	DefaultPortfolioName        = "My Portfolio"
	DefaultPortfolioDescription = "Stock investment portfolio"
)

// PortfolioService handles portfolio-related business logic operations.
type PortfolioService struct {
	portfolioRepo *repository.PortfolioRepository
}

// NewPortfolioService creates a new PortfolioService with the provided repository dependencies.
func NewPortfolioService(portfolioRepo *repository.PortfolioRepository) *PortfolioService {
	return &PortfolioService{
		portfolioRepo: portfolioRepo,
	}
}

// GetPortfolios retrieves all portfolios ordered by creation time.
func (s *PortfolioService) GetPortfolios(ctx context.Context) ([]model.Portfolio, error) {
	return s.portfolioRepo.GetPortfolios(ctx)
}

// GetPortfolio retrieves a single portfolio by ID.
// Returns apperrors.ErrPortfolioNotFound if it does not exist.
func (s *PortfolioService) GetPortfolio(ctx context.Context, portfolioID string) (model.Portfolio, error) {
	return s.portfolioRepo.GetPortfolioOnID(ctx, portfolioID)
}

// GetDefaultPortfolio returns the oldest portfolio, creating the default one on first use.
func (s *PortfolioService) GetDefaultPortfolio(ctx context.Context) (model.Portfolio, error) {
	portfolios, err := s.portfolioRepo.GetPortfolios(ctx)
	if err != nil {
		return model.Portfolio{}, err
	}
	if len(portfolios) > 0 {
		return portfolios[0], nil
	}

	description := DefaultPortfolioDescription
	portfolio, err := s.CreatePortfolio(ctx, request.CreatePortfolioRequest{
		Name:        DefaultPortfolioName,
		Description: &description,
	})
	if err != nil {
		return model.Portfolio{}, err
	}
	return *portfolio, nil
}

// CreatePortfolio stores a new portfolio. The request must already be validated.
func (s *PortfolioService) CreatePortfolio(ctx context.Context, req request.CreatePortfolioRequest) (*model.Portfolio, error) {
	portfolio := &model.Portfolio{
		ID:          uuid.New().String(),
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.portfolioRepo.InsertPortfolio(ctx, portfolio); err != nil {
		return nil, fmt.Errorf("failed to create portfolio: %w", err)
	}

	return portfolio, nil
}

// UpdatePortfolio applies the fields present in req to an existing portfolio.
func (s *PortfolioService) UpdatePortfolio(ctx context.Context, portfolioID string, req request.UpdatePortfolioRequest) (*model.Portfolio, error) {
	portfolio, err := s.portfolioRepo.GetPortfolioOnID(ctx, portfolioID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		portfolio.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		portfolio.Description = req.Description
	}

	if err := s.portfolioRepo.UpdatePortfolio(ctx, &portfolio); err != nil {
		return nil, fmt.Errorf("failed to update portfolio: %w", err)
	}

	return &portfolio, nil
}

// DeletePortfolio removes a portfolio together with its groups, stocks and transactions.
func (s *PortfolioService) DeletePortfolio(ctx context.Context, portfolioID string) error {
	return s.portfolioRepo.DeletePortfolio(ctx, portfolioID)
}
