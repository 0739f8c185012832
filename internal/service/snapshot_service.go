package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ndewijer/Stock-Portfolio-Tracker-Backend/internal/model"
	"github.com/ndewijer/Stock-Portfolio-Tracker-Backend/internal/repository"
)

// SnapshotService stores and reads daily portfolio summaries.
type SnapshotService struct {
	snapshotRepo  *repository.SnapshotRepository
	portfolioRepo *repository.PortfolioRepository
	dashboard     *DashboardService
	log           zerolog.Logger
	now           func() time.Time
}

// NewSnapshotService creates a new SnapshotService.
func NewSnapshotService(
	snapshotRepo *repository.SnapshotRepository,
	portfolioRepo *repository.PortfolioRepository,
	dashboard *DashboardService,
	log zerolog.Logger,
) *SnapshotService {
	return &SnapshotService{
		snapshotRepo:  snapshotRepo,
		portfolioRepo: portfolioRepo,
		dashboard:     dashboard,
		log:           log.With().Str("component", "snapshot").Logger(),
		now:           time.Now,
	}
}

// TakeSnapshots values every portfolio and stores today's summary, replacing an
// earlier snapshot of the same day.
//
// A failing portfolio is logged and skipped so the others are still stored.
//
// Returns the number of snapshots written and the joined errors of the failed portfolios.
func (s *SnapshotService) TakeSnapshots(ctx context.Context) (int, error) {
	portfolios, err := s.portfolioRepo.GetPortfolios(ctx)
	if err != nil {
		return 0, err
	}

	now := s.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	written := 0
	var errs []error
	for _, portfolio := range portfolios {
		if err := ctx.Err(); err != nil {
			return written, err
		}

		summary, err := s.dashboard.GetSummary(ctx, portfolio.ID)
		if err != nil {
			s.log.Error().Err(err).Str("portfolio_id", portfolio.ID).Msg("Failed to value portfolio")
			errs = append(errs, fmt.Errorf("portfolio %s: %w", portfolio.ID, err))
			continue
		}

		snapshot := &model.PortfolioSnapshot{
			ID:               uuid.New().String(),
			PortfolioID:      portfolio.ID,
			Date:             today,
			PortfolioSummary: summary,
			CalculatedAt:     now,
		}
		if err := s.snapshotRepo.UpsertSnapshot(ctx, snapshot); err != nil {
			s.log.Error().Err(err).Str("portfolio_id", portfolio.ID).Msg("Failed to store snapshot")
			errs = append(errs, fmt.Errorf("portfolio %s: %w", portfolio.ID, err))
			continue
		}
		written++
	}

	s.log.Info().Int("portfolios", len(portfolios)).Int("written", written).Msg("Portfolio snapshots taken")
	return written, errors.Join(errs...)
}

// GetHistory returns the stored snapshots of a portfolio between start and end, both inclusive.
// Returns apperrors.ErrPortfolioNotFound for an unknown portfolio.
func (s *SnapshotService) GetHistory(ctx context.Context, portfolioID string, start, end time.Time) ([]model.PortfolioSnapshot, error) {
	if _, err := s.portfolioRepo.GetPortfolioOnID(ctx, portfolioID); err != nil {
		return nil, err
	}
	return s.snapshotRepo.GetSnapshots(ctx, portfolioID, start, end)
}
