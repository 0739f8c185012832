package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ndewijer/Stock-Portfolio-Tracker-Backend/internal/model"
)

// SnapshotRepository provides data access methods for the portfolio_snapshot table.
type SnapshotRepository struct {
	db *sql.DB
}

// NewSnapshotRepository creates a new repository instance.
func NewSnapshotRepository(db *sql.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// UpsertSnapshot stores the summary of a portfolio for the snapshot's date,
// replacing an earlier snapshot of the same day.
func (r *SnapshotRepository) UpsertSnapshot(ctx context.Context, s *model.PortfolioSnapshot) error {
	query := `
		INSERT INTO portfolio_snapshot (
			id, portfolio_id, date, total_buy_amount, total_sell_amount,
			total_realized_profit, total_unrealized_profit, total_profit,
			total_invested, profit_percentage, calculated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (portfolio_id, date) DO UPDATE SET
			total_buy_amount = excluded.total_buy_amount,
			total_sell_amount = excluded.total_sell_amount,
			total_realized_profit = excluded.total_realized_profit,
			total_unrealized_profit = excluded.total_unrealized_profit,
			total_profit = excluded.total_profit,
			total_invested = excluded.total_invested,
			profit_percentage = excluded.profit_percentage,
			calculated_at = excluded.calculated_at
	`

	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.PortfolioID,
		formatDate(s.Date),
		s.TotalBuyAmount,
		s.TotalSellAmount,
		s.TotalRealizedProfit,
		s.TotalUnrealizedProfit,
		s.TotalProfit,
		s.TotalInvested,
		s.ProfitPercentage,
		formatTimestamp(s.CalculatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert portfolio_snapshot: %w", err)
	}
	return nil
}

// GetSnapshots retrieves the snapshots of a portfolio between startDate and
// endDate (both inclusive), oldest first.
func (r *SnapshotRepository) GetSnapshots(ctx context.Context, portfolioID string, startDate, endDate time.Time) ([]model.PortfolioSnapshot, error) {
	query := `
		SELECT id, portfolio_id, date, total_buy_amount, total_sell_amount,
		       total_realized_profit, total_unrealized_profit, total_profit,
		       total_invested, profit_percentage, calculated_at
		FROM portfolio_snapshot
		WHERE portfolio_id = ?
		AND date >= ?
		AND date <= ?
		ORDER BY date ASC
	`

	rows, err := r.db.QueryContext(ctx, query, portfolioID, formatDate(startDate), formatDate(endDate))
	if err != nil {
		return nil, fmt.Errorf("failed to query portfolio_snapshot: %w", err)
	}
	defer rows.Close()

	snapshots := []model.PortfolioSnapshot{}
	for rows.Next() {
		var s model.PortfolioSnapshot
		var dateStr, calculatedAtStr string

		err := rows.Scan(
			&s.ID,
			&s.PortfolioID,
			&dateStr,
			&s.TotalBuyAmount,
			&s.TotalSellAmount,
			&s.TotalRealizedProfit,
			&s.TotalUnrealizedProfit,
			&s.TotalProfit,
			&s.TotalInvested,
			&s.ProfitPercentage,
			&calculatedAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		s.Date, err = ParseTime(dateStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse date: %w", err)
		}

		s.CalculatedAt, err = ParseTime(calculatedAtStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse calculated_at: %w", err)
		}

		snapshots = append(snapshots, s)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return snapshots, nil
}
