package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ndewijer/Stock-Portfolio-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Stock-Portfolio-Tracker-Backend/internal/model"
)

// StockRepository provides data access methods for the stock table.
type StockRepository struct {
	db *sql.DB
}

// NewStockRepository creates a new StockRepository with the provided database connection.
func NewStockRepository(db *sql.DB) *StockRepository {
	return &StockRepository{db: db}
}

const stockColumns = `id, portfolio_id, group_id, name, symbol, manual_price, created_at`

// GetStocksByPortfolio returns the stocks of a portfolio in creation order.
func (r *StockRepository) GetStocksByPortfolio(ctx context.Context, portfolioID string) ([]model.Stock, error) {
	query := `
		SELECT ` + stockColumns + `
		FROM stock
		WHERE portfolio_id = ?
		ORDER BY created_at ASC, rowid ASC
	`

	rows, err := r.db.QueryContext(ctx, query, portfolioID)
	if err != nil {
		return nil, fmt.Errorf("failed to query stock table: %w", err)
	}
	defer rows.Close()

	stocks := []model.Stock{}
	for rows.Next() {
		s, err := scanStock(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan stock table results: %w", err)
		}
		stocks = append(stocks, s)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating stock table: %w", err)
	}

	return stocks, nil
}

// GetStock retrieves a single stock.
// Returns apperrors.ErrStockNotFound if it does not exist.
func (r *StockRepository) GetStock(ctx context.Context, stockID string) (model.Stock, error) {
	query := `SELECT ` + stockColumns + ` FROM stock WHERE id = ?`

	s, err := scanStock(r.db.QueryRowContext(ctx, query, stockID))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Stock{}, apperrors.ErrStockNotFound
	}
	if err != nil {
		return model.Stock{}, fmt.Errorf("failed to query stock: %w", err)
	}
	return s, nil
}

// InsertStock stores a new stock.
func (r *StockRepository) InsertStock(ctx context.Context, s *model.Stock) error {
	query := `
		INSERT INTO stock (id, portfolio_id, group_id, name, symbol, manual_price, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.PortfolioID,
		nullString(s.GroupID),
		s.Name,
		nullString(s.Symbol),
		nullFloat(s.ManualPrice),
		formatTimestamp(s.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert stock: %w", err)
	}
	return nil
}

// UpdateStock overwrites the editable attributes of a stock.
func (r *StockRepository) UpdateStock(ctx context.Context, s *model.Stock) error {
	query := `UPDATE stock SET group_id = ?, name = ?, symbol = ?, manual_price = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query,
		nullString(s.GroupID),
		s.Name,
		nullString(s.Symbol),
		nullFloat(s.ManualPrice),
		s.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update stock: %w", err)
	}
	return expectAffected(result, apperrors.ErrStockNotFound)
}

// DeleteStock removes a stock and, through the foreign key cascade, its transactions.
func (r *StockRepository) DeleteStock(ctx context.Context, stockID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM stock WHERE id = ?`, stockID)
	if err != nil {
		return fmt.Errorf("failed to delete stock: %w", err)
	}
	return expectAffected(result, apperrors.ErrStockNotFound)
}

func scanStock(sc scanner) (model.Stock, error) {
	var s model.Stock
	var groupID, symbol sql.NullString
	var manualPrice sql.NullFloat64
	var createdAtStr string

	err := sc.Scan(
		&s.ID,
		&s.PortfolioID,
		&groupID,
		&s.Name,
		&symbol,
		&manualPrice,
		&createdAtStr,
	)
	if err != nil {
		return model.Stock{}, err
	}

	createdAt, err := ParseTime(createdAtStr)
	if err != nil {
		return model.Stock{}, err
	}
	s.GroupID = stringPtr(groupID)
	s.Symbol = stringPtr(symbol)
	s.ManualPrice = floatPtr(manualPrice)
	s.CreatedAt = createdAt

	return s, nil
}
