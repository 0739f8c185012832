package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ndewijer/Stock-Portfolio-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Stock-Portfolio-Tracker-Backend/internal/model"
)

// PortfolioRepository provides data access methods for the portfolio table.
type PortfolioRepository struct {
	db *sql.DB
}

// NewPortfolioRepository creates a new PortfolioRepository with the provided database connection.
func NewPortfolioRepository(db *sql.DB) *PortfolioRepository {
	return &PortfolioRepository{db: db}
}

const portfolioColumns = `id, name, description, created_at`

// GetPortfolios retrieves all portfolios ordered by creation time.
// Returns an empty slice if no portfolios exist.
func (r *PortfolioRepository) GetPortfolios(ctx context.Context) ([]model.Portfolio, error) {
	query := `SELECT ` + portfolioColumns + ` FROM portfolio ORDER BY created_at ASC, rowid ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query portfolio table: %w", err)
	}
	defer rows.Close()

	portfolios := []model.Portfolio{}
	for rows.Next() {
		p, err := scanPortfolio(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan portfolio table results: %w", err)
		}
		portfolios = append(portfolios, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating portfolio table: %w", err)
	}

	return portfolios, nil
}

// GetPortfolioOnID retrieves a single portfolio.
// Returns apperrors.ErrPortfolioNotFound if it does not exist.
func (r *PortfolioRepository) GetPortfolioOnID(ctx context.Context, portfolioID string) (model.Portfolio, error) {
	query := `SELECT ` + portfolioColumns + ` FROM portfolio WHERE id = ?`

	p, err := scanPortfolio(r.db.QueryRowContext(ctx, query, portfolioID))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Portfolio{}, apperrors.ErrPortfolioNotFound
	}
	if err != nil {
		return model.Portfolio{}, fmt.Errorf("failed to query portfolio: %w", err)
	}

	return p, nil
}

// InsertPortfolio stores a new portfolio.
func (r *PortfolioRepository) InsertPortfolio(ctx context.Context, p *model.Portfolio) error {
	query := `INSERT INTO portfolio (id, name, description, created_at) VALUES (?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query, p.ID, p.Name, nullString(p.Description), formatTimestamp(p.CreatedAt))
	if err != nil {
		return fmt.Errorf("failed to insert portfolio: %w", err)
	}
	return nil
}

// UpdatePortfolio overwrites name and description of an existing portfolio.
func (r *PortfolioRepository) UpdatePortfolio(ctx context.Context, p *model.Portfolio) error {
	query := `UPDATE portfolio SET name = ?, description = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, p.Name, nullString(p.Description), p.ID)
	if err != nil {
		return fmt.Errorf("failed to update portfolio: %w", err)
	}
	return expectAffected(result, apperrors.ErrPortfolioNotFound)
}

// DeletePortfolio removes a portfolio together with its groups, stocks and transactions.
func (r *PortfolioRepository) DeletePortfolio(ctx context.Context, portfolioID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM portfolio WHERE id = ?`, portfolioID)
	if err != nil {
		return fmt.Errorf("failed to delete portfolio: %w", err)
	}
	return expectAffected(result, apperrors.ErrPortfolioNotFound)
}

func scanPortfolio(s scanner) (model.Portfolio, error) {
	var p model.Portfolio
	var description sql.NullString
	var createdAtStr string

	if err := s.Scan(&p.ID, &p.Name, &description, &createdAtStr); err != nil {
		return model.Portfolio{}, err
	}

	createdAt, err := ParseTime(createdAtStr)
	if err != nil {
		return model.Portfolio{}, err
	}
	p.Description = stringPtr(description)
	p.CreatedAt = createdAt

	return p, nil
}

// expectAffected maps an UPDATE/DELETE that touched no rows to notFound.
func expectAffected(result sql.Result, notFound error) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return notFound
	}
	return nil
}
