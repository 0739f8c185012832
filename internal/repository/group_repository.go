package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ndewijer/Stock-Portfolio-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Stock-Portfolio-Tracker-Backend/internal/model"
)

// GroupRepository provides data access methods for the stock_group table.
type GroupRepository struct {
	db *sql.DB
}

// NewGroupRepository creates a new GroupRepository with the provided database connection.
func NewGroupRepository(db *sql.DB) *GroupRepository {
	return &GroupRepository{db: db}
}

// GetGroupsByPortfolio returns the groups of a portfolio in creation order.
func (r *GroupRepository) GetGroupsByPortfolio(ctx context.Context, portfolioID string) ([]model.Group, error) {
	query := `
		SELECT id, portfolio_id, name, created_at
		FROM stock_group
		WHERE portfolio_id = ?
		ORDER BY created_at ASC, rowid ASC
	`

	rows, err := r.db.QueryContext(ctx, query, portfolioID)
	if err != nil {
		return nil, fmt.Errorf("failed to query stock_group table: %w", err)
	}
	defer rows.Close()

	groups := []model.Group{}
	for rows.Next() {
		g, err := scanGroup(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan stock_group table results: %w", err)
		}
		groups = append(groups, g)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating stock_group table: %w", err)
	}

	return groups, nil
}

// GetGroup retrieves a single group.
// Returns apperrors.ErrGroupNotFound if it does not exist.
func (r *GroupRepository) GetGroup(ctx context.Context, groupID string) (model.Group, error) {
	query := `SELECT id, portfolio_id, name, created_at FROM stock_group WHERE id = ?`

	g, err := scanGroup(r.db.QueryRowContext(ctx, query, groupID))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Group{}, apperrors.ErrGroupNotFound
	}
	if err != nil {
		return model.Group{}, fmt.Errorf("failed to query group: %w", err)
	}
	return g, nil
}

// InsertGroup stores a new group.
func (r *GroupRepository) InsertGroup(ctx context.Context, g *model.Group) error {
	query := `INSERT INTO stock_group (id, portfolio_id, name, created_at) VALUES (?, ?, ?, ?)`

	if _, err := r.db.ExecContext(ctx, query, g.ID, g.PortfolioID, g.Name, formatTimestamp(g.CreatedAt)); err != nil {
		return fmt.Errorf("failed to insert group: %w", err)
	}
	return nil
}

// DeleteGroup removes a group. Stocks of the group keep existing without a group.
func (r *GroupRepository) DeleteGroup(ctx context.Context, groupID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM stock_group WHERE id = ?`, groupID)
	if err != nil {
		return fmt.Errorf("failed to delete group: %w", err)
	}
	return expectAffected(result, apperrors.ErrGroupNotFound)
}

func scanGroup(s scanner) (model.Group, error) {
	var g model.Group
	var createdAtStr string

	if err := s.Scan(&g.ID, &g.PortfolioID, &g.Name, &createdAtStr); err != nil {
		return model.Group{}, err
	}

	createdAt, err := ParseTime(createdAtStr)
	if err != nil {
		return model.Group{}, err
	}
	g.CreatedAt = createdAt

	return g, nil
}
