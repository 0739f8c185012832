package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/ndewijer/Stock-Portfolio-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Stock-Portfolio-Tracker-Backend/internal/model"
)

// TransactionRepository provides data access methods for the transaction table.
type TransactionRepository struct {
	db *sql.DB
}

// NewTransactionRepository creates a new TransactionRepository with the provided database connection.
func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

const transactionColumns = `id, stock_id, type, quantity, price, transaction_date, created_at`

// GetTransactionsByStock returns the transactions of one stock in chronological order.
func (r *TransactionRepository) GetTransactionsByStock(ctx context.Context, stockID string) ([]model.Transaction, error) {
	byStock, err := r.GetTransactionsByStocks(ctx, []string{stockID})
	if err != nil {
		return nil, err
	}
	if transactions, ok := byStock[stockID]; ok {
		return transactions, nil
	}
	return []model.Transaction{}, nil
}

// GetTransactionsByStocks retrieves all transactions of the given stocks in one query.
// Transactions are sorted by date (then insertion) and grouped by stock ID.
//
// Returns a map of stockID -> []Transaction. If stockIDs is empty, returns an empty map.
func (r *TransactionRepository) GetTransactionsByStocks(ctx context.Context, stockIDs []string) (map[string][]model.Transaction, error) {
	if len(stockIDs) == 0 {
		return make(map[string][]model.Transaction), nil
	}

	placeholders := make([]string, len(stockIDs))
	for i := range placeholders {
		placeholders[i] = "?"
	}

	//#nosec G202 -- Safe: placeholders are generated programmatically, not from user input
	query := `
		SELECT ` + transactionColumns + `
		FROM "transaction"
		WHERE stock_id IN (` + strings.Join(placeholders, ",") + `)
		ORDER BY transaction_date ASC, created_at ASC, rowid ASC
	`

	args := make([]any, len(stockIDs))
	for i, id := range stockIDs {
		args[i] = id
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction table: %w", err)
	}
	defer rows.Close()

	transactionsByStock := make(map[string][]model.Transaction)
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction table results: %w", err)
		}
		transactionsByStock[t.StockID] = append(transactionsByStock[t.StockID], t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction table: %w", err)
	}

	return transactionsByStock, nil
}

// GetTransaction retrieves a single transaction.
// Returns apperrors.ErrTransactionNotFound if it does not exist.
func (r *TransactionRepository) GetTransaction(ctx context.Context, transactionID string) (model.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM "transaction" WHERE id = ?`

	t, err := scanTransaction(r.db.QueryRowContext(ctx, query, transactionID))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Transaction{}, apperrors.ErrTransactionNotFound
	}
	if err != nil {
		return model.Transaction{}, fmt.Errorf("failed to query transaction: %w", err)
	}
	return t, nil
}

// InsertTransaction stores a new transaction.
func (r *TransactionRepository) InsertTransaction(ctx context.Context, t *model.Transaction) error {
	query := `
		INSERT INTO "transaction" (id, stock_id, type, quantity, price, transaction_date, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		t.ID,
		t.StockID,
		string(t.Type),
		t.Quantity,
		t.Price,
		formatDate(t.Date),
		formatTimestamp(t.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}
	return nil
}

// UpdateTransaction overwrites type, quantity, price and date of a transaction.
func (r *TransactionRepository) UpdateTransaction(ctx context.Context, t *model.Transaction) error {
	query := `UPDATE "transaction" SET type = ?, quantity = ?, price = ?, transaction_date = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, string(t.Type), t.Quantity, t.Price, formatDate(t.Date), t.ID)
	if err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}
	return expectAffected(result, apperrors.ErrTransactionNotFound)
}

// DeleteTransaction removes a transaction.
func (r *TransactionRepository) DeleteTransaction(ctx context.Context, transactionID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM "transaction" WHERE id = ?`, transactionID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	return expectAffected(result, apperrors.ErrTransactionNotFound)
}

func scanTransaction(s scanner) (model.Transaction, error) {
	var t model.Transaction
	var transactionType, dateStr, createdAtStr string

	err := s.Scan(
		&t.ID,
		&t.StockID,
		&transactionType,
		&t.Quantity,
		&t.Price,
		&dateStr,
		&createdAtStr,
	)
	if err != nil {
		return model.Transaction{}, err
	}
	t.Type = model.TransactionType(transactionType)

	t.Date, err = ParseTime(dateStr)
	if err != nil || t.Date.IsZero() {
		return model.Transaction{}, fmt.Errorf("failed to parse date: %w", err)
	}

	t.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("failed to parse created_at: %w", err)
	}

	return t, nil
}
