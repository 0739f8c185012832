package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ndewijer/Stock-Portfolio-Tracker-Backend/internal/api/request"
	"github.com/ndewijer/Stock-Portfolio-Tracker-Backend/internal/model"
	"github.com/ndewijer/Stock-Portfolio-Tracker-Backend/internal/repository"
)

// TransactionService handles transaction-related business logic operations.
type TransactionService struct {
	transactionRepo *repository.TransactionRepository
	stockRepo       *repository.StockRepository
}

// NewTransactionService creates a new TransactionService with the provided repository dependencies.
func NewTransactionService(
	transactionRepo *repository.TransactionRepository,
	stockRepo *repository.StockRepository,
) *TransactionService {
	return &TransactionService{
		transactionRepo: transactionRepo,
		stockRepo:       stockRepo,
	}
}

// GetTransactions retrieves the transactions of a stock in chronological order.
func (s *TransactionService) GetTransactions(ctx context.Context, stockID string) ([]model.Transaction, error) {
	if _, err := s.stockRepo.GetStock(ctx, stockID); err != nil {
		return nil, err
	}
	return s.transactionRepo.GetTransactionsByStock(ctx, stockID)
}

// GetTransaction retrieves a single transaction by its ID.
func (s *TransactionService) GetTransaction(ctx context.Context, transactionID string) (model.Transaction, error) {
	return s.transactionRepo.GetTransaction(ctx, transactionID)
}

// CreateTransaction records a buy or sell of a stock. The request must already be validated.
func (s *TransactionService) CreateTransaction(ctx context.Context, stockID string, req request.TransactionRequest) (*model.Transaction, error) {
	if _, err := s.stockRepo.GetStock(ctx, stockID); err != nil {
		return nil, err
	}

	transactionDate, err := time.Parse("2006-01-02", req.TransactionDate)
	if err != nil {
		return nil, err
	}

	transaction := &model.Transaction{
		ID:        uuid.New().String(),
		StockID:   stockID,
		Type:      model.TransactionType(req.Type),
		Quantity:  req.Quantity,
		Price:     req.Price,
		Date:      transactionDate,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.transactionRepo.InsertTransaction(ctx, transaction); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	return transaction, nil
}

// UpdateTransaction replaces type, quantity, price and date of a transaction.
func (s *TransactionService) UpdateTransaction(ctx context.Context, transactionID string, req request.TransactionRequest) (*model.Transaction, error) {
	transaction, err := s.transactionRepo.GetTransaction(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	transactionDate, err := time.Parse("2006-01-02", req.TransactionDate)
	if err != nil {
		return nil, err
	}

	transaction.Type = model.TransactionType(req.Type)
	transaction.Quantity = req.Quantity
	transaction.Price = req.Price
	transaction.Date = transactionDate

	if err := s.transactionRepo.UpdateTransaction(ctx, &transaction); err != nil {
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}

	return &transaction, nil
}

func (s *TransactionService) DeleteTransaction(ctx context.Context, transactionID string) error {
	return s.transactionRepo.DeleteTransaction(ctx, transactionID)
}
