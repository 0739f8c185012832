package apperrors

import "errors"

// Domain entity errors represent missing entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrPortfolioNotFound indicates that a portfolio with the given ID does not exist.
	ErrPortfolioNotFound = errors.New("portfolio not found")
	// ErrGroupNotFound indicates that a group with the given ID does not exist.
	ErrGroupNotFound = errors.New("group not found")
	// ErrStockNotFound indicates that a stock with the given ID does not exist.
	ErrStockNotFound = errors.New("stock not found")
	// ErrTransactionNotFound indicates that a transaction with the given ID does not exist.
	ErrTransactionNotFound = errors.New("transaction not found")
)

// Business logic errors represent validation failures or constraint violations.
var (
	// ErrInvalidDateRange indicates that the start date is after the end date.
	ErrInvalidDateRange = errors.New("invalid date range")
	// ErrGroupPortfolioMismatch indicates that a stock was assigned a group of another portfolio.
	ErrGroupPortfolioMismatch = errors.New("group belongs to another portfolio")
	ErrInvalidSymbols         = errors.New("symbols parameter is required")
)

// Operation failure errors represent system-level failures when retrieving or processing data.
var (
	ErrFailedToRetrievePortfolios   = errors.New("failed to retrieve portfolios")
	ErrFailedToRetrievePortfolio    = errors.New("failed to retrieve portfolio")
	ErrFailedToGetDashboard         = errors.New("failed to load dashboard")
	ErrFailedToGetPortfolioHistory  = errors.New("failed to get portfolio history")
	ErrFailedToRetrieveGroups       = errors.New("failed to retrieve groups")
	ErrFailedToRetrieveStocks       = errors.New("failed to retrieve stocks")
	ErrFailedToRetrieveStock        = errors.New("failed to retrieve stock")
	ErrFailedToRetrieveTransactions = errors.New("failed to retrieve transactions")
	ErrFailedToRetrieveTransaction  = errors.New("failed to retrieve transaction")
	ErrFailedToGetVersionInfo       = errors.New("failed to get version information")
)
