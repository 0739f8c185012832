package testutil

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/ndewijer/Stock-Portfolio-Tracker-Backend/internal/model"
	"github.com/ndewijer/Stock-Portfolio-Tracker-Backend/internal/repository"
)

// PortfolioBuilder provides a fluent interface for creating test portfolios.
//
// Example usage:
//
//	// Simple creation with defaults
//	portfolio := testutil.NewPortfolio().Build(t, db)
//
//	// Customized portfolio
//	portfolio := testutil.NewPortfolio().
//	    WithName("Custom Portfolio").
//	    WithDescription("My description").
//	    Build(t, db)
type PortfolioBuilder struct {
	p model.Portfolio
}

// NewPortfolio creates a PortfolioBuilder with sensible defaults.
func NewPortfolio() *PortfolioBuilder {
	desc := "Test description"
	return &PortfolioBuilder{p: model.Portfolio{
		ID:          MakeID(),
		Name:        MakeName("Test Portfolio"),
		Description: &desc,
		CreatedAt:   nextTimestamp(),
	}}
}

func (b *PortfolioBuilder) WithID(id string) *PortfolioBuilder {
	b.p.ID = id
	return b
}

func (b *PortfolioBuilder) WithName(name string) *PortfolioBuilder {
	b.p.Name = name
	return b
}

func (b *PortfolioBuilder) WithDescription(desc string) *PortfolioBuilder {
	b.p.Description = &desc
	return b
}

// WithCreatedAt sets the creation time, which drives list ordering.
func (b *PortfolioBuilder) WithCreatedAt(createdAt time.Time) *PortfolioBuilder {
	b.p.CreatedAt = createdAt
	return b
}

// Build creates the portfolio in the database and returns it.
func (b *PortfolioBuilder) Build(t *testing.T, db *sql.DB) model.Portfolio {
	t.Helper()

	p := b.p
	if err := repository.NewPortfolioRepository(db).InsertPortfolio(context.Background(), &p); err != nil {
		t.Fatalf("Failed to create test portfolio: %v", err)
	}
	return p
}

// CreatePortfolio creates a portfolio with the given name and default values.
func CreatePortfolio(t *testing.T, db *sql.DB, name string) model.Portfolio {
	t.Helper()
	return NewPortfolio().WithName(name).Build(t, db)
}

// GroupBuilder provides a fluent interface for creating test groups.
type GroupBuilder struct {
	g model.Group
}

// NewGroup creates a GroupBuilder for the given portfolio.
func NewGroup(portfolioID string) *GroupBuilder {
	return &GroupBuilder{g: model.Group{
		ID:          MakeID(),
		PortfolioID: portfolioID,
		Name:        MakeName("Group"),
		CreatedAt:   nextTimestamp(),
	}}
}

func (b *GroupBuilder) WithName(name string) *GroupBuilder {
	b.g.Name = name
	return b
}

// Build creates the group in the database and returns it.
func (b *GroupBuilder) Build(t *testing.T, db *sql.DB) model.Group {
	t.Helper()

	g := b.g
	if err := repository.NewGroupRepository(db).InsertGroup(context.Background(), &g); err != nil {
		t.Fatalf("Failed to create test group: %v", err)
	}
	return g
}

// StockBuilder provides a fluent interface for creating test stocks.
//
// Example usage:
//
//	stock := testutil.NewStock(portfolio.ID).
//	    WithSymbol("AAPL").
//	    InGroup(group.ID).
//	    Build(t, db)
type StockBuilder struct {
	s model.Stock
}

// NewStock creates a StockBuilder without symbol, group or manual price.
func NewStock(portfolioID string) *StockBuilder {
	return &StockBuilder{s: model.Stock{
		ID:          MakeID(),
		PortfolioID: portfolioID,
		Name:        MakeName("Stock"),
		CreatedAt:   nextTimestamp(),
	}}
}

func (b *StockBuilder) WithName(name string) *StockBuilder {
	b.s.Name = name
	return b
}

func (b *StockBuilder) WithSymbol(symbol string) *StockBuilder {
	b.s.Symbol = &symbol
	return b
}

func (b *StockBuilder) WithManualPrice(price float64) *StockBuilder {
	b.s.ManualPrice = &price
	return b
}

func (b *StockBuilder) InGroup(groupID string) *StockBuilder {
	b.s.GroupID = &groupID
	return b
}

// Build creates the stock in the database and returns it.
func (b *StockBuilder) Build(t *testing.T, db *sql.DB) model.Stock {
	t.Helper()

	s := b.s
	if err := repository.NewStockRepository(db).InsertStock(context.Background(), &s); err != nil {
		t.Fatalf("Failed to create test stock: %v", err)
	}
	return s
}

// TransactionBuilder provides a fluent interface for creating test transactions.
// Defaults to a buy of 10 at 100 dated 2024-01-15.
type TransactionBuilder struct {
	tx model.Transaction
}

// NewTransaction creates a TransactionBuilder for the given stock.
func NewTransaction(stockID string) *TransactionBuilder {
	return &TransactionBuilder{tx: model.Transaction{
		ID:        MakeID(),
		StockID:   stockID,
		Type:      model.TransactionTypeBuy,
		Quantity:  10,
		Price:     100,
		Date:      time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		CreatedAt: nextTimestamp(),
	}}
}

func (b *TransactionBuilder) WithID(id string) *TransactionBuilder {
	b.tx.ID = id
	return b
}

// Buy sets the transaction to a buy of qty at price.
func (b *TransactionBuilder) Buy(qty int64, price float64) *TransactionBuilder {
	b.tx.Type, b.tx.Quantity, b.tx.Price = model.TransactionTypeBuy, qty, price
	return b
}

// Sell sets the transaction to a sell of qty at price.
func (b *TransactionBuilder) Sell(qty int64, price float64) *TransactionBuilder {
	b.tx.Type, b.tx.Quantity, b.tx.Price = model.TransactionTypeSell, qty, price
	return b
}

func (b *TransactionBuilder) WithDate(date time.Time) *TransactionBuilder {
	b.tx.Date = date
	return b
}

// Build creates the transaction in the database and returns it.
func (b *TransactionBuilder) Build(t *testing.T, db *sql.DB) model.Transaction {
	t.Helper()

	tx := b.tx
	if err := repository.NewTransactionRepository(db).InsertTransaction(context.Background(), &tx); err != nil {
		t.Fatalf("Failed to create test transaction: %v", err)
	}
	return tx
}

// CreateSnapshot stores a snapshot with the given date and total profit.
func CreateSnapshot(t *testing.T, db *sql.DB, portfolioID string, date time.Time, totalProfit float64) model.PortfolioSnapshot {
	t.Helper()

	s := model.PortfolioSnapshot{
		ID:               MakeID(),
		PortfolioID:      portfolioID,
		Date:             date,
		PortfolioSummary: model.PortfolioSummary{TotalProfit: totalProfit},
		CalculatedAt:     nextTimestamp(),
	}
	if err := repository.NewSnapshotRepository(db).UpsertSnapshot(context.Background(), &s); err != nil {
		t.Fatalf("Failed to create test snapshot: %v", err)
	}
	return s
}
