package testutil

import (
	"database/sql"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ndewijer/Stock-Portfolio-Tracker-Backend/internal/repository"
	"github.com/ndewijer/Stock-Portfolio-Tracker-Backend/internal/service"
)

// Services bundles every service wired to one test database.
type Services struct {
	Portfolio   *service.PortfolioService
	Group       *service.GroupService
	Stock       *service.StockService
	Transaction *service.TransactionService
	Dashboard   *service.DashboardService
	Price       *service.PriceService
	Snapshot    *service.SnapshotService
	System      *service.SystemService
}

// NewTestServices wires all services to db, resolving prices with resolver.
func NewTestServices(t *testing.T, db *sql.DB, resolver service.PriceResolver) *Services {
	t.Helper()

	portfolioRepo := repository.NewPortfolioRepository(db)
	groupRepo := repository.NewGroupRepository(db)
	stockRepo := repository.NewStockRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	snapshotRepo := repository.NewSnapshotRepository(db)

	dashboard := service.NewDashboardService(portfolioRepo, groupRepo, stockRepo, transactionRepo, resolver, zerolog.Nop())

	return &Services{
		Portfolio:   service.NewPortfolioService(portfolioRepo),
		Group:       service.NewGroupService(groupRepo, portfolioRepo),
		Stock:       service.NewStockService(stockRepo, groupRepo, portfolioRepo),
		Transaction: service.NewTransactionService(transactionRepo, stockRepo),
		Dashboard:   dashboard,
		Price:       service.NewPriceService(resolver),
		Snapshot:    service.NewSnapshotService(snapshotRepo, portfolioRepo, dashboard, zerolog.Nop()),
		System:      service.NewSystemService(db, map[string]bool{"snapshots": true}),
	}
}

// MakeID returns a new random UUID string.
func MakeID() string {
	return uuid.New().String()
}

// MakeName appends a random suffix to base so names stay unique within a test.
func MakeName(base string) string {
	if base == "" {
		base = "Item"
	}
	return base + " " + randomAlphanumeric(6)
}

func randomAlphanumeric(length int) string {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	result := make([]byte, length)
	for i := range result {
		//nolint:gosec // G404: Using math/rand for test data generation is acceptable
		result[i] = charset[rand.Intn(len(charset))]
	}
	return string(result)
}

var (
	clockMu sync.Mutex
	clock   = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
)

// nextTimestamp returns strictly increasing creation times so builder order is list order.
func nextTimestamp() time.Time {
	clockMu.Lock()
	defer clockMu.Unlock()
	clock = clock.Add(time.Second)
	return clock
}
