package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndewijer/Stock-Portfolio-Tracker-Backend/internal/api/request"
	"github.com/ndewijer/Stock-Portfolio-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Stock-Portfolio-Tracker-Backend/internal/model"
	"github.com/ndewijer/Stock-Portfolio-Tracker-Backend/internal/service"
	"github.com/ndewijer/Stock-Portfolio-Tracker-Backend/internal/testutil"
)

func floatPtr(f float64) *float64 { return &f }

func TestStockService_CreateStock(t *testing.T) {
	t.Run("upper-cases symbol and assigns group", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestServices(t, db, testutil.NewFakeResolver(nil)).Stock
		p := testutil.CreatePortfolio(t, db, "Main")
		g := testutil.NewGroup(p.ID).WithName("Tech").Build(t, db)

		stock, err := svc.CreateStock(context.Background(), p.ID, request.StockRequest{
			Name:    "Apple",
			Symbol:  strPtr(" aapl "),
			GroupID: &g.ID,
		})
		require.NoError(t, err)
		assert.Equal(t, "AAPL", *stock.Symbol)
		assert.Equal(t, g.ID, *stock.GroupID)

		stored, err := svc.GetStock(context.Background(), stock.ID)
		require.NoError(t, err)
		assert.Equal(t, "AAPL", *stored.Symbol)
		assert.Nil(t, stored.ManualPrice)
	})

	t.Run("empty symbol is stored as absent", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestServices(t, db, testutil.NewFakeResolver(nil)).Stock
		p := testutil.CreatePortfolio(t, db, "Main")

		stock, err := svc.CreateStock(context.Background(), p.ID, request.StockRequest{Name: "Private", Symbol: strPtr("  ")})
		require.NoError(t, err)
		assert.Nil(t, stock.Symbol)
	})

	t.Run("rejects group of another portfolio", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestServices(t, db, testutil.NewFakeResolver(nil)).Stock
		p := testutil.CreatePortfolio(t, db, "Main")
		other := testutil.CreatePortfolio(t, db, "Other")
		g := testutil.NewGroup(other.ID).Build(t, db)

		_, err := svc.CreateStock(context.Background(), p.ID, request.StockRequest{Name: "X", GroupID: &g.ID})
		assert.ErrorIs(t, err, apperrors.ErrGroupPortfolioMismatch)
	})

	t.Run("unknown portfolio and group", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestServices(t, db, testutil.NewFakeResolver(nil)).Stock
		p := testutil.CreatePortfolio(t, db, "Main")

		_, err := svc.CreateStock(context.Background(), testutil.MakeID(), request.StockRequest{Name: "X"})
		assert.ErrorIs(t, err, apperrors.ErrPortfolioNotFound)

		missing := testutil.MakeID()
		_, err = svc.CreateStock(context.Background(), p.ID, request.StockRequest{Name: "X", GroupID: &missing})
		assert.ErrorIs(t, err, apperrors.ErrGroupNotFound)
	})
}

func TestStockService_UpdateStock(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestServices(t, db, testutil.NewFakeResolver(nil)).Stock
	p := testutil.CreatePortfolio(t, db, "Main")
	g := testutil.NewGroup(p.ID).Build(t, db)
	s := testutil.NewStock(p.ID).WithSymbol("AAPL").InGroup(g.ID).WithManualPrice(10).Build(t, db)

	updated, err := svc.UpdateStock(context.Background(), s.ID, request.StockRequest{
		Name:        "Samsung",
		Symbol:      strPtr("005930.ks"),
		ManualPrice: floatPtr(70000),
	})
	require.NoError(t, err)
	assert.Equal(t, "Samsung", updated.Name)
	assert.Equal(t, "005930.KS", *updated.Symbol)
	assert.Equal(t, 70000.0, *updated.ManualPrice)
	assert.Nil(t, updated.GroupID)

	stored, err := svc.GetStock(context.Background(), s.ID)
	require.NoError(t, err)
	assert.Equal(t, updated.Name, stored.Name)
	assert.Nil(t, stored.GroupID)

	_, err = svc.UpdateStock(context.Background(), testutil.MakeID(), request.StockRequest{Name: "X"})
	assert.ErrorIs(t, err, apperrors.ErrStockNotFound)
}

func TestStockService_DeleteStockCascades(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svcs := testutil.NewTestServices(t, db, testutil.NewFakeResolver(nil))
	p := testutil.CreatePortfolio(t, db, "Main")
	s := testutil.NewStock(p.ID).Build(t, db)
	testutil.NewTransaction(s.ID).Build(t, db)
	testutil.NewTransaction(s.ID).Sell(1, 120).Build(t, db)

	require.NoError(t, svcs.Stock.DeleteStock(context.Background(), s.ID))
	testutil.AssertRowCount(t, db, "transaction", 0)

	assert.ErrorIs(t, svcs.Stock.DeleteStock(context.Background(), s.ID), apperrors.ErrStockNotFound)
}

func TestGroupService(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svcs := testutil.NewTestServices(t, db, testutil.NewFakeResolver(nil))
	ctx := context.Background()
	p := testutil.CreatePortfolio(t, db, "Main")

	g1, err := svcs.Group.CreateGroup(ctx, p.ID, request.CreateGroupRequest{Name: "Tech"})
	require.NoError(t, err)
	g2, err := svcs.Group.CreateGroup(ctx, p.ID, request.CreateGroupRequest{Name: "Energy"})
	require.NoError(t, err)

	groups, err := svcs.Group.GetGroups(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, []string{g1.ID, g2.ID}, []string{groups[0].ID, groups[1].ID})

	s := testutil.NewStock(p.ID).InGroup(g1.ID).Build(t, db)

	t.Run("deleting a group keeps its stocks", func(t *testing.T) {
		require.NoError(t, svcs.Group.DeleteGroup(ctx, g1.ID))

		stock, err := svcs.Stock.GetStock(ctx, s.ID)
		require.NoError(t, err)
		assert.Nil(t, stock.GroupID)

		assert.ErrorIs(t, svcs.Group.DeleteGroup(ctx, g1.ID), apperrors.ErrGroupNotFound)
	})

	t.Run("unknown portfolio", func(t *testing.T) {
		_, err := svcs.Group.GetGroups(ctx, testutil.MakeID())
		assert.ErrorIs(t, err, apperrors.ErrPortfolioNotFound)
	})
}

func TestTransactionService(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestServices(t, db, testutil.NewFakeResolver(nil)).Transaction
	ctx := context.Background()
	p := testutil.CreatePortfolio(t, db, "Main")
	s := testutil.NewStock(p.ID).Build(t, db)

	later, err := svc.CreateTransaction(ctx, s.ID, request.TransactionRequest{
		Type: "sell", Quantity: 5, Price: 180, TransactionDate: "2024-03-01",
	})
	require.NoError(t, err)
	earlier, err := svc.CreateTransaction(ctx, s.ID, request.TransactionRequest{
		Type: "buy", Quantity: 10, Price: 100, TransactionDate: "2024-02-01",
	})
	require.NoError(t, err)

	t.Run("lists chronologically", func(t *testing.T) {
		txs, err := svc.GetTransactions(ctx, s.ID)
		require.NoError(t, err)
		require.Len(t, txs, 2)
		assert.Equal(t, earlier.ID, txs[0].ID)
		assert.Equal(t, later.ID, txs[1].ID)
		assert.Equal(t, "2024-02-01", txs[0].Date.Format("2006-01-02"))
	})

	t.Run("update replaces fields", func(t *testing.T) {
		updated, err := svc.UpdateTransaction(ctx, later.ID, request.TransactionRequest{
			Type: "buy", Quantity: 3, Price: 90.5, TransactionDate: "2024-01-10",
		})
		require.NoError(t, err)
		assert.Equal(t, model.TransactionTypeBuy, updated.Type)

		got, err := svc.GetTransaction(ctx, later.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(3), got.Quantity)
		assert.InDelta(t, 90.5, got.Price, 1e-9)
		assert.Equal(t, "2024-01-10", got.Date.Format("2006-01-02"))
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, svc.DeleteTransaction(ctx, earlier.ID))
		_, err := svc.GetTransaction(ctx, earlier.ID)
		assert.ErrorIs(t, err, apperrors.ErrTransactionNotFound)
	})

	t.Run("unknown stock", func(t *testing.T) {
		_, err := svc.CreateTransaction(ctx, testutil.MakeID(), request.TransactionRequest{
			Type: "buy", Quantity: 1, Price: 1, TransactionDate: "2024-01-01",
		})
		assert.ErrorIs(t, err, apperrors.ErrStockNotFound)

		_, err = svc.GetTransactions(ctx, testutil.MakeID())
		assert.ErrorIs(t, err, apperrors.ErrStockNotFound)
	})
}

func TestNormalizeSymbol(t *testing.T) {
	assert.Nil(t, service.NormalizeSymbol(nil))
	assert.Nil(t, service.NormalizeSymbol(strPtr(" ")))
	assert.Equal(t, "BRK.B", *service.NormalizeSymbol(strPtr(" brk.b ")))
}
