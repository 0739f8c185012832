package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndewijer/Stock-Portfolio-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Stock-Portfolio-Tracker-Backend/internal/model"
	"github.com/ndewijer/Stock-Portfolio-Tracker-Backend/internal/repository"
	"github.com/ndewijer/Stock-Portfolio-Tracker-Backend/internal/testutil"
)

func TestParseTime(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2024-03-05", time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)},
		{"2024-03-05T00:00:00Z", time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)},
		{"2024-03-05T10:30:00.123456789+02:00", time.Date(2024, 3, 5, 8, 30, 0, 123456789, time.UTC)},
	}
	for _, tt := range tests {
		got, err := repository.ParseTime(tt.in)
		require.NoError(t, err, tt.in)
		assert.True(t, tt.want.Equal(got), "%s: got %s", tt.in, got)
	}

	_, err := repository.ParseTime("05/03/2024")
	assert.Error(t, err)
}

func TestStockRepository_RoundTrip(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewStockRepository(db)
	ctx := context.Background()

	p := testutil.CreatePortfolio(t, db, "Main")
	g := testutil.NewGroup(p.ID).Build(t, db)
	withAll := testutil.NewStock(p.ID).WithName("Apple").WithSymbol("AAPL").WithManualPrice(12.5).InGroup(g.ID).Build(t, db)
	bare := testutil.NewStock(p.ID).WithName("Private").Build(t, db)

	got, err := repo.GetStock(ctx, withAll.ID)
	require.NoError(t, err)
	assert.Equal(t, "AAPL", *got.Symbol)
	assert.Equal(t, 12.5, *got.ManualPrice)
	assert.Equal(t, g.ID, *got.GroupID)
	assert.True(t, withAll.CreatedAt.Equal(got.CreatedAt))

	got, err = repo.GetStock(ctx, bare.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Symbol)
	assert.Nil(t, got.ManualPrice)
	assert.Nil(t, got.GroupID)

	stocks, err := repo.GetStocksByPortfolio(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, stocks, 2)
	assert.Equal(t, withAll.ID, stocks[0].ID)

	_, err = repo.GetStock(ctx, testutil.MakeID())
	assert.ErrorIs(t, err, apperrors.ErrStockNotFound)

	missing := model.Stock{ID: testutil.MakeID(), PortfolioID: p.ID, Name: "x"}
	assert.ErrorIs(t, repo.UpdateStock(ctx, &missing), apperrors.ErrStockNotFound)
}

func TestGroupRepository_DeleteClearsStockGroup(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()

	p := testutil.CreatePortfolio(t, db, "Main")
	g := testutil.NewGroup(p.ID).Build(t, db)
	s := testutil.NewStock(p.ID).InGroup(g.ID).Build(t, db)

	require.NoError(t, repository.NewGroupRepository(db).DeleteGroup(ctx, g.ID))

	got, err := repository.NewStockRepository(db).GetStock(ctx, s.ID)
	require.NoError(t, err)
	assert.Nil(t, got.GroupID)

	assert.ErrorIs(t, repository.NewGroupRepository(db).DeleteGroup(ctx, g.ID), apperrors.ErrGroupNotFound)
}

func TestPortfolioRepository_DeleteCascades(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()

	p := testutil.CreatePortfolio(t, db, "Main")
	keep := testutil.CreatePortfolio(t, db, "Keep")
	testutil.NewGroup(p.ID).Build(t, db)
	s := testutil.NewStock(p.ID).Build(t, db)
	testutil.NewTransaction(s.ID).Build(t, db)
	testutil.NewTransaction(testutil.NewStock(keep.ID).Build(t, db).ID).Build(t, db)
	testutil.CreateSnapshot(t, db, p.ID, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), 1)

	require.NoError(t, repository.NewPortfolioRepository(db).DeletePortfolio(ctx, p.ID))

	testutil.AssertRowCount(t, db, "portfolio", 1)
	testutil.AssertRowCount(t, db, "stock_group", 0)
	testutil.AssertRowCount(t, db, "stock", 1)
	testutil.AssertRowCount(t, db, "transaction", 1)
	testutil.AssertRowCount(t, db, "portfolio_snapshot", 0)
}

func TestTransactionRepository_GetTransactionsByStocks(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewTransactionRepository(db)
	ctx := context.Background()

	p := testutil.CreatePortfolio(t, db, "Main")
	a := testutil.NewStock(p.ID).Build(t, db)
	b := testutil.NewStock(p.ID).Build(t, db)
	c := testutil.NewStock(p.ID).Build(t, db)

	late := testutil.NewTransaction(a.ID).WithDate(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)).Build(t, db)
	early := testutil.NewTransaction(a.ID).Sell(1, 120).WithDate(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)).Build(t, db)
	testutil.NewTransaction(b.ID).Build(t, db)
	testutil.NewTransaction(c.ID).Build(t, db)

	got, err := repo.GetTransactionsByStocks(ctx, []string{a.ID, b.ID})
	require.NoError(t, err)

	require.Len(t, got, 2)
	require.Len(t, got[a.ID], 2)
	assert.Equal(t, early.ID, got[a.ID][0].ID)
	assert.Equal(t, model.TransactionTypeSell, got[a.ID][0].Type)
	assert.Equal(t, late.ID, got[a.ID][1].ID)
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), got[a.ID][1].Date)
	assert.Len(t, got[b.ID], 1)

	empty, err := repo.GetTransactionsByStocks(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestSnapshotRepository_Upsert(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewSnapshotRepository(db)
	ctx := context.Background()

	p := testutil.CreatePortfolio(t, db, "Main")
	day := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	testutil.CreateSnapshot(t, db, p.ID, day, 10)
	testutil.CreateSnapshot(t, db, p.ID, day, 25)

	testutil.AssertRowCount(t, db, "portfolio_snapshot", 1)

	got, err := repo.GetSnapshots(ctx, p.ID, day, day)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.InDelta(t, 25, got[0].TotalProfit, 1e-9)
	assert.Equal(t, day, got[0].Date)
}
