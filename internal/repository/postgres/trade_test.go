package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradebook/internal/domain/trade"
	"tradebook/internal/testsupport"
	"tradebook/pkg/errors"
)

func TestTradeRepository_CreateAndGet(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	testDB := testsupport.NewTestPostgres(t)
	defer testDB.Close()

	fixtures := NewTestFixtures(t, testDB.Tx())
	userID := fixtures.CreateUser()
	accountID := fixtures.CreateAccount(userID)

	repo := NewTradeRepository(testDB.Tx())
	ctx := context.Background()

	tradeID := fixtures.CreateTrade(accountID, userID, func(f *TradeFixture) {
		f.Symbol = "GBPUSD"
		f.Strategy = "Breakout"
		f.Outcome = trade.OutcomeWin
		f.Pnl = 250.5
	})

	retrieved, err := repo.GetByID(ctx, tradeID, userID)
	require.NoError(t, err)
	assert.Equal(t, "GBPUSD", retrieved.Symbol)
	assert.Equal(t, "Breakout", retrieved.StrategyName())
	assert.Equal(t, trade.OutcomeWin, retrieved.Outcome)
	assert.InDelta(t, 250.5, retrieved.PnlValue(), 0.0001)

	// Ownership: another user must not see the trade
	_, err = repo.GetByID(ctx, tradeID, uuid.New())
	assert.ErrorIs(t, err, errors.ErrNotFound)
}

func TestTradeRepository_ListByAccount(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	testDB := testsupport.NewTestPostgres(t)
	defer testDB.Close()

	fixtures := NewTestFixtures(t, testDB.Tx())
	userID := fixtures.CreateUser()
	accountID := fixtures.CreateAccount(userID)
	otherAccountID := fixtures.CreateAccount(userID)

	repo := NewTradeRepository(testDB.Tx())
	ctx := context.Background()

	day := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		entry := day.AddDate(0, 0, i)
		fixtures.CreateTrade(accountID, userID, func(f *TradeFixture) {
			f.EntryDate = entry
		})
	}
	fixtures.CreateTrade(accountID, userID, func(f *TradeFixture) {
		f.Symbol = "USDJPY"
		f.EntryDate = day.AddDate(0, 0, 10)
	})
	fixtures.CreateTrade(otherAccountID, userID, nil)

	t.Run("scoped to account", func(t *testing.T) {
		trades, err := repo.ListByAccount(ctx, accountID, userID, trade.Filter{})
		require.NoError(t, err)
		assert.Len(t, trades, 4)
	})

	t.Run("newest entry first", func(t *testing.T) {
		trades, err := repo.ListByAccount(ctx, accountID, userID, trade.Filter{})
		require.NoError(t, err)
		require.NotEmpty(t, trades)
		for i := 1; i < len(trades); i++ {
			assert.False(t, trades[i].EntryDate.After(trades[i-1].EntryDate))
		}
	})

	t.Run("symbol filter", func(t *testing.T) {
		trades, err := repo.ListByAccount(ctx, accountID, userID, trade.Filter{Symbol: "USDJPY"})
		require.NoError(t, err)
		require.Len(t, trades, 1)
		assert.Equal(t, "USDJPY", trades[0].Symbol)
	})

	t.Run("date range filter", func(t *testing.T) {
		trades, err := repo.ListByAccount(ctx, accountID, userID, trade.Filter{
			From: day,
			To:   day.AddDate(0, 0, 2),
		})
		require.NoError(t, err)
		assert.Len(t, trades, 3)
	})

	t.Run("foreign user sees nothing", func(t *testing.T) {
		trades, err := repo.ListByAccount(ctx, accountID, uuid.New(), trade.Filter{})
		require.NoError(t, err)
		assert.Empty(t, trades)
	})
}

func TestTradeRepository_CountSince(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	testDB := testsupport.NewTestPostgres(t)
	defer testDB.Close()

	fixtures := NewTestFixtures(t, testDB.Tx())
	userID := fixtures.CreateUser()
	accountID := fixtures.CreateAccount(userID)

	repo := NewTradeRepository(testDB.Tx())
	ctx := context.Background()

	now := time.Now().UTC().Truncate(24 * time.Hour)
	fixtures.CreateTrade(accountID, userID, func(f *TradeFixture) { f.EntryDate = now })
	fixtures.CreateTrade(accountID, userID, func(f *TradeFixture) { f.EntryDate = now.AddDate(0, 0, -3) })
	fixtures.CreateTrade(accountID, userID, func(f *TradeFixture) { f.EntryDate = now.AddDate(0, 0, -30) })

	count, err := repo.CountSince(ctx, accountID, userID, now.AddDate(0, 0, -7))
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestTradeRepository_UpdateClosesTrade(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	testDB := testsupport.NewTestPostgres(t)
	defer testDB.Close()

	fixtures := NewTestFixtures(t, testDB.Tx())
	userID := fixtures.CreateUser()
	accountID := fixtures.CreateAccount(userID)

	repo := NewTradeRepository(testDB.Tx())
	ctx := context.Background()

	tradeID := fixtures.CreateTrade(accountID, userID, func(f *TradeFixture) {
		f.Outcome = trade.OutcomePending
		f.PnlNull = true
	})

	open, err := repo.GetByID(ctx, tradeID, userID)
	require.NoError(t, err)
	require.False(t, open.Pnl.Valid)

	open.Outcome = trade.OutcomeLoss
	open.Pnl = decimal.NullDecimal{Decimal: decimal.NewFromFloat(-75.25), Valid: true}
	open.UpdatedAt = time.Now().UTC()

	require.NoError(t, repo.Update(ctx, open))

	closed, err := repo.GetByID(ctx, tradeID, userID)
	require.NoError(t, err)
	assert.Equal(t, trade.OutcomeLoss, closed.Outcome)
	assert.InDelta(t, -75.25, closed.PnlValue(), 0.0001)

	// Update scoped to owner
	closed.UserID = uuid.New()
	assert.ErrorIs(t, repo.Update(ctx, closed), errors.ErrNotFound)
}

func TestTradeRepository_Delete(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	testDB := testsupport.NewTestPostgres(t)
	defer testDB.Close()

	fixtures := NewTestFixtures(t, testDB.Tx())
	userID := fixtures.CreateUser()
	accountID := fixtures.CreateAccount(userID)

	repo := NewTradeRepository(testDB.Tx())
	ctx := context.Background()

	tradeID := fixtures.CreateTrade(accountID, userID, nil)

	assert.ErrorIs(t, repo.Delete(ctx, tradeID, uuid.New()), errors.ErrNotFound,
		"foreign user must not delete the trade")

	require.NoError(t, repo.Delete(ctx, tradeID, userID))

	_, err := repo.GetByID(ctx, tradeID, userID)
	assert.ErrorIs(t, err, errors.ErrNotFound)
}
