package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradebook/internal/domain/account"
	"tradebook/internal/testsupport"
	"tradebook/pkg/errors"
)

func TestAccountRepository_CreateAndGet(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	testDB := testsupport.NewTestPostgres(t)
	defer testDB.Close()

	fixtures := NewTestFixtures(t, testDB.Tx())
	userID := fixtures.CreateUser()

	repo := NewAccountRepository(testDB.Tx())
	ctx := context.Background()

	now := time.Now().UTC()
	a := &account.Account{
		ID:             uuid.New(),
		UserID:         userID,
		Name:           "Funded Eval",
		Broker:         "ftmo",
		Currency:       "USD",
		InitialBalance: decimal.NewFromInt(100000),
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	require.NoError(t, repo.Create(ctx, a))

	retrieved, err := repo.GetByID(ctx, a.ID, userID)
	require.NoError(t, err)
	assert.Equal(t, "Funded Eval", retrieved.Name)
	assert.True(t, retrieved.InitialBalance.Equal(decimal.NewFromInt(100000)))

	_, err = repo.GetByID(ctx, a.ID, uuid.New())
	assert.ErrorIs(t, err, errors.ErrNotFound)
}

func TestAccountRepository_ListByUser(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	testDB := testsupport.NewTestPostgres(t)
	defer testDB.Close()

	fixtures := NewTestFixtures(t, testDB.Tx())
	userID := fixtures.CreateUser()
	otherUserID := fixtures.CreateUser()

	fixtures.CreateAccount(userID)
	fixtures.CreateAccount(userID)
	fixtures.CreateAccount(otherUserID)

	repo := NewAccountRepository(testDB.Tx())

	accounts, err := repo.ListByUser(context.Background(), userID)
	require.NoError(t, err)
	assert.Len(t, accounts, 2)
}

func TestAccountRepository_Update(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	testDB := testsupport.NewTestPostgres(t)
	defer testDB.Close()

	fixtures := NewTestFixtures(t, testDB.Tx())
	userID := fixtures.CreateUser()
	accountID := fixtures.CreateAccount(userID)

	repo := NewAccountRepository(testDB.Tx())
	ctx := context.Background()

	a, err := repo.GetByID(ctx, accountID, userID)
	require.NoError(t, err)

	a.InitialBalance = decimal.NewFromInt(25000)
	a.IsActive = false
	a.UpdatedAt = time.Now().UTC()
	require.NoError(t, repo.Update(ctx, a))

	updated, err := repo.GetByID(ctx, accountID, userID)
	require.NoError(t, err)
	assert.True(t, updated.InitialBalance.Equal(decimal.NewFromInt(25000)))
	assert.False(t, updated.IsActive)
}
