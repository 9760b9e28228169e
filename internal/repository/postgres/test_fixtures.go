package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"tradebook/internal/domain/trade"
)

// TestFixtures provides factory methods for creating test data
type TestFixtures struct {
	db DBTX
	t  *testing.T
}

// NewTestFixtures creates a new test fixtures factory
func NewTestFixtures(t *testing.T, db DBTX) *TestFixtures {
	t.Helper()
	return &TestFixtures{
		db: db,
		t:  t,
	}
}

// CreateUser creates a test user in the database
func (f *TestFixtures) CreateUser() uuid.UUID {
	f.t.Helper()

	id := uuid.New()
	email := fmt.Sprintf("trader_%d@example.com", rand.Intn(999999))

	query := `INSERT INTO users (id, email, display_name, created_at) VALUES ($1, $2, $3, NOW())`

	_, err := f.db.ExecContext(context.Background(), query, id, email, "Test Trader")
	require.NoError(f.t, err, "Failed to create test user")

	return id
}

// AccountFixture holds overridable account attributes
type AccountFixture struct {
	Name           string
	Broker         string
	Currency       string
	InitialBalance decimal.Decimal
}

// CreateAccount creates a test trading account in the database
func (f *TestFixtures) CreateAccount(userID uuid.UUID, opts ...func(*AccountFixture)) uuid.UUID {
	f.t.Helper()

	fixture := &AccountFixture{
		Name:           fmt.Sprintf("Account %d", rand.Intn(999999)),
		Broker:         "demo",
		Currency:       "USD",
		InitialBalance: decimal.NewFromInt(10000),
	}

	for _, opt := range opts {
		opt(fixture)
	}

	id := uuid.New()
	query := `INSERT INTO accounts (id, user_id, name, broker, currency, initial_balance, is_active, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, true, NOW(), NOW())`

	_, err := f.db.ExecContext(context.Background(), query, id, userID,
		fixture.Name, fixture.Broker, fixture.Currency, fixture.InitialBalance)
	require.NoError(f.t, err, "Failed to create test account")

	return id
}

// TradeFixture holds overridable trade attributes
type TradeFixture struct {
	Symbol    string
	Side      trade.Side
	Strategy  string
	Outcome   trade.Outcome
	Pnl       float64
	PnlNull   bool
	RMultiple float64
	EntryDate time.Time
	EntryTime string
}

// CreateTrade creates a test trade in the database
func (f *TestFixtures) CreateTrade(accountID, userID uuid.UUID, opts ...func(*TradeFixture)) uuid.UUID {
	f.t.Helper()

	fixture := &TradeFixture{
		Symbol:    "EURUSD",
		Side:      trade.SideLong,
		Outcome:   trade.OutcomeWin,
		Pnl:       100,
		RMultiple: 1.5,
		EntryDate: time.Now().UTC().Truncate(24 * time.Hour),
	}

	for _, opt := range opts {
		opt(fixture)
	}

	t := &trade.Trade{
		ID:         uuid.New(),
		AccountID:  accountID,
		UserID:     userID,
		Symbol:     fixture.Symbol,
		Side:       fixture.Side,
		EntryPrice: decimal.NewFromFloat(1.1000),
		StopLoss:   decimal.NewFromFloat(1.0950),
		TakeProfit: decimal.NewFromFloat(1.1100),
		Lot:        decimal.NewFromFloat(0.5),
		Commission: decimal.NewFromFloat(1.2),
		Swap:       decimal.Zero,
		Outcome:    fixture.Outcome,
		EntryDate:  fixture.EntryDate,
		CreatedAt:  time.Now().UTC(),
		UpdatedAt:  time.Now().UTC(),
	}

	if fixture.Strategy != "" {
		t.Strategy = sql.NullString{String: fixture.Strategy, Valid: true}
	}
	if fixture.EntryTime != "" {
		t.EntryTime = sql.NullString{String: fixture.EntryTime, Valid: true}
	}
	if !fixture.PnlNull {
		t.Pnl = decimal.NullDecimal{Decimal: decimal.NewFromFloat(fixture.Pnl), Valid: true}
		t.RMultiple = sql.NullFloat64{Float64: fixture.RMultiple, Valid: true}
		t.ExitPrice = decimal.NullDecimal{Decimal: decimal.NewFromFloat(1.1050), Valid: true}
		t.ExitDate = sql.NullTime{Time: fixture.EntryDate, Valid: true}
	}

	repo := NewTradeRepository(f.db)
	require.NoError(f.t, repo.Create(context.Background(), t), "Failed to create test trade")

	return t.ID
}

// CreatePlaybook creates a test playbook in the database
func (f *TestFixtures) CreatePlaybook(userID uuid.UUID, name string) uuid.UUID {
	f.t.Helper()

	id := uuid.New()
	query := `INSERT INTO playbooks (id, user_id, name, description, rules, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, NOW(), NOW())`

	_, err := f.db.ExecContext(context.Background(), query, id, userID, name, "fixture playbook", []byte("[]"))
	require.NoError(f.t, err, "Failed to create test playbook")

	return id
}
