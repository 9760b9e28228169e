// Seeder populates a development database with a demo user, account,
// playbooks, and a realistic spread of trades.
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"math/rand"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"tradebook/internal/adapters/config"
	pgclient "tradebook/internal/adapters/postgres"
	"tradebook/internal/domain/account"
	"tradebook/internal/domain/playbook"
	"tradebook/internal/domain/trade"
	pgrepo "tradebook/internal/repository/postgres"
	"tradebook/pkg/logger"
)

var symbols = []string{"EURUSD", "GBPUSD", "USDJPY", "XAUUSD", "BTCUSD", "NAS100"}

var playbookNames = []string{"Breakout", "Reversal", "Trend Continuation", "News Fade"}

func main() {
	tradeCount := flag.Int("trades", 200, "Number of trades to seed")
	email := flag.String("email", "demo@tradebook.local", "Email of the demo user")
	balance := flag.Float64("balance", 10000, "Initial account balance")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	if err := logger.Init(cfg.App.LogLevel, cfg.App.Env); err != nil {
		panic("failed to init logger: " + err.Error())
	}
	defer logger.Sync()

	log := logger.Get()
	log.Infow("Starting seeder",
		"database", cfg.Postgres.Database,
		"trades", *tradeCount,
	)

	client, err := pgclient.NewClient(cfg.Postgres)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer client.Close()

	ctx := context.Background()
	db := client.DB()

	userID := uuid.New()
	if _, err := db.ExecContext(ctx,
		`INSERT INTO users (id, email, display_name, created_at) VALUES ($1, $2, $3, NOW())`,
		userID, *email, "Demo Trader",
	); err != nil {
		log.Fatalf("Failed to seed user: %v", err)
	}

	now := time.Now().UTC()

	accountRepo := pgrepo.NewAccountRepository(db)
	acc := &account.Account{
		ID:             uuid.New(),
		UserID:         userID,
		Name:           "Demo Account",
		Broker:         "demo",
		Currency:       "USD",
		InitialBalance: decimal.NewFromFloat(*balance),
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := accountRepo.Create(ctx, acc); err != nil {
		log.Fatalf("Failed to seed account: %v", err)
	}

	playbookRepo := pgrepo.NewPlaybookRepository(db)
	for _, name := range playbookNames {
		p := &playbook.Playbook{
			ID:          uuid.New(),
			UserID:      userID,
			Name:        name,
			Description: fmt.Sprintf("%s setup", name),
			Rules:       []byte(`[]`),
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := playbookRepo.Create(ctx, p); err != nil {
			log.Fatalf("Failed to seed playbook %q: %v", name, err)
		}
	}

	tradeRepo := pgrepo.NewTradeRepository(db)
	rng := rand.New(rand.NewSource(now.UnixNano()))
	seeded := 0
	for i := 0; i < *tradeCount; i++ {
		t := randomTrade(rng, acc.ID, userID, now.AddDate(0, 0, -rng.Intn(120)))
		if err := tradeRepo.Create(ctx, t); err != nil {
			log.Fatalf("Failed to seed trade: %v", err)
		}
		seeded++
	}

	log.Infow("Seeding complete",
		"user", *email,
		"account", acc.Name,
		"playbooks", len(playbookNames),
		"trades", humanize.Comma(int64(seeded)),
	)
}

// randomTrade produces a trade with a slight positive expectancy so the demo
// dashboard looks like a profitable journal rather than noise.
func randomTrade(rng *rand.Rand, accountID, userID uuid.UUID, entryDate time.Time) *trade.Trade {
	t := &trade.Trade{
		ID:         uuid.New(),
		AccountID:  accountID,
		UserID:     userID,
		Symbol:     symbols[rng.Intn(len(symbols))],
		Side:       trade.SideLong,
		EntryPrice: decimal.NewFromFloat(1 + rng.Float64()),
		StopLoss:   decimal.NewFromFloat(0.9 + rng.Float64()),
		TakeProfit: decimal.NewFromFloat(1.1 + rng.Float64()),
		Lot:        decimal.NewFromFloat(0.1 + rng.Float64()),
		Commission: decimal.NewFromFloat(1.5),
		Swap:       decimal.Zero,
		EntryDate:  entryDate.Truncate(24 * time.Hour),
		CreatedAt:  time.Now().UTC(),
		UpdatedAt:  time.Now().UTC(),
	}

	if rng.Intn(2) == 0 {
		t.Side = trade.SideShort
	}
	if rng.Intn(3) > 0 {
		name := playbookNames[rng.Intn(len(playbookNames))]
		t.Strategy = sql.NullString{String: name, Valid: true}
	}
	t.EntryTime = sql.NullString{
		String: fmt.Sprintf("%02d:%02d:00", 7+rng.Intn(12), rng.Intn(60)),
		Valid:  true,
	}

	// Roughly 5% of trades stay open
	if rng.Intn(20) == 0 {
		t.Outcome = trade.OutcomePending
		return t
	}

	roll := rng.Float64()
	switch {
	case roll < 0.48:
		t.Outcome = trade.OutcomeWin
		t.Pnl = decimal.NullDecimal{Decimal: decimal.NewFromFloat(50 + rng.Float64()*400), Valid: true}
		t.RMultiple = sql.NullFloat64{Float64: 1 + rng.Float64()*2, Valid: true}
	case roll < 0.88:
		t.Outcome = trade.OutcomeLoss
		t.Pnl = decimal.NullDecimal{Decimal: decimal.NewFromFloat(-(40 + rng.Float64()*250)), Valid: true}
		t.RMultiple = sql.NullFloat64{Float64: -1, Valid: true}
	default:
		t.Outcome = trade.OutcomeBreakeven
		t.Pnl = decimal.NullDecimal{Decimal: decimal.Zero, Valid: true}
		t.RMultiple = sql.NullFloat64{Float64: 0, Valid: true}
	}

	t.ExitPrice = decimal.NullDecimal{Decimal: t.EntryPrice, Valid: true}
	t.ExitDate = sql.NullTime{Time: t.EntryDate, Valid: true}
	t.ExitTime = sql.NullString{String: "15:30:00", Valid: true}

	return t
}
