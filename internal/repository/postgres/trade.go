package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"tradebook/internal/domain/trade"
	"tradebook/internal/metrics"
	"tradebook/pkg/errors"
)

// Compile-time check
var _ trade.Repository = (*TradeRepository)(nil)

// TradeRepository implements trade.Repository using sqlx
type TradeRepository struct {
	db DBTX
}

// NewTradeRepository creates a new trade repository
func NewTradeRepository(db DBTX) *TradeRepository {
	return &TradeRepository{db: db}
}

// Create inserts a new trade
func (r *TradeRepository) Create(ctx context.Context, t *trade.Trade) error {
	query := `
		INSERT INTO trades (
			id, account_id, user_id, symbol, side, strategy, setup,
			entry_price, exit_price, stop_loss, take_profit, lot,
			pnl, commission, swap, outcome, r_multiple,
			entry_date, entry_time, exit_date, exit_time,
			created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
			$11, $12, $13, $14, $15, $16, $17, $18, $19, $20,
			$21, $22, $23
		)`

	_, err := r.db.ExecContext(ctx, query,
		t.ID, t.AccountID, t.UserID, t.Symbol, t.Side, t.Strategy, t.Setup,
		t.EntryPrice, t.ExitPrice, t.StopLoss, t.TakeProfit, t.Lot,
		t.Pnl, t.Commission, t.Swap, t.Outcome, t.RMultiple,
		t.EntryDate, t.EntryTime, t.ExitDate, t.ExitTime,
		t.CreatedAt, t.UpdatedAt,
	)

	return err
}

// GetByID retrieves a trade scoped to its owner
func (r *TradeRepository) GetByID(ctx context.Context, id, userID uuid.UUID) (*trade.Trade, error) {
	var t trade.Trade

	query := `SELECT * FROM trades WHERE id = $1 AND user_id = $2`

	err := r.db.GetContext(ctx, &t, query, id, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.ErrNotFound
		}
		return nil, err
	}

	return &t, nil
}

// ListByAccount retrieves all trades of one account, newest entry first.
// Both account and user filters are always applied for tenant isolation.
func (r *TradeRepository) ListByAccount(ctx context.Context, accountID, userID uuid.UUID, f trade.Filter) ([]trade.Trade, error) {
	query := `SELECT * FROM trades WHERE account_id = $1 AND user_id = $2`
	args := []interface{}{accountID, userID}

	if f.Symbol != "" {
		args = append(args, f.Symbol)
		query += fmt.Sprintf(" AND symbol = $%d", len(args))
	}
	if !f.From.IsZero() {
		args = append(args, f.From)
		query += fmt.Sprintf(" AND entry_date >= $%d", len(args))
	}
	if !f.To.IsZero() {
		args = append(args, f.To)
		query += fmt.Sprintf(" AND entry_date <= $%d", len(args))
	}

	query += " ORDER BY entry_date DESC, entry_time DESC NULLS LAST, id"

	start := time.Now()
	var trades []trade.Trade
	err := r.db.SelectContext(ctx, &trades, query, args...)
	metrics.RecordDBQuery("trades_list", time.Since(start), err)
	if err != nil {
		return nil, err
	}

	return trades, nil
}

// CountSince counts trades entered at or after the given time
func (r *TradeRepository) CountSince(ctx context.Context, accountID, userID uuid.UUID, since time.Time) (int, error) {
	var count int

	query := `
		SELECT COUNT(*) FROM trades
		WHERE account_id = $1 AND user_id = $2 AND entry_date >= $3`

	start := time.Now()
	err := r.db.GetContext(ctx, &count, query, accountID, userID, since)
	metrics.RecordDBQuery("trades_count_since", time.Since(start), err)
	if err != nil {
		return 0, err
	}

	return count, nil
}

// Update rewrites the mutable fields of a trade
func (r *TradeRepository) Update(ctx context.Context, t *trade.Trade) error {
	query := `
		UPDATE trades SET
			symbol = $3, side = $4, strategy = $5, setup = $6,
			entry_price = $7, exit_price = $8, stop_loss = $9, take_profit = $10,
			lot = $11, pnl = $12, commission = $13, swap = $14,
			outcome = $15, r_multiple = $16,
			entry_date = $17, entry_time = $18, exit_date = $19, exit_time = $20,
			updated_at = $21
		WHERE id = $1 AND user_id = $2`

	res, err := r.db.ExecContext(ctx, query,
		t.ID, t.UserID, t.Symbol, t.Side, t.Strategy, t.Setup,
		t.EntryPrice, t.ExitPrice, t.StopLoss, t.TakeProfit,
		t.Lot, t.Pnl, t.Commission, t.Swap,
		t.Outcome, t.RMultiple,
		t.EntryDate, t.EntryTime, t.ExitDate, t.ExitTime,
		t.UpdatedAt,
	)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return errors.ErrNotFound
	}

	return nil
}

// Delete removes a trade scoped to its owner
func (r *TradeRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM trades WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return errors.ErrNotFound
	}

	return nil
}
