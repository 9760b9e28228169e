package trade

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Outcome is the authoritative result label of a trade. It is recorded at
// close time and is never re-derived from the pnl sign: a trade can be
// breakeven with nonzero pnl once fees are taken into account.
type Outcome string

const (
	OutcomeWin       Outcome = "win"
	OutcomeLoss      Outcome = "loss"
	OutcomeBreakeven Outcome = "breakeven"
	OutcomePending   Outcome = "pending"
)

// Valid reports whether o is one of the known outcome labels.
func (o Outcome) Valid() bool {
	switch o {
	case OutcomeWin, OutcomeLoss, OutcomeBreakeven, OutcomePending:
		return true
	}
	return false
}

// Decisive reports whether the outcome counts toward the win rate.
func (o Outcome) Decisive() bool {
	return o == OutcomeWin || o == OutcomeLoss
}

// Side is the direction of a trade.
type Side string

const (
	SideLong  Side = "Long"
	SideShort Side = "Short"
)

// Trade represents a single journaled trade. Exit fields, pnl and rMultiple
// stay null while the trade is open (outcome pending).
type Trade struct {
	ID        uuid.UUID `db:"id"`
	AccountID uuid.UUID `db:"account_id"`
	UserID    uuid.UUID `db:"user_id"`

	Symbol   string         `db:"symbol"`
	Side     Side           `db:"side"`
	Strategy sql.NullString `db:"strategy"`
	Setup    sql.NullString `db:"setup"`

	EntryPrice decimal.Decimal     `db:"entry_price"`
	ExitPrice  decimal.NullDecimal `db:"exit_price"`
	StopLoss   decimal.Decimal     `db:"stop_loss"`
	TakeProfit decimal.Decimal     `db:"take_profit"`
	Lot        decimal.Decimal     `db:"lot"`
	Pnl        decimal.NullDecimal `db:"pnl"`
	Commission decimal.Decimal     `db:"commission"`
	Swap       decimal.Decimal     `db:"swap"`

	Outcome   Outcome         `db:"outcome"`
	RMultiple sql.NullFloat64 `db:"r_multiple"`

	EntryDate time.Time      `db:"entry_date"`
	EntryTime sql.NullString `db:"entry_time"` // "15:04" wall-clock, optional
	ExitDate  sql.NullTime   `db:"exit_date"`
	ExitTime  sql.NullString `db:"exit_time"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// PnlValue returns the realized pnl as a float, with null treated as zero.
func (t *Trade) PnlValue() float64 {
	if !t.Pnl.Valid {
		return 0
	}
	v, _ := t.Pnl.Decimal.Float64()
	return v
}

// StrategyName returns the strategy label, empty when unset.
func (t *Trade) StrategyName() string {
	if !t.Strategy.Valid {
		return ""
	}
	return t.Strategy.String
}

// Closed reports whether the trade has been closed out.
func (t *Trade) Closed() bool {
	return t.Outcome != OutcomePending
}

// Filter narrows trade listings. Zero values mean "no constraint".
type Filter struct {
	Symbol string
	From   time.Time
	To     time.Time
}
