package journal

import (
	"time"

	"github.com/google/uuid"
)

// Entry is a free-form journal note. It can be attached to a specific trade
// or stand alone as a daily reflection.
type Entry struct {
	ID      uuid.UUID     `db:"id"`
	UserID  uuid.UUID     `db:"user_id"`
	TradeID uuid.NullUUID `db:"trade_id"`

	Title   string `db:"title"`
	Content string `db:"content"`
	Mood    string `db:"mood"` // confident, anxious, neutral, ...

	EntryDate time.Time `db:"entry_date"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
