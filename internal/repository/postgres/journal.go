package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"tradebook/internal/domain/journal"
	"tradebook/pkg/errors"
)

// Compile-time check
var _ journal.Repository = (*JournalRepository)(nil)

// JournalRepository implements journal.Repository using sqlx
type JournalRepository struct {
	db DBTX
}

// NewJournalRepository creates a new journal repository
func NewJournalRepository(db DBTX) *JournalRepository {
	return &JournalRepository{db: db}
}

// Create inserts a new journal entry
func (r *JournalRepository) Create(ctx context.Context, e *journal.Entry) error {
	query := `
		INSERT INTO journal_entries (
			id, user_id, trade_id, title, content, mood,
			entry_date, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.ExecContext(ctx, query,
		e.ID, e.UserID, e.TradeID, e.Title, e.Content, e.Mood,
		e.EntryDate, e.CreatedAt, e.UpdatedAt,
	)

	return err
}

// GetByID retrieves a journal entry scoped to its owner
func (r *JournalRepository) GetByID(ctx context.Context, id, userID uuid.UUID) (*journal.Entry, error) {
	var e journal.Entry

	query := `SELECT * FROM journal_entries WHERE id = $1 AND user_id = $2`

	err := r.db.GetContext(ctx, &e, query, id, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.ErrNotFound
		}
		return nil, err
	}

	return &e, nil
}

// ListSince retrieves journal entries since a specific time
func (r *JournalRepository) ListSince(ctx context.Context, userID uuid.UUID, since time.Time) ([]journal.Entry, error) {
	var entries []journal.Entry

	query := `
		SELECT * FROM journal_entries
		WHERE user_id = $1 AND entry_date >= $2
		ORDER BY entry_date DESC`

	if err := r.db.SelectContext(ctx, &entries, query, userID, since); err != nil {
		return nil, err
	}

	return entries, nil
}

// ListByTrade retrieves entries attached to a trade
func (r *JournalRepository) ListByTrade(ctx context.Context, tradeID, userID uuid.UUID) ([]journal.Entry, error) {
	var entries []journal.Entry

	query := `
		SELECT * FROM journal_entries
		WHERE trade_id = $1 AND user_id = $2
		ORDER BY created_at`

	if err := r.db.SelectContext(ctx, &entries, query, tradeID, userID); err != nil {
		return nil, err
	}

	return entries, nil
}

// Delete removes a journal entry scoped to its owner
func (r *JournalRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM journal_entries WHERE id = $1 AND user_id = $2`, id, userID)
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
