package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"tradebook/internal/domain/account"
	"tradebook/pkg/errors"
)

// Compile-time check
var _ account.Repository = (*AccountRepository)(nil)

// AccountRepository implements account.Repository using sqlx
type AccountRepository struct {
	db DBTX
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db DBTX) *AccountRepository {
	return &AccountRepository{db: db}
}

// Create inserts a new trading account
func (r *AccountRepository) Create(ctx context.Context, a *account.Account) error {
	query := `
		INSERT INTO accounts (
			id, user_id, name, broker, currency, initial_balance,
			is_active, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.ExecContext(ctx, query,
		a.ID, a.UserID, a.Name, a.Broker, a.Currency, a.InitialBalance,
		a.IsActive, a.CreatedAt, a.UpdatedAt,
	)

	return err
}

// GetByID retrieves an account scoped to its owner
func (r *AccountRepository) GetByID(ctx context.Context, id, userID uuid.UUID) (*account.Account, error) {
	var a account.Account

	query := `SELECT * FROM accounts WHERE id = $1 AND user_id = $2`

	err := r.db.GetContext(ctx, &a, query, id, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.ErrNotFound
		}
		return nil, err
	}

	return &a, nil
}

// ListByUser retrieves all accounts of a user
func (r *AccountRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]account.Account, error) {
	var accounts []account.Account

	query := `SELECT * FROM accounts WHERE user_id = $1 ORDER BY created_at`

	if err := r.db.SelectContext(ctx, &accounts, query, userID); err != nil {
		return nil, err
	}

	return accounts, nil
}

// Update rewrites the mutable fields of an account
func (r *AccountRepository) Update(ctx context.Context, a *account.Account) error {
	query := `
		UPDATE accounts SET
			name = $3, broker = $4, currency = $5, initial_balance = $6,
			is_active = $7, updated_at = $8
		WHERE id = $1 AND user_id = $2`

	res, err := r.db.ExecContext(ctx, query,
		a.ID, a.UserID, a.Name, a.Broker, a.Currency, a.InitialBalance,
		a.IsActive, a.UpdatedAt,
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

// Delete removes an account scoped to its owner
func (r *AccountRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM accounts WHERE id = $1 AND user_id = $2`, id, userID)
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
