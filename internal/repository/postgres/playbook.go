package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"tradebook/internal/domain/playbook"
	"tradebook/pkg/errors"
)

// Compile-time check
var _ playbook.Repository = (*PlaybookRepository)(nil)

// PlaybookRepository implements playbook.Repository using sqlx
type PlaybookRepository struct {
	db DBTX
}

// NewPlaybookRepository creates a new playbook repository
func NewPlaybookRepository(db DBTX) *PlaybookRepository {
	return &PlaybookRepository{db: db}
}

// Create inserts a new playbook
func (r *PlaybookRepository) Create(ctx context.Context, p *playbook.Playbook) error {
	query := `
		INSERT INTO playbooks (
			id, user_id, name, description, rules, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.ExecContext(ctx, query,
		p.ID, p.UserID, p.Name, p.Description, p.Rules, p.CreatedAt, p.UpdatedAt,
	)

	return err
}

// GetByID retrieves a playbook scoped to its owner
func (r *PlaybookRepository) GetByID(ctx context.Context, id, userID uuid.UUID) (*playbook.Playbook, error) {
	var p playbook.Playbook

	query := `SELECT * FROM playbooks WHERE id = $1 AND user_id = $2`

	err := r.db.GetContext(ctx, &p, query, id, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.ErrNotFound
		}
		return nil, err
	}

	return &p, nil
}

// ListByUser retrieves all playbooks of a user
func (r *PlaybookRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]playbook.Playbook, error) {
	var playbooks []playbook.Playbook

	query := `SELECT * FROM playbooks WHERE user_id = $1 ORDER BY name`

	if err := r.db.SelectContext(ctx, &playbooks, query, userID); err != nil {
		return nil, err
	}

	return playbooks, nil
}

// ListNamesByUser retrieves the playbook names of a user, for seeding the
// per-strategy breakdown
func (r *PlaybookRepository) ListNamesByUser(ctx context.Context, userID uuid.UUID) ([]string, error) {
	var names []string

	query := `SELECT name FROM playbooks WHERE user_id = $1 ORDER BY name`

	if err := r.db.SelectContext(ctx, &names, query, userID); err != nil {
		return nil, err
	}

	return names, nil
}

// Update rewrites the mutable fields of a playbook
func (r *PlaybookRepository) Update(ctx context.Context, p *playbook.Playbook) error {
	query := `
		UPDATE playbooks SET
			name = $3, description = $4, rules = $5, updated_at = $6
		WHERE id = $1 AND user_id = $2`

	res, err := r.db.ExecContext(ctx, query,
		p.ID, p.UserID, p.Name, p.Description, p.Rules, p.UpdatedAt,
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

// Delete removes a playbook scoped to its owner
func (r *PlaybookRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM playbooks WHERE id = $1 AND user_id = $2`, id, userID)
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
