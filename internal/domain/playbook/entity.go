package playbook

import (
	"time"

	"github.com/google/uuid"
)

// Playbook is a named, user-defined strategy rule-set. Trades reference a
// playbook by its name through their strategy label, which keeps the
// per-strategy breakdown working even for labels that were never formalized
// into a playbook.
type Playbook struct {
	ID     uuid.UUID `db:"id"`
	UserID uuid.UUID `db:"user_id"`

	Name        string `db:"name"`
	Description string `db:"description"`
	Rules       []byte `db:"rules"` // JSONB array of rule objects

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
