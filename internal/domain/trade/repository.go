package trade

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for trade data access. Every read is
// scoped to an (accountID, userID) pair; tenant isolation is enforced in the
// query, not in post-processing.
type Repository interface {
	Create(ctx context.Context, t *Trade) error
	GetByID(ctx context.Context, id, userID uuid.UUID) (*Trade, error)
	ListByAccount(ctx context.Context, accountID, userID uuid.UUID, f Filter) ([]Trade, error)
	CountSince(ctx context.Context, accountID, userID uuid.UUID, since time.Time) (int, error)
	Update(ctx context.Context, t *Trade) error
	Delete(ctx context.Context, id, userID uuid.UUID) error
}
