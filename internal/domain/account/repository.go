package account

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for account data access
type Repository interface {
	Create(ctx context.Context, a *Account) error
	GetByID(ctx context.Context, id, userID uuid.UUID) (*Account, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Account, error)
	Update(ctx context.Context, a *Account) error
	Delete(ctx context.Context, id, userID uuid.UUID) error
}
