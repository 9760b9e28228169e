package journal

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for journal data access
type Repository interface {
	Create(ctx context.Context, e *Entry) error
	GetByID(ctx context.Context, id, userID uuid.UUID) (*Entry, error)
	ListSince(ctx context.Context, userID uuid.UUID, since time.Time) ([]Entry, error)
	ListByTrade(ctx context.Context, tradeID, userID uuid.UUID) ([]Entry, error)
	Delete(ctx context.Context, id, userID uuid.UUID) error
}
