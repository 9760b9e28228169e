package playbook

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for playbook data access
type Repository interface {
	Create(ctx context.Context, p *Playbook) error
	GetByID(ctx context.Context, id, userID uuid.UUID) (*Playbook, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Playbook, error)
	ListNamesByUser(ctx context.Context, userID uuid.UUID) ([]string, error)
	Update(ctx context.Context, p *Playbook) error
	Delete(ctx context.Context, id, userID uuid.UUID) error
}
