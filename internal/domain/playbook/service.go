package playbook

import (
	"context"
	"time"

	"github.com/google/uuid"

	"tradebook/pkg/errors"
	"tradebook/pkg/logger"
)

// Service encapsulates playbook operations.
type Service struct {
	repo Repository
	log  *logger.Logger
}

// NewService constructs a playbook service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, log: logger.Get()}
}

// Create registers a new playbook.
func (s *Service) Create(ctx context.Context, p *Playbook) error {
	if p == nil || p.UserID == uuid.Nil {
		return errors.ErrInvalidInput
	}
	if p.Name == "" {
		return errors.NewValidationError("name", "must not be empty", p.Name)
	}

	existing, err := s.repo.ListNamesByUser(ctx, p.UserID)
	if err != nil {
		return errors.Wrap(err, "check playbook names")
	}
	for _, name := range existing {
		if name == p.Name {
			return errors.ErrPlaybookNameTaken
		}
	}

	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Rules == nil {
		p.Rules = []byte("[]")
	}
	now := time.Now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now

	if err := s.repo.Create(ctx, p); err != nil {
		return errors.Wrap(err, "create playbook")
	}
	return nil
}

// GetByID retrieves a playbook owned by the user.
func (s *Service) GetByID(ctx context.Context, id, userID uuid.UUID) (*Playbook, error) {
	if id == uuid.Nil || userID == uuid.Nil {
		return nil, errors.ErrInvalidInput
	}
	p, err := s.repo.GetByID(ctx, id, userID)
	if err != nil {
		return nil, errors.Wrap(err, "get playbook")
	}
	return p, nil
}

// ListByUser returns all playbooks of a user.
func (s *Service) ListByUser(ctx context.Context, userID uuid.UUID) ([]Playbook, error) {
	if userID == uuid.Nil {
		return nil, errors.ErrInvalidInput
	}
	playbooks, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "list playbooks")
	}
	return playbooks, nil
}

// Update modifies an existing playbook.
func (s *Service) Update(ctx context.Context, p *Playbook) error {
	if p == nil || p.ID == uuid.Nil || p.UserID == uuid.Nil {
		return errors.ErrInvalidInput
	}
	if p.Name == "" {
		return errors.NewValidationError("name", "must not be empty", p.Name)
	}
	p.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, p); err != nil {
		return errors.Wrap(err, "update playbook")
	}
	return nil
}

// Delete removes a playbook owned by the user.
func (s *Service) Delete(ctx context.Context, id, userID uuid.UUID) error {
	if id == uuid.Nil || userID == uuid.Nil {
		return errors.ErrInvalidInput
	}
	if err := s.repo.Delete(ctx, id, userID); err != nil {
		return errors.Wrap(err, "delete playbook")
	}
	return nil
}
