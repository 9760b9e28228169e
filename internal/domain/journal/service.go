package journal

import (
	"context"
	"time"

	"github.com/google/uuid"

	"tradebook/pkg/errors"
	"tradebook/pkg/logger"
)

// Service encapsulates journal operations.
type Service struct {
	repo Repository
	log  *logger.Logger
}

// NewService constructs a journal service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, log: logger.Get()}
}

// Create writes a new journal entry.
func (s *Service) Create(ctx context.Context, e *Entry) error {
	if e == nil || e.UserID == uuid.Nil {
		return errors.ErrInvalidInput
	}
	if e.Content == "" {
		return errors.NewValidationError("content", "must not be empty", e.Content)
	}
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	now := time.Now().UTC()
	if e.EntryDate.IsZero() {
		e.EntryDate = now
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = now
	}
	e.UpdatedAt = now

	if err := s.repo.Create(ctx, e); err != nil {
		return errors.Wrap(err, "create journal entry")
	}
	return nil
}

// GetByID retrieves a single entry.
func (s *Service) GetByID(ctx context.Context, id, userID uuid.UUID) (*Entry, error) {
	if id == uuid.Nil || userID == uuid.Nil {
		return nil, errors.ErrInvalidInput
	}
	e, err := s.repo.GetByID(ctx, id, userID)
	if err != nil {
		return nil, errors.Wrap(err, "get journal entry")
	}
	return e, nil
}

// ListSince returns entries from a timestamp.
func (s *Service) ListSince(ctx context.Context, userID uuid.UUID, since time.Time) ([]Entry, error) {
	if userID == uuid.Nil {
		return nil, errors.ErrInvalidInput
	}
	entries, err := s.repo.ListSince(ctx, userID, since)
	if err != nil {
		return nil, errors.Wrap(err, "list journal entries")
	}
	return entries, nil
}

// ListByTrade returns entries attached to a trade.
func (s *Service) ListByTrade(ctx context.Context, tradeID, userID uuid.UUID) ([]Entry, error) {
	if tradeID == uuid.Nil || userID == uuid.Nil {
		return nil, errors.ErrInvalidInput
	}
	entries, err := s.repo.ListByTrade(ctx, tradeID, userID)
	if err != nil {
		return nil, errors.Wrap(err, "list journal entries for trade")
	}
	return entries, nil
}

// Delete removes an entry owned by the user.
func (s *Service) Delete(ctx context.Context, id, userID uuid.UUID) error {
	if id == uuid.Nil || userID == uuid.Nil {
		return errors.ErrInvalidInput
	}
	if err := s.repo.Delete(ctx, id, userID); err != nil {
		return errors.Wrap(err, "delete journal entry")
	}
	return nil
}
