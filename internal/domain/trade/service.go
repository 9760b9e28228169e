package trade

import (
	"context"
	"time"

	"github.com/google/uuid"

	"tradebook/pkg/errors"
	"tradebook/pkg/logger"
)

// Service encapsulates trade journal operations.
type Service struct {
	repo Repository
	log  *logger.Logger
}

// NewService constructs a trade service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, log: logger.Get()}
}

// Create logs a new trade.
func (s *Service) Create(ctx context.Context, t *Trade) error {
	if t == nil {
		return errors.ErrInvalidInput
	}
	if t.UserID == uuid.Nil || t.AccountID == uuid.Nil {
		return errors.ErrInvalidInput
	}
	if t.Symbol == "" {
		return errors.NewValidationError("symbol", "must not be empty", t.Symbol)
	}
	if t.Side != SideLong && t.Side != SideShort {
		return errors.NewValidationError("side", "must be Long or Short", t.Side)
	}
	if t.Outcome == "" {
		t.Outcome = OutcomePending
	}
	if !t.Outcome.Valid() {
		return errors.NewValidationError("outcome", "unknown outcome label", t.Outcome)
	}
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	now := time.Now().UTC()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	t.UpdatedAt = now

	if err := s.repo.Create(ctx, t); err != nil {
		return errors.Wrap(err, "create trade")
	}
	return nil
}

// GetByID retrieves a single trade owned by the user.
func (s *Service) GetByID(ctx context.Context, id, userID uuid.UUID) (*Trade, error) {
	if id == uuid.Nil || userID == uuid.Nil {
		return nil, errors.ErrInvalidInput
	}
	t, err := s.repo.GetByID(ctx, id, userID)
	if err != nil {
		return nil, errors.Wrap(err, "get trade")
	}
	return t, nil
}

// ListByAccount returns the account's trades, optionally filtered.
func (s *Service) ListByAccount(ctx context.Context, accountID, userID uuid.UUID, f Filter) ([]Trade, error) {
	if accountID == uuid.Nil || userID == uuid.Nil {
		return nil, errors.ErrInvalidInput
	}
	trades, err := s.repo.ListByAccount(ctx, accountID, userID, f)
	if err != nil {
		return nil, errors.Wrap(err, "list trades")
	}
	return trades, nil
}

// Close records the exit of an open trade and its authoritative outcome.
func (s *Service) Close(ctx context.Context, t *Trade) error {
	if t == nil || t.ID == uuid.Nil || t.UserID == uuid.Nil {
		return errors.ErrInvalidInput
	}
	if t.Outcome == OutcomePending {
		return errors.ErrTradeStillOpen
	}
	if !t.Outcome.Valid() {
		return errors.NewValidationError("outcome", "unknown outcome label", t.Outcome)
	}
	t.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, t); err != nil {
		return errors.Wrap(err, "close trade")
	}
	return nil
}

// Delete removes a trade owned by the user.
func (s *Service) Delete(ctx context.Context, id, userID uuid.UUID) error {
	if id == uuid.Nil || userID == uuid.Nil {
		return errors.ErrInvalidInput
	}
	if err := s.repo.Delete(ctx, id, userID); err != nil {
		return errors.Wrap(err, "delete trade")
	}
	return nil
}
