package account

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"tradebook/pkg/errors"
	"tradebook/pkg/logger"
)

// Service encapsulates account operations.
type Service struct {
	repo Repository
	log  *logger.Logger
}

// NewService constructs an account service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, log: logger.Get()}
}

// Create registers a new trading account.
func (s *Service) Create(ctx context.Context, a *Account) error {
	if a == nil || a.UserID == uuid.Nil {
		return errors.ErrInvalidInput
	}
	if a.Name == "" {
		return errors.NewValidationError("name", "must not be empty", a.Name)
	}
	if a.InitialBalance.IsNegative() {
		return errors.NewValidationError("initial_balance", "must not be negative", a.InitialBalance)
	}
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.Currency == "" {
		a.Currency = "USD"
	}
	now := time.Now().UTC()
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}
	a.UpdatedAt = now
	a.IsActive = true

	if err := s.repo.Create(ctx, a); err != nil {
		return errors.Wrap(err, "create account")
	}
	return nil
}

// GetByID retrieves an account owned by the user.
func (s *Service) GetByID(ctx context.Context, id, userID uuid.UUID) (*Account, error) {
	if id == uuid.Nil || userID == uuid.Nil {
		return nil, errors.ErrInvalidInput
	}
	a, err := s.repo.GetByID(ctx, id, userID)
	if err != nil {
		return nil, errors.Wrap(err, "get account")
	}
	return a, nil
}

// ListByUser returns all accounts of a user.
func (s *Service) ListByUser(ctx context.Context, userID uuid.UUID) ([]Account, error) {
	if userID == uuid.Nil {
		return nil, errors.ErrInvalidInput
	}
	accounts, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "list accounts")
	}
	return accounts, nil
}

// UpdateBalance changes the account's initial balance.
func (s *Service) UpdateBalance(ctx context.Context, id, userID uuid.UUID, balance decimal.Decimal) error {
	if id == uuid.Nil || userID == uuid.Nil {
		return errors.ErrInvalidInput
	}
	if balance.IsNegative() {
		return errors.NewValidationError("initial_balance", "must not be negative", balance)
	}
	a, err := s.repo.GetByID(ctx, id, userID)
	if err != nil {
		return errors.Wrap(err, "get account")
	}
	a.InitialBalance = balance
	a.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, a); err != nil {
		return errors.Wrap(err, "update account balance")
	}
	return nil
}
