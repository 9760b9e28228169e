package trade

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradebook/pkg/errors"
)

type mockRepository struct {
	create func(ctx context.Context, t *Trade) error
	update func(ctx context.Context, t *Trade) error
}

func (m *mockRepository) Create(ctx context.Context, t *Trade) error {
	if m.create == nil {
		return nil
	}
	return m.create(ctx, t)
}
func (m *mockRepository) GetByID(context.Context, uuid.UUID, uuid.UUID) (*Trade, error) {
	return nil, errors.ErrNotFound
}
func (m *mockRepository) ListByAccount(context.Context, uuid.UUID, uuid.UUID, Filter) ([]Trade, error) {
	return nil, nil
}
func (m *mockRepository) CountSince(context.Context, uuid.UUID, uuid.UUID, time.Time) (int, error) {
	return 0, nil
}
func (m *mockRepository) Update(ctx context.Context, t *Trade) error {
	if m.update == nil {
		return nil
	}
	return m.update(ctx, t)
}
func (m *mockRepository) Delete(context.Context, uuid.UUID, uuid.UUID) error { return nil }

func validTrade() *Trade {
	return &Trade{
		AccountID: uuid.New(),
		UserID:    uuid.New(),
		Symbol:    "EURUSD",
		Side:      SideLong,
		EntryDate: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestServiceCreate(t *testing.T) {
	t.Run("fills defaults", func(t *testing.T) {
		var created *Trade
		svc := NewService(&mockRepository{
			create: func(_ context.Context, tr *Trade) error {
				created = tr
				return nil
			},
		})

		tr := validTrade()
		require.NoError(t, svc.Create(context.Background(), tr))

		require.NotNil(t, created)
		assert.NotEqual(t, uuid.Nil, created.ID)
		assert.Equal(t, OutcomePending, created.Outcome)
		assert.False(t, created.CreatedAt.IsZero())
	})

	t.Run("rejects empty symbol", func(t *testing.T) {
		svc := NewService(&mockRepository{})

		tr := validTrade()
		tr.Symbol = ""

		err := svc.Create(context.Background(), tr)
		var validationErr *errors.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "symbol", validationErr.Field)
	})

	t.Run("rejects unknown side", func(t *testing.T) {
		svc := NewService(&mockRepository{})

		tr := validTrade()
		tr.Side = "Sideways"

		var validationErr *errors.ValidationError
		assert.ErrorAs(t, svc.Create(context.Background(), tr), &validationErr)
	})

	t.Run("rejects unknown outcome label", func(t *testing.T) {
		svc := NewService(&mockRepository{})

		tr := validTrade()
		tr.Outcome = "won"

		var validationErr *errors.ValidationError
		assert.ErrorAs(t, svc.Create(context.Background(), tr), &validationErr)
	})

	t.Run("rejects missing owner", func(t *testing.T) {
		svc := NewService(&mockRepository{})

		tr := validTrade()
		tr.UserID = uuid.Nil

		assert.ErrorIs(t, svc.Create(context.Background(), tr), errors.ErrInvalidInput)
	})
}

func TestServiceClose(t *testing.T) {
	t.Run("records the outcome", func(t *testing.T) {
		var updated *Trade
		svc := NewService(&mockRepository{
			update: func(_ context.Context, tr *Trade) error {
				updated = tr
				return nil
			},
		})

		tr := validTrade()
		tr.ID = uuid.New()
		tr.Outcome = OutcomeWin

		require.NoError(t, svc.Close(context.Background(), tr))
		require.NotNil(t, updated)
		assert.False(t, updated.UpdatedAt.IsZero())
	})

	t.Run("rejects a still-pending outcome", func(t *testing.T) {
		svc := NewService(&mockRepository{})

		tr := validTrade()
		tr.ID = uuid.New()
		tr.Outcome = OutcomePending

		assert.ErrorIs(t, svc.Close(context.Background(), tr), errors.ErrTradeStillOpen)
	})
}
