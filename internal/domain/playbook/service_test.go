package playbook

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradebook/pkg/errors"
)

type mockRepository struct {
	create          func(ctx context.Context, p *Playbook) error
	listNamesByUser func(ctx context.Context, userID uuid.UUID) ([]string, error)
}

func (m *mockRepository) Create(ctx context.Context, p *Playbook) error {
	if m.create == nil {
		return nil
	}
	return m.create(ctx, p)
}
func (m *mockRepository) GetByID(context.Context, uuid.UUID, uuid.UUID) (*Playbook, error) {
	return nil, errors.ErrNotFound
}
func (m *mockRepository) ListByUser(context.Context, uuid.UUID) ([]Playbook, error) {
	return nil, nil
}
func (m *mockRepository) ListNamesByUser(ctx context.Context, userID uuid.UUID) ([]string, error) {
	if m.listNamesByUser == nil {
		return nil, nil
	}
	return m.listNamesByUser(ctx, userID)
}
func (m *mockRepository) Update(context.Context, *Playbook) error { return nil }
func (m *mockRepository) Delete(context.Context, uuid.UUID, uuid.UUID) error { return nil }

func TestServiceCreate(t *testing.T) {
	t.Run("defaults rules to empty list", func(t *testing.T) {
		var created *Playbook
		svc := NewService(&mockRepository{
			create: func(_ context.Context, p *Playbook) error {
				created = p
				return nil
			},
		})

		p := &Playbook{UserID: uuid.New(), Name: "Breakout"}
		require.NoError(t, svc.Create(context.Background(), p))

		require.NotNil(t, created)
		assert.Equal(t, []byte("[]"), created.Rules)
		assert.NotEqual(t, uuid.Nil, created.ID)
	})

	t.Run("rejects duplicate name", func(t *testing.T) {
		svc := NewService(&mockRepository{
			listNamesByUser: func(context.Context, uuid.UUID) ([]string, error) {
				return []string{"Breakout", "Reversal"}, nil
			},
		})

		p := &Playbook{UserID: uuid.New(), Name: "Breakout"}
		assert.ErrorIs(t, svc.Create(context.Background(), p), errors.ErrPlaybookNameTaken)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		svc := NewService(&mockRepository{})

		p := &Playbook{UserID: uuid.New()}

		var validationErr *errors.ValidationError
		assert.ErrorAs(t, svc.Create(context.Background(), p), &validationErr)
	})
}
