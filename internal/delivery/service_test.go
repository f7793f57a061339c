package delivery

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, d *Delivery) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockRepository) GetByID(ctx context.Context, id uuid.UUID) (*Delivery, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Delivery), args.Error(1)
}

func (m *MockRepository) List(ctx context.Context) ([]*Delivery, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Delivery), args.Error(1)
}

func (m *MockRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("Create", ctx, mock.AnythingOfType("*delivery.Delivery")).Return(nil).Once()

		d, err := svc.Create(ctx, NewDeliveryInput{Name: "Courier", Charge: 5.0})

		require.NoError(t, err)
		assert.Equal(t, "Courier", d.Name)
	})

	t.Run("Error - Missing Name", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		_, err := svc.Create(ctx, NewDeliveryInput{Charge: 5.0})

		assert.ErrorIs(t, err, ErrMissingName)
	})

	t.Run("Error - Negative Charge", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		_, err := svc.Create(ctx, NewDeliveryInput{Name: "Courier", Charge: -1})

		assert.ErrorIs(t, err, ErrInvalidCharge)
	})

	t.Run("Free Delivery Is Allowed", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("Create", ctx, mock.AnythingOfType("*delivery.Delivery")).Return(nil).Once()

		d, err := svc.Create(ctx, NewDeliveryInput{Name: "Pickup", Charge: 0})

		require.NoError(t, err)
		assert.Zero(t, d.Charge)
	})
}

func TestService_Get(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("Error - Not Found", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("GetByID", ctx, id).Return(nil, nil).Once()

		_, err := svc.Get(ctx, id)

		assert.ErrorIs(t, err, ErrDeliveryNotFound)
	})
}
