package delivery

import (
	"context"

	"github.com/google/uuid"
)

type Service interface {
	Create(ctx context.Context, input NewDeliveryInput) (*Delivery, error)
	Get(ctx context.Context, id uuid.UUID) (*Delivery, error)
	List(ctx context.Context) ([]*Delivery, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, input NewDeliveryInput) (*Delivery, error) {
	if input.Name == "" {
		return nil, ErrMissingName
	}
	if input.Charge < 0 {
		return nil, ErrInvalidCharge
	}

	d := &Delivery{Name: input.Name, Charge: input.Charge}
	if err := s.repo.Create(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*Delivery, error) {
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, ErrDeliveryNotFound
	}
	return d, nil
}

func (s *service) List(ctx context.Context) ([]*Delivery, error) {
	return s.repo.List(ctx)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
