package address

import (
	"context"

	"github.com/google/uuid"
)

type Service interface {
	Create(ctx context.Context, userID uint, input NewAddressInput) (*Address, error)
	Get(ctx context.Context, id uuid.UUID, userID uint) (*Address, error)
	ListByUser(ctx context.Context, userID uint) ([]*Address, error)
	Delete(ctx context.Context, id uuid.UUID, userID uint) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, userID uint, input NewAddressInput) (*Address, error) {
	if input.Line1 == "" || input.City == "" || input.PostalCode == "" || input.Country == "" {
		return nil, ErrMissingField
	}

	a := &Address{
		UserID:     userID,
		Line1:      input.Line1,
		Line2:      input.Line2,
		City:       input.City,
		PostalCode: input.PostalCode,
		Country:    input.Country,
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}

	return a, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID, userID uint) (*Address, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, ErrAddressNotFound
	}
	if a.UserID != userID {
		return nil, ErrNotOwned
	}

	return a, nil
}

func (s *service) ListByUser(ctx context.Context, userID uint) ([]*Address, error) {
	return s.repo.GetByUserID(ctx, userID)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID, userID uint) error {
	if _, err := s.Get(ctx, id, userID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
