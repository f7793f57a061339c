package product

import (
	"context"

	"github.com/BartKempa/api-ecommerce-sub000/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	Create(ctx context.Context, in NewProductInput) (*Product, error)
	Get(ctx context.Context, id uuid.UUID) (*Product, error)
	List(ctx context.Context, categoryID *uuid.UUID) ([]*Product, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, in NewProductInput) (*Product, error) {
	if in.Price <= 0 {
		return nil, ErrInvalidPrice
	}
	if in.Quantity < 0 {
		return nil, ErrInvalidQuantity
	}

	p, err := s.repo.Create(ctx, in)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to create product",
			zap.String("name", in.Name),
			zap.Error(err),
		)
		return nil, err
	}

	return p, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*Product, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProductNotFound
	}
	return p, nil
}

func (s *service) List(ctx context.Context, categoryID *uuid.UUID) ([]*Product, error) {
	return s.repo.List(ctx, categoryID)
}
