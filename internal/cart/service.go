package cart

import (
	"context"
	"time"

	"github.com/BartKempa/api-ecommerce-sub000/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service owns cart existence and the one-cart-per-user invariant.
type Service interface {
	CreateCart(ctx context.Context, userID uint) (*Cart, error)
	FindCart(ctx context.Context, userID uint) (*Detail, error)
	DeleteCart(ctx context.Context, userID uint, releaseStock bool) error
	ClearCart(ctx context.Context, userID uint) error
}

type service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) Service {
	return &service{repo: repo, now: time.Now}
}

func (s *service) CreateCart(ctx context.Context, userID uint) (*Cart, error) {
	existing, err := s.repo.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrCartAlreadyExists
	}

	c := &Cart{ID: uuid.New(), CreatedAt: s.now()}
	if err := s.repo.CreateCart(ctx, c, userID); err != nil {
		logger.FromCtx(ctx).Error("failed to create cart",
			zap.Uint("user_id", userID),
			zap.Error(err),
		)
		return nil, err
	}

	return c, nil
}

func (s *service) FindCart(ctx context.Context, userID uint) (*Detail, error) {
	c, err := s.repo.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return &Detail{}, nil
	}

	detail, err := s.repo.GetDetail(ctx, c.ID)
	if err != nil {
		return nil, err
	}

	return detail, nil
}

func (s *service) DeleteCart(ctx context.Context, userID uint, releaseStock bool) error {
	c, err := s.repo.GetByUser(ctx, userID)
	if err != nil {
		return err
	}
	if c == nil {
		return ErrCartNotFound
	}

	return s.repo.DeleteCart(ctx, c.ID, userID, releaseStock)
}

// ClearCart fails with ErrNoCart rather than ErrCartNotFound: clearing a
// cart that never existed is a client-level condition, not a lookup failure.
func (s *service) ClearCart(ctx context.Context, userID uint) error {
	c, err := s.repo.GetByUser(ctx, userID)
	if err != nil {
		return err
	}
	if c == nil {
		return ErrNoCart
	}

	return s.repo.ClearCart(ctx, c.ID)
}
