package card

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Service interface {
	Create(ctx context.Context, userID uint, input NewCardInput) (*Card, error)
	ListByUser(ctx context.Context, userID uint) ([]*Card, error)
	Delete(ctx context.Context, id uuid.UUID, userID uint) error
}

type service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) Service {
	return &service{repo: repo, now: time.Now}
}

func (s *service) Create(ctx context.Context, userID uint, input NewCardInput) (*Card, error) {
	digits := strings.ReplaceAll(input.Number, " ", "")
	if len(digits) < 12 || len(digits) > 19 {
		return nil, ErrInvalidNumber
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return nil, ErrInvalidNumber
		}
	}

	if input.ExpiryMonth < 1 || input.ExpiryMonth > 12 {
		return nil, ErrInvalidExpiry
	}
	now := s.now()
	if input.ExpiryYear < now.Year() ||
		(input.ExpiryYear == now.Year() && time.Month(input.ExpiryMonth) < now.Month()) {
		return nil, ErrInvalidExpiry
	}

	c := &Card{
		UserID:       userID,
		HolderName:   input.HolderName,
		MaskedNumber: mask(digits),
		ExpiryMonth:  input.ExpiryMonth,
		ExpiryYear:   input.ExpiryYear,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *service) ListByUser(ctx context.Context, userID uint) ([]*Card, error) {
	return s.repo.GetByUserID(ctx, userID)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID, userID uint) error {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if c == nil {
		return ErrCardNotFound
	}
	if c.UserID != userID {
		return ErrNotOwned
	}

	return s.repo.Delete(ctx, id)
}

func mask(digits string) string {
	return strings.Repeat("*", len(digits)-4) + digits[len(digits)-4:]
}
