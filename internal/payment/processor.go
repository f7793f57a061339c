package payment

import (
	"context"
	"math/rand"
	"sync"

	"github.com/BartKempa/api-ecommerce-sub000/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Processor decides the outcome of a payment attempt. It reports whether
// the charge succeeded; a non-nil error means no decision was reached.
type Processor interface {
	Process(ctx context.Context, orderID uuid.UUID, amount float64) (bool, error)
}

// CoinFlip approves roughly half of all charges. It stands in for a real
// gateway integration.
type CoinFlip struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewCoinFlip(seed int64) *CoinFlip {
	return &CoinFlip{rng: rand.New(rand.NewSource(seed))}
}

func (c *CoinFlip) Process(ctx context.Context, orderID uuid.UUID, amount float64) (bool, error) {
	c.mu.Lock()
	ok := c.rng.Intn(2) == 1
	c.mu.Unlock()

	logger.FromCtx(ctx).Info("payment attempt resolved",
		zap.String("order_id", orderID.String()),
		zap.Float64("amount", amount),
		zap.Bool("approved", ok),
	)
	return ok, nil
}
