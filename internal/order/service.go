package order

import (
	"context"
	"time"

	"github.com/BartKempa/api-ecommerce-sub000/internal/address"
	"github.com/BartKempa/api-ecommerce-sub000/internal/delivery"
	"github.com/BartKempa/api-ecommerce-sub000/internal/logger"
	"github.com/BartKempa/api-ecommerce-sub000/internal/payment"
	"github.com/BartKempa/api-ecommerce-sub000/internal/user"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type userDirectory interface {
	FindByEmail(ctx context.Context, email string) (*user.User, error)
}

type addressBook interface {
	GetByID(ctx context.Context, id uuid.UUID) (*address.Address, error)
}

type deliveryCatalog interface {
	GetByID(ctx context.Context, id uuid.UUID) (*delivery.Delivery, error)
}

type Service interface {
	CreateOrder(ctx context.Context, userEmail string, addressID, deliveryID uuid.UUID) (*Order, error)
	FindOrder(ctx context.Context, orderID uuid.UUID, userEmail string) (*Order, error)
	DeleteOrder(ctx context.Context, orderID uuid.UUID) error
	ListOrders(ctx context.Context, page, size int, sortField, sortDir string) ([]Summary, error)
	ProcessPayment(ctx context.Context, orderID uuid.UUID) (PaymentStatus, error)
	CancelOrder(ctx context.Context, orderID uuid.UUID) error
	MarkSuccess(ctx context.Context, orderID uuid.UUID) error
}

type service struct {
	repo       Repository
	users      userDirectory
	addresses  addressBook
	deliveries deliveryCatalog
	processor  payment.Processor
	now        func() time.Time
}

func NewService(
	repo Repository,
	users userDirectory,
	addresses addressBook,
	deliveries deliveryCatalog,
	processor payment.Processor,
) Service {
	return &service{
		repo:       repo,
		users:      users,
		addresses:  addresses,
		deliveries: deliveries,
		processor:  processor,
		now:        time.Now,
	}
}

func (s *service) CreateOrder(ctx context.Context, userEmail string, addressID, deliveryID uuid.UUID) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateOrder"),
		zap.String("address_id", addressID.String()),
		zap.String("delivery_id", deliveryID.String()),
	)

	u, err := s.users.FindByEmail(ctx, userEmail)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	if u.CartID == nil {
		return nil, ErrCartNotFound
	}

	a, err := s.addresses.GetByID(ctx, addressID)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, ErrAddressNotFound
	}
	if a.UserID != u.ID {
		return nil, ErrForbidden
	}

	d, err := s.deliveries.GetByID(ctx, deliveryID)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, ErrDeliveryNotFound
	}

	o := &Order{
		ID:            uuid.New(),
		UserID:        u.ID,
		AddressID:     addressID,
		DeliveryID:    deliveryID,
		Status:        StatusNew,
		PaymentStatus: PaymentPending,
		CreatedAt:     s.now(),
	}

	// Items and total come from the repository's in-tx snapshot, taken
	// under the cart row lock.
	if err := s.repo.CreateOrderTx(ctx, o, *u.CartID, d.Charge); err != nil {
		log.Error("failed to create order", zap.Error(err))
		return nil, err
	}

	log.Info("order created",
		zap.String("order_id", o.ID.String()),
		zap.Float64("total", o.Total),
	)
	return o, nil
}

func (s *service) FindOrder(ctx context.Context, orderID uuid.UUID, userEmail string) (*Order, error) {
	u, err := s.users.FindByEmail(ctx, userEmail)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}

	o, err := s.repo.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, ErrOrderNotFound
	}
	if o.UserID != u.ID {
		return nil, ErrForbidden
	}

	return o, nil
}

// DeleteOrder is administrative; the caller is authorized upstream.
func (s *service) DeleteOrder(ctx context.Context, orderID uuid.UUID) error {
	o, err := s.repo.GetOrder(ctx, orderID)
	if err != nil {
		return err
	}
	if o == nil {
		return ErrOrderNotFound
	}

	return s.repo.DeleteOrderTx(ctx, o)
}

func (s *service) ListOrders(ctx context.Context, page, size int, sortField, sortDir string) ([]Summary, error) {
	if page < 1 {
		page = 1
	}
	if size <= 0 {
		size = 20
	}
	if size > 100 {
		size = 100
	}
	if sortField == "" {
		sortField = "orderDate"
	}

	offset := (page - 1) * size
	return s.repo.List(ctx, sortField, sortDir, size, offset)
}

func (s *service) ProcessPayment(ctx context.Context, orderID uuid.UUID) (PaymentStatus, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "ProcessPayment"),
		zap.String("order_id", orderID.String()),
	)

	o, err := s.repo.GetOrder(ctx, orderID)
	if err != nil {
		return "", err
	}
	if o == nil {
		return "", ErrOrderNotFound
	}

	ok, err := s.processor.Process(ctx, o.ID, o.Total)
	if err != nil {
		return "", err
	}

	status := PaymentFailed
	if ok {
		status = PaymentCompleted
	}

	if err := s.repo.SetPaymentStatus(ctx, orderID, status); err != nil {
		return "", err
	}

	log.Info("payment processed", zap.String("payment_status", string(status)))
	return status, nil
}

func (s *service) CancelOrder(ctx context.Context, orderID uuid.UUID) error {
	o, err := s.repo.GetOrder(ctx, orderID)
	if err != nil {
		return err
	}
	if o == nil {
		return ErrOrderNotFound
	}
	if o.Status != StatusNew {
		return ErrInvalidTransition
	}

	return s.repo.CancelOrderTx(ctx, o)
}

func (s *service) MarkSuccess(ctx context.Context, orderID uuid.UUID) error {
	o, err := s.repo.GetOrder(ctx, orderID)
	if err != nil {
		return err
	}
	if o == nil {
		return ErrOrderNotFound
	}
	if o.Status != StatusNew || o.PaymentStatus != PaymentCompleted {
		return ErrInvalidTransition
	}

	return s.repo.SetStatus(ctx, orderID, StatusSuccess)
}
