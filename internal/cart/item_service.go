package cart

import (
	"context"
	"time"

	"github.com/BartKempa/api-ecommerce-sub000/internal/logger"
	"github.com/BartKempa/api-ecommerce-sub000/internal/product"
	"github.com/BartKempa/api-ecommerce-sub000/internal/user"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type userDirectory interface {
	FindByEmail(ctx context.Context, email string) (*user.User, error)
}

type productCatalog interface {
	GetByID(ctx context.Context, id uuid.UUID) (*product.Product, error)
}

// ItemService mutates single cart items. Every write resolves the acting
// user, the user's cart, the target item and its backing product, and
// verifies the item belongs to that user's cart before touching anything.
type ItemService interface {
	AddItem(ctx context.Context, userEmail string, productID uuid.UUID) (*Item, error)
	RemoveItem(ctx context.Context, itemID uuid.UUID, userEmail string) error
	SetQuantity(ctx context.Context, itemID uuid.UUID, newQuantity int, userEmail string) error
	IncrementByOne(ctx context.Context, itemID uuid.UUID, userEmail string) error
	DecrementByOne(ctx context.Context, itemID uuid.UUID, userEmail string) error
	FindItem(ctx context.Context, itemID uuid.UUID, userEmail string) (*ItemDetail, error)
}

type itemService struct {
	repo     Repository
	users    userDirectory
	products productCatalog
	now      func() time.Time
}

func NewItemService(repo Repository, users userDirectory, products productCatalog) ItemService {
	return &itemService{
		repo:     repo,
		users:    users,
		products: products,
		now:      time.Now,
	}
}

// AddItem lazily creates the user's cart, then creates a quantity-1 item and
// reserves one unit of stock.
func (s *itemService) AddItem(ctx context.Context, userEmail string, productID uuid.UUID) (*Item, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("service", "CartItem"),
		zap.String("method", "AddItem"),
		zap.String("product_id", productID.String()),
	)

	u, err := s.users.FindByEmail(ctx, userEmail)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}

	p, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProductNotFound
	}

	cartID := u.CartID
	if cartID == nil {
		c := &Cart{ID: uuid.New(), CreatedAt: s.now()}
		if err := s.repo.CreateCart(ctx, c, u.ID); err != nil {
			log.Error("failed to lazily create cart", zap.Error(err))
			return nil, err
		}
		cartID = &c.ID
	}

	item, err := s.repo.AddItem(ctx, *cartID, productID)
	if err != nil {
		return nil, err
	}

	log.Info("item added to cart", zap.String("cart_item_id", item.ID.String()))
	return item, nil
}

func (s *itemService) RemoveItem(ctx context.Context, itemID uuid.UUID, userEmail string) error {
	item, err := s.resolveOwnedItem(ctx, itemID, userEmail)
	if err != nil {
		return err
	}

	return s.repo.DeleteItem(ctx, *item)
}

func (s *itemService) SetQuantity(ctx context.Context, itemID uuid.UUID, newQuantity int, userEmail string) error {
	if newQuantity < 1 {
		return ErrInvalidQuantity
	}

	item, err := s.resolveOwnedItem(ctx, itemID, userEmail)
	if err != nil {
		return err
	}

	return s.repo.SetItemQuantity(ctx, *item, newQuantity)
}

func (s *itemService) IncrementByOne(ctx context.Context, itemID uuid.UUID, userEmail string) error {
	item, err := s.resolveOwnedItem(ctx, itemID, userEmail)
	if err != nil {
		return err
	}

	return s.repo.IncrementItem(ctx, *item)
}

// DecrementByOne never takes an item below quantity 1; removal goes through
// RemoveItem instead.
func (s *itemService) DecrementByOne(ctx context.Context, itemID uuid.UUID, userEmail string) error {
	item, err := s.resolveOwnedItem(ctx, itemID, userEmail)
	if err != nil {
		return err
	}

	if item.Quantity <= 1 {
		return ErrBelowMinimum
	}

	return s.repo.DecrementItem(ctx, *item)
}

func (s *itemService) FindItem(ctx context.Context, itemID uuid.UUID, userEmail string) (*ItemDetail, error) {
	if _, err := s.resolveOwnedItem(ctx, itemID, userEmail); err != nil {
		return nil, err
	}

	detail, err := s.repo.GetItemDetail(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if detail == nil {
		return nil, ErrItemNotFound
	}

	return detail, nil
}

// resolveOwnedItem runs the shared resolution chain: user, cart, item,
// ownership, backing product.
func (s *itemService) resolveOwnedItem(ctx context.Context, itemID uuid.UUID, userEmail string) (*Item, error) {
	u, err := s.users.FindByEmail(ctx, userEmail)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	if u.CartID == nil {
		return nil, ErrNoCart
	}

	item, err := s.repo.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrItemNotFound
	}

	if item.CartID != *u.CartID {
		return nil, ErrNotOwned
	}

	p, err := s.products.GetByID(ctx, item.ProductID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProductNotFound
	}

	return item, nil
}
