package cart

import (
	"context"
	"testing"
	"time"

	"github.com/BartKempa/api-ecommerce-sub000/internal/product"
	"github.com/BartKempa/api-ecommerce-sub000/internal/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockUserDirectory struct {
	mock.Mock
}

func (m *MockUserDirectory) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

type MockProductCatalog struct {
	mock.Mock
}

func (m *MockProductCatalog) GetByID(ctx context.Context, id uuid.UUID) (*product.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

type itemServiceFixture struct {
	repo     *MockRepository
	users    *MockUserDirectory
	products *MockProductCatalog
	svc      *itemService
}

func newItemServiceFixture() itemServiceFixture {
	repo := new(MockRepository)
	users := new(MockUserDirectory)
	products := new(MockProductCatalog)
	svc := &itemService{
		repo:     repo,
		users:    users,
		products: products,
		now:      func() time.Time { return time.Unix(1700000000, 0) },
	}
	return itemServiceFixture{repo: repo, users: users, products: products, svc: svc}
}

func TestItemService_AddItem(t *testing.T) {
	ctx := context.Background()
	email := "anna@example.com"
	productID := uuid.New()

	t.Run("Success - Existing Cart", func(t *testing.T) {
		f := newItemServiceFixture()
		cartID := uuid.New()

		f.users.On("FindByEmail", ctx, email).
			Return(&user.User{ID: 1, Email: email, CartID: &cartID}, nil).Once()
		f.products.On("GetByID", ctx, productID).
			Return(&product.Product{ID: productID, Name: "Mug"}, nil).Once()
		f.repo.On("AddItem", ctx, cartID, productID).
			Return(&Item{ID: uuid.New(), CartID: cartID, ProductID: productID, Quantity: 1}, nil).Once()

		item, err := f.svc.AddItem(ctx, email, productID)

		require.NoError(t, err)
		assert.Equal(t, 1, item.Quantity)
		f.repo.AssertExpectations(t)
	})

	t.Run("Success - Lazily Creates Cart", func(t *testing.T) {
		f := newItemServiceFixture()

		f.users.On("FindByEmail", ctx, email).
			Return(&user.User{ID: 1, Email: email, CartID: nil}, nil).Once()
		f.products.On("GetByID", ctx, productID).
			Return(&product.Product{ID: productID}, nil).Once()
		f.repo.On("CreateCart", ctx, mock.AnythingOfType("*cart.Cart"), uint(1)).Return(nil).Once()
		f.repo.On("AddItem", ctx, mock.AnythingOfType("uuid.UUID"), productID).
			Return(&Item{ID: uuid.New(), ProductID: productID, Quantity: 1}, nil).Once()

		_, err := f.svc.AddItem(ctx, email, productID)

		require.NoError(t, err)
		f.repo.AssertExpectations(t)
	})

	t.Run("Error - User Not Found", func(t *testing.T) {
		f := newItemServiceFixture()

		f.users.On("FindByEmail", ctx, email).Return(nil, nil).Once()

		_, err := f.svc.AddItem(ctx, email, productID)

		assert.ErrorIs(t, err, ErrUserNotFound)
		f.repo.AssertNotCalled(t, "AddItem", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Error - Product Not Found", func(t *testing.T) {
		f := newItemServiceFixture()
		cartID := uuid.New()

		f.users.On("FindByEmail", ctx, email).
			Return(&user.User{ID: 1, CartID: &cartID}, nil).Once()
		f.products.On("GetByID", ctx, productID).Return(nil, nil).Once()

		_, err := f.svc.AddItem(ctx, email, productID)

		assert.ErrorIs(t, err, ErrProductNotFound)
	})
}

func TestItemService_Ownership(t *testing.T) {
	ctx := context.Background()
	email := "anna@example.com"
	itemID := uuid.New()
	myCart := uuid.New()
	otherCart := uuid.New()

	t.Run("Error - Item In Another Cart", func(t *testing.T) {
		f := newItemServiceFixture()

		f.users.On("FindByEmail", ctx, email).
			Return(&user.User{ID: 1, CartID: &myCart}, nil).Once()
		f.repo.On("GetItem", ctx, itemID).
			Return(&Item{ID: itemID, CartID: otherCart, ProductID: uuid.New(), Quantity: 2}, nil).Once()

		err := f.svc.RemoveItem(ctx, itemID, email)

		assert.ErrorIs(t, err, ErrNotOwned)
		f.repo.AssertNotCalled(t, "DeleteItem", mock.Anything, mock.Anything)
	})

	t.Run("Error - No Cart", func(t *testing.T) {
		f := newItemServiceFixture()

		f.users.On("FindByEmail", ctx, email).
			Return(&user.User{ID: 1, CartID: nil}, nil).Once()

		err := f.svc.RemoveItem(ctx, itemID, email)

		assert.ErrorIs(t, err, ErrNoCart)
	})

	t.Run("Error - Item Not Found", func(t *testing.T) {
		f := newItemServiceFixture()

		f.users.On("FindByEmail", ctx, email).
			Return(&user.User{ID: 1, CartID: &myCart}, nil).Once()
		f.repo.On("GetItem", ctx, itemID).Return(nil, nil).Once()

		err := f.svc.RemoveItem(ctx, itemID, email)

		assert.ErrorIs(t, err, ErrItemNotFound)
	})

	t.Run("Error - Backing Product Gone", func(t *testing.T) {
		f := newItemServiceFixture()
		productID := uuid.New()

		f.users.On("FindByEmail", ctx, email).
			Return(&user.User{ID: 1, CartID: &myCart}, nil).Once()
		f.repo.On("GetItem", ctx, itemID).
			Return(&Item{ID: itemID, CartID: myCart, ProductID: productID, Quantity: 2}, nil).Once()
		f.products.On("GetByID", ctx, productID).Return(nil, nil).Once()

		err := f.svc.RemoveItem(ctx, itemID, email)

		assert.ErrorIs(t, err, ErrProductNotFound)
	})
}

func TestItemService_RemoveItem(t *testing.T) {
	ctx := context.Background()
	email := "anna@example.com"
	itemID := uuid.New()
	cartID := uuid.New()
	productID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		f := newItemServiceFixture()
		item := Item{ID: itemID, CartID: cartID, ProductID: productID, Quantity: 3}

		f.users.On("FindByEmail", ctx, email).
			Return(&user.User{ID: 1, CartID: &cartID}, nil).Once()
		f.repo.On("GetItem", ctx, itemID).Return(&item, nil).Once()
		f.products.On("GetByID", ctx, productID).
			Return(&product.Product{ID: productID}, nil).Once()
		f.repo.On("DeleteItem", ctx, item).Return(nil).Once()

		err := f.svc.RemoveItem(ctx, itemID, email)

		assert.NoError(t, err)
		f.repo.AssertExpectations(t)
	})
}

func TestItemService_SetQuantity(t *testing.T) {
	ctx := context.Background()
	email := "anna@example.com"
	itemID := uuid.New()
	cartID := uuid.New()
	productID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		f := newItemServiceFixture()
		item := Item{ID: itemID, CartID: cartID, ProductID: productID, Quantity: 2}

		f.users.On("FindByEmail", ctx, email).
			Return(&user.User{ID: 1, CartID: &cartID}, nil).Once()
		f.repo.On("GetItem", ctx, itemID).Return(&item, nil).Once()
		f.products.On("GetByID", ctx, productID).
			Return(&product.Product{ID: productID}, nil).Once()
		f.repo.On("SetItemQuantity", ctx, item, 5).Return(nil).Once()

		err := f.svc.SetQuantity(ctx, itemID, 5, email)

		assert.NoError(t, err)
		f.repo.AssertExpectations(t)
	})

	t.Run("Error - Quantity Below One", func(t *testing.T) {
		f := newItemServiceFixture()

		err := f.svc.SetQuantity(ctx, itemID, 0, email)

		assert.ErrorIs(t, err, ErrInvalidQuantity)
		f.users.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
	})
}

func TestItemService_DecrementByOne(t *testing.T) {
	ctx := context.Background()
	email := "anna@example.com"
	itemID := uuid.New()
	cartID := uuid.New()
	productID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		f := newItemServiceFixture()
		item := Item{ID: itemID, CartID: cartID, ProductID: productID, Quantity: 2}

		f.users.On("FindByEmail", ctx, email).
			Return(&user.User{ID: 1, CartID: &cartID}, nil).Once()
		f.repo.On("GetItem", ctx, itemID).Return(&item, nil).Once()
		f.products.On("GetByID", ctx, productID).
			Return(&product.Product{ID: productID}, nil).Once()
		f.repo.On("DecrementItem", ctx, item).Return(nil).Once()

		err := f.svc.DecrementByOne(ctx, itemID, email)

		assert.NoError(t, err)
	})

	t.Run("Error - Below Minimum Changes Nothing", func(t *testing.T) {
		f := newItemServiceFixture()
		item := Item{ID: itemID, CartID: cartID, ProductID: productID, Quantity: 1}

		f.users.On("FindByEmail", ctx, email).
			Return(&user.User{ID: 1, CartID: &cartID}, nil).Once()
		f.repo.On("GetItem", ctx, itemID).Return(&item, nil).Once()
		f.products.On("GetByID", ctx, productID).
			Return(&product.Product{ID: productID}, nil).Once()

		err := f.svc.DecrementByOne(ctx, itemID, email)

		assert.ErrorIs(t, err, ErrBelowMinimum)
		f.repo.AssertNotCalled(t, "DecrementItem", mock.Anything, mock.Anything)
	})
}

func TestItemService_FindItem(t *testing.T) {
	ctx := context.Background()
	email := "anna@example.com"
	itemID := uuid.New()
	cartID := uuid.New()
	productID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		f := newItemServiceFixture()
		item := Item{ID: itemID, CartID: cartID, ProductID: productID, Quantity: 2}
		detail := &ItemDetail{ID: itemID, ProductID: productID, ProductName: "Mug", UnitPrice: 9.99, Quantity: 2}

		f.users.On("FindByEmail", ctx, email).
			Return(&user.User{ID: 1, CartID: &cartID}, nil).Once()
		f.repo.On("GetItem", ctx, itemID).Return(&item, nil).Once()
		f.products.On("GetByID", ctx, productID).
			Return(&product.Product{ID: productID}, nil).Once()
		f.repo.On("GetItemDetail", ctx, itemID).Return(detail, nil).Once()

		got, err := f.svc.FindItem(ctx, itemID, email)

		require.NoError(t, err)
		assert.Equal(t, detail, got)
	})
}
