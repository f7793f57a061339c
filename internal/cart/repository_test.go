package cart

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/BartKempa/api-ecommerce-sub000/internal/stock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepo(t *testing.T) (Repository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	return NewRepository(db, stock.NewLedger(db)), mock, db
}

func expectCartLock(mock sqlmock.Sqlmock, cartID uuid.UUID) {
	mock.ExpectQuery("SELECT id FROM carts WHERE id = (.+) FOR UPDATE").
		WithArgs(cartID).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(cartID))
}

func TestRepository_CreateCart(t *testing.T) {
	repo, mock, db := newMockRepo(t)
	defer db.Close()

	c := &Cart{ID: uuid.New(), CreatedAt: time.Now()}
	userID := uint(1)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO carts").
			WithArgs(c.ID, c.CreatedAt).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE users SET cart_id").
			WithArgs(c.ID, userID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.CreateCart(context.Background(), c, userID)
		assert.NoError(t, err)
	})

	t.Run("Error - User Missing", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO carts").
			WithArgs(c.ID, c.CreatedAt).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE users SET cart_id").
			WithArgs(c.ID, userID).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err := repo.CreateCart(context.Background(), c, userID)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestRepository_GetByUser(t *testing.T) {
	repo, mock, db := newMockRepo(t)
	defer db.Close()

	userID := uint(1)
	cartID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "created_at"}).AddRow(cartID, time.Now())
		mock.ExpectQuery("SELECT c.id, c.created_at").
			WithArgs(userID).
			WillReturnRows(rows)

		c, err := repo.GetByUser(context.Background(), userID)
		assert.NoError(t, err)
		require.NotNil(t, c)
		assert.Equal(t, cartID, c.ID)
	})

	t.Run("NoCart", func(t *testing.T) {
		mock.ExpectQuery("SELECT c.id, c.created_at").
			WithArgs(userID).
			WillReturnError(sql.ErrNoRows)

		c, err := repo.GetByUser(context.Background(), userID)
		assert.NoError(t, err)
		assert.Nil(t, c)
	})
}

func TestRepository_GetDetail(t *testing.T) {
	repo, mock, db := newMockRepo(t)
	defer db.Close()

	cartID := uuid.New()
	productA := uuid.New()
	productB := uuid.New()

	t.Run("ComputesTotalCost", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, created_at FROM carts").
			WithArgs(cartID).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(cartID, time.Now()))

		itemRows := sqlmock.NewRows([]string{"id", "product_id", "name", "price", "quantity"}).
			AddRow(uuid.New(), productA, "Notebook", 10.50, 2).
			AddRow(uuid.New(), productB, "Pen", 8.80, 1)
		mock.ExpectQuery("SELECT ci.id, ci.product_id").
			WithArgs(cartID).
			WillReturnRows(itemRows)

		d, err := repo.GetDetail(context.Background(), cartID)
		require.NoError(t, err)
		assert.Len(t, d.Items, 2)
		assert.InDelta(t, 29.80, d.TotalCost, 0.001)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, created_at FROM carts").
			WithArgs(cartID).
			WillReturnError(sql.ErrNoRows)

		d, err := repo.GetDetail(context.Background(), cartID)
		assert.NoError(t, err)
		assert.Nil(t, d)
	})
}

func TestRepository_AddItem(t *testing.T) {
	repo, mock, db := newMockRepo(t)
	defer db.Close()

	cartID := uuid.New()
	productID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectBegin()
		expectCartLock(mock, cartID)
		mock.ExpectExec("UPDATE products").
			WithArgs(productID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery("INSERT INTO cart_items").
			WithArgs(cartID, productID).
			WillReturnRows(sqlmock.NewRows([]string{"id", "cart_id", "product_id", "quantity"}).
				AddRow(uuid.New(), cartID, productID, 1))
		mock.ExpectCommit()

		item, err := repo.AddItem(context.Background(), cartID, productID)
		require.NoError(t, err)
		assert.Equal(t, 1, item.Quantity)
	})

	t.Run("Error - Out Of Stock Rolls Back", func(t *testing.T) {
		mock.ExpectBegin()
		expectCartLock(mock, cartID)
		mock.ExpectExec("UPDATE products").
			WithArgs(productID).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery("SELECT EXISTS").
			WithArgs(productID).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
		mock.ExpectRollback()

		_, err := repo.AddItem(context.Background(), cartID, productID)
		assert.ErrorIs(t, err, stock.ErrOutOfStock)
	})
}

func TestRepository_SetItemQuantity(t *testing.T) {
	repo, mock, db := newMockRepo(t)
	defer db.Close()

	item := Item{ID: uuid.New(), CartID: uuid.New(), ProductID: uuid.New(), Quantity: 2}

	t.Run("IncreaseConsumesDelta", func(t *testing.T) {
		mock.ExpectBegin()
		expectCartLock(mock, item.CartID)
		mock.ExpectExec("UPDATE products").
			WithArgs(3, item.ProductID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE cart_items SET quantity").
			WithArgs(5, item.ID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.SetItemQuantity(context.Background(), item, 5)
		assert.NoError(t, err)
	})

	t.Run("DecreaseReturnsDelta", func(t *testing.T) {
		mock.ExpectBegin()
		expectCartLock(mock, item.CartID)
		mock.ExpectExec("UPDATE products").
			WithArgs(1, item.ProductID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE cart_items SET quantity").
			WithArgs(1, item.ID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.SetItemQuantity(context.Background(), item, 1)
		assert.NoError(t, err)
	})

	t.Run("Error - Insufficient Stock Leaves Quantity Untouched", func(t *testing.T) {
		mock.ExpectBegin()
		expectCartLock(mock, item.CartID)
		mock.ExpectExec("UPDATE products").
			WithArgs(8, item.ProductID).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery("SELECT EXISTS").
			WithArgs(item.ProductID).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
		mock.ExpectRollback()

		err := repo.SetItemQuantity(context.Background(), item, 10)
		assert.ErrorIs(t, err, stock.ErrInsufficientStock)
	})

	t.Run("Error - Cart Converted Mid Edit Rolls Back", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("SELECT id FROM carts WHERE id = (.+) FOR UPDATE").
			WithArgs(item.CartID).
			WillReturnError(sql.ErrNoRows)
		mock.ExpectRollback()

		err := repo.SetItemQuantity(context.Background(), item, 5)
		assert.ErrorIs(t, err, ErrCartNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_DeleteItem(t *testing.T) {
	repo, mock, db := newMockRepo(t)
	defer db.Close()

	item := Item{ID: uuid.New(), CartID: uuid.New(), ProductID: uuid.New(), Quantity: 3}

	t.Run("Success", func(t *testing.T) {
		mock.ExpectBegin()
		expectCartLock(mock, item.CartID)
		mock.ExpectExec("UPDATE products").
			WithArgs(3, item.ProductID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("DELETE FROM cart_items").
			WithArgs(item.ID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.DeleteItem(context.Background(), item)
		assert.NoError(t, err)
	})

	t.Run("Error - Item Gone", func(t *testing.T) {
		mock.ExpectBegin()
		expectCartLock(mock, item.CartID)
		mock.ExpectExec("UPDATE products").
			WithArgs(3, item.ProductID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("DELETE FROM cart_items").
			WithArgs(item.ID).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err := repo.DeleteItem(context.Background(), item)
		assert.ErrorIs(t, err, ErrItemNotFound)
	})
}

func TestRepository_ClearCart(t *testing.T) {
	repo, mock, db := newMockRepo(t)
	defer db.Close()

	cartID := uuid.New()
	productA := uuid.New()
	productB := uuid.New()

	t.Run("ReleasesEveryReservation", func(t *testing.T) {
		mock.ExpectBegin()
		expectCartLock(mock, cartID)
		mock.ExpectQuery("SELECT product_id, quantity FROM cart_items").
			WithArgs(cartID).
			WillReturnRows(sqlmock.NewRows([]string{"product_id", "quantity"}).
				AddRow(productA, 2).
				AddRow(productB, 1))
		mock.ExpectExec("UPDATE products").
			WithArgs(2, productA).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE products").
			WithArgs(1, productB).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("DELETE FROM cart_items").
			WithArgs(cartID).
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectCommit()

		err := repo.ClearCart(context.Background(), cartID)
		assert.NoError(t, err)
	})

	t.Run("Error - Release Failure Rolls Back", func(t *testing.T) {
		mock.ExpectBegin()
		expectCartLock(mock, cartID)
		mock.ExpectQuery("SELECT product_id, quantity FROM cart_items").
			WithArgs(cartID).
			WillReturnRows(sqlmock.NewRows([]string{"product_id", "quantity"}).
				AddRow(productA, 2))
		mock.ExpectExec("UPDATE products").
			WillReturnError(errors.New("db error"))
		mock.ExpectRollback()

		err := repo.ClearCart(context.Background(), cartID)
		assert.Error(t, err)
	})
}

func TestRepository_DeleteCart(t *testing.T) {
	repo, mock, db := newMockRepo(t)
	defer db.Close()

	cartID := uuid.New()
	userID := uint(1)
	productA := uuid.New()

	t.Run("WithReleaseStock", func(t *testing.T) {
		mock.ExpectBegin()
		expectCartLock(mock, cartID)
		mock.ExpectQuery("SELECT product_id, quantity FROM cart_items").
			WithArgs(cartID).
			WillReturnRows(sqlmock.NewRows([]string{"product_id", "quantity"}).
				AddRow(productA, 4))
		mock.ExpectExec("UPDATE products").
			WithArgs(4, productA).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("DELETE FROM cart_items").
			WithArgs(cartID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE users SET cart_id = NULL").
			WithArgs(userID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("DELETE FROM carts").
			WithArgs(cartID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.DeleteCart(context.Background(), cartID, userID, true)
		assert.NoError(t, err)
	})

	t.Run("WithoutReleaseStockSkipsLedger", func(t *testing.T) {
		mock.ExpectBegin()
		expectCartLock(mock, cartID)
		mock.ExpectExec("DELETE FROM cart_items").
			WithArgs(cartID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE users SET cart_id = NULL").
			WithArgs(userID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("DELETE FROM carts").
			WithArgs(cartID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.DeleteCart(context.Background(), cartID, userID, false)
		assert.NoError(t, err)
	})

	t.Run("Error - Cart Gone", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("SELECT id FROM carts WHERE id = (.+) FOR UPDATE").
			WithArgs(cartID).
			WillReturnError(sql.ErrNoRows)
		mock.ExpectRollback()

		err := repo.DeleteCart(context.Background(), cartID, userID, false)
		assert.ErrorIs(t, err, ErrCartNotFound)
	})
}
