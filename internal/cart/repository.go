package cart

import (
	"context"
	"database/sql"

	"github.com/BartKempa/api-ecommerce-sub000/internal/logger"
	"github.com/BartKempa/api-ecommerce-sub000/internal/stock"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Repository interface {
	CreateCart(ctx context.Context, c *Cart, userID uint) error
	GetByUser(ctx context.Context, userID uint) (*Cart, error)
	GetDetail(ctx context.Context, cartID uuid.UUID) (*Detail, error)
	DeleteCart(ctx context.Context, cartID uuid.UUID, userID uint, releaseStock bool) error
	ClearCart(ctx context.Context, cartID uuid.UUID) error

	GetItem(ctx context.Context, itemID uuid.UUID) (*Item, error)
	GetItemDetail(ctx context.Context, itemID uuid.UUID) (*ItemDetail, error)
	AddItem(ctx context.Context, cartID, productID uuid.UUID) (*Item, error)
	DeleteItem(ctx context.Context, item Item) error
	SetItemQuantity(ctx context.Context, item Item, newQuantity int) error
	IncrementItem(ctx context.Context, item Item) error
	DecrementItem(ctx context.Context, item Item) error
}

type repository struct {
	db     *sql.DB
	ledger *stock.Ledger
}

func NewRepository(db *sql.DB, ledger *stock.Ledger) Repository {
	return &repository{db: db, ledger: ledger}
}

// lockCart takes the cart row lock for the rest of the transaction. Order
// conversion takes the same lock, so an item mutation and a checkout on the
// same cart never interleave.
func lockCart(ctx context.Context, tx *sql.Tx, cartID uuid.UUID) error {
	var id uuid.UUID
	err := tx.QueryRowContext(ctx, `
		SELECT id FROM carts WHERE id = $1 FOR UPDATE
	`, cartID).Scan(&id)
	if err == sql.ErrNoRows {
		return ErrCartNotFound
	}
	return err
}

// CreateCart inserts the cart and persists the owner's cart reference in one
// transaction.
func (r *repository) CreateCart(ctx context.Context, c *Cart, userID uint) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO carts (id, created_at) VALUES ($1, $2)
	`, c.ID, c.CreatedAt)
	if err != nil {
		return err
	}

	res, err := tx.ExecContext(ctx, `
		UPDATE users SET cart_id = $1 WHERE id = $2
	`, c.ID, userID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrUserNotFound
	}

	return tx.Commit()
}

func (r *repository) GetByUser(ctx context.Context, userID uint) (*Cart, error) {
	var c Cart
	err := r.db.QueryRowContext(ctx, `
		SELECT c.id, c.created_at
		FROM carts c
		JOIN users u ON u.cart_id = c.id
		WHERE u.id = $1
	`, userID).Scan(&c.ID, &c.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &c, nil
}

func (r *repository) GetDetail(ctx context.Context, cartID uuid.UUID) (*Detail, error) {
	var d Detail
	err := r.db.QueryRowContext(ctx, `
		SELECT id, created_at FROM carts WHERE id = $1
	`, cartID).Scan(&d.CartID, &d.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT ci.id, ci.product_id, p.name, p.price, ci.quantity
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.cart_id = $1
		ORDER BY ci.created_at ASC
	`, cartID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item ItemDetail
		if err := rows.Scan(&item.ID, &item.ProductID, &item.ProductName, &item.UnitPrice, &item.Quantity); err != nil {
			return nil, err
		}
		d.Items = append(d.Items, item)
		d.TotalCost += item.UnitPrice * float64(item.Quantity)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &d, nil
}

// DeleteCart removes the cart with its items. With releaseStock every item's
// reserved quantity goes back to the ledger; without it the reservation is
// being handed over to an order and stock stays untouched.
func (r *repository) DeleteCart(ctx context.Context, cartID uuid.UUID, userID uint, releaseStock bool) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "DeleteCart"),
		zap.String("cart_id", cartID.String()),
		zap.Bool("release_stock", releaseStock),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := lockCart(ctx, tx, cartID); err != nil {
		return err
	}

	if releaseStock {
		if err := r.releaseItems(ctx, tx, cartID); err != nil {
			log.Error("failed to release reserved stock", zap.Error(err))
			return err
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, cartID); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `UPDATE users SET cart_id = NULL WHERE id = $1`, userID); err != nil {
		return err
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM carts WHERE id = $1`, cartID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCartNotFound
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	log.Info("cart deleted")
	return nil
}

// ClearCart removes every item but keeps the cart row; each removed item's
// quantity goes back to stock.
func (r *repository) ClearCart(ctx context.Context, cartID uuid.UUID) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := lockCart(ctx, tx, cartID); err != nil {
		return err
	}

	if err := r.releaseItems(ctx, tx, cartID); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, cartID); err != nil {
		return err
	}

	return tx.Commit()
}

// releaseItems returns every item's reserved quantity to the ledger inside
// the caller's transaction. FOR UPDATE keeps the rows stable until the
// matching DELETE in the same transaction.
func (r *repository) releaseItems(ctx context.Context, tx *sql.Tx, cartID uuid.UUID) error {
	rows, err := tx.QueryContext(ctx, `
		SELECT product_id, quantity FROM cart_items WHERE cart_id = $1 FOR UPDATE
	`, cartID)
	if err != nil {
		return err
	}
	defer rows.Close()

	type reservation struct {
		productID uuid.UUID
		quantity  int
	}
	var reserved []reservation

	for rows.Next() {
		var res reservation
		if err := rows.Scan(&res.productID, &res.quantity); err != nil {
			return err
		}
		reserved = append(reserved, res)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	ledger := r.ledger.WithTx(tx)
	for _, res := range reserved {
		if err := ledger.Adjust(ctx, res.productID, -res.quantity); err != nil {
			return err
		}
	}

	return nil
}

func (r *repository) GetItem(ctx context.Context, itemID uuid.UUID) (*Item, error) {
	var item Item
	err := r.db.QueryRowContext(ctx, `
		SELECT id, cart_id, product_id, quantity
		FROM cart_items
		WHERE id = $1
	`, itemID).Scan(&item.ID, &item.CartID, &item.ProductID, &item.Quantity)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &item, nil
}

func (r *repository) GetItemDetail(ctx context.Context, itemID uuid.UUID) (*ItemDetail, error) {
	var item ItemDetail
	err := r.db.QueryRowContext(ctx, `
		SELECT ci.id, ci.product_id, p.name, p.price, ci.quantity
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.id = $1
	`, itemID).Scan(&item.ID, &item.ProductID, &item.ProductName, &item.UnitPrice, &item.Quantity)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &item, nil
}

// AddItem reserves one unit of stock and creates the item in one
// transaction. The ledger call comes first so an exhausted product never
// leaves a dangling item behind.
func (r *repository) AddItem(ctx context.Context, cartID, productID uuid.UUID) (*Item, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "AddItem"),
		zap.String("cart_id", cartID.String()),
		zap.String("product_id", productID.String()),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if err := lockCart(ctx, tx, cartID); err != nil {
		return nil, err
	}

	if err := r.ledger.WithTx(tx).ReduceByOne(ctx, productID); err != nil {
		return nil, err
	}

	var item Item
	err = tx.QueryRowContext(ctx, `
		INSERT INTO cart_items (cart_id, product_id, quantity)
		VALUES ($1, $2, 1)
		RETURNING id, cart_id, product_id, quantity
	`, cartID, productID).Scan(&item.ID, &item.CartID, &item.ProductID, &item.Quantity)
	if err != nil {
		log.Error("failed to insert cart item", zap.Error(err))
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	log.Info("cart item added", zap.String("cart_item_id", item.ID.String()))
	return &item, nil
}

// DeleteItem returns the item's full reserved quantity to stock, then
// removes the item.
func (r *repository) DeleteItem(ctx context.Context, item Item) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := lockCart(ctx, tx, item.CartID); err != nil {
		return err
	}

	if err := r.ledger.WithTx(tx).Adjust(ctx, item.ProductID, -item.Quantity); err != nil {
		return err
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM cart_items WHERE id = $1`, item.ID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrItemNotFound
	}

	return tx.Commit()
}

// SetItemQuantity adjusts the ledger by the signed difference, then persists
// the new quantity. Ledger first: a failed increase must leave the stored
// quantity untouched.
func (r *repository) SetItemQuantity(ctx context.Context, item Item, newQuantity int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := lockCart(ctx, tx, item.CartID); err != nil {
		return err
	}

	delta := newQuantity - item.Quantity
	if err := r.ledger.WithTx(tx).Adjust(ctx, item.ProductID, delta); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE cart_items SET quantity = $1 WHERE id = $2
	`, newQuantity, item.ID); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *repository) IncrementItem(ctx context.Context, item Item) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := lockCart(ctx, tx, item.CartID); err != nil {
		return err
	}

	if err := r.ledger.WithTx(tx).ReduceByOne(ctx, item.ProductID); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE cart_items SET quantity = quantity + 1 WHERE id = $1
	`, item.ID); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *repository) DecrementItem(ctx context.Context, item Item) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := lockCart(ctx, tx, item.CartID); err != nil {
		return err
	}

	if err := r.ledger.WithTx(tx).IncreaseByOne(ctx, item.ProductID); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE cart_items SET quantity = quantity - 1 WHERE id = $1
	`, item.ID); err != nil {
		return err
	}

	return tx.Commit()
}
