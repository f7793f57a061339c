package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/BartKempa/api-ecommerce-sub000/internal/logger"
	"github.com/BartKempa/api-ecommerce-sub000/internal/stock"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Repository interface {
	CreateOrderTx(ctx context.Context, o *Order, cartID uuid.UUID, deliveryCharge float64) error
	GetOrder(ctx context.Context, orderID uuid.UUID) (*Order, error)
	List(ctx context.Context, sortField, sortDir string, limit, offset int) ([]Summary, error)
	SetPaymentStatus(ctx context.Context, orderID uuid.UUID, status PaymentStatus) error
	SetStatus(ctx context.Context, orderID uuid.UUID, status Status) error
	CancelOrderTx(ctx context.Context, o *Order) error
	DeleteOrderTx(ctx context.Context, o *Order) error
}

// sortColumns is the whitelist for List. Anything else is rejected before
// the column name reaches the query string.
var sortColumns = map[string]string{
	"orderDate":       "o.created_at",
	"orderTotalPrice": "o.total_price",
	"userEmail":       "u.email",
	"userPhoneNumber": "u.phone",
}

type repository struct {
	db     *sql.DB
	ledger *stock.Ledger
}

func NewRepository(db *sql.DB, ledger *stock.Ledger) Repository {
	return &repository{db: db, ledger: ledger}
}

// CreateOrderTx converts a cart into an order. The cart row is locked for
// the whole transaction and every item mutation takes the same lock, so the
// snapshot, the total and the delete all see the same items. Reserved stock
// is NOT returned: the reservation transfers from the cart items to the
// order items. o.Items and o.Total are filled in from the in-tx snapshot.
func (r *repository) CreateOrderTx(ctx context.Context, o *Order, cartID uuid.UUID, deliveryCharge float64) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateOrderTx"),
		zap.String("order_id", o.ID.String()),
		zap.String("cart_id", cartID.String()),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var lockedID uuid.UUID
	err = tx.QueryRowContext(ctx, `
		SELECT id FROM carts WHERE id = $1 FOR UPDATE
	`, cartID).Scan(&lockedID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrCartNotFound
	}
	if err != nil {
		return err
	}

	// Snapshot the items at their current catalog price and price the whole
	// order under the lock.
	items, itemsTotal, err := cartSnapshot(ctx, tx, cartID, o.ID)
	if err != nil {
		log.Error("failed to snapshot cart items", zap.Error(err))
		return err
	}
	o.Items = items
	o.Total = itemsTotal + deliveryCharge

	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders (
			id, user_id, address_id, delivery_id,
			total_price, order_status, payment_status, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`,
		o.ID,
		o.UserID,
		o.AddressID,
		o.DeliveryID,
		o.Total,
		o.Status,
		o.PaymentStatus,
		o.CreatedAt,
	)
	if err != nil {
		log.Error("failed to insert order", zap.Error(err))
		return err
	}

	for _, item := range o.Items {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO order_items (order_id, product_id, quantity, unit_price)
			VALUES ($1, $2, $3, $4)
		`, o.ID, item.ProductID, item.Quantity, item.UnitPrice); err != nil {
			log.Error("failed to insert order item", zap.Error(err))
			return err
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, cartID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `UPDATE users SET cart_id = NULL WHERE id = $1`, o.UserID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM carts WHERE id = $1`, cartID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	log.Info("order created from cart")
	return nil
}

func cartSnapshot(ctx context.Context, tx *sql.Tx, cartID, orderID uuid.UUID) ([]Item, float64, error) {
	rows, err := tx.QueryContext(ctx, `
		SELECT ci.product_id, ci.quantity, p.price
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.cart_id = $1
	`, cartID)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []Item
	var total float64
	for rows.Next() {
		item := Item{OrderID: orderID}
		if err := rows.Scan(&item.ProductID, &item.Quantity, &item.UnitPrice); err != nil {
			return nil, 0, err
		}
		items = append(items, item)
		total += item.UnitPrice * float64(item.Quantity)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

func (r *repository) GetOrder(ctx context.Context, orderID uuid.UUID) (*Order, error) {
	var o Order
	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, address_id, delivery_id,
		       total_price, order_status, payment_status, created_at
		FROM orders
		WHERE id = $1
	`, orderID).Scan(
		&o.ID,
		&o.UserID,
		&o.AddressID,
		&o.DeliveryID,
		&o.Total,
		&o.Status,
		&o.PaymentStatus,
		&o.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, order_id, product_id, quantity, unit_price
		FROM order_items
		WHERE order_id = $1
	`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item Item
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &item.UnitPrice); err != nil {
			return nil, err
		}
		o.Items = append(o.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &o, nil
}

func (r *repository) List(ctx context.Context, sortField, sortDir string, limit, offset int) ([]Summary, error) {
	column, ok := sortColumns[sortField]
	if !ok {
		return nil, ErrInvalidSortField
	}

	dir := strings.ToUpper(sortDir)
	if dir != "ASC" && dir != "DESC" {
		dir = "DESC"
	}

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "List"),
		zap.String("order_by", column+" "+dir),
		zap.Int("limit", limit),
		zap.Int("offset", offset),
	)

	query := fmt.Sprintf(`
		SELECT o.id, o.total_price, o.order_status, o.payment_status,
		       o.created_at, u.email, u.phone
		FROM orders o
		JOIN users u ON u.id = o.user_id
		ORDER BY %s %s
		LIMIT $1 OFFSET $2
	`, column, dir)

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		log.Error("failed to query orders", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var orders []Summary
	for rows.Next() {
		var s Summary
		if err := rows.Scan(
			&s.ID,
			&s.Total,
			&s.Status,
			&s.PaymentStatus,
			&s.CreatedAt,
			&s.UserEmail,
			&s.UserPhone,
		); err != nil {
			return nil, err
		}
		orders = append(orders, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	log.Debug("orders listed", zap.Int("count", len(orders)))
	return orders, nil
}

func (r *repository) SetPaymentStatus(ctx context.Context, orderID uuid.UUID, status PaymentStatus) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE orders SET payment_status = $1 WHERE id = $2
	`, status, orderID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

// SetStatus moves the order out of NEW. The guard on the current status
// keeps two concurrent transitions from both succeeding.
func (r *repository) SetStatus(ctx context.Context, orderID uuid.UUID, status Status) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE orders SET order_status = $1 WHERE id = $2 AND order_status = $3
	`, status, orderID, StatusNew)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrInvalidTransition
	}
	return nil
}

// CancelOrderTx returns every item's quantity to stock, zeroes the item
// rows so they survive as an audit trail, and marks the order CANCELLED.
func (r *repository) CancelOrderTx(ctx context.Context, o *Order) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	ledger := r.ledger.WithTx(tx)
	for _, item := range o.Items {
		if item.Quantity == 0 {
			continue
		}
		if err := ledger.Adjust(ctx, item.ProductID, -item.Quantity); err != nil {
			return err
		}
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE order_items SET quantity = 0 WHERE order_id = $1
	`, o.ID); err != nil {
		return err
	}

	// Guard on NEW: a concurrent cancel that got there first must not let
	// this one return the stock a second time.
	res, err := tx.ExecContext(ctx, `
		UPDATE orders SET order_status = $1 WHERE id = $2 AND order_status = $3
	`, StatusCancelled, o.ID, StatusNew)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrInvalidTransition
	}

	return tx.Commit()
}

// DeleteOrderTx returns every item's quantity to stock and removes the
// order row; the item rows go with it.
func (r *repository) DeleteOrderTx(ctx context.Context, o *Order) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	ledger := r.ledger.WithTx(tx)
	for _, item := range o.Items {
		if item.Quantity == 0 {
			continue
		}
		if err := ledger.Adjust(ctx, item.ProductID, -item.Quantity); err != nil {
			return err
		}
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, o.ID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrOrderNotFound
	}

	return tx.Commit()
}
