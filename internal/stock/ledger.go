package stock

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx, so ledger mutations can be
// part of a caller's transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Ledger is the only component that changes a product's on-hand quantity.
// The non-negativity invariant is enforced by the guarded UPDATE, which also
// serializes concurrent mutations on the product row.
type Ledger struct {
	db DBTX
}

func NewLedger(db DBTX) *Ledger {
	return &Ledger{db: db}
}

// WithTx returns a ledger bound to the given transaction.
func (l *Ledger) WithTx(tx *sql.Tx) *Ledger {
	return &Ledger{db: tx}
}

// ReduceByOne consumes a single unit. Each call consumes one unit; it is not
// idempotent.
func (l *Ledger) ReduceByOne(ctx context.Context, productID uuid.UUID) error {
	res, err := l.db.ExecContext(ctx, `
		UPDATE products
		SET quantity = quantity - 1
		WHERE id = $1 AND quantity > 0
	`, productID)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		exists, err := l.exists(ctx, productID)
		if err != nil {
			return err
		}
		if !exists {
			return ErrProductNotFound
		}
		return ErrOutOfStock
	}

	return nil
}

// IncreaseByOne returns a single unit to stock. No upper bound is enforced.
func (l *Ledger) IncreaseByOne(ctx context.Context, productID uuid.UUID) error {
	res, err := l.db.ExecContext(ctx, `
		UPDATE products
		SET quantity = quantity + 1
		WHERE id = $1
	`, productID)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrProductNotFound
	}

	return nil
}

// Adjust consumes delta units when delta > 0 and returns |delta| units when
// delta < 0. A zero delta is a no-op.
func (l *Ledger) Adjust(ctx context.Context, productID uuid.UUID, delta int) error {
	if delta == 0 {
		return nil
	}

	if delta > 0 {
		res, err := l.db.ExecContext(ctx, `
			UPDATE products
			SET quantity = quantity - $1
			WHERE id = $2 AND quantity >= $1
		`, delta, productID)
		if err != nil {
			return err
		}

		affected, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			exists, err := l.exists(ctx, productID)
			if err != nil {
				return err
			}
			if !exists {
				return ErrProductNotFound
			}
			return ErrInsufficientStock
		}

		return nil
	}

	res, err := l.db.ExecContext(ctx, `
		UPDATE products
		SET quantity = quantity + $1
		WHERE id = $2
	`, -delta, productID)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrProductNotFound
	}

	return nil
}

// Quantity reads the current on-hand quantity. A missing product is
// distinguished from a legitimate zero with ErrProductNotFound.
func (l *Ledger) Quantity(ctx context.Context, productID uuid.UUID) (int, error) {
	var qty int
	err := l.db.QueryRowContext(ctx, `
		SELECT quantity FROM products WHERE id = $1
	`, productID).Scan(&qty)

	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrProductNotFound
	}
	if err != nil {
		return 0, err
	}

	return qty, nil
}

func (l *Ledger) exists(ctx context.Context, productID uuid.UUID) (bool, error) {
	var exists bool
	err := l.db.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM products WHERE id = $1)
	`, productID).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}
