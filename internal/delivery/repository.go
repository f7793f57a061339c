package delivery

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, d *Delivery) error
	GetByID(ctx context.Context, id uuid.UUID) (*Delivery, error)
	List(ctx context.Context) ([]*Delivery, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, d *Delivery) error {
	const q = `
		INSERT INTO deliveries (name, charge)
		VALUES ($1, $2)
		RETURNING id
	`
	return r.db.QueryRowContext(ctx, q, d.Name, d.Charge).Scan(&d.ID)
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Delivery, error) {
	var d Delivery
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, charge FROM deliveries WHERE id = $1
	`, id).Scan(&d.ID, &d.Name, &d.Charge)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *repository) List(ctx context.Context) ([]*Delivery, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, charge FROM deliveries ORDER BY charge
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*Delivery
	for rows.Next() {
		var d Delivery
		if err := rows.Scan(&d.ID, &d.Name, &d.Charge); err != nil {
			return nil, err
		}
		res = append(res, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return res, nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM deliveries WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrDeliveryNotFound
	}
	return nil
}
