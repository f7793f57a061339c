package product

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, in NewProductInput) (*Product, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Product, error)
	List(ctx context.Context, categoryID *uuid.UUID) ([]*Product, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, in NewProductInput) (*Product, error) {
	var p Product
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO products (name, price, quantity, category_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, price, quantity, category_id, created_at
	`, in.Name, in.Price, in.Quantity, in.CategoryID).
		Scan(&p.ID, &p.Name, &p.Price, &p.Quantity, &p.CategoryID, &p.CreatedAt)

	if err != nil {
		return nil, err
	}

	return &p, nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Product, error) {
	var p Product
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, price, quantity, category_id, created_at
		FROM products
		WHERE id = $1
	`, id).
		Scan(&p.ID, &p.Name, &p.Price, &p.Quantity, &p.CategoryID, &p.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &p, nil
}

func (r *repository) List(ctx context.Context, categoryID *uuid.UUID) ([]*Product, error) {
	query := `
		SELECT id, name, price, quantity, category_id, created_at
		FROM products
	`
	args := []any{}
	if categoryID != nil {
		query += ` WHERE category_id = $1`
		args = append(args, *categoryID)
	}
	query += ` ORDER BY name ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Quantity, &p.CategoryID, &p.CreatedAt); err != nil {
			return nil, err
		}
		products = append(products, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return products, nil
}
