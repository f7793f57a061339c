package card

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, c *Card) error
	GetByID(ctx context.Context, id uuid.UUID) (*Card, error)
	GetByUserID(ctx context.Context, userID uint) ([]*Card, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, c *Card) error {
	const q = `
		INSERT INTO cards (user_id, holder_name, masked_number, expiry_month, expiry_year)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	return r.db.QueryRowContext(ctx, q,
		c.UserID, c.HolderName, c.MaskedNumber, c.ExpiryMonth, c.ExpiryYear,
	).Scan(&c.ID)
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Card, error) {
	var c Card
	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, holder_name, masked_number, expiry_month, expiry_year
		FROM cards
		WHERE id = $1
	`, id).Scan(&c.ID, &c.UserID, &c.HolderName, &c.MaskedNumber, &c.ExpiryMonth, &c.ExpiryYear)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repository) GetByUserID(ctx context.Context, userID uint) ([]*Card, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, holder_name, masked_number, expiry_month, expiry_year
		FROM cards
		WHERE user_id = $1
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*Card
	for rows.Next() {
		var c Card
		if err := rows.Scan(
			&c.ID, &c.UserID, &c.HolderName, &c.MaskedNumber, &c.ExpiryMonth, &c.ExpiryYear,
		); err != nil {
			return nil, err
		}
		res = append(res, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return res, nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM cards WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCardNotFound
	}
	return nil
}
