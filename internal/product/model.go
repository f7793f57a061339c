package product

import (
	"time"

	"github.com/google/uuid"
)

type Product struct {
	ID         uuid.UUID
	Name       string
	Price      float64
	Quantity   int
	CategoryID *uuid.UUID
	CreatedAt  time.Time
}

type NewProductInput struct {
	Name       string
	Price      float64
	Quantity   int
	CategoryID *uuid.UUID
}
