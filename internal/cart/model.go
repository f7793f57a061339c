package cart

import (
	"time"

	"github.com/google/uuid"
)

type Cart struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
}

type Item struct {
	ID        uuid.UUID `json:"id"`
	CartID    uuid.UUID `json:"cartId"`
	ProductID uuid.UUID `json:"productId"`
	Quantity  int       `json:"quantity"`
}

// ItemDetail is an Item enriched with the backing product's name and price.
type ItemDetail struct {
	ID          uuid.UUID `json:"id"`
	ProductID   uuid.UUID `json:"productId"`
	ProductName string    `json:"productName"`
	UnitPrice   float64   `json:"unitPrice"`
	Quantity    int       `json:"quantity"`
}

// Detail is the full cart projection with the computed total cost.
type Detail struct {
	CartID    uuid.UUID    `json:"cartId"`
	CreatedAt time.Time    `json:"createdAt"`
	Items     []ItemDetail `json:"items,omitempty"`
	TotalCost float64      `json:"totalCost"`
}
