package order

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusNew       Status = "NEW"
	StatusCancelled Status = "CANCELLED"
	StatusSuccess   Status = "SUCCESS"
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "PENDING"
	PaymentCompleted PaymentStatus = "COMPLETED"
	PaymentFailed    PaymentStatus = "FAILED"
)

type Order struct {
	ID            uuid.UUID     `json:"id"`
	UserID        uint          `json:"userId"`
	AddressID     uuid.UUID     `json:"addressId"`
	DeliveryID    uuid.UUID     `json:"deliveryId"`
	Total         float64       `json:"total"`
	Status        Status        `json:"status"`
	PaymentStatus PaymentStatus `json:"paymentStatus"`
	CreatedAt     time.Time     `json:"createdAt"`
	Items         []Item        `json:"items,omitempty"`
}

type Item struct {
	ID        uuid.UUID `json:"id"`
	OrderID   uuid.UUID `json:"orderId"`
	ProductID uuid.UUID `json:"productId"`
	Quantity  int       `json:"quantity"`
	UnitPrice float64   `json:"unitPrice"`
}

// Summary is the admin listing projection, joined with the owning user.
type Summary struct {
	ID            uuid.UUID     `json:"id"`
	Total         float64       `json:"total"`
	Status        Status        `json:"status"`
	PaymentStatus PaymentStatus `json:"paymentStatus"`
	CreatedAt     time.Time     `json:"createdAt"`
	UserEmail     string        `json:"userEmail"`
	UserPhone     string        `json:"userPhoneNumber"`
}
