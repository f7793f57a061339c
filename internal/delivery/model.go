package delivery

import "github.com/google/uuid"

type Delivery struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Charge float64   `json:"charge"`
}

type NewDeliveryInput struct {
	Name   string  `json:"name"`
	Charge float64 `json:"charge"`
}
