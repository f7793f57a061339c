package delivery

import "errors"

var (
	ErrDeliveryNotFound = errors.New("delivery not found")
	ErrInvalidCharge    = errors.New("delivery charge must not be negative")
	ErrMissingName      = errors.New("delivery name is required")
)
