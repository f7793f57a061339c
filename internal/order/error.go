package order

import "errors"

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrUserNotFound      = errors.New("user not found")
	ErrCartNotFound      = errors.New("cart not found")
	ErrAddressNotFound   = errors.New("address not found")
	ErrDeliveryNotFound  = errors.New("delivery not found")
	ErrForbidden         = errors.New("forbidden")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrInvalidSortField  = errors.New("invalid sort field")
)
