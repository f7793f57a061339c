package card

import "errors"

var (
	ErrCardNotFound  = errors.New("card not found")
	ErrNotOwned      = errors.New("card belongs to another user")
	ErrInvalidNumber = errors.New("invalid card number")
	ErrInvalidExpiry = errors.New("invalid card expiry")
)
