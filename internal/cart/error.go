package cart

import "errors"

var (
	// -- Resource State --
	ErrCartAlreadyExists = errors.New("user already has a cart")
	ErrCartNotFound      = errors.New("cart not found")
	ErrNoCart            = errors.New("user has no cart")
	ErrItemNotFound      = errors.New("cart item not found")

	// -- Ownership --
	ErrNotOwned = errors.New("cart item does not belong to your cart")

	// -- Validation & Input --
	ErrUserNotFound    = errors.New("user not found")
	ErrProductNotFound = errors.New("product not found")
	ErrInvalidQuantity = errors.New("cart item quantity must be at least 1")
	ErrBelowMinimum    = errors.New("cart item quantity cannot go below 1")
)
