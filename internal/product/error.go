package product

import "errors"

var (
	ErrProductNotFound = errors.New("product not found")
	ErrInvalidPrice    = errors.New("product price must be positive")
	ErrInvalidQuantity = errors.New("product quantity must not be negative")
)
