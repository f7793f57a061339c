package address

import "errors"

var (
	ErrAddressNotFound = errors.New("address not found")
	ErrNotOwned        = errors.New("address belongs to another user")
	ErrMissingField    = errors.New("missing required address field")
)
