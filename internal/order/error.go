package order

import "errors"

var (
	ErrInvalidOrder  = errors.New("invalid order data")
	ErrOrderNotFound = errors.New("order not found")
	ErrAlreadyPaid   = errors.New("order already paid")
)
