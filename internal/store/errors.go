package store

import (
	"errors"
)

// Every operation reports failure as a return value the caller can
// branch on; none of these are fatal to the process.
var (
	// ErrValidation covers malformed input rejected before any mutation.
	ErrValidation = errors.New("invalid input")

	// ErrNotFound covers references to product/order/user/community ids
	// that do not exist.
	ErrNotFound = errors.New("not found")

	// ErrInsufficientStock is returned when an order asks for more units
	// than the catalog currently holds.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrInvalidTransition is returned when a status change is not
	// allowed by the order state machine.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrInvalidCredentials is returned by Authenticate for an unknown
	// username or a wrong password, without telling the caller which.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
