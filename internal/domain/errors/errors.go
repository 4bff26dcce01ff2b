package errors

import "errors"

// Marketplace operation outcomes. Every fallible operation returns exactly
// one of these; handlers translate them to HTTP statuses with errors.Is.
var (
	ErrAlreadyRegistered = errors.New("account already registered")
	ErrNotRegistered     = errors.New("account not registered")
	ErrNotSeller         = errors.New("caller has no seller role")
	ErrNotAuthorized     = errors.New("caller not authorized")
	ErrProductNotFound   = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrOrderNotFound     = errors.New("order not found")
	ErrInvalidState      = errors.New("invalid order state")
	ErrOverflow          = errors.New("arithmetic overflow")
	ErrInvalidData       = errors.New("invalid data")
	ErrCannotRemoveRole  = errors.New("roles cannot be removed")
	ErrInvalidRating     = errors.New("rating outside 1-5 range")
	ErrAlreadyRated      = errors.New("order already rated by this party")
	ErrOrderNotReceived  = errors.New("order not received")
)

// Account and session layer.
var (
	ErrAlreadyExists      = errors.New("already exists")
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
