package errors

import "errors"

var (
	ErrAlreadyExists      = errors.New("already exists")
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrInvalidQuantity    = errors.New("invalid quantity")
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrInvalidProduct     = errors.New("invalid product")
	ErrInvalidCheckout    = errors.New("invalid checkout details")
	ErrInvalidPhoneNumber = errors.New("invalid phone number")
	ErrInvalidStatus      = errors.New("invalid status")
	ErrInvalidPeriod      = errors.New("invalid reporting period")
	ErrNoPendingPayment   = errors.New("no pending payment for session")
	ErrPaymentFinalized   = errors.New("payment already finalized")
	ErrGatewayUnavailable = errors.New("payment gateway unavailable")
	ErrSnapshotExpired    = errors.New("checkout snapshot expired")
)
