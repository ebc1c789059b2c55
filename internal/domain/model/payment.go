package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus describes the state of a push-payment attempt.
// Lifecycle: pending transitions exactly once to one of the terminal states
// and is never reopened.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusSuccess   PaymentStatus = "success"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusCancelled PaymentStatus = "cancelled"
)

// Terminal reports whether the status is final.
func (s PaymentStatus) Terminal() bool {
	return s == PaymentStatusSuccess || s == PaymentStatusFailed || s == PaymentStatusCancelled
}

// PaymentAttempt tracks one push-payment request and its outcome.
//
// The attempt is keyed by the provider-issued CheckoutRequestID and is
// correlated to the visitor only through SessionID. OrderID is set once,
// when the success poll materializes the order; it doubles as the
// idempotency claim for order creation.
type PaymentAttempt struct {
	ID                int64
	CheckoutRequestID string
	PhoneNumber       string
	Amount            decimal.Decimal
	Status            PaymentStatus
	ReceiptCode       string
	ResultDescription string
	SessionID         string
	OrderID           *int64
	SettledAt         *time.Time
	CreatedAt         time.Time
}

// Expired reports whether a still-pending attempt has outlived ttl.
func (p PaymentAttempt) Expired(now time.Time, ttl time.Duration) bool {
	return p.Status == PaymentStatusPending && now.Sub(p.CreatedAt) > ttl
}

// PaymentResult is the provider's reconciliation outcome for an attempt.
type PaymentResult struct {
	CheckoutRequestID string
	Status            PaymentStatus
	ReceiptCode       string
	Description       string
	Amount            *decimal.Decimal
	SettledAt         *time.Time
}
