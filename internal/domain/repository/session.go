package repository

import (
	"context"

	"github.com/kahenya/duka/internal/domain/model"
)

// SessionRepository holds per-visitor transient state: the cart, the
// checkout snapshot bridging payment initiation to completion, and the
// session's pending payment reference. Entries expire; none of this is a
// durable system of record.
type SessionRepository interface {
	GetCart(ctx context.Context, sessionID string) (*model.Cart, error)
	SaveCart(ctx context.Context, sessionID string, cart *model.Cart) error
	ClearCart(ctx context.Context, sessionID string) error

	// Checkout snapshots are keyed by the payment request identifier and
	// expire together with the payment attempt.
	SaveSnapshot(ctx context.Context, checkoutRequestID string, snapshot *model.CheckoutSnapshot) error
	GetSnapshot(ctx context.Context, checkoutRequestID string) (*model.CheckoutSnapshot, error)
	DeleteSnapshot(ctx context.Context, checkoutRequestID string) error

	// The pending payment reference correlates a visitor session to the
	// push-payment attempt it initiated.
	SetPendingPayment(ctx context.Context, sessionID, checkoutRequestID string) error
	GetPendingPayment(ctx context.Context, sessionID string) (string, error)
	ClearPendingPayment(ctx context.Context, sessionID string) error
}
