package repository

import (
	"context"
	"time"

	"github.com/kahenya/duka/internal/domain/model"
)

// PaymentRepository describes persistence of push-payment attempts.
type PaymentRepository interface {
	Create(ctx context.Context, attempt *model.PaymentAttempt) (*model.PaymentAttempt, error)
	GetByCheckoutRequestID(ctx context.Context, checkoutRequestID string) (*model.PaymentAttempt, error)
	// Finalize moves a pending attempt to a terminal state. Rows already in a
	// terminal state are left untouched and ErrPaymentFinalized is returned;
	// unknown identifiers return ErrNotFound.
	Finalize(ctx context.Context, result model.PaymentResult) error
	// MaterializeOrder creates the order for a successful attempt exactly
	// once: within one transaction it claims the attempt's empty order
	// reference and materializes the checkout. When the attempt was already
	// claimed the existing order is returned with created=false.
	MaterializeOrder(ctx context.Context, checkoutRequestID string, checkout CheckoutOrder) (order *model.Order, created bool, err error)
	// ExpireBatch marks pending attempts created before cutoff as failed and
	// returns the identifiers it reaped.
	ExpireBatch(ctx context.Context, cutoff time.Time, limit int) ([]string, error)
}
